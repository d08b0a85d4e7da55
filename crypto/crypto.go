// Package crypto implements the deterministic signature scheme used for
// transaction signing.
//
// Signing uses ECDSA over secp256k1 with RFC 6979 deterministic nonces, so
// a given key and message always produce the same signature bytes.
// Signatures are the raw fixed-size r||s scalar pair, not DER.
package crypto

import (
	"encoding/hex"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/onflow/flow-client-go/crypto/hash"
)

//revive:disable:var-naming

// SigningAlgorithm is an identifier for a signing algorithm and curve.
type SigningAlgorithm int

const (
	// Supported signing algorithms
	UnknownSigningAlgorithm SigningAlgorithm = iota
	ECDSA_SECp256k1
)

// String returns the string representation of this signing algorithm.
func (f SigningAlgorithm) String() string {
	return [...]string{"UNKNOWN", "ECDSA_SECp256k1"}[f]
}

const (
	// SignatureLenECDSA_SECp256k1 is the length of a raw r||s signature.
	SignatureLenECDSA_SECp256k1 = 64
	// PrKeyLenECDSA_SECp256k1 is the length of a raw private key scalar.
	PrKeyLenECDSA_SECp256k1 = 32
	// PubKeyLenECDSA_SECp256k1 is the length of a raw X||Y public key.
	PubKeyLenECDSA_SECp256k1 = 64

	scalarLen = 32
)

// Signature is a generic type, regardless of the signature scheme
type Signature []byte

// PrivateKey is a short-lived signing key.
//
// A private key is expected to live only for the duration of one signing
// call sequence; call Zero when done to wipe the scalar from memory.
type PrivateKey struct {
	key *secp256k1.PrivateKey
}

// DecodePrivateKey creates a private key from a raw big-endian scalar.
func DecodePrivateKey(b []byte) (*PrivateKey, error) {
	if len(b) != PrKeyLenECDSA_SECp256k1 {
		return nil, newInvalidInputsError("private key must be %d bytes, got %d", PrKeyLenECDSA_SECp256k1, len(b))
	}
	return &PrivateKey{key: secp256k1.PrivKeyFromBytes(b)}, nil
}

// DecodePrivateKeyHex creates a private key from a hex-encoded scalar.
func DecodePrivateKeyHex(s string) (*PrivateKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, newInvalidInputsError("private key is not valid hex: %s", err)
	}
	return DecodePrivateKey(b)
}

// Sign hashes the given message with the hasher and signs the digest.
//
// The signature is deterministic: identical key material and message yield
// byte-identical signatures.
func (sk *PrivateKey) Sign(message []byte, hasher hash.Hasher) (Signature, error) {
	if hasher == nil {
		return nil, newInvalidInputsError("hasher is required to sign")
	}
	digest := hasher.ComputeHash(message)

	sig := ecdsa.Sign(sk.key, digest)

	out := make([]byte, SignatureLenECDSA_SECp256k1)
	r := sig.R()
	s := sig.S()
	r.PutBytesUnchecked(out[:scalarLen])
	s.PutBytesUnchecked(out[scalarLen:])
	return out, nil
}

// PublicKey returns the public key matching the private key.
func (sk *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{key: sk.key.PubKey()}
}

// Zero wipes the private key scalar from memory. The key must not be used
// afterwards.
func (sk *PrivateKey) Zero() {
	sk.key.Zero()
}

// PublicKey is a verification key.
type PublicKey struct {
	key *secp256k1.PublicKey
}

// Verify reports whether sig is a valid signature of the message digest
// under this key. The signature must be the raw r||s pair.
func (pk *PublicKey) Verify(sig Signature, message []byte, hasher hash.Hasher) (bool, error) {
	if len(sig) != SignatureLenECDSA_SECp256k1 {
		return false, newInvalidInputsError("signature must be %d bytes, got %d", SignatureLenECDSA_SECp256k1, len(sig))
	}
	if hasher == nil {
		return false, newInvalidInputsError("hasher is required to verify")
	}

	var r, s secp256k1.ModNScalar
	if r.SetByteSlice(sig[:scalarLen]) {
		return false, newInvalidInputsError("signature r value overflows the curve order")
	}
	if s.SetByteSlice(sig[scalarLen:]) {
		return false, newInvalidInputsError("signature s value overflows the curve order")
	}

	digest := hasher.ComputeHash(message)
	return ecdsa.NewSignature(&r, &s).Verify(digest, pk.key), nil
}

// Encode returns the raw X||Y representation of the public key, as used in
// on-chain account key encodings.
func (pk *PublicKey) Encode() []byte {
	uncompressed := pk.key.SerializeUncompressed()
	// strip the 0x04 uncompressed-point prefix
	return uncompressed[1:]
}
