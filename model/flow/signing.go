package flow

import (
	"fmt"

	"github.com/onflow/flow-client-go/crypto"
	"github.com/onflow/flow-client-go/crypto/hash"
)

// A Credential identifies an account key together with its private key
// material, supplied as a hex-encoded scalar.
//
// Credentials are ephemeral: the decoded key lives only for the duration of
// one signing call and is wiped before the call returns.
type Credential struct {
	Address    string
	KeyIndex   uint64
	PrivateKey string
}

// SignTransaction signs the transaction with the given payload and envelope
// signer credentials, in the order supplied.
//
// Payload signers sign the transaction body only. Envelope signers sign the
// body plus all payload signatures, so they are applied strictly after the
// payload signature list is complete. An empty payload signer list is valid
// and leaves the transaction under-signed.
//
// The call is atomic: if any credential fails to decode or sign, the
// transaction is left untouched.
func SignTransaction(tb *TransactionBody, payloadSigners, envelopeSigners []Credential) error {

	payloadSigs, err := signMessageFunc(tb.PayloadMessage, payloadSigners)
	if err != nil {
		return fmt.Errorf("could not sign transaction payload: %w", err)
	}
	tb.PayloadSignatures = append(tb.PayloadSignatures, payloadSigs...)

	// the envelope message must be computed after all payload signatures are
	// attached, since it commits to them by position
	envelopeSigs, err := signMessageFunc(tb.EnvelopeMessage, envelopeSigners)
	if err != nil {
		// restore the unsigned state
		tb.PayloadSignatures = tb.PayloadSignatures[:len(tb.PayloadSignatures)-len(payloadSigs)]
		return fmt.Errorf("could not sign transaction envelope: %w", err)
	}
	tb.EnvelopeSignatures = append(tb.EnvelopeSignatures, envelopeSigs...)

	return nil
}

// signMessageFunc produces one signature record per credential over the
// message returned by the message function. The message is re-evaluated per
// call, not per signer: all signers of one tier sign the same bytes.
func signMessageFunc(message func() []byte, signers []Credential) ([]TransactionSignature, error) {
	if len(signers) == 0 {
		return nil, nil
	}

	msg := message()

	sigs := make([]TransactionSignature, 0, len(signers))
	for i, signer := range signers {
		sig, err := signOne(msg, signer)
		if err != nil {
			return nil, fmt.Errorf("signer %d (%s): %w", i, signer.Address, err)
		}
		sigs = append(sigs, sig)
	}
	return sigs, nil
}

func signOne(message []byte, signer Credential) (TransactionSignature, error) {
	address, err := HexToAddress(signer.Address)
	if err != nil {
		return TransactionSignature{}, err
	}

	privateKey, err := crypto.DecodePrivateKeyHex(signer.PrivateKey)
	if err != nil {
		return TransactionSignature{}, fmt.Errorf("could not decode private key: %w", err)
	}
	defer privateKey.Zero()

	tagged := append(TransactionDomainTag[:], message...)
	sig, err := privateKey.Sign(tagged, hash.NewSHA3_256())
	if err != nil {
		return TransactionSignature{}, fmt.Errorf("could not sign message: %w", err)
	}

	return TransactionSignature{
		Address:   address,
		KeyIndex:  signer.KeyIndex,
		Signature: sig,
	}, nil
}
