// Package templates provides the Cadence transaction templates for common
// account and contract management operations.
//
// Each template function returns the script source plus its pre-encoded
// JSON-Cadence arguments, ready to be attached to a transaction body. The
// script bodies are treated as opaque by the rest of the module.
package templates

import (
	"encoding/hex"

	"github.com/onflow/flow-client-go/model/cadence"
	"github.com/onflow/flow-client-go/model/encoding/rlp"
)

const createAccountTemplate = `
transaction(publicKeys: [String], contracts: {String: String}) {
    prepare(signer: AuthAccount) {
        let acct = AuthAccount(payer: signer)

        for key in publicKeys {
            acct.addPublicKey(key.decodeHex())
        }

        for contract in contracts.keys {
            acct.contracts.add(name: contract, code: contracts[contract]!.decodeHex())
        }
    }
}`

const addKeyTemplate = `
transaction(publicKey: String) {
    prepare(signer: AuthAccount) {
        signer.addPublicKey(publicKey.decodeHex())
    }
}`

const removeKeyTemplate = `
transaction(keyIndex: Int) {
    prepare(signer: AuthAccount) {
        signer.removePublicKey(keyIndex)
    }
}`

const addContractTemplate = `
transaction(name: String, code: String) {
    prepare(signer: AuthAccount) {
        signer.contracts.add(name: name, code: code.decodeHex())
    }
}`

const updateContractTemplate = `
transaction(name: String, code: String) {
    prepare(signer: AuthAccount) {
        signer.contracts.update__experimental(name: name, code: code.decodeHex())
    }
}`

const removeContractTemplate = `
transaction(name: String) {
    prepare(signer: AuthAccount) {
        signer.contracts.remove(name: name)
    }
}`

// On-chain codes for the account key encoding. These identify the signature
// and hashing algorithms of a stored account key and are defined by the
// network, independently of this module's own signing scheme.
const (
	SignAlgoECDSAP256      = 2
	SignAlgoECDSASecp256k1 = 3

	HashAlgoSHA2_256 = 1
	HashAlgoSHA3_256 = 3

	// DefaultKeyWeight gives a single key full signing weight.
	DefaultKeyWeight = 1000
)

// AccountKey describes a public key to be added to an account.
type AccountKey struct {
	// PublicKey is the raw X||Y public key.
	PublicKey []byte
	SignAlgo  uint
	HashAlgo  uint
	Weight    uint
}

// Encode returns the hex form of the on-chain account key encoding, the
// canonical list [publicKey, signAlgo, hashAlgo, weight].
func (k AccountKey) Encode() string {
	encoded := rlp.NewEncoder().MustEncode(struct {
		PublicKey []byte
		SignAlgo  uint
		HashAlgo  uint
		Weight    uint
	}{
		PublicKey: k.PublicKey,
		SignAlgo:  k.SignAlgo,
		HashAlgo:  k.HashAlgo,
		Weight:    k.Weight,
	})
	return hex.EncodeToString(encoded)
}

// CreateAccount returns the script and arguments of a transaction that
// creates a new account with the given keys and contracts, paid for by the
// signing account.
func CreateAccount(keys []AccountKey, contracts []cadence.KeyValuePair) ([]byte, [][]byte) {
	keyArgs := make([]cadence.Argument, len(keys))
	for i, key := range keys {
		keyArgs[i] = cadence.String(key.Encode())
	}

	return []byte(createAccountTemplate), [][]byte{
		cadence.Array(keyArgs...).Encode(),
		cadence.Dictionary(contracts).Encode(),
	}
}

// AddAccountKey returns the script and arguments of a transaction that adds
// the given key to the signing account.
func AddAccountKey(key AccountKey) ([]byte, [][]byte) {
	return []byte(addKeyTemplate), [][]byte{
		cadence.String(key.Encode()).Encode(),
	}
}

// RemoveAccountKey returns the script and arguments of a transaction that
// removes the key with the given index from the signing account.
func RemoveAccountKey(keyIndex uint64) ([]byte, [][]byte) {
	return []byte(removeKeyTemplate), [][]byte{
		cadence.UInt64(keyIndex).Encode(),
	}
}

// AddContract returns the script and arguments of a transaction that deploys
// the named contract to the signing account. The contract source is
// hex-encoded into the script argument.
func AddContract(name, code string) ([]byte, [][]byte) {
	return []byte(addContractTemplate), contractArgs(name, code)
}

// UpdateContract returns the script and arguments of a transaction that
// replaces the named contract on the signing account.
func UpdateContract(name, code string) ([]byte, [][]byte) {
	return []byte(updateContractTemplate), contractArgs(name, code)
}

// RemoveContract returns the script and arguments of a transaction that
// removes the named contract from the signing account.
func RemoveContract(name string) ([]byte, [][]byte) {
	return []byte(removeContractTemplate), [][]byte{
		cadence.String(name).Encode(),
	}
}

func contractArgs(name, code string) [][]byte {
	return [][]byte{
		cadence.String(name).Encode(),
		cadence.String(hex.EncodeToString([]byte(code))).Encode(),
	}
}
