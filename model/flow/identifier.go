package flow

import (
	"encoding/hex"
	"strings"

	"github.com/onflow/flow-client-go/crypto/hash"
	"github.com/onflow/flow-client-go/model/fingerprint"
)

// Identifier represents a 32-byte unique identifier for an entity.
type Identifier [IdentifierLength]byte

const (
	// IdentifierLength is the size of an identifier in bytes.
	IdentifierLength = 32
)

// ZeroID is the lowest value in the 32-byte ID space.
var ZeroID = Identifier{}

// HexStringToIdentifier converts a hex string to an Identifier.
func HexStringToIdentifier(h string) (Identifier, error) {
	h = strings.TrimPrefix(h, "0x")
	b, err := hex.DecodeString(h)
	if err != nil {
		return ZeroID, DecodeError{Field: "identifier", Err: err}
	}
	return BytesToIdentifier(b)
}

// BytesToIdentifier returns the Identifier with value b.
//
// If b is smaller than 32 bytes, it is zero-extended at the front, so a
// reference block hash always occupies exactly 32 bytes in the canonical
// encoding. Oversized input is an OversizedFieldError.
func BytesToIdentifier(b []byte) (Identifier, error) {
	var id Identifier
	if len(b) > IdentifierLength {
		return ZeroID, OversizedFieldError{Field: "identifier", Width: IdentifierLength, Length: len(b)}
	}
	copy(id[IdentifierLength-len(b):], b)
	return id, nil
}

// MakeID hashes the canonical fingerprint of the given entity into a
// 32-byte identifier.
func MakeID(entity interface{}) Identifier {
	var id Identifier
	hasher := hash.NewSHA3_256()
	copy(id[:], hasher.ComputeHash(fingerprint.Fingerprint(entity)))
	return id
}

// Bytes returns the byte representation of the identifier.
func (id Identifier) Bytes() []byte { return id[:] }

// Hex returns the hex string representation of the identifier.
func (id Identifier) Hex() string {
	return hex.EncodeToString(id[:])
}

// String returns the string representation of the identifier.
func (id Identifier) String() string {
	return id.Hex()
}

func (id Identifier) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.Hex() + `"`), nil
}

func (id *Identifier) UnmarshalJSON(data []byte) error {
	decoded, err := HexStringToIdentifier(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*id = decoded
	return nil
}
