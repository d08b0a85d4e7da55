package flow

import (
	"encoding/hex"
	"strings"
)

// Address represents the 8 byte address of an account.
type Address [AddressLength]byte

const (
	// AddressLength is the size of an account address in bytes.
	AddressLength = 8
)

// EmptyAddress represents the address of an account that no one owns.
var EmptyAddress = Address{}

// HexToAddress converts a hex string to an Address.
//
// The string may carry a "0x" prefix. Strings that are not valid hex, or
// that decode to more than 8 bytes, are rejected.
func HexToAddress(h string) (Address, error) {
	h = strings.TrimPrefix(h, "0x")
	b, err := hex.DecodeString(h)
	if err != nil {
		return EmptyAddress, DecodeError{Field: "address", Err: err}
	}
	return BytesToAddress(b)
}

// BytesToAddress returns the Address with value b.
//
// If b is smaller than 8 bytes, it is zero-extended at the front.
// If b is larger than 8 bytes, an OversizedFieldError is returned:
// cropping an address silently would produce a transaction that encodes
// fine but fails signature verification on the receiving side.
func BytesToAddress(b []byte) (Address, error) {
	var a Address
	if len(b) > AddressLength {
		return EmptyAddress, OversizedFieldError{Field: "address", Width: AddressLength, Length: len(b)}
	}
	copy(a[AddressLength-len(b):], b)
	return a, nil
}

// Bytes returns the byte representation of the address.
func (a Address) Bytes() []byte { return a[:] }

// Hex returns the hex string representation of the address.
func (a Address) Hex() string {
	return hex.EncodeToString(a.Bytes())
}

// String returns the string representation of the address.
func (a Address) String() string {
	return a.Hex()
}

// Short returns the string representation of the address with leading zeros
// removed.
func (a Address) Short() string {
	hex := a.String()
	trimmed := strings.TrimLeft(hex, "0")
	if len(trimmed)%2 != 0 {
		trimmed = "0" + trimmed
	}
	return trimmed
}

func (a Address) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.Hex() + `"`), nil
}

func (a *Address) UnmarshalJSON(data []byte) error {
	addr, err := HexToAddress(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
