// Package rlp wraps the go-ethereum RLP codec behind the Encoder interface
// used for canonical encodings.
//
// RLP is the length-prefixed nested-list format all signable messages are
// serialized with. It is deterministic: the encoder never reorders,
// deduplicates or omits items, so identical logical structure always yields
// identical bytes.
package rlp

import (
	"github.com/ethereum/go-ethereum/rlp"
)

// Encoder encodes and decodes values to and from the canonical RLP form.
type Encoder struct{}

func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode encodes a value as RLP bytes.
func (e *Encoder) Encode(v interface{}) ([]byte, error) {
	return rlp.EncodeToBytes(v)
}

// Decode decodes RLP bytes into a value.
func (e *Encoder) Decode(b []byte, v interface{}) error {
	return rlp.DecodeBytes(b, v)
}

// MustEncode encodes a value as RLP bytes, panicking on failure. Encoding a
// supported type cannot fail, so a panic here signals a programming error.
func (e *Encoder) MustEncode(v interface{}) []byte {
	b, err := e.Encode(v)
	if err != nil {
		panic(err)
	}
	return b
}

// MustDecode decodes RLP bytes into a value, panicking on failure.
func (e *Encoder) MustDecode(b []byte, v interface{}) {
	err := e.Decode(b, v)
	if err != nil {
		panic(err)
	}
}
