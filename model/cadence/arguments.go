// Package cadence builds JSON-Cadence argument values for transaction and
// script parameters.
//
// This is a wire format consumed by the remote Cadence interpreter. It is
// entirely separate from the RLP canonical encoding used for signing; the
// two must never be mixed. Numeric payloads are decimal strings per the
// JSON-Cadence convention, which avoids floating-point precision loss on
// the wire.
package cadence

import (
	"encoding/json"
	"math"
	"strconv"
)

// An Argument is a tagged Cadence value.
type Argument struct {
	Type  string      `json:"type"`
	Value interface{} `json:"value"`
}

// InvalidArgumentError indicates a value that cannot be represented by the
// requested Cadence type.
type InvalidArgumentError struct {
	Type string
	Msg  string
}

func (e InvalidArgumentError) Error() string {
	return "invalid " + e.Type + " argument: " + e.Msg
}

// Bool returns a Cadence Bool argument.
func Bool(v bool) Argument {
	return Argument{Type: "Bool", Value: v}
}

// String returns a Cadence String argument.
func String(v string) Argument {
	return Argument{Type: "String", Value: v}
}

// UInt64 returns a Cadence UInt64 argument.
func UInt64(v uint64) Argument {
	return Argument{Type: "UInt64", Value: strconv.FormatUint(v, 10)}
}

// Int64 returns a Cadence Int64 argument.
func Int64(v int64) Argument {
	return Argument{Type: "Int64", Value: strconv.FormatInt(v, 10)}
}

// UFix64 returns a Cadence UFix64 argument.
//
// Negative and non-finite values cannot be represented by an unsigned
// fixed-point type and are rejected eagerly, at construction time.
func UFix64(v float64) (Argument, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Argument{}, InvalidArgumentError{Type: "UFix64", Msg: "value must be finite"}
	}
	if v < 0 {
		return Argument{}, InvalidArgumentError{Type: "UFix64", Msg: "value must not be negative"}
	}
	return Argument{Type: "UFix64", Value: strconv.FormatFloat(v, 'f', -1, 64)}, nil
}

// Fix64 returns a Cadence Fix64 argument.
func Fix64(v float64) Argument {
	return Argument{Type: "Fix64", Value: strconv.FormatFloat(v, 'f', -1, 64)}
}

// Address returns a Cadence Address argument from a hex address string.
func Address(v string) Argument {
	return Argument{Type: "Address", Value: v}
}

// Array returns a Cadence Array argument from the given element arguments.
func Array(values ...Argument) Argument {
	elements := make([]interface{}, len(values))
	for i, v := range values {
		elements[i] = v
	}
	return Argument{Type: "Array", Value: elements}
}

// KeyValuePair is one entry of a Dictionary argument.
type KeyValuePair struct {
	Key   string `json:"Key"`
	Value string `json:"Value"`
}

// Dictionary returns a Cadence Dictionary argument from an ordered list of
// key/value pairs. Pair order is preserved, not sorted.
func Dictionary(pairs []KeyValuePair) Argument {
	elements := make([]interface{}, len(pairs))
	for i, p := range pairs {
		elements[i] = p
	}
	return Argument{Type: "Dictionary", Value: elements}
}

// Encode serializes the argument to its JSON-Cadence byte representation,
// ready to be attached to a transaction or script.
func (a Argument) Encode() []byte {
	b, err := json.Marshal(a)
	if err != nil {
		// all constructors produce marshalable values
		panic(err)
	}
	return b
}
