// Package fingerprint provides the canonical binary form of model entities.
package fingerprint

import (
	"github.com/onflow/flow-client-go/model/encoding"
)

// Fingerprinter is implemented by entities that define their own canonical
// binary form.
type Fingerprinter interface {
	Fingerprint() []byte
}

// Fingerprint returns the canonical binary form of the given entity.
//
// Entities implementing Fingerprinter are asked for their own form;
// everything else is encoded with the default canonical encoder.
func Fingerprint(entity interface{}) []byte {
	if fingerprinter, ok := entity.(Fingerprinter); ok {
		return fingerprinter.Fingerprint()
	}
	return encoding.DefaultEncoder.MustEncode(entity)
}
