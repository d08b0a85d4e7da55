package flow

// Domain separation tags for user signatures.
//
// Every signed message is prefixed with a fixed-width tag identifying the
// type of the signed object. This prevents a signature computed over one
// message class from being replayed as another, and simulates orthogonal
// random oracles for the different signing domains.

// DomainTagLength is the fixed width of a padded domain tag.
const DomainTagLength = 32

// TransactionDomainTag is the prefix of all signed transaction payloads.
// It must be byte-identical to the tag expected by the verifying network.
var TransactionDomainTag = paddedDomainTag("FLOW-V0.0-transaction")

// paddedDomainTag returns the tag extended with zero bytes on the right to
// the fixed domain tag width.
func paddedDomainTag(s string) [DomainTagLength]byte {
	var tag [DomainTagLength]byte
	if len(s) > DomainTagLength {
		panic("domain tag exceeds 32 bytes: " + s)
	}
	copy(tag[:], s)
	return tag
}
