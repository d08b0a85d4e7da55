package flow

import (
	"fmt"

	"github.com/onflow/flow-client-go/crypto"
	"github.com/onflow/flow-client-go/crypto/hash"
	"github.com/onflow/flow-client-go/model/fingerprint"
)

// TransactionBody includes the main contents of a transaction
type TransactionBody struct {

	// A reference to a previous block
	// A transaction is expired after specific number of blocks (defined by network) counting from this block
	// for example, if block reference is pointing to a block with height of X and network limit is 10,
	// a block with x+10 height is the last block that is allowed to include this transaction.
	// user can adjust this reference to older blocks if he/she wants to make tx expire faster
	ReferenceBlockID Identifier

	// the transaction script as UTF-8 encoded Cadence source code
	Script []byte

	// arguments passed to the Cadence transaction, each a pre-encoded
	// JSON-Cadence value blob
	Arguments [][]byte

	// Max amount of computation which is allowed to be done during this transaction
	GasLimit uint64

	// Account key used to propose the transaction
	ProposalKey ProposalKey

	// Account that pays for this transaction fees
	Payer Address

	// An ordered list of addresses that scripts will touch their assets (including payer address)
	// Accounts listed here all have to provide signatures
	// Each account might provide multiple signatures (sum of weight should be at least 1)
	// If code touches accounts that is not listed here, tx fails
	Authorizers []Address

	// List of account signatures excluding signature of the payer account.
	// The order is the order signers were supplied in; the envelope encoding
	// commits to the position of each signature in this list, so it must not
	// be reordered once envelope signing has started.
	PayloadSignatures []TransactionSignature

	// payer signature over the envelope (payload + payload signatures)
	EnvelopeSignatures []TransactionSignature
}

// NewTransactionBody initializes and returns an empty transaction body
func NewTransactionBody() *TransactionBody {
	return &TransactionBody{}
}

// BuildTransaction assembles an unsigned transaction body from its parts.
//
// The payer and authorizer addresses are supplied as hex strings and decoded
// here; malformed hex fails the build with a DecodeError. Both signature
// lists are left empty.
func BuildTransaction(
	script []byte,
	arguments [][]byte,
	referenceBlockID Identifier,
	gasLimit uint64,
	proposalKey ProposalKey,
	authorizers []string,
	payer string,
) (*TransactionBody, error) {

	payerAddress, err := HexToAddress(payer)
	if err != nil {
		return nil, fmt.Errorf("could not decode payer address: %w", err)
	}

	authorizerAddresses := make([]Address, len(authorizers))
	for i, authorizer := range authorizers {
		address, err := HexToAddress(authorizer)
		if err != nil {
			return nil, fmt.Errorf("could not decode authorizer %d address: %w", i, err)
		}
		authorizerAddresses[i] = address
	}

	return &TransactionBody{
		Script:           script,
		Arguments:        arguments,
		ReferenceBlockID: referenceBlockID,
		GasLimit:         gasLimit,
		ProposalKey:      proposalKey,
		Payer:            payerAddress,
		Authorizers:      authorizerAddresses,
	}, nil
}

func (tb TransactionBody) Fingerprint() []byte {
	return fingerprint.Fingerprint(struct {
		Payload            interface{}
		PayloadSignatures  interface{}
		EnvelopeSignatures interface{}
	}{
		Payload:            tb.payloadCanonicalForm(),
		PayloadSignatures:  signaturesList(tb.PayloadSignatures).canonicalForm(),
		EnvelopeSignatures: signaturesList(tb.EnvelopeSignatures).canonicalForm(),
	})
}

// ID returns the canonical identifier of this transaction.
func (tb TransactionBody) ID() Identifier {
	return MakeID(tb)
}

// ByteSize returns the overall byte size of the transaction
func (tb TransactionBody) ByteSize() uint {
	size := 0
	size += len(tb.ReferenceBlockID)
	size += len(tb.Script)
	for _, arg := range tb.Arguments {
		size += len(arg)
	}
	size += 8 // gas size
	size += tb.ProposalKey.ByteSize()
	size += AddressLength                       // payer address
	size += len(tb.Authorizers) * AddressLength // Authorizers
	for _, s := range tb.PayloadSignatures {
		size += s.ByteSize()
	}
	for _, s := range tb.EnvelopeSignatures {
		size += s.ByteSize()
	}
	return uint(size)
}

// SetScript sets the Cadence script for this transaction.
func (tb *TransactionBody) SetScript(script []byte) *TransactionBody {
	tb.Script = script
	return tb
}

// SetArguments sets the Cadence arguments list for this transaction.
func (tb *TransactionBody) SetArguments(args [][]byte) *TransactionBody {
	tb.Arguments = args
	return tb
}

// AddArgument adds an argument to the Cadence arguments list for this transaction.
func (tb *TransactionBody) AddArgument(arg []byte) *TransactionBody {
	tb.Arguments = append(tb.Arguments, arg)
	return tb
}

// SetReferenceBlockID sets the reference block ID for this transaction.
func (tb *TransactionBody) SetReferenceBlockID(blockID Identifier) *TransactionBody {
	tb.ReferenceBlockID = blockID
	return tb
}

// SetGasLimit sets the gas limit for this transaction.
func (tb *TransactionBody) SetGasLimit(limit uint64) *TransactionBody {
	tb.GasLimit = limit
	return tb
}

// SetProposalKey sets the proposal key and sequence number for this transaction.
//
// The first two arguments specify the account key to be used, and the last argument is the sequence
// number being declared.
func (tb *TransactionBody) SetProposalKey(address Address, keyIndex uint64, sequenceNum uint64) *TransactionBody {
	proposalKey := ProposalKey{
		Address:        address,
		KeyIndex:       keyIndex,
		SequenceNumber: sequenceNum,
	}
	tb.ProposalKey = proposalKey
	return tb
}

// SetPayer sets the payer account for this transaction.
func (tb *TransactionBody) SetPayer(address Address) *TransactionBody {
	tb.Payer = address
	return tb
}

// AddAuthorizer adds an authorizer account to this transaction.
func (tb *TransactionBody) AddAuthorizer(address Address) *TransactionBody {
	tb.Authorizers = append(tb.Authorizers, address)
	return tb
}

// MissingFields checks if a transaction is missing any required fields and returns those that are missing.
func (tb *TransactionBody) MissingFields() []string {
	// Required fields are Script, ReferenceBlockID, Payer
	missingFields := make([]string, 0)

	if len(tb.Script) == 0 {
		missingFields = append(missingFields, TransactionFieldScript.String())
	}

	if tb.ReferenceBlockID == ZeroID {
		missingFields = append(missingFields, TransactionFieldRefBlockID.String())
	}

	if tb.Payer == EmptyAddress {
		missingFields = append(missingFields, TransactionFieldPayer.String())
	}

	return missingFields
}

// SignPayload signs the transaction payload (TransactionDomainTag + payload) with the specified account key.
//
// The resulting signature is combined with the account address and key index before
// being appended to the payload signature list, preserving signer order.
//
// This function returns an error if the signature cannot be generated.
func (tb *TransactionBody) SignPayload(
	address Address,
	keyIndex uint64,
	privateKey *crypto.PrivateKey,
	hasher hash.Hasher,
) error {
	sig, err := tb.Sign(tb.PayloadMessage(), privateKey, hasher)

	if err != nil {
		return fmt.Errorf("failed to sign transaction payload with given key: %w", err)
	}

	tb.AddPayloadSignature(address, keyIndex, sig)

	return nil
}

// SignEnvelope signs the full transaction (TransactionDomainTag + payload + payload signatures) with the specified account key.
//
// The envelope message commits to the payload signatures already attached,
// by their position in the payload signature list.
//
// This function returns an error if the signature cannot be generated.
func (tb *TransactionBody) SignEnvelope(
	address Address,
	keyIndex uint64,
	privateKey *crypto.PrivateKey,
	hasher hash.Hasher,
) error {
	sig, err := tb.Sign(tb.EnvelopeMessage(), privateKey, hasher)

	if err != nil {
		return fmt.Errorf("failed to sign transaction envelope with given key: %w", err)
	}

	tb.AddEnvelopeSignature(address, keyIndex, sig)

	return nil
}

// Sign signs the data (transaction_tag + message) with the specified private key
// and hasher.
//
// This function returns an error if:
//   - crypto.IsInvalidInputsError if the private key cannot sign with the given hasher
//   - other error if an unexpected error occurs
func (tb *TransactionBody) Sign(
	message []byte,
	privateKey *crypto.PrivateKey,
	hasher hash.Hasher,
) ([]byte, error) {
	message = append(TransactionDomainTag[:], message...)
	sig, err := privateKey.Sign(message, hasher)
	if err != nil {
		return nil, fmt.Errorf("failed to sign message with given key: %w", err)
	}

	return sig, nil
}

// AddPayloadSignature adds a payload signature to the transaction for the given address and key index.
func (tb *TransactionBody) AddPayloadSignature(address Address, keyIndex uint64, sig []byte) *TransactionBody {
	tb.PayloadSignatures = append(tb.PayloadSignatures, TransactionSignature{
		Address:   address,
		KeyIndex:  keyIndex,
		Signature: sig,
	})
	return tb
}

// AddEnvelopeSignature adds an envelope signature to the transaction for the given address and key index.
func (tb *TransactionBody) AddEnvelopeSignature(address Address, keyIndex uint64, sig []byte) *TransactionBody {
	tb.EnvelopeSignatures = append(tb.EnvelopeSignatures, TransactionSignature{
		Address:   address,
		KeyIndex:  keyIndex,
		Signature: sig,
	})
	return tb
}

// PayloadMessage returns the signable message for the transaction payload.
func (tb *TransactionBody) PayloadMessage() []byte {
	return fingerprint.Fingerprint(tb.payloadCanonicalForm())
}

func (tb *TransactionBody) payloadCanonicalForm() interface{} {
	authorizers := make([][]byte, len(tb.Authorizers))
	for i, auth := range tb.Authorizers {
		authorizers[i] = auth.Bytes()
	}

	return struct {
		Script                    []byte
		Arguments                 [][]byte
		ReferenceBlockID          []byte
		GasLimit                  uint64
		ProposalKeyAddress        []byte
		ProposalKeyIndex          uint64
		ProposalKeySequenceNumber uint64
		Payer                     []byte
		Authorizers               [][]byte
	}{
		Script:                    tb.Script,
		Arguments:                 tb.Arguments,
		ReferenceBlockID:          tb.ReferenceBlockID[:],
		GasLimit:                  tb.GasLimit,
		ProposalKeyAddress:        tb.ProposalKey.Address.Bytes(),
		ProposalKeyIndex:          tb.ProposalKey.KeyIndex,
		ProposalKeySequenceNumber: tb.ProposalKey.SequenceNumber,
		Payer:                     tb.Payer.Bytes(),
		Authorizers:               authorizers,
	}
}

// EnvelopeMessage returns the signable message for the transaction envelope.
//
// This message is only signed by the payer account.
func (tb *TransactionBody) EnvelopeMessage() []byte {
	return fingerprint.Fingerprint(tb.envelopeCanonicalForm())
}

func (tb *TransactionBody) envelopeCanonicalForm() interface{} {
	return struct {
		Payload           interface{}
		PayloadSignatures interface{}
	}{
		tb.payloadCanonicalForm(),
		signaturesList(tb.PayloadSignatures).canonicalForm(),
	}
}

// TransactionField represents a required transaction field.
type TransactionField int

const (
	TransactionFieldUnknown TransactionField = iota
	TransactionFieldScript
	TransactionFieldRefBlockID
	TransactionFieldPayer
)

// String returns the string representation of a transaction field.
func (f TransactionField) String() string {
	return [...]string{"Unknown", "Script", "ReferenceBlockID", "Payer"}[f]
}

// A ProposalKey is the key that specifies the proposal key and sequence number for a transaction.
type ProposalKey struct {
	Address        Address
	KeyIndex       uint64
	SequenceNumber uint64
}

// ByteSize returns the byte size of the proposal key
func (p ProposalKey) ByteSize() int {
	keyIndexLen := 8
	sequenceNumberLen := 8
	return len(p.Address) + keyIndexLen + sequenceNumberLen
}

// A TransactionSignature is a signature associated with a specific account key.
type TransactionSignature struct {
	Address   Address
	KeyIndex  uint64
	Signature []byte
}

// String returns the string representation of a transaction signature.
func (s TransactionSignature) String() string {
	return fmt.Sprintf("Address: %s. KeyIndex: %d. Signature: %x",
		s.Address, s.KeyIndex, s.Signature)
}

// ByteSize returns the byte size of the transaction signature
func (s TransactionSignature) ByteSize() int {
	signerIndexLen := 8
	keyIndexLen := 8
	return len(s.Address) + signerIndexLen + keyIndexLen + len(s.Signature)
}

// canonicalForm returns the signature triple as encoded inside the envelope.
//
// The first element is the position of the signature in the payload
// signature list, not the account key index. Envelope signing reuses exactly
// the ordering fixed at payload signing time.
func (s TransactionSignature) canonicalForm(signerIndex uint) interface{} {
	return struct {
		SignerIndex uint
		KeyIndex    uint
		Signature   []byte
	}{
		SignerIndex: signerIndex,
		KeyIndex:    uint(s.KeyIndex), // int is not RLP-serializable
		Signature:   s.Signature,
	}
}

type signaturesList []TransactionSignature

func (s signaturesList) canonicalForm() interface{} {
	signatures := make([]interface{}, len(s))

	for i, signature := range s {
		signatures[i] = signature.canonicalForm(uint(i))
	}

	return signatures
}
