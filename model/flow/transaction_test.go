package flow_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flow-client-go/crypto"
	"github.com/onflow/flow-client-go/crypto/hash"
	"github.com/onflow/flow-client-go/model/encoding/rlp"
	"github.com/onflow/flow-client-go/model/flow"
)

const (
	testRefBlockHex = "f0e4c2f76c58916ec258f246851bea091d14d4247a2fc3e18694461b1816e13b"

	testKeyHexA = "0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20"
	testKeyHexB = "2e0d7d2934e69dee3e6c2e2ab4f57f25c64efc06bbd7e7cbd3fa6bbef047c34d"
)

// payloadWrapper mirrors the 9-element canonical payload list.
type payloadWrapper struct {
	Script           []byte
	Arguments        [][]byte
	ReferenceBlockID []byte
	GasLimit         uint64
	ProposerAddress  []byte
	ProposerKeyIndex uint64
	ProposerSeqNum   uint64
	Payer            []byte
	Authorizers      [][]byte
}

// sigWrapper mirrors a signature triple inside the envelope.
type sigWrapper struct {
	SignerIndex uint
	KeyIndex    uint
	Signature   []byte
}

// envelopeWrapper mirrors the 2-element canonical envelope list.
type envelopeWrapper struct {
	Payload           payloadWrapper
	PayloadSignatures []sigWrapper
}

func referenceTransaction(t *testing.T) *flow.TransactionBody {
	t.Helper()

	refBlockID, err := flow.HexStringToIdentifier(testRefBlockHex)
	require.NoError(t, err)

	proposer, err := flow.HexToAddress("01")
	require.NoError(t, err)

	tb, err := flow.BuildTransaction(
		[]byte("transaction {}"),
		nil,
		refBlockID,
		42,
		flow.ProposalKey{
			Address:        proposer,
			KeyIndex:       4,
			SequenceNumber: 10,
		},
		nil,
		"01",
	)
	require.NoError(t, err)

	return tb
}

func TestPayloadMessageReferenceVector(t *testing.T) {
	// hand-computed RLP of the canonical payload list:
	//   "transaction {}", [], refBlock, 42, 00..01, 4, 10, 00..01, []
	const expected = "f8478e7472616e73616374696f6e207b7dc0" +
		"a0f0e4c2f76c58916ec258f246851bea091d14d4247a2fc3e18694461b1816e13b" +
		"2a880000000000000001040a880000000000000001c0"

	tb := referenceTransaction(t)
	assert.Equal(t, expected, hex.EncodeToString(tb.PayloadMessage()))
}

func TestPayloadMessageDeterministic(t *testing.T) {
	tb := referenceTransaction(t)
	assert.Equal(t, tb.PayloadMessage(), tb.PayloadMessage())
	assert.Equal(t, tb.EnvelopeMessage(), tb.EnvelopeMessage())
	assert.Equal(t, tb.ID(), tb.ID())
}

func TestPayloadMessageRoundTrip(t *testing.T) {
	tb := referenceTransaction(t)
	tb.AddArgument([]byte(`{"type":"String","value":"hello"}`))

	authorizer, err := flow.HexToAddress("f8d6e0586b0a20c7")
	require.NoError(t, err)
	tb.AddAuthorizer(authorizer)

	var decoded payloadWrapper
	rlp.NewEncoder().MustDecode(tb.PayloadMessage(), &decoded)

	assert.Equal(t, tb.Script, decoded.Script)
	assert.Equal(t, tb.Arguments, decoded.Arguments)
	assert.Equal(t, tb.ReferenceBlockID.Bytes(), decoded.ReferenceBlockID)
	assert.Equal(t, uint64(42), decoded.GasLimit)
	assert.Equal(t, tb.ProposalKey.Address.Bytes(), decoded.ProposerAddress)
	assert.Equal(t, uint64(4), decoded.ProposerKeyIndex)
	assert.Equal(t, uint64(10), decoded.ProposerSeqNum)
	assert.Equal(t, tb.Payer.Bytes(), decoded.Payer)
	assert.Equal(t, [][]byte{authorizer.Bytes()}, decoded.Authorizers)
}

func TestEnvelopeUsesPositionalSignerIndices(t *testing.T) {
	tb := referenceTransaction(t)

	// key indices deliberately far from the positional indices
	signers := []flow.Credential{
		{Address: "01", KeyIndex: 7, PrivateKey: testKeyHexA},
		{Address: "f8d6e0586b0a20c7", KeyIndex: 3, PrivateKey: testKeyHexB},
	}

	err := flow.SignTransaction(tb, signers, nil)
	require.NoError(t, err)
	require.Len(t, tb.PayloadSignatures, 2)

	var decoded envelopeWrapper
	rlp.NewEncoder().MustDecode(tb.EnvelopeMessage(), &decoded)

	require.Len(t, decoded.PayloadSignatures, 2)
	for i, sig := range decoded.PayloadSignatures {
		assert.Equal(t, uint(i), sig.SignerIndex)
		assert.Equal(t, uint(signers[i].KeyIndex), sig.KeyIndex)
		assert.Equal(t, tb.PayloadSignatures[i].Signature, sig.Signature)
	}
}

func TestEnvelopeOrderSensitivity(t *testing.T) {
	signerA := flow.Credential{Address: "01", KeyIndex: 0, PrivateKey: testKeyHexA}
	signerB := flow.Credential{Address: "02", KeyIndex: 0, PrivateKey: testKeyHexB}

	txAB := referenceTransaction(t)
	require.NoError(t, flow.SignTransaction(txAB, []flow.Credential{signerA, signerB}, nil))

	txBA := referenceTransaction(t)
	require.NoError(t, flow.SignTransaction(txBA, []flow.Credential{signerB, signerA}, nil))

	// payload bytes are unaffected by signatures, the envelope commits to
	// signer order
	assert.Equal(t, txAB.PayloadMessage(), txBA.PayloadMessage())
	assert.NotEqual(t, txAB.EnvelopeMessage(), txBA.EnvelopeMessage())
}

func TestSignTransaction(t *testing.T) {
	signer := flow.Credential{Address: "01", KeyIndex: 4, PrivateKey: testKeyHexA}

	tb := referenceTransaction(t)
	tb.AddArgument([]byte(`{"type":"UInt64","value":"7"}`))

	err := flow.SignTransaction(tb, []flow.Credential{signer}, []flow.Credential{signer})
	require.NoError(t, err)

	require.Len(t, tb.PayloadSignatures, 1)
	require.Len(t, tb.EnvelopeSignatures, 1)
	assert.Equal(t, uint64(4), tb.PayloadSignatures[0].KeyIndex)
	assert.Equal(t, tb.ProposalKey.Address, tb.PayloadSignatures[0].Address)

	// the envelope signature must verify over the domain-tagged envelope
	// message as committed after payload signing
	privateKey, err := crypto.DecodePrivateKeyHex(testKeyHexA)
	require.NoError(t, err)

	message := append(flow.TransactionDomainTag[:], tb.EnvelopeMessage()...)
	valid, err := privateKey.PublicKey().Verify(tb.EnvelopeSignatures[0].Signature, message, hash.NewSHA3_256())
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestSignTransactionEmptyPayloadSigners(t *testing.T) {
	signer := flow.Credential{Address: "01", KeyIndex: 0, PrivateKey: testKeyHexA}

	tb := referenceTransaction(t)
	err := flow.SignTransaction(tb, nil, []flow.Credential{signer})
	require.NoError(t, err)

	assert.Empty(t, tb.PayloadSignatures)
	assert.Len(t, tb.EnvelopeSignatures, 1)
}

func TestSignTransactionAtomicOnFailure(t *testing.T) {
	good := flow.Credential{Address: "01", KeyIndex: 0, PrivateKey: testKeyHexA}
	badKey := flow.Credential{Address: "01", KeyIndex: 0, PrivateKey: "zz-not-hex"}
	badAddress := flow.Credential{Address: "not-an-address", KeyIndex: 0, PrivateKey: testKeyHexA}

	t.Run("malformed private key", func(t *testing.T) {
		tb := referenceTransaction(t)
		err := flow.SignTransaction(tb, []flow.Credential{good}, []flow.Credential{badKey})
		require.Error(t, err)
		assert.True(t, crypto.IsInvalidInputsError(err))
		assert.Empty(t, tb.PayloadSignatures)
		assert.Empty(t, tb.EnvelopeSignatures)
	})

	t.Run("malformed address", func(t *testing.T) {
		tb := referenceTransaction(t)
		err := flow.SignTransaction(tb, []flow.Credential{badAddress}, nil)
		require.Error(t, err)
		assert.True(t, flow.IsDecodeError(err))
		assert.Empty(t, tb.PayloadSignatures)
	})
}

func TestBuildTransactionDecodeErrors(t *testing.T) {
	refBlockID, err := flow.HexStringToIdentifier(testRefBlockHex)
	require.NoError(t, err)

	_, err = flow.BuildTransaction(nil, nil, refBlockID, 0, flow.ProposalKey{}, nil, "not-hex")
	require.Error(t, err)
	assert.True(t, flow.IsDecodeError(err))

	_, err = flow.BuildTransaction(nil, nil, refBlockID, 0, flow.ProposalKey{}, []string{"01", "xx--"}, "01")
	require.Error(t, err)
	assert.True(t, flow.IsDecodeError(err))
}

func TestTransactionDomainTag(t *testing.T) {
	tag := flow.TransactionDomainTag[:]
	require.Len(t, tag, 32)
	assert.Equal(t, []byte("FLOW-V0.0-transaction"), tag[:21])
	for _, b := range tag[21:] {
		assert.Zero(t, b)
	}
}
