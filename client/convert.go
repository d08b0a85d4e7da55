package client

import (
	"fmt"

	"github.com/onflow/flow/protobuf/go/flow/access"
	"github.com/onflow/flow/protobuf/go/flow/entities"

	"github.com/onflow/flow-client-go/model/flow"
)

// TransactionToMessage converts a flow.TransactionBody to a protobuf message.
//
// Signature lists keep their order; the network verifies the envelope
// against the payload signature positions as submitted.
func TransactionToMessage(tb flow.TransactionBody) *entities.Transaction {
	proposalKeyMessage := &entities.Transaction_ProposalKey{
		Address:        tb.ProposalKey.Address.Bytes(),
		KeyId:          uint32(tb.ProposalKey.KeyIndex),
		SequenceNumber: tb.ProposalKey.SequenceNumber,
	}

	authMessages := make([][]byte, len(tb.Authorizers))
	for i, auth := range tb.Authorizers {
		authMessages[i] = auth.Bytes()
	}

	payloadSigMessages := make([]*entities.Transaction_Signature, len(tb.PayloadSignatures))
	for i, sig := range tb.PayloadSignatures {
		payloadSigMessages[i] = &entities.Transaction_Signature{
			Address:   sig.Address.Bytes(),
			KeyId:     uint32(sig.KeyIndex),
			Signature: sig.Signature,
		}
	}

	envelopeSigMessages := make([]*entities.Transaction_Signature, len(tb.EnvelopeSignatures))
	for i, sig := range tb.EnvelopeSignatures {
		envelopeSigMessages[i] = &entities.Transaction_Signature{
			Address:   sig.Address.Bytes(),
			KeyId:     uint32(sig.KeyIndex),
			Signature: sig.Signature,
		}
	}

	return &entities.Transaction{
		Script:             tb.Script,
		Arguments:          tb.Arguments,
		ReferenceBlockId:   tb.ReferenceBlockID[:],
		GasLimit:           tb.GasLimit,
		ProposalKey:        proposalKeyMessage,
		Payer:              tb.Payer.Bytes(),
		Authorizers:        authMessages,
		PayloadSignatures:  payloadSigMessages,
		EnvelopeSignatures: envelopeSigMessages,
	}
}

// MessageToTransaction converts a protobuf message to a flow.TransactionBody.
func MessageToTransaction(m *entities.Transaction) (flow.TransactionBody, error) {
	var tb flow.TransactionBody
	if m == nil {
		return tb, fmt.Errorf("transaction message is empty")
	}

	proposalKey := m.GetProposalKey()
	if proposalKey != nil {
		proposalAddress, err := flow.BytesToAddress(proposalKey.GetAddress())
		if err != nil {
			return tb, fmt.Errorf("could not convert proposer address: %w", err)
		}
		tb.SetProposalKey(proposalAddress, uint64(proposalKey.GetKeyId()), proposalKey.GetSequenceNumber())
	}

	payer, err := flow.BytesToAddress(m.GetPayer())
	if err != nil {
		return tb, fmt.Errorf("could not convert payer address: %w", err)
	}
	tb.SetPayer(payer)

	for i, authorizer := range m.GetAuthorizers() {
		authorizerAddress, err := flow.BytesToAddress(authorizer)
		if err != nil {
			return tb, fmt.Errorf("could not convert authorizer %d address: %w", i, err)
		}
		tb.AddAuthorizer(authorizerAddress)
	}

	for i, sig := range m.GetPayloadSignatures() {
		addr, err := flow.BytesToAddress(sig.GetAddress())
		if err != nil {
			return tb, fmt.Errorf("could not convert payload signature %d address: %w", i, err)
		}
		tb.AddPayloadSignature(addr, uint64(sig.GetKeyId()), sig.GetSignature())
	}

	for i, sig := range m.GetEnvelopeSignatures() {
		addr, err := flow.BytesToAddress(sig.GetAddress())
		if err != nil {
			return tb, fmt.Errorf("could not convert envelope signature %d address: %w", i, err)
		}
		tb.AddEnvelopeSignature(addr, uint64(sig.GetKeyId()), sig.GetSignature())
	}

	refBlockID, err := flow.BytesToIdentifier(m.GetReferenceBlockId())
	if err != nil {
		return tb, fmt.Errorf("could not convert reference block ID: %w", err)
	}

	tb.SetScript(m.GetScript()).
		SetArguments(m.GetArguments()).
		SetReferenceBlockID(refBlockID).
		SetGasLimit(m.GetGasLimit())

	return tb, nil
}

// MessageToTransactionResult converts a transaction result response to its
// model form.
func MessageToTransactionResult(m *access.TransactionResultResponse) (*flow.TransactionResult, error) {
	if m == nil {
		return nil, fmt.Errorf("transaction result message is empty")
	}

	blockID, err := flow.BytesToIdentifier(m.GetBlockId())
	if err != nil {
		return nil, fmt.Errorf("could not convert block ID: %w", err)
	}

	events, err := MessagesToEvents(m.GetEvents())
	if err != nil {
		return nil, fmt.Errorf("could not convert events: %w", err)
	}

	return &flow.TransactionResult{
		Status:       flow.TransactionStatus(m.GetStatus()),
		StatusCode:   uint(m.GetStatusCode()),
		ErrorMessage: m.GetErrorMessage(),
		BlockID:      blockID,
		Events:       events,
	}, nil
}

// MessageToEvent converts a protobuf event to its model form.
func MessageToEvent(m *entities.Event) (flow.Event, error) {
	txID, err := flow.BytesToIdentifier(m.GetTransactionId())
	if err != nil {
		return flow.Event{}, fmt.Errorf("could not convert transaction ID: %w", err)
	}

	return flow.Event{
		Type:          m.GetType(),
		TransactionID: txID,
		EventIndex:    m.GetEventIndex(),
		Payload:       m.GetPayload(),
	}, nil
}

// MessagesToEvents converts a slice of protobuf events to their model form.
func MessagesToEvents(messages []*entities.Event) ([]flow.Event, error) {
	events := make([]flow.Event, len(messages))
	for i, m := range messages {
		event, err := MessageToEvent(m)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		events[i] = event
	}
	return events, nil
}
