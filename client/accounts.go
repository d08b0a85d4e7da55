package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/onflow/flow-client-go/model/cadence"
	"github.com/onflow/flow-client-go/model/flow"
	"github.com/onflow/flow-client-go/templates"
)

const defaultGasLimit = 1000

// accountCreatedEventType is emitted by the service when a new account is
// created; its first field carries the new address.
const accountCreatedEventType = "flow.AccountCreated"

// CreateAccount submits a transaction that creates a new account with the
// given keys and contracts, paid for and authorized by the payer credential,
// waits for it to seal, and returns the address of the created account.
func (c *Client) CreateAccount(
	ctx context.Context,
	keys []templates.AccountKey,
	contracts []cadence.KeyValuePair,
	payer flow.Credential,
) (flow.Address, error) {
	script, args := templates.CreateAccount(keys, contracts)

	result, err := c.submitAsPayer(ctx, script, args, payer, true)
	if err != nil {
		return flow.EmptyAddress, err
	}

	for _, event := range result.Events {
		if event.Type != accountCreatedEventType {
			continue
		}
		address, err := addressFromAccountCreatedEvent(event.Payload)
		if err != nil {
			return flow.EmptyAddress, fmt.Errorf("could not extract created address: %w", err)
		}
		return address, nil
	}

	return flow.EmptyAddress, fmt.Errorf("transaction %s sealed without a %s event", result.TransactionID, accountCreatedEventType)
}

// AddAccountKey submits a transaction that adds the given key to the payer
// account and returns the transaction ID without waiting for a seal.
func (c *Client) AddAccountKey(ctx context.Context, key templates.AccountKey, payer flow.Credential) (flow.Identifier, error) {
	script, args := templates.AddAccountKey(key)
	result, err := c.submitAsPayer(ctx, script, args, payer, false)
	if err != nil {
		return flow.ZeroID, err
	}
	return result.TransactionID, nil
}

// RemoveAccountKey submits a transaction that removes the key with the given
// index from the payer account.
func (c *Client) RemoveAccountKey(ctx context.Context, keyIndex uint64, payer flow.Credential) (flow.Identifier, error) {
	script, args := templates.RemoveAccountKey(keyIndex)
	result, err := c.submitAsPayer(ctx, script, args, payer, false)
	if err != nil {
		return flow.ZeroID, err
	}
	return result.TransactionID, nil
}

// AddContract submits a transaction that deploys the named contract to the
// payer account.
func (c *Client) AddContract(ctx context.Context, name, code string, payer flow.Credential) (flow.Identifier, error) {
	script, args := templates.AddContract(name, code)
	result, err := c.submitAsPayer(ctx, script, args, payer, false)
	if err != nil {
		return flow.ZeroID, err
	}
	return result.TransactionID, nil
}

// UpdateContract submits a transaction that replaces the named contract on
// the payer account.
func (c *Client) UpdateContract(ctx context.Context, name, code string, payer flow.Credential) (flow.Identifier, error) {
	script, args := templates.UpdateContract(name, code)
	result, err := c.submitAsPayer(ctx, script, args, payer, false)
	if err != nil {
		return flow.ZeroID, err
	}
	return result.TransactionID, nil
}

// RemoveContract submits a transaction that removes the named contract from
// the payer account.
func (c *Client) RemoveContract(ctx context.Context, name string, payer flow.Credential) (flow.Identifier, error) {
	script, args := templates.RemoveContract(name)
	result, err := c.submitAsPayer(ctx, script, args, payer, false)
	if err != nil {
		return flow.ZeroID, err
	}
	return result.TransactionID, nil
}

// submitAsPayer builds a transaction with the payer as proposer, sole
// authorizer and fee payer, signs the envelope with the payer credential and
// submits it. When wait is set the returned result is the sealed result;
// otherwise only the transaction ID is populated.
func (c *Client) submitAsPayer(
	ctx context.Context,
	script []byte,
	arguments [][]byte,
	payer flow.Credential,
	wait bool,
) (*flow.TransactionResult, error) {
	payerAddress, err := flow.HexToAddress(payer.Address)
	if err != nil {
		return nil, err
	}

	referenceBlockID, err := c.LatestBlockID(ctx)
	if err != nil {
		return nil, err
	}

	sequenceNumber, err := c.GetSequenceNumber(ctx, payer.Address, payer.KeyIndex)
	if err != nil {
		return nil, err
	}

	tb, err := flow.BuildTransaction(
		script,
		arguments,
		referenceBlockID,
		defaultGasLimit,
		flow.ProposalKey{
			Address:        payerAddress,
			KeyIndex:       payer.KeyIndex,
			SequenceNumber: sequenceNumber,
		},
		[]string{payer.Address},
		payer.Address,
	)
	if err != nil {
		return nil, fmt.Errorf("could not build transaction: %w", err)
	}

	// the payer is proposer, authorizer and payer in one, so a single
	// envelope signature carries all roles
	err = flow.SignTransaction(tb, nil, []flow.Credential{payer})
	if err != nil {
		return nil, err
	}

	txID, err := c.SendTransaction(ctx, *tb)
	if err != nil {
		return nil, err
	}

	if !wait {
		return &flow.TransactionResult{TransactionID: txID}, nil
	}

	return c.WaitForSeal(ctx, txID)
}

// accountCreatedEvent mirrors the JSON-Cadence shape of a flow.AccountCreated
// event payload, down to the address field.
type accountCreatedEvent struct {
	Value struct {
		Fields []struct {
			Name  string `json:"name"`
			Value struct {
				Value string `json:"value"`
			} `json:"value"`
		} `json:"fields"`
	} `json:"value"`
}

func addressFromAccountCreatedEvent(payload []byte) (flow.Address, error) {
	var event accountCreatedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return flow.EmptyAddress, fmt.Errorf("could not decode event payload: %w", err)
	}

	if len(event.Value.Fields) == 0 {
		return flow.EmptyAddress, fmt.Errorf("event payload has no fields")
	}

	return flow.HexToAddress(strings.TrimPrefix(event.Value.Fields[0].Value.Value, "0x"))
}
