// Package client implements a GRPC client to the Flow access API.
//
// The client is a thin collaborator around the transaction core: it fetches
// reference block IDs and account sequence numbers, submits signed
// transactions and polls their results. Query-side responses (accounts,
// blocks, events, collections) are returned as access API messages.
package client

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/onflow/flow/protobuf/go/flow/access"
	"github.com/onflow/flow/protobuf/go/flow/entities"

	"github.com/onflow/flow-client-go/model/flow"
)

// Client is a Flow user agent client.
type Client struct {
	rpcClient access.AccessAPIClient
	log       zerolog.Logger
	close     func() error
}

// Option configures a Client.
type Option func(*Client)

// WithLogger attaches a logger to the client. The default is a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New initializes a Flow client with the default gRPC provider.
//
// An error will be returned if the host is unreachable.
func New(addr string, opts ...Option) (*Client, error) {
	conn, err := grpc.Dial(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("could not dial access node %s: %w", addr, err)
	}

	grpcClient := access.NewAccessAPIClient(conn)

	client := &Client{
		rpcClient: grpcClient,
		log:       zerolog.Nop(),
		close:     func() error { return conn.Close() },
	}

	for _, opt := range opts {
		opt(client)
	}

	client.log = client.log.With().Str("component", "access_client").Logger()

	return client, nil
}

// Close closes the client connection.
func (c *Client) Close() error {
	return c.close()
}

// Ping tests the connection to the access API.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.rpcClient.Ping(ctx, &access.PingRequest{})
	return err
}

// GetAccount returns the account with the given hex address, at the latest
// sealed block.
func (c *Client) GetAccount(ctx context.Context, address string) (*entities.Account, error) {
	addr, err := flow.HexToAddress(address)
	if err != nil {
		return nil, err
	}

	res, err := c.rpcClient.GetAccountAtLatestBlock(ctx, &access.GetAccountAtLatestBlockRequest{
		Address: addr.Bytes(),
	})
	if err != nil {
		return nil, fmt.Errorf("could not get account %s: %w", addr, err)
	}

	return res.GetAccount(), nil
}

// GetSequenceNumber returns the current sequence number of the given account
// key, as required for the proposal key of a new transaction.
func (c *Client) GetSequenceNumber(ctx context.Context, address string, keyIndex uint64) (uint64, error) {
	account, err := c.GetAccount(ctx, address)
	if err != nil {
		return 0, err
	}

	for _, key := range account.GetKeys() {
		if uint64(key.GetIndex()) == keyIndex {
			return uint64(key.GetSequenceNumber()), nil
		}
	}

	return 0, fmt.Errorf("account %s has no key with index %d", address, keyIndex)
}

// ExecuteScript executes a read-only script against the latest sealed world
// state. Arguments are pre-encoded JSON-Cadence value blobs.
func (c *Client) ExecuteScript(ctx context.Context, script []byte, arguments [][]byte) ([]byte, error) {
	res, err := c.rpcClient.ExecuteScriptAtLatestBlock(ctx, &access.ExecuteScriptAtLatestBlockRequest{
		Script:    script,
		Arguments: arguments,
	})
	if err != nil {
		return nil, fmt.Errorf("could not execute script: %w", err)
	}

	return res.GetValue(), nil
}

// ExecuteScriptAtBlockID executes a script against the state of a specific
// block.
func (c *Client) ExecuteScriptAtBlockID(ctx context.Context, blockID flow.Identifier, script []byte, arguments [][]byte) ([]byte, error) {
	res, err := c.rpcClient.ExecuteScriptAtBlockID(ctx, &access.ExecuteScriptAtBlockIDRequest{
		BlockId:   blockID.Bytes(),
		Script:    script,
		Arguments: arguments,
	})
	if err != nil {
		return nil, fmt.Errorf("could not execute script at block %s: %w", blockID, err)
	}

	return res.GetValue(), nil
}

// ExecuteScriptAtBlockHeight executes a script against the state of the
// block at the given height.
func (c *Client) ExecuteScriptAtBlockHeight(ctx context.Context, height uint64, script []byte, arguments [][]byte) ([]byte, error) {
	res, err := c.rpcClient.ExecuteScriptAtBlockHeight(ctx, &access.ExecuteScriptAtBlockHeightRequest{
		BlockHeight: height,
		Script:      script,
		Arguments:   arguments,
	})
	if err != nil {
		return nil, fmt.Errorf("could not execute script at height %d: %w", height, err)
	}

	return res.GetValue(), nil
}

// GetLatestBlock returns the latest finalized or sealed block.
func (c *Client) GetLatestBlock(ctx context.Context, isSealed bool) (*entities.Block, error) {
	res, err := c.rpcClient.GetLatestBlock(ctx, &access.GetLatestBlockRequest{
		IsSealed: isSealed,
	})
	if err != nil {
		return nil, fmt.Errorf("could not get latest block: %w", err)
	}

	return res.GetBlock(), nil
}

// GetBlockByID returns the block with the given ID.
func (c *Client) GetBlockByID(ctx context.Context, blockID flow.Identifier) (*entities.Block, error) {
	res, err := c.rpcClient.GetBlockByID(ctx, &access.GetBlockByIDRequest{
		Id: blockID.Bytes(),
	})
	if err != nil {
		return nil, fmt.Errorf("could not get block %s: %w", blockID, err)
	}

	return res.GetBlock(), nil
}

// GetBlockByHeight returns the block at the given height.
func (c *Client) GetBlockByHeight(ctx context.Context, height uint64) (*entities.Block, error) {
	res, err := c.rpcClient.GetBlockByHeight(ctx, &access.GetBlockByHeightRequest{
		Height: height,
	})
	if err != nil {
		return nil, fmt.Errorf("could not get block at height %d: %w", height, err)
	}

	return res.GetBlock(), nil
}

// LatestBlockID returns the ID of the latest block, for use as the
// reference block of a new transaction.
func (c *Client) LatestBlockID(ctx context.Context) (flow.Identifier, error) {
	block, err := c.GetLatestBlock(ctx, false)
	if err != nil {
		return flow.ZeroID, err
	}

	blockID, err := flow.BytesToIdentifier(block.GetId())
	if err != nil {
		return flow.ZeroID, fmt.Errorf("could not convert block ID: %w", err)
	}

	return blockID, nil
}

// SendTransaction submits a signed transaction to the network and returns
// the transaction ID assigned by the access node.
func (c *Client) SendTransaction(ctx context.Context, tb flow.TransactionBody) (flow.Identifier, error) {
	txMsg := TransactionToMessage(tb)

	res, err := c.rpcClient.SendTransaction(ctx, &access.SendTransactionRequest{
		Transaction: txMsg,
	})
	if err != nil {
		return flow.ZeroID, fmt.Errorf("could not send transaction: %w", err)
	}

	txID, err := flow.BytesToIdentifier(res.GetId())
	if err != nil {
		return flow.ZeroID, fmt.Errorf("could not convert transaction ID: %w", err)
	}

	c.log.Debug().
		Hex("tx_id", txID.Bytes()).
		Str("payer", tb.Payer.Hex()).
		Msg("transaction submitted")

	return txID, nil
}

// GetTransactionResult returns the current result of the transaction with
// the given ID.
func (c *Client) GetTransactionResult(ctx context.Context, txID flow.Identifier) (*flow.TransactionResult, error) {
	res, err := c.rpcClient.GetTransactionResult(ctx, &access.GetTransactionRequest{
		Id: txID.Bytes(),
	})
	if err != nil {
		return nil, fmt.Errorf("could not get result of transaction %s: %w", txID, err)
	}

	result, err := MessageToTransactionResult(res)
	if err != nil {
		return nil, err
	}
	result.TransactionID = txID

	return result, nil
}

// GetEventsForHeightRange returns events of the given type emitted in the
// given block height range, inclusive on both ends.
func (c *Client) GetEventsForHeightRange(ctx context.Context, eventType string, startHeight, endHeight uint64) ([]*access.EventsResponse_Result, error) {
	res, err := c.rpcClient.GetEventsForHeightRange(ctx, &access.GetEventsForHeightRangeRequest{
		Type:        eventType,
		StartHeight: startHeight,
		EndHeight:   endHeight,
	})
	if err != nil {
		return nil, fmt.Errorf("could not get events %s for heights [%d, %d]: %w", eventType, startHeight, endHeight, err)
	}

	return res.GetResults(), nil
}

// GetEventsForBlockIDs returns events of the given type emitted in the given
// blocks.
func (c *Client) GetEventsForBlockIDs(ctx context.Context, eventType string, blockIDs []flow.Identifier) ([]*access.EventsResponse_Result, error) {
	ids := make([][]byte, len(blockIDs))
	for i, blockID := range blockIDs {
		ids[i] = blockID.Bytes()
	}

	res, err := c.rpcClient.GetEventsForBlockIDs(ctx, &access.GetEventsForBlockIDsRequest{
		Type:     eventType,
		BlockIds: ids,
	})
	if err != nil {
		return nil, fmt.Errorf("could not get events %s for block IDs: %w", eventType, err)
	}

	return res.GetResults(), nil
}

// GetCollection returns the collection with the given ID.
func (c *Client) GetCollection(ctx context.Context, collectionID flow.Identifier) (*entities.Collection, error) {
	res, err := c.rpcClient.GetCollectionByID(ctx, &access.GetCollectionByIDRequest{
		Id: collectionID.Bytes(),
	})
	if err != nil {
		return nil, fmt.Errorf("could not get collection %s: %w", collectionID, err)
	}

	return res.GetCollection(), nil
}
