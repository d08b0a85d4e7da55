package client

import (
	"context"
	"fmt"
	"testing"

	"github.com/onflow/flow/protobuf/go/flow/access"
	"github.com/onflow/flow/protobuf/go/flow/entities"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/onflow/flow-client-go/model/flow"
)

// stubAccessAPI serves a scripted sequence of transaction result responses.
// The last response is repeated once the sequence is exhausted.
type stubAccessAPI struct {
	access.AccessAPIClient

	responses []*access.TransactionResultResponse
	calls     int
}

func (s *stubAccessAPI) GetTransactionResult(ctx context.Context, in *access.GetTransactionRequest, opts ...grpc.CallOption) (*access.TransactionResultResponse, error) {
	i := s.calls
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	s.calls++
	return s.responses[i], nil
}

func stubClient(responses ...*access.TransactionResultResponse) (*Client, *stubAccessAPI) {
	stub := &stubAccessAPI{responses: responses}
	return &Client{rpcClient: stub, log: zerolog.Nop()}, stub
}

func resultResponse(status entities.TransactionStatus, statusCode uint32, errorMessage string) *access.TransactionResultResponse {
	return &access.TransactionResultResponse{
		Status:       status,
		StatusCode:   statusCode,
		ErrorMessage: errorMessage,
	}
}

func TestWaitForSealSealed(t *testing.T) {
	c, stub := stubClient(
		resultResponse(entities.TransactionStatus_SEALED, 0, ""),
	)

	result, err := c.WaitForSeal(context.Background(), flow.ZeroID)
	require.NoError(t, err)
	assert.Equal(t, flow.TransactionStatusSealed, result.Status)
	assert.True(t, result.Executed())
	assert.Equal(t, 1, stub.calls)
}

func TestWaitForSealPollsUntilSealed(t *testing.T) {
	c, stub := stubClient(
		resultResponse(entities.TransactionStatus_PENDING, 0, ""),
		resultResponse(entities.TransactionStatus_EXECUTED, 0, ""),
		resultResponse(entities.TransactionStatus_SEALED, 0, ""),
	)

	result, err := c.WaitForSeal(context.Background(), flow.ZeroID)
	require.NoError(t, err)
	assert.Equal(t, flow.TransactionStatusSealed, result.Status)
	assert.Equal(t, 3, stub.calls)
}

func TestWaitForSealExecutionError(t *testing.T) {
	c, _ := stubClient(
		resultResponse(entities.TransactionStatus_SEALED, 1, "panic: assertion failed"),
	)

	result, err := c.WaitForSeal(context.Background(), flow.ZeroID)
	require.Error(t, err)
	assert.True(t, IsExecutionError(err))

	var execErr ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, uint(1), execErr.StatusCode)
	assert.Equal(t, "panic: assertion failed", execErr.Message)

	// the sealed result is still returned alongside the error
	require.NotNil(t, result)
	assert.False(t, result.Executed())
}

func TestWaitForSealExpired(t *testing.T) {
	c, _ := stubClient(
		resultResponse(entities.TransactionStatus_EXPIRED, 0, ""),
	)

	_, err := c.WaitForSeal(context.Background(), flow.ZeroID)
	require.Error(t, err)
	assert.False(t, IsExecutionError(err))
	assert.Contains(t, err.Error(), "expired")
}

func TestWaitForSealContextCanceled(t *testing.T) {
	c, _ := stubClient(
		resultResponse(entities.TransactionStatus_PENDING, 0, ""),
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.WaitForSeal(ctx, flow.ZeroID)
	require.Error(t, err)
}

func TestIsExecutionError(t *testing.T) {
	err := ExecutionError{TransactionID: flow.ZeroID, StatusCode: 5, Message: "boom"}
	assert.True(t, IsExecutionError(err))
	assert.True(t, IsExecutionError(fmt.Errorf("sealing: %w", err)))
	assert.False(t, IsExecutionError(fmt.Errorf("sealing: %v", err)))
	assert.Contains(t, err.Error(), "code 5")
}
