package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/onflow/flow-client-go/model/flow"
)

const (
	// sealRetryDuration is the initial duration to wait between result polls,
	// increasing exponentially for subsequent polls
	sealRetryDuration = 100 * time.Millisecond

	// sealRetryDurationMax is the maximum duration to wait between two
	// consecutive polls
	sealRetryDurationMax = 5 * time.Second

	// sealRetryMaxAttempts bounds the polling loop; a transaction that is
	// still pending after this many polls is reported as such rather than
	// polled forever
	sealRetryMaxAttempts = 50
)

// ExecutionError is returned when a transaction was sealed but its script
// execution failed. This is a user error in the submitted transaction, not
// a transient condition, and is never retried.
type ExecutionError struct {
	TransactionID flow.Identifier
	StatusCode    uint
	Message       string
}

func (e ExecutionError) Error() string {
	return fmt.Sprintf("transaction %s failed during execution (code %d): %s",
		e.TransactionID, e.StatusCode, e.Message)
}

// IsExecutionError returns whether err is or wraps an ExecutionError.
func IsExecutionError(err error) bool {
	var target ExecutionError
	return errors.As(err, &target)
}

// WaitForSeal polls the result of the transaction with the given ID until it
// reaches a terminal status, with capped exponential backoff between polls.
//
// Terminal classification:
//   - sealed and executed: the result is returned with a nil error
//   - sealed with a non-zero status code: ExecutionError
//   - expired: the transaction can never be sealed and an error is returned
//   - still pending after the maximum number of polls: the last error is returned
func (c *Client) WaitForSeal(ctx context.Context, txID flow.Identifier) (*flow.TransactionResult, error) {
	backoff := retry.WithCappedDuration(sealRetryDurationMax, retry.NewExponential(sealRetryDuration))
	backoff = retry.WithMaxRetries(sealRetryMaxAttempts, backoff)

	var result *flow.TransactionResult

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		res, err := c.GetTransactionResult(ctx, txID)
		if err != nil {
			c.log.Warn().Err(err).Hex("tx_id", txID.Bytes()).Msg("could not poll transaction result")
			return retry.RetryableError(err)
		}

		if res.Status.Pending() {
			c.log.Debug().
				Hex("tx_id", txID.Bytes()).
				Str("status", res.Status.String()).
				Msg("transaction not sealed yet")
			return retry.RetryableError(fmt.Errorf("transaction %s not sealed (status %s)", txID, res.Status))
		}

		result = res
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("gave up waiting for transaction %s to seal: %w", txID, err)
	}

	switch result.Status {
	case flow.TransactionStatusSealed:
		if !result.Executed() {
			return result, ExecutionError{
				TransactionID: txID,
				StatusCode:    result.StatusCode,
				Message:       result.ErrorMessage,
			}
		}
		c.log.Debug().Hex("tx_id", txID.Bytes()).Msg("transaction sealed")
		return result, nil
	case flow.TransactionStatusExpired:
		return result, fmt.Errorf("transaction %s expired before it was sealed", txID)
	default:
		return result, fmt.Errorf("transaction %s reached unexpected status %s", txID, result.Status)
	}
}
