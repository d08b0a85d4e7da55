package flow

import (
	"fmt"
)

// TransactionStatus represents the status of a transaction.
type TransactionStatus int

const (
	// TransactionStatusUnknown indicates that the transaction status is not known.
	TransactionStatusUnknown TransactionStatus = iota
	// TransactionStatusPending is the status of a pending transaction.
	TransactionStatusPending
	// TransactionStatusFinalized is the status of a finalized transaction.
	TransactionStatusFinalized
	// TransactionStatusExecuted is the status of an executed transaction.
	TransactionStatusExecuted
	// TransactionStatusSealed is the status of a sealed transaction.
	TransactionStatusSealed
	// TransactionStatusExpired is the status of an expired transaction.
	TransactionStatusExpired
)

// String returns the string representation of a transaction status.
func (s TransactionStatus) String() string {
	return [...]string{"UNKNOWN", "PENDING", "FINALIZED", "EXECUTED", "SEALED", "EXPIRED"}[s]
}

// Pending returns whether a transaction with this status may still move to
// another status and is worth polling again.
func (s TransactionStatus) Pending() bool {
	switch s {
	case TransactionStatusUnknown, TransactionStatusPending, TransactionStatusFinalized, TransactionStatusExecuted:
		return true
	}
	return false
}

// TransactionResult contains the artifacts of executing a transaction.
type TransactionResult struct {
	// TransactionID is the ID of the transaction this result was emitted from.
	TransactionID Identifier
	// Status is the current status of the transaction.
	Status TransactionStatus
	// StatusCode is 0 when the transaction executed successfully, non-zero
	// when execution failed.
	StatusCode uint
	// ErrorMessage contains the error message of any error that may have
	// occurred when the transaction was executed.
	ErrorMessage string
	// BlockID is the block the transaction was included in, once known.
	BlockID Identifier
	// Events emitted during transaction execution. Payloads are JSON-Cadence
	// encoded.
	Events []Event
}

// String returns the string representation of this result.
func (t TransactionResult) String() string {
	return fmt.Sprintf("Transaction ID: %s, Status: %s, Error Message: %s",
		t.TransactionID, t.Status, t.ErrorMessage)
}

// Executed returns whether the transaction executed without error.
func (t TransactionResult) Executed() bool {
	return t.StatusCode == 0
}

// Event is an event emitted during transaction execution.
type Event struct {
	// Type is the fully qualified event type
	Type string
	// TransactionID is the ID of the transaction this event was emitted from
	TransactionID Identifier
	// EventIndex is the index of the event within the transaction
	EventIndex uint32
	// Payload is the JSON-Cadence encoded event payload
	Payload []byte
}
