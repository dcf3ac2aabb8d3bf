package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/vagnerwentz/bankapi/pkg/domain/account"
)

// Event is anything that can be published on the event bus.
type Event interface {
	Type() string
}

// Event type names.
const (
	TypeTransactionRecorded = "transaction.recorded"
)

// TransactionRecorded is emitted once a deposit, withdrawal or transfer has committed.
type TransactionRecorded struct {
	TransactionID  uuid.UUID `json:"transaction_id"`
	Kind           string    `json:"kind"`
	Amount         float64   `json:"amount"`
	SourceNumber   *int64    `json:"source_number,omitempty"`
	ReceiverNumber *int64    `json:"receiver_number,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Type implements Event.
func (e TransactionRecorded) Type() string { return TypeTransactionRecorded }

// NewTransactionRecorded builds the event for a committed transaction.
func NewTransactionRecorded(tx *account.Transaction) *TransactionRecorded {
	e := &TransactionRecorded{
		TransactionID: tx.ID,
		Kind:          tx.Type.String(),
		Amount:        tx.Amount,
		OccurredAt:    tx.CreatedAt,
	}
	if tx.Source != nil {
		n := tx.Source.Number
		e.SourceNumber = &n
	}
	if tx.Receiver != nil {
		n := tx.Receiver.Number
		e.ReceiverNumber = &n
	}
	return e
}

// Factories returns a constructor per event type, used to decode events
// read back from a transport.
func Factories() map[string]func() Event {
	return map[string]func() Event{
		TypeTransactionRecorded: func() Event { return &TransactionRecorded{} },
	}
}
