package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidTransaction is returned when a transaction's type does not match the accounts it references.
var ErrInvalidTransaction = errors.New("invalid transaction")

// TransactionType is the kind of movement a transaction records.
type TransactionType string

// Transaction types.
const (
	TypeDeposit  TransactionType = "DEPOSIT"
	TypeWithdraw TransactionType = "WITHDRAW"
	TypeTransfer TransactionType = "TRANSFER"
)

// String implements fmt.Stringer.
func (t TransactionType) String() string {
	return string(t)
}

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeDeposit, TypeWithdraw, TypeTransfer:
		return true
	}
	return false
}

// Transaction is an immutable record of one successful deposit, withdrawal or transfer.
// Source is nil for deposits and Receiver is nil for withdrawals.
type Transaction struct {
	ID        uuid.UUID
	Type      TransactionType
	Amount    float64
	Source    *Account
	Receiver  *Account
	CreatedAt time.Time
}

// NewTransaction builds a Transaction and enforces its shape:
// amount is finite and > 0, deposits have only a receiver, withdrawals only a source,
// and transfers both.
func NewTransaction(typ TransactionType, amount float64, source, receiver *Account) (*Transaction, error) {
	if !ValidAmount(amount) {
		return nil, ErrAmountMustBePositive
	}
	switch typ {
	case TypeDeposit:
		if source != nil || receiver == nil {
			return nil, ErrInvalidTransaction
		}
	case TypeWithdraw:
		if source == nil || receiver != nil {
			return nil, ErrInvalidTransaction
		}
	case TypeTransfer:
		if source == nil || receiver == nil {
			return nil, ErrInvalidTransaction
		}
	default:
		return nil, ErrInvalidTransaction
	}
	return &Transaction{
		ID:        uuid.New(),
		Type:      typ,
		Amount:    amount,
		Source:    source.Clone(),
		Receiver:  receiver.Clone(),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// NewTransactionFromData creates a Transaction from stored data, bypassing invariants.
// Used for repository hydration and test fixtures only.
func NewTransactionFromData(
	id uuid.UUID,
	typ TransactionType,
	amount float64,
	source, receiver *Account,
	created time.Time,
) *Transaction {
	return &Transaction{
		ID:        id,
		Type:      typ,
		Amount:    amount,
		Source:    source,
		Receiver:  receiver,
		CreatedAt: created,
	}
}

// SourceID returns the source account identifier, or nil when there is none.
func (t *Transaction) SourceID() *uuid.UUID {
	if t.Source == nil {
		return nil
	}
	id := t.Source.ID
	return &id
}

// ReceiverID returns the receiver account identifier, or nil when there is none.
func (t *Transaction) ReceiverID() *uuid.UUID {
	if t.Receiver == nil {
		return nil
	}
	id := t.Receiver.ID
	return &id
}
