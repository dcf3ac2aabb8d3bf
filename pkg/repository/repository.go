package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vagnerwentz/bankapi/pkg/domain/account"
)

// AccountRepository defines the interface for account data access operations.
// Lookups that match nothing return account.ErrAccountNotFound.
// Returned accounts are copies owned by the caller.
type AccountRepository interface {
	FindByNumber(ctx context.Context, number int64) (*account.Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error)
	FindAll(ctx context.Context) ([]*account.Account, error)
	// Save inserts the account, or updates it when one with the same ID exists.
	Save(ctx context.Context, a *account.Account) error
}

// TransactionRepository defines the interface for transaction data access operations.
// Transactions are append-only.
type TransactionRepository interface {
	Save(ctx context.Context, tx *account.Transaction) error
	// ListByAccount returns transactions where the account is source or receiver, newest first.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*account.Transaction, error)
}
