package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vagnerwentz/bankapi/pkg/domain/account"
	"github.com/vagnerwentz/bankapi/pkg/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a transaction repository on db.
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

// Save appends tx. Accounts are referenced by ID only and never written here.
func (r *transactionRepository) Save(ctx context.Context, tx *account.Transaction) error {
	m := Transaction{
		ID:                tx.ID,
		Type:              tx.Type.String(),
		Amount:            tx.Amount,
		SourceAccountID:   tx.SourceID(),
		ReceiverAccountID: tx.ReceiverID(),
		CreatedAt:         tx.CreatedAt,
	}
	return WrapError(func() error {
		return r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error
	})
}

// ListByAccount returns the transactions touching accountID, newest first.
// The attached accounts reflect their current state.
func (r *transactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*account.Transaction, error) {
	var ms []Transaction
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).
			Preload("Source").
			Preload("Receiver").
			Where("source_account_id = ? OR receiver_account_id = ?", accountID, accountID).
			Order("created_at DESC").
			Find(&ms).Error
	}); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	out := make([]*account.Transaction, 0, len(ms))
	for i := range ms {
		m := &ms[i]
		var source, receiver *account.Account
		if m.Source != nil {
			source = mapAccountModelToDomain(m.Source)
		}
		if m.Receiver != nil {
			receiver = mapAccountModelToDomain(m.Receiver)
		}
		out = append(out, account.NewTransactionFromData(
			m.ID,
			account.TransactionType(m.Type),
			m.Amount,
			source,
			receiver,
			m.CreatedAt,
		))
	}
	return out, nil
}
