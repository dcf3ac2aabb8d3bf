// Package validation holds the checks that every transaction operation runs
// before any balance is touched.
package validation

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vagnerwentz/bankapi/pkg/domain/account"
	"github.com/vagnerwentz/bankapi/pkg/repository"
)

// AccountExistence resolves an account number to the live account.
type AccountExistence struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewAccountExistence returns a validator reading through uow. Pass the
// UnitOfWork handed to Do so the lookup joins the surrounding transaction.
func NewAccountExistence(uow repository.UnitOfWork, logger *slog.Logger) *AccountExistence {
	return &AccountExistence{uow: uow, logger: logger}
}

// Validate returns the account numbered number, or account.ErrAccountNotFound.
func (v *AccountExistence) Validate(ctx context.Context, number int64) (*account.Account, error) {
	logger := v.logger.With("validator", "AccountExistence", "number", number)
	repo, err := v.uow.AccountRepository()
	if err != nil {
		logger.Error("AccountExistence failed: repository error", "error", err)
		return nil, err
	}
	acc, err := repo.FindByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			logger.Warn("AccountExistence failed: account not found")
			return nil, account.ErrAccountNotFound
		}
		logger.Error("AccountExistence failed: lookup error", "error", err)
		return nil, err
	}
	return acc, nil
}

// BalanceSufficiency checks that an account can cover a debit.
type BalanceSufficiency struct {
	logger *slog.Logger
}

// NewBalanceSufficiency returns a BalanceSufficiency validator.
func NewBalanceSufficiency(logger *slog.Logger) *BalanceSufficiency {
	return &BalanceSufficiency{logger: logger}
}

// Validate returns account.ErrInsufficientFunds unless amount is covered by
// the account's balance plus special limit. A NaN on either side never
// counts as covered. It never mutates acc.
func (v *BalanceSufficiency) Validate(acc *account.Account, amount float64) error {
	if available := acc.Available(); !(amount <= available) {
		v.logger.Warn("BalanceSufficiency failed: insufficient funds",
			"number", acc.Number,
			"amount", amount,
			"available", available,
		)
		return account.ErrInsufficientFunds
	}
	return nil
}
