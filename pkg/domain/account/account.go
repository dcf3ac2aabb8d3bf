package account

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/vagnerwentz/bankapi/pkg/domain"
)

var (
	// ErrAccountNotFound is returned when no account matches a number or identifier.
	ErrAccountNotFound = fmt.Errorf("account %w", domain.ErrNotFound)

	// ErrAccountNumberTaken is returned when creating an account whose number is already in use.
	ErrAccountNumberTaken = fmt.Errorf("account number %w", domain.ErrAlreadyExists)

	// ErrInsufficientFunds is returned when balance plus special limit does not cover a debit.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrAmountMustBePositive is returned when a transaction amount is not a finite number above zero.
	ErrAmountMustBePositive = fmt.Errorf("%w: transaction amount must be positive", domain.ErrValidation)

	// ErrSameAccountTransfer is returned when a transfer names the same account on both sides.
	ErrSameAccountTransfer = fmt.Errorf("%w: cannot transfer to same account", domain.ErrValidation)

	// ErrInvalidNumber is returned when an account number is not positive.
	ErrInvalidNumber = fmt.Errorf("%w: account number must be positive", domain.ErrValidation)

	// ErrNameRequired is returned when an account has no owner name.
	ErrNameRequired = fmt.Errorf("%w: account name is required", domain.ErrValidation)

	// ErrNegativeSpecialLimit is returned when a special limit below zero (or NaN) is supplied.
	ErrNegativeSpecialLimit = fmt.Errorf("%w: special limit cannot be negative", domain.ErrValidation)

	// ErrConcurrentModification is returned when an account kept changing under a
	// caller that needed it stable.
	ErrConcurrentModification = errors.New("account modified concurrently")

	// ErrNonFiniteValue is returned when a balance or special limit is NaN or infinite.
	ErrNonFiniteValue = fmt.Errorf("%w: balance and special limit must be finite", domain.ErrValidation)
)

// Account is a bank account identified internally by ID and externally by Number.
//
// Invariants:
//   - Number is positive and unique across accounts.
//   - SpecialLimit is never negative.
//   - After any debit, Balance + SpecialLimit >= 0.
//
// Values handed out by repositories are copies; whoever holds one owns it until it is saved.
type Account struct {
	ID           uuid.UUID
	Number       int64
	Name         string
	Balance      float64
	SpecialLimit float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Builder provides a fluent API for constructing Account instances.
type Builder struct {
	id           uuid.UUID
	number       int64
	name         string
	balance      float64
	specialLimit float64
	createdAt    time.Time
	updatedAt    time.Time
}

// New creates a new Builder with a fresh identifier and creation time.
func New() *Builder {
	now := time.Now().UTC()
	return &Builder{
		id:        uuid.New(),
		createdAt: now,
		updatedAt: now,
	}
}

// WithID sets the ID for the account being built.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithNumber sets the externally visible account number.
func (b *Builder) WithNumber(number int64) *Builder {
	b.number = number
	return b
}

// WithName sets the owner name.
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithBalance sets the balance. Only for hydrating a stored account or test setup;
// newly opened accounts always start at zero.
func (b *Builder) WithBalance(balance float64) *Builder {
	b.balance = balance
	return b
}

// WithSpecialLimit sets the credit buffer available on top of the balance.
func (b *Builder) WithSpecialLimit(limit float64) *Builder {
	b.specialLimit = limit
	return b
}

// WithCreatedAt sets the creation timestamp.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// WithUpdatedAt sets the last-updated timestamp.
func (b *Builder) WithUpdatedAt(t time.Time) *Builder {
	b.updatedAt = t
	return b
}

// Build validates the account fields and returns the new Account.
func (b *Builder) Build() (*Account, error) {
	if b.number <= 0 {
		return nil, ErrInvalidNumber
	}
	if b.name == "" {
		return nil, ErrNameRequired
	}
	if !(b.specialLimit >= 0) {
		return nil, ErrNegativeSpecialLimit
	}
	if !finite(b.balance) || !finite(b.specialLimit) {
		return nil, ErrNonFiniteValue
	}
	return &Account{
		ID:           b.id,
		Number:       b.number,
		Name:         b.name,
		Balance:      b.balance,
		SpecialLimit: b.specialLimit,
		CreatedAt:    b.createdAt,
		UpdatedAt:    b.updatedAt,
	}, nil
}

// ValidAmount reports whether amount is a finite number greater than zero.
// NaN and infinities are rejected.
func ValidAmount(amount float64) bool {
	return amount > 0 && !math.IsInf(amount, 1)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Available returns the funds that can be debited: balance plus special limit.
func (a *Account) Available() float64 {
	return a.Balance + a.SpecialLimit
}

// Credit adds amount to the balance.
func (a *Account) Credit(amount float64) {
	a.Balance += amount
	a.UpdatedAt = time.Now().UTC()
}

// Debit subtracts amount from the balance. Callers check sufficiency first.
func (a *Account) Debit(amount float64) {
	a.Balance -= amount
	a.UpdatedAt = time.Now().UTC()
}

// Clone returns an independent copy of the account.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	cp := *a
	return &cp
}
