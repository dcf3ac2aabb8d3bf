package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vagnerwentz/bankapi/pkg/domain/account"
	"github.com/vagnerwentz/bankapi/pkg/repository"
	"gorm.io/gorm"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates an account repository on db.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) FindByNumber(ctx context.Context, number int64) (*account.Account, error) {
	var m Account
	err := WrapError(func() error {
		return r.db.WithContext(ctx).Where("number = ?", number).First(&m).Error
	})
	if err != nil {
		return nil, refine(err, account.ErrAccountNotFound, nil)
	}
	return mapAccountModelToDomain(&m), nil
}

func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	var m Account
	err := WrapError(func() error {
		return r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	})
	if err != nil {
		return nil, refine(err, account.ErrAccountNotFound, nil)
	}
	return mapAccountModelToDomain(&m), nil
}

func (r *accountRepository) FindAll(ctx context.Context) ([]*account.Account, error) {
	var ms []Account
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).Order("number").Find(&ms).Error
	}); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	out := make([]*account.Account, 0, len(ms))
	for i := range ms {
		out = append(out, mapAccountModelToDomain(&ms[i]))
	}
	return out, nil
}

// Save updates the row with a's ID, or inserts it when there is none.
func (r *accountRepository) Save(ctx context.Context, a *account.Account) error {
	res := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"number":        a.Number,
			"name":          a.Name,
			"balance":       a.Balance,
			"special_limit": a.SpecialLimit,
			"updated_at":    a.UpdatedAt,
		})
	if res.Error != nil {
		return refine(MapGormErrorToDomain(res.Error), nil, account.ErrAccountNumberTaken)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	m := mapAccountDomainToModel(a)
	err := WrapError(func() error {
		return r.db.WithContext(ctx).Create(&m).Error
	})
	return refine(err, nil, account.ErrAccountNumberTaken)
}

func mapAccountModelToDomain(m *Account) *account.Account {
	return &account.Account{
		ID:           m.ID,
		Number:       m.Number,
		Name:         m.Name,
		Balance:      m.Balance,
		SpecialLimit: m.SpecialLimit,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func mapAccountDomainToModel(a *account.Account) Account {
	return Account{
		ID:           a.ID,
		Number:       a.Number,
		Name:         a.Name,
		Balance:      a.Balance,
		SpecialLimit: a.SpecialLimit,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
