package account

import (
	"time"

	"github.com/vagnerwentz/bankapi/pkg/domain/account"
	"github.com/vagnerwentz/bankapi/pkg/dto"
)

//revive:disable

// AccountRequest is the body accepted by both create and update.
type AccountRequest struct {
	Name         string  `json:"name" validate:"required,max=255"`
	Number       int64   `json:"number" validate:"required,gt=0"`
	Balance      float64 `json:"balance"`
	SpecialLimit float64 `json:"special_limit" validate:"gte=0"`
}

func (r AccountRequest) toCreate() dto.AccountCreate {
	return dto.AccountCreate{
		Name:         r.Name,
		Number:       r.Number,
		Balance:      r.Balance,
		SpecialLimit: r.SpecialLimit,
	}
}

func (r AccountRequest) toUpdate() dto.AccountUpdate {
	return dto.AccountUpdate{
		Name:         r.Name,
		Number:       r.Number,
		Balance:      r.Balance,
		SpecialLimit: r.SpecialLimit,
	}
}

// AccountDTO is the API response representation of an account.
type AccountDTO struct {
	ID           string    `json:"id"`
	Number       int64     `json:"number"`
	Name         string    `json:"name"`
	Balance      float64   `json:"balance"`
	SpecialLimit float64   `json:"special_limit"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToAccountDTO(a *account.Account) *AccountDTO {
	return &AccountDTO{
		ID:           a.ID.String(),
		Number:       a.Number,
		Name:         a.Name,
		Balance:      a.Balance,
		SpecialLimit: a.SpecialLimit,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// TransactionDTO is the API response representation of a transaction.
type TransactionDTO struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	Amount         float64   `json:"amount"`
	SourceNumber   *int64    `json:"source_number,omitempty"`
	ReceiverNumber *int64    `json:"receiver_number,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func ToTransactionDTO(t *account.Transaction) *TransactionDTO {
	out := &TransactionDTO{
		ID:        t.ID.String(),
		Type:      t.Type.String(),
		Amount:    t.Amount,
		CreatedAt: t.CreatedAt,
	}
	if t.Source != nil {
		n := t.Source.Number
		out.SourceNumber = &n
	}
	if t.Receiver != nil {
		n := t.Receiver.Number
		out.ReceiverNumber = &n
	}
	return out
}
