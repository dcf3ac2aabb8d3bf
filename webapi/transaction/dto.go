package transaction

import "github.com/vagnerwentz/bankapi/pkg/dto"

//revive:disable

// DepositRequest represents the request body for crediting an account.
type DepositRequest struct {
	Receiver int64   `json:"receiver" validate:"required,gt=0"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
}

// WithdrawRequest represents the request body for debiting an account.
type WithdrawRequest struct {
	Source int64   `json:"source" validate:"required,gt=0"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// TransferRequest represents the request body for moving funds between accounts.
type TransferRequest struct {
	Source   int64   `json:"source" validate:"required,gt=0"`
	Receiver int64   `json:"receiver" validate:"required,gt=0"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
}

func (r DepositRequest) toDTO() dto.DepositRequest {
	return dto.DepositRequest{ReceiverNumber: r.Receiver, Amount: r.Amount}
}

func (r WithdrawRequest) toDTO() dto.WithdrawRequest {
	return dto.WithdrawRequest{SourceNumber: r.Source, Amount: r.Amount}
}

func (r TransferRequest) toDTO() dto.TransferRequest {
	return dto.TransferRequest{SourceNumber: r.Source, ReceiverNumber: r.Receiver, Amount: r.Amount}
}
