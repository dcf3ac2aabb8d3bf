package dto

// DepositRequest credits Amount to the account numbered ReceiverNumber.
type DepositRequest struct {
	ReceiverNumber int64
	Amount         float64
}

// WithdrawRequest debits Amount from the account numbered SourceNumber.
type WithdrawRequest struct {
	SourceNumber int64
	Amount       float64
}

// TransferRequest moves Amount from SourceNumber to ReceiverNumber.
type TransferRequest struct {
	SourceNumber   int64
	ReceiverNumber int64
	Amount         float64
}
