// Package transaction implements deposits, withdrawals and transfers
// between accounts, plus the per-account transaction history.
//
// Every mutating operation holds the locks of the accounts it touches for
// its whole duration and writes account balances and the transaction record
// in a single unit of work, so either all of its effects commit or none do.
package transaction

import (
	"context"
	"log/slog"

	"github.com/vagnerwentz/bankapi/pkg/config"
	"github.com/vagnerwentz/bankapi/pkg/domain/account"
	"github.com/vagnerwentz/bankapi/pkg/domain/events"
	"github.com/vagnerwentz/bankapi/pkg/dto"
	"github.com/vagnerwentz/bankapi/pkg/eventbus"
	"github.com/vagnerwentz/bankapi/pkg/lock"
	"github.com/vagnerwentz/bankapi/pkg/repository"
	"github.com/vagnerwentz/bankapi/pkg/validation"
)

// Service applies transactions to accounts.
type Service struct {
	uow         repository.UnitOfWork
	locker      lock.Locker
	bus         eventbus.Bus
	logger      *slog.Logger
	sufficiency *validation.BalanceSufficiency
}

// NewService creates a new Service with the provided dependencies.
func NewService(deps config.Deps) *Service {
	logger := deps.Logger.With("service", "transaction")
	return &Service{
		uow:         deps.Uow,
		locker:      deps.Locker,
		bus:         deps.EventBus,
		logger:      logger,
		sufficiency: validation.NewBalanceSufficiency(logger),
	}
}

// Deposit credits the receiver account and records a DEPOSIT transaction.
func (s *Service) Deposit(ctx context.Context, req dto.DepositRequest) (*account.Transaction, error) {
	logger := s.logger.With("operation", "deposit", "receiver", req.ReceiverNumber, "amount", req.Amount)
	if !account.ValidAmount(req.Amount) {
		logger.Warn("deposit rejected: invalid amount")
		return nil, account.ErrAmountMustBePositive
	}

	var tx *account.Transaction
	err := s.locker.WithLock(ctx, []string{lock.AccountKey(req.ReceiverNumber)}, func(ctx context.Context) error {
		err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			receiver, err := validation.NewAccountExistence(uow, logger).Validate(ctx, req.ReceiverNumber)
			if err != nil {
				return err
			}
			receiver.Credit(req.Amount)
			if err := s.saveAccounts(ctx, uow, receiver); err != nil {
				return err
			}
			tx, err = account.NewTransaction(account.TypeDeposit, req.Amount, nil, receiver)
			if err != nil {
				return err
			}
			return s.saveTransaction(ctx, uow, tx)
		})
		if err != nil {
			return err
		}
		s.emit(ctx, tx)
		return nil
	})
	if err != nil {
		logger.Error("deposit failed", "error", err)
		return nil, err
	}
	logger.Info("deposit completed", "transaction_id", tx.ID)
	return tx, nil
}

// Withdraw debits the source account, within its balance plus special limit,
// and records a WITHDRAW transaction.
func (s *Service) Withdraw(ctx context.Context, req dto.WithdrawRequest) (*account.Transaction, error) {
	logger := s.logger.With("operation", "withdraw", "source", req.SourceNumber, "amount", req.Amount)
	if !account.ValidAmount(req.Amount) {
		logger.Warn("withdraw rejected: invalid amount")
		return nil, account.ErrAmountMustBePositive
	}

	var tx *account.Transaction
	err := s.locker.WithLock(ctx, []string{lock.AccountKey(req.SourceNumber)}, func(ctx context.Context) error {
		err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			source, err := validation.NewAccountExistence(uow, logger).Validate(ctx, req.SourceNumber)
			if err != nil {
				return err
			}
			if err := s.sufficiency.Validate(source, req.Amount); err != nil {
				return err
			}
			source.Debit(req.Amount)
			if err := s.saveAccounts(ctx, uow, source); err != nil {
				return err
			}
			tx, err = account.NewTransaction(account.TypeWithdraw, req.Amount, source, nil)
			if err != nil {
				return err
			}
			return s.saveTransaction(ctx, uow, tx)
		})
		if err != nil {
			return err
		}
		s.emit(ctx, tx)
		return nil
	})
	if err != nil {
		logger.Error("withdraw failed", "error", err)
		return nil, err
	}
	logger.Info("withdraw completed", "transaction_id", tx.ID)
	return tx, nil
}

// Transfer moves funds from the source account to the receiver account and
// records a TRANSFER transaction. Both accounts are resolved and the source
// checked before either balance changes.
func (s *Service) Transfer(ctx context.Context, req dto.TransferRequest) (*account.Transaction, error) {
	logger := s.logger.With(
		"operation", "transfer",
		"source", req.SourceNumber,
		"receiver", req.ReceiverNumber,
		"amount", req.Amount,
	)
	if !account.ValidAmount(req.Amount) {
		logger.Warn("transfer rejected: invalid amount")
		return nil, account.ErrAmountMustBePositive
	}
	if req.SourceNumber == req.ReceiverNumber {
		logger.Warn("transfer rejected: same account")
		return nil, account.ErrSameAccountTransfer
	}

	keys := []string{lock.AccountKey(req.SourceNumber), lock.AccountKey(req.ReceiverNumber)}
	var tx *account.Transaction
	err := s.locker.WithLock(ctx, keys, func(ctx context.Context) error {
		err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			existence := validation.NewAccountExistence(uow, logger)
			source, err := existence.Validate(ctx, req.SourceNumber)
			if err != nil {
				return err
			}
			receiver, err := existence.Validate(ctx, req.ReceiverNumber)
			if err != nil {
				return err
			}
			if err := s.sufficiency.Validate(source, req.Amount); err != nil {
				return err
			}
			source.Debit(req.Amount)
			receiver.Credit(req.Amount)
			if err := s.saveAccounts(ctx, uow, source, receiver); err != nil {
				return err
			}
			tx, err = account.NewTransaction(account.TypeTransfer, req.Amount, source, receiver)
			if err != nil {
				return err
			}
			return s.saveTransaction(ctx, uow, tx)
		})
		if err != nil {
			return err
		}
		s.emit(ctx, tx)
		return nil
	})
	if err != nil {
		logger.Error("transfer failed", "error", err)
		return nil, err
	}
	logger.Info("transfer completed", "transaction_id", tx.ID)
	return tx, nil
}

// History lists the transactions where the account numbered number is the
// source or the receiver, newest first.
func (s *Service) History(ctx context.Context, number int64) (txs []*account.Transaction, err error) {
	logger := s.logger.With("operation", "history", "number", number)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		acc, err := validation.NewAccountExistence(uow, logger).Validate(ctx, number)
		if err != nil {
			return err
		}
		repo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		txs, err = repo.ListByAccount(ctx, acc.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return txs, nil
}

func (s *Service) saveAccounts(ctx context.Context, uow repository.UnitOfWork, accs ...*account.Account) error {
	repo, err := uow.AccountRepository()
	if err != nil {
		return err
	}
	for _, a := range accs {
		if err := repo.Save(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) saveTransaction(ctx context.Context, uow repository.UnitOfWork, tx *account.Transaction) error {
	repo, err := uow.TransactionRepository()
	if err != nil {
		return err
	}
	return repo.Save(ctx, tx)
}

// emit publishes the committed transaction. Failures are logged only.
func (s *Service) emit(ctx context.Context, tx *account.Transaction) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, events.NewTransactionRecorded(tx)); err != nil {
		s.logger.Error("failed to emit event",
			"type", events.TypeTransactionRecorded,
			"transaction_id", tx.ID,
			"error", err,
		)
	}
}
