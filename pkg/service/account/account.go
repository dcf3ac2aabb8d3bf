// Package account provides account lookup, creation and update.
package account

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vagnerwentz/bankapi/pkg/config"
	"github.com/vagnerwentz/bankapi/pkg/domain/account"
	"github.com/vagnerwentz/bankapi/pkg/dto"
	"github.com/vagnerwentz/bankapi/pkg/lock"
	"github.com/vagnerwentz/bankapi/pkg/repository"
)

// Service manages account records. Balances only change through the
// transaction service or an explicit Update.
type Service struct {
	uow    repository.UnitOfWork
	locker lock.Locker
	logger *slog.Logger
}

// NewService creates a new Service with the provided dependencies.
func NewService(deps config.Deps) *Service {
	return &Service{
		uow:    deps.Uow,
		locker: deps.Locker,
		logger: deps.Logger.With("service", "account"),
	}
}

// GetByNumber returns the account numbered number. The boolean is false,
// with a nil error, when no such account exists.
func (s *Service) GetByNumber(ctx context.Context, number int64) (acc *account.Account, found bool, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acc, err = repo.FindByNumber(ctx, number)
		return err
	})
	if errors.Is(err, account.ErrAccountNotFound) {
		return nil, false, nil
	}
	if err != nil {
		s.logger.Error("GetByNumber failed", "number", number, "error", err)
		return nil, false, err
	}
	return acc, true, nil
}

// GetAll returns every account ordered by number.
func (s *Service) GetAll(ctx context.Context) (accs []*account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		accs, err = repo.FindAll(ctx)
		return err
	})
	if err != nil {
		s.logger.Error("GetAll failed", "error", err)
		return nil, err
	}
	return accs, nil
}

// Create opens a new account. The requested balance is ignored: every
// account starts at zero.
func (s *Service) Create(ctx context.Context, req dto.AccountCreate) (*account.Account, error) {
	logger := s.logger.With("operation", "create", "number", req.Number)
	acc, err := account.New().
		WithNumber(req.Number).
		WithName(req.Name).
		WithSpecialLimit(req.SpecialLimit).
		Build()
	if err != nil {
		logger.Warn("create rejected", "error", err)
		return nil, err
	}
	acc.Balance = 0

	err = s.locker.WithLock(ctx, []string{lock.AccountKey(req.Number)}, func(ctx context.Context) error {
		return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			repo, err := uow.AccountRepository()
			if err != nil {
				return err
			}
			if err := ensureNumberFree(ctx, repo, req.Number); err != nil {
				return err
			}
			return repo.Save(ctx, acc)
		})
	})
	if err != nil {
		logger.Error("create failed", "error", err)
		return nil, err
	}
	logger.Info("account created", "account_id", acc.ID)
	return acc, nil
}

// Update overwrites name, number, balance and special limit of the account
// identified by id with exactly the values given.
//
// The lock keys come from a read taken before locking. If the account was
// renumbered in between, the locked key no longer guards it, so the update
// is retried with the fresh number, up to updateAttempts times.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req dto.AccountUpdate) (*account.Account, error) {
	logger := s.logger.With("operation", "update", "account_id", id)

	for attempt := 1; attempt <= updateAttempts; attempt++ {
		current, err := s.findByID(ctx, id)
		if err != nil {
			logger.Warn("update failed: lookup", "error", err)
			return nil, err
		}

		updated, err := s.updateLocked(ctx, id, current.Number, req)
		if errors.Is(err, errRenumbered) {
			logger.Warn("account renumbered while waiting for lock, retrying", "attempt", attempt)
			continue
		}
		if err != nil {
			logger.Error("update failed", "error", err)
			return nil, err
		}
		logger.Info("account updated", "number", updated.Number)
		return updated, nil
	}
	logger.Error("update failed: account kept changing number")
	return nil, account.ErrConcurrentModification
}

const updateAttempts = 3

var errRenumbered = errors.New("account renumbered since lock keys were chosen")

// updateLocked holds the locks of lockedNumber and req.Number and fails with
// errRenumbered when the stored account no longer carries lockedNumber.
func (s *Service) updateLocked(ctx context.Context, id uuid.UUID, lockedNumber int64, req dto.AccountUpdate) (*account.Account, error) {
	keys := []string{lock.AccountKey(lockedNumber), lock.AccountKey(req.Number)}
	var updated *account.Account
	err := s.locker.WithLock(ctx, keys, func(ctx context.Context) error {
		return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			repo, err := uow.AccountRepository()
			if err != nil {
				return err
			}
			existing, err := repo.FindByID(ctx, id)
			if err != nil {
				return err
			}
			if existing.Number != lockedNumber {
				return errRenumbered
			}
			updated, err = account.New().
				WithID(existing.ID).
				WithNumber(req.Number).
				WithName(req.Name).
				WithBalance(req.Balance).
				WithSpecialLimit(req.SpecialLimit).
				WithCreatedAt(existing.CreatedAt).
				Build()
			if err != nil {
				return err
			}
			if req.Number != existing.Number {
				if err := ensureNumberFree(ctx, repo, req.Number); err != nil {
					return err
				}
			}
			return repo.Save(ctx, updated)
		})
	})
	return updated, err
}

func (s *Service) findByID(ctx context.Context, id uuid.UUID) (acc *account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acc, err = repo.FindByID(ctx, id)
		return err
	})
	return acc, err
}

func ensureNumberFree(ctx context.Context, repo repository.AccountRepository, number int64) error {
	_, err := repo.FindByNumber(ctx, number)
	switch {
	case err == nil:
		return account.ErrAccountNumberTaken
	case errors.Is(err, account.ErrAccountNotFound):
		return nil
	default:
		return err
	}
}
