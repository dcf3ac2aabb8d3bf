package validation_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vagnerwentz/bankapi/internal/fixtures/mocks"
	"github.com/vagnerwentz/bankapi/pkg/domain/account"
	"github.com/vagnerwentz/bankapi/pkg/validation"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAccountExistence(t *testing.T) {
	acc, err := account.New().WithNumber(123456).WithName("Ana").Build()
	require.NoError(t, err)
	lookupErr := errors.New("connection refused")
	repoErr := errors.New("no transaction")

	tests := []struct {
		name    string
		setup   func(uow *mocks.MockUnitOfWork, repo *mocks.MockAccountRepository)
		wantErr error
	}{
		{
			name: "found",
			setup: func(uow *mocks.MockUnitOfWork, repo *mocks.MockAccountRepository) {
				uow.EXPECT().AccountRepository().Return(repo, nil)
				repo.EXPECT().FindByNumber(context.Background(), int64(123456)).Return(acc, nil)
			},
		},
		{
			name: "not found",
			setup: func(uow *mocks.MockUnitOfWork, repo *mocks.MockAccountRepository) {
				uow.EXPECT().AccountRepository().Return(repo, nil)
				repo.EXPECT().FindByNumber(context.Background(), int64(123456)).Return(nil, account.ErrAccountNotFound)
			},
			wantErr: account.ErrAccountNotFound,
		},
		{
			name: "lookup error passes through",
			setup: func(uow *mocks.MockUnitOfWork, repo *mocks.MockAccountRepository) {
				uow.EXPECT().AccountRepository().Return(repo, nil)
				repo.EXPECT().FindByNumber(context.Background(), int64(123456)).Return(nil, lookupErr)
			},
			wantErr: lookupErr,
		},
		{
			name: "repository unavailable",
			setup: func(uow *mocks.MockUnitOfWork, repo *mocks.MockAccountRepository) {
				uow.EXPECT().AccountRepository().Return(nil, repoErr)
			},
			wantErr: repoErr,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			uow := mocks.NewMockUnitOfWork(t)
			repo := mocks.NewMockAccountRepository(t)
			tc.setup(uow, repo)

			got, err := validation.NewAccountExistence(uow, discardLogger()).Validate(context.Background(), 123456)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, acc.ID, got.ID)
		})
	}
}

func TestBalanceSufficiency(t *testing.T) {
	acc, err := account.New().WithNumber(1).WithName("Ana").WithBalance(100).WithSpecialLimit(50).Build()
	require.NoError(t, err)
	v := validation.NewBalanceSufficiency(discardLogger())

	tests := []struct {
		amount float64
		ok     bool
	}{
		{amount: 10, ok: true},
		{amount: 100, ok: true},
		{amount: 150, ok: true},
		{amount: 150.01, ok: false},
		{amount: 1000, ok: false},
		{amount: math.NaN(), ok: false},
		{amount: math.Inf(1), ok: false},
	}
	for _, tc := range tests {
		err := v.Validate(acc, tc.amount)
		if tc.ok {
			assert.NoError(t, err, "amount %v", tc.amount)
		} else {
			assert.ErrorIs(t, err, account.ErrInsufficientFunds, "amount %v", tc.amount)
		}
	}
	assert.InDelta(t, 100.0, acc.Balance, 1e-9, "validator must not mutate the account")
}
