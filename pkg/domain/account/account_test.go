package account_test

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vagnerwentz/bankapi/pkg/domain"
	domainaccount "github.com/vagnerwentz/bankapi/pkg/domain/account"
)

func TestNewAccount(t *testing.T) {
	t.Parallel()
	acc, err := domainaccount.New().WithNumber(123456).WithName("John Doe").Build()
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, acc.ID, "Account ID should not be empty")
	assert.Equal(t, int64(123456), acc.Number)
	assert.Zero(t, acc.Balance)
	assert.False(t, acc.CreatedAt.IsZero())
}

func TestBuild_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		builder *domainaccount.Builder
		want    error
	}{
		{
			name:    "zero number",
			builder: domainaccount.New().WithName("John"),
			want:    domainaccount.ErrInvalidNumber,
		},
		{
			name:    "negative number",
			builder: domainaccount.New().WithNumber(-1).WithName("John"),
			want:    domainaccount.ErrInvalidNumber,
		},
		{
			name:    "missing name",
			builder: domainaccount.New().WithNumber(1),
			want:    domainaccount.ErrNameRequired,
		},
		{
			name:    "negative special limit",
			builder: domainaccount.New().WithNumber(1).WithName("John").WithSpecialLimit(-10),
			want:    domainaccount.ErrNegativeSpecialLimit,
		},
		{
			name:    "NaN special limit",
			builder: domainaccount.New().WithNumber(1).WithName("John").WithSpecialLimit(math.NaN()),
			want:    domainaccount.ErrNegativeSpecialLimit,
		},
		{
			name:    "infinite special limit",
			builder: domainaccount.New().WithNumber(1).WithName("John").WithSpecialLimit(math.Inf(1)),
			want:    domainaccount.ErrNonFiniteValue,
		},
		{
			name:    "NaN balance",
			builder: domainaccount.New().WithNumber(1).WithName("John").WithBalance(math.NaN()),
			want:    domainaccount.ErrNonFiniteValue,
		},
		{
			name:    "infinite balance",
			builder: domainaccount.New().WithNumber(1).WithName("John").WithBalance(math.Inf(-1)),
			want:    domainaccount.ErrNonFiniteValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			acc, err := tt.builder.Build()
			assert.Nil(t, acc)
			require.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestAvailable(t *testing.T) {
	t.Parallel()
	acc, err := domainaccount.New().
		WithNumber(1).
		WithName("Jane").
		WithBalance(-50).
		WithSpecialLimit(200).
		Build()
	require.NoError(t, err)
	assert.InDelta(t, 150.0, acc.Available(), 1e-9)
}

func TestCreditDebit(t *testing.T) {
	t.Parallel()
	acc, err := domainaccount.New().WithNumber(1).WithName("Jane").WithBalance(500).Build()
	require.NoError(t, err)
	before := acc.UpdatedAt

	acc.Debit(100)
	assert.InDelta(t, 400.0, acc.Balance, 1e-9)
	acc.Credit(25.5)
	assert.InDelta(t, 425.5, acc.Balance, 1e-9)
	assert.False(t, acc.UpdatedAt.Before(before))
}

func TestClone(t *testing.T) {
	t.Parallel()
	acc, err := domainaccount.New().WithNumber(1).WithName("Jane").WithBalance(10).Build()
	require.NoError(t, err)

	cp := acc.Clone()
	cp.Credit(5)
	assert.InDelta(t, 10.0, acc.Balance, 1e-9)
	assert.InDelta(t, 15.0, cp.Balance, 1e-9)

	var nilAcc *domainaccount.Account
	assert.Nil(t, nilAcc.Clone())
}

func TestErrorKinds(t *testing.T) {
	t.Parallel()
	assert.ErrorIs(t, domainaccount.ErrAccountNotFound, domain.ErrNotFound)
	assert.ErrorIs(t, domainaccount.ErrAccountNumberTaken, domain.ErrAlreadyExists)
	assert.ErrorIs(t, domainaccount.ErrAmountMustBePositive, domain.ErrValidation)
	assert.NotErrorIs(t, domainaccount.ErrInsufficientFunds, domain.ErrNotFound)
}

func TestValidAmount(t *testing.T) {
	t.Parallel()
	assert.True(t, domainaccount.ValidAmount(0.01))
	assert.True(t, domainaccount.ValidAmount(1e12))
	assert.False(t, domainaccount.ValidAmount(0))
	assert.False(t, domainaccount.ValidAmount(-1))
	assert.False(t, domainaccount.ValidAmount(math.NaN()))
	assert.False(t, domainaccount.ValidAmount(math.Inf(1)))
	assert.False(t, domainaccount.ValidAmount(math.Inf(-1)))
}
