package events_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vagnerwentz/bankapi/pkg/domain/account"
	"github.com/vagnerwentz/bankapi/pkg/domain/events"
)

func TestNewTransactionRecorded(t *testing.T) {
	src, err := account.New().WithNumber(123456).WithName("Ana").WithBalance(500).Build()
	require.NoError(t, err)
	dst, err := account.New().WithNumber(654321).WithName("Bia").Build()
	require.NoError(t, err)

	tx, err := account.NewTransaction(account.TypeTransfer, 100, src, dst)
	require.NoError(t, err)

	e := events.NewTransactionRecorded(tx)
	assert.Equal(t, events.TypeTransactionRecorded, e.Type())
	assert.Equal(t, tx.ID, e.TransactionID)
	assert.Equal(t, "TRANSFER", e.Kind)
	assert.InDelta(t, 100.0, e.Amount, 1e-9)
	require.NotNil(t, e.SourceNumber)
	require.NotNil(t, e.ReceiverNumber)
	assert.Equal(t, int64(123456), *e.SourceNumber)
	assert.Equal(t, int64(654321), *e.ReceiverNumber)
}

func TestNewTransactionRecorded_Deposit(t *testing.T) {
	dst, err := account.New().WithNumber(1).WithName("Ana").Build()
	require.NoError(t, err)
	tx, err := account.NewTransaction(account.TypeDeposit, 10, nil, dst)
	require.NoError(t, err)

	e := events.NewTransactionRecorded(tx)
	assert.Nil(t, e.SourceNumber)
	require.NotNil(t, e.ReceiverNumber)
}

func TestFactories(t *testing.T) {
	f, ok := events.Factories()[events.TypeTransactionRecorded]
	require.True(t, ok)
	assert.IsType(t, &events.TransactionRecorded{}, f())
}
