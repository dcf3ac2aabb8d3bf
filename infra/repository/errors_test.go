package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vagnerwentz/bankapi/pkg/domain"
	"github.com/vagnerwentz/bankapi/pkg/domain/account"
	"gorm.io/gorm"
)

func TestMapGormErrorToDomain(t *testing.T) {
	t.Parallel()
	other := errors.New("some other error")

	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{name: "nil error returns nil", input: nil, expected: nil},
		{name: "duplicate key maps to ErrAlreadyExists", input: gorm.ErrDuplicatedKey, expected: domain.ErrAlreadyExists},
		{name: "record not found maps to ErrNotFound", input: gorm.ErrRecordNotFound, expected: domain.ErrNotFound},
		{name: "non-GORM error returns original", input: other, expected: other},
		{
			name:     "joined duplicate key maps correctly",
			input:    errors.Join(errors.New("outer error"), gorm.ErrDuplicatedKey),
			expected: domain.ErrAlreadyExists,
		},
		{name: "foreign key maps to ErrNotFound", input: gorm.ErrForeignKeyViolated, expected: domain.ErrNotFound},
		{name: "check constraint maps to ErrValidation", input: gorm.ErrCheckConstraintViolated, expected: domain.ErrValidation},
		{
			name:     "wrapped record not found maps correctly",
			input:    fmt.Errorf("query: %w", gorm.ErrRecordNotFound),
			expected: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := MapGormErrorToDomain(tt.input)
			if tt.expected == nil {
				require.NoError(t, result)
				return
			}
			assert.ErrorIs(t, result, tt.expected)
		})
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	assert.NoError(t, WrapError(func() error { return nil }))
	assert.ErrorIs(t, WrapError(func() error { return gorm.ErrRecordNotFound }), domain.ErrNotFound)
}

func TestRefine(t *testing.T) {
	t.Parallel()
	assert.NoError(t, refine(nil, account.ErrAccountNotFound, nil))
	assert.ErrorIs(t, refine(domain.ErrNotFound, account.ErrAccountNotFound, nil), account.ErrAccountNotFound)
	assert.ErrorIs(t, refine(domain.ErrAlreadyExists, nil, account.ErrAccountNumberTaken), account.ErrAccountNumberTaken)
	assert.Equal(t, domain.ErrAlreadyExists, refine(domain.ErrAlreadyExists, account.ErrAccountNotFound, nil))
}
