package repository

import (
	"errors"
	"fmt"

	"github.com/vagnerwentz/bankapi/pkg/domain"
	"gorm.io/gorm"
)

// MapGormErrorToDomain converts gorm errors, as translated by the postgres
// dialector, into domain sentinels. Errors it does not recognise pass through.
func MapGormErrorToDomain(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrAlreadyExists
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		// A transaction row pointing at an account that is gone.
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	return err
}

// WrapError runs a gorm call and maps its error.
//
//	err := WrapError(func() error {
//	    return r.db.WithContext(ctx).Create(&m).Error
//	})
func WrapError(op func() error) error {
	return MapGormErrorToDomain(op())
}

// refine narrows a generic domain error to the entity-specific sentinel
// the repository contract promises.
func refine(err error, notFound, alreadyExists error) error {
	switch {
	case err == nil:
		return nil
	case notFound != nil && errors.Is(err, domain.ErrNotFound):
		return notFound
	case alreadyExists != nil && errors.Is(err, domain.ErrAlreadyExists):
		return alreadyExists
	}
	return err
}
