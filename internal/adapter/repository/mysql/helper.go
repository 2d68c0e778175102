package mysql

import (
	"errors"

	"motofinance-backend/internal/domain/apperr"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// first loads one row, translating gorm.ErrRecordNotFound into the domain's notFound.
func first[T any](q *gorm.DB, notFound error) (*T, error) {
	var out T
	if err := q.First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound
		}
		return nil, err
	}
	return &out, nil
}

// forUpdate adds SELECT ... FOR UPDATE. sqlite drops the clause.
func forUpdate(q *gorm.DB) *gorm.DB {
	return q.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
}

// guarded reports errStale when a conditional write matched no rows.
func guarded(res *gorm.DB, errStale error) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errStale
	}
	return nil
}

// unique reports a unique-key collision as a precondition failure.
func unique(err error, what string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Precondition("%s already exists", what)
	}
	return err
}
