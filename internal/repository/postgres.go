package repository

import (
	"errors"

	"github.com/vladimiradmaev/fittrack/internal/domain"
	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresStore implements domain.Store on top of gorm.
type PostgresStore struct {
	db *gorm.DB
}

var _ domain.Store = (*PostgresStore)(nil)

// NewPostgresStore wraps an already migrated connection.
func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

var forUpdate = clause.Locking{Strength: "UPDATE"}

// lookupErr maps a missing row to NotFound and anything else to a database error.
func lookupErr(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFoundError(entity, id)
	}
	return apperrors.NewDatabaseError(err)
}

// passThrough keeps AppErrors raised inside a transaction intact.
func passThrough(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.As(err); ok {
		return err
	}
	return apperrors.NewDatabaseError(err)
}

func deleteByID(db *gorm.DB, model any, id uint) (bool, error) {
	res := db.Delete(model, id)
	if res.Error != nil {
		return false, apperrors.NewDatabaseError(res.Error)
	}
	return res.RowsAffected > 0, nil
}
