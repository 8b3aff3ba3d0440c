package repository

import (
	"context"

	"github.com/vladimiradmaev/fittrack/internal/domain"
	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
	"gorm.io/gorm"
)

func (s *PostgresStore) CreateUser(ctx context.Context, user *domain.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

func (s *PostgresStore) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, lookupErr(err, "user", id)
	}
	return &user, nil
}

func (s *PostgresStore) UpdateUser(ctx context.Context, id uint, patch domain.UserPatch) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(forUpdate).First(&user, id).Error; err != nil {
			return lookupErr(err, "user", id)
		}
		applyUserPatch(&user, patch)
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, passThrough(err)
	}
	return &user, nil
}
