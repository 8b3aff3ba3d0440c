package repository

import (
	"context"

	"github.com/vladimiradmaev/fittrack/internal/domain"
	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
	"gorm.io/gorm"
)

func (s *PostgresStore) dayQuery(ctx context.Context, userID uint, r domain.DateRange) *gorm.DB {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND logged_at BETWEEN ? AND ?", userID, r.From, r.To).
		Order("logged_at, id")
}

func (s *PostgresStore) CreateFoodLog(ctx context.Context, entry *domain.FoodLogEntry) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

func (s *PostgresStore) ListFoodLogs(ctx context.Context, userID uint, r domain.DateRange) ([]domain.FoodLogEntry, error) {
	var entries []domain.FoodLogEntry
	if err := s.dayQuery(ctx, userID, r).Find(&entries).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return entries, nil
}

func (s *PostgresStore) DeleteFoodLog(ctx context.Context, id uint) (bool, error) {
	return deleteByID(s.db.WithContext(ctx), &domain.FoodLogEntry{}, id)
}

func (s *PostgresStore) CreateExerciseLog(ctx context.Context, entry *domain.ExerciseLogEntry) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

func (s *PostgresStore) ListExerciseLogs(ctx context.Context, userID uint, r domain.DateRange) ([]domain.ExerciseLogEntry, error) {
	var entries []domain.ExerciseLogEntry
	if err := s.dayQuery(ctx, userID, r).Find(&entries).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return entries, nil
}

func (s *PostgresStore) DeleteExerciseLog(ctx context.Context, id uint) (bool, error) {
	return deleteByID(s.db.WithContext(ctx), &domain.ExerciseLogEntry{}, id)
}

func (s *PostgresStore) CreateWaterLog(ctx context.Context, entry *domain.WaterLogEntry) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

func (s *PostgresStore) ListWaterLogs(ctx context.Context, userID uint, r domain.DateRange) ([]domain.WaterLogEntry, error) {
	var entries []domain.WaterLogEntry
	if err := s.dayQuery(ctx, userID, r).Find(&entries).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return entries, nil
}

func (s *PostgresStore) DeleteWaterLog(ctx context.Context, id uint) (bool, error) {
	return deleteByID(s.db.WithContext(ctx), &domain.WaterLogEntry{}, id)
}
