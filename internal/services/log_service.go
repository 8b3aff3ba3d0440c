package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vladimiradmaev/fittrack/internal/domain"
	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
)

type LogServiceStore interface {
	domain.LogStore
	GetUser(ctx context.Context, id uint) (*domain.User, error)
	GetFood(ctx context.Context, id uint) (*domain.FoodItem, error)
	GetExerciseType(ctx context.Context, id uint) (*domain.ExerciseType, error)
}

// LogService records food, exercise and water entries. Reads go through
// the Ledger.
type LogService struct {
	store LogServiceStore
	now   func() time.Time
}

func NewLogService(store LogServiceStore) *LogService {
	return &LogService{store: store, now: time.Now}
}

func (s *LogService) stamp(t time.Time) time.Time {
	if t.IsZero() {
		return s.now()
	}
	return t
}

func (s *LogService) CreateFoodLog(ctx context.Context, entry *domain.FoodLogEntry) (*domain.FoodLogView, error) {
	if entry.Quantity <= 0 {
		return nil, apperrors.NewValidationError("quantity must be positive, got %v", entry.Quantity)
	}
	meal, ok := domain.ParseMealType(string(entry.MealType))
	if !ok {
		return nil, apperrors.NewValidationError("unknown meal type %q", entry.MealType)
	}
	if _, err := s.store.GetUser(ctx, entry.UserID); err != nil {
		return nil, err
	}
	food, err := s.store.GetFood(ctx, entry.FoodID)
	if err != nil {
		return nil, err
	}

	entry.MealType = meal
	entry.LoggedAt = s.stamp(entry.LoggedAt)
	if err := s.store.CreateFoodLog(ctx, entry); err != nil {
		return nil, fmt.Errorf("creating food log: %w", err)
	}
	return &domain.FoodLogView{
		FoodLogEntry: *entry,
		Food:         *food,
		Nutrients:    food.NutrientTotals.Scale(entry.Quantity),
	}, nil
}

func (s *LogService) DeleteFoodLog(ctx context.Context, id uint) (bool, error) {
	return s.store.DeleteFoodLog(ctx, id)
}

func (s *LogService) CreateExerciseLog(ctx context.Context, entry *domain.ExerciseLogEntry) (*domain.ExerciseLogView, error) {
	if entry.DurationMinutes <= 0 {
		return nil, apperrors.NewValidationError("duration must be positive, got %d", entry.DurationMinutes)
	}
	if _, err := s.store.GetUser(ctx, entry.UserID); err != nil {
		return nil, err
	}
	exercise, err := s.store.GetExerciseType(ctx, entry.ExerciseTypeID)
	if err != nil {
		return nil, err
	}

	entry.LoggedAt = s.stamp(entry.LoggedAt)
	if err := s.store.CreateExerciseLog(ctx, entry); err != nil {
		return nil, fmt.Errorf("creating exercise log: %w", err)
	}
	return &domain.ExerciseLogView{
		ExerciseLogEntry: *entry,
		Exercise:         *exercise,
		CaloriesBurned:   exercise.CaloriesPerMinute * float64(entry.DurationMinutes),
	}, nil
}

func (s *LogService) DeleteExerciseLog(ctx context.Context, id uint) (bool, error) {
	return s.store.DeleteExerciseLog(ctx, id)
}

func (s *LogService) CreateWaterLog(ctx context.Context, entry *domain.WaterLogEntry) (*domain.WaterLogEntry, error) {
	if entry.AmountMl <= 0 {
		return nil, apperrors.NewValidationError("amount must be positive, got %v", entry.AmountMl)
	}
	if _, err := s.store.GetUser(ctx, entry.UserID); err != nil {
		return nil, err
	}

	entry.LoggedAt = s.stamp(entry.LoggedAt)
	if err := s.store.CreateWaterLog(ctx, entry); err != nil {
		return nil, fmt.Errorf("creating water log: %w", err)
	}
	return entry, nil
}

func (s *LogService) DeleteWaterLog(ctx context.Context, id uint) (bool, error) {
	return s.store.DeleteWaterLog(ctx, id)
}
