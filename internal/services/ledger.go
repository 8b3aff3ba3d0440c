package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/vladimiradmaev/fittrack/internal/domain"
	"github.com/vladimiradmaev/fittrack/internal/utils"
)

// LedgerStore is the read side of the store the ledger aggregates over.
type LedgerStore interface {
	ListFoodLogs(ctx context.Context, userID uint, r domain.DateRange) ([]domain.FoodLogEntry, error)
	ListExerciseLogs(ctx context.Context, userID uint, r domain.DateRange) ([]domain.ExerciseLogEntry, error)
	ListWaterLogs(ctx context.Context, userID uint, r domain.DateRange) ([]domain.WaterLogEntry, error)
	GetFood(ctx context.Context, id uint) (*domain.FoodItem, error)
	GetExerciseType(ctx context.Context, id uint) (*domain.ExerciseType, error)
}

// Ledger aggregates a user's logs for one calendar day. Day boundaries
// are taken in loc.
type Ledger struct {
	store LedgerStore
	loc   *time.Location
}

func NewLedger(store LedgerStore, loc *time.Location) *Ledger {
	if loc == nil {
		loc = time.Local
	}
	return &Ledger{store: store, loc: loc}
}

func (l *Ledger) Location() *time.Location {
	return l.loc
}

// Remaining is goal minus consumed per field, floored at zero.
func Remaining(goal domain.NutrientGoal, consumed domain.NutrientTotals) domain.NutrientTotals {
	return domain.NutrientTotals{
		Calories: math.Max(goal.Calories-consumed.Calories, 0),
		Protein:  math.Max(goal.Protein-consumed.Protein, 0),
		Carbs:    math.Max(goal.Carbs-consumed.Carbs, 0),
		Fat:      math.Max(goal.Fat-consumed.Fat, 0),
	}
}

func Progress(consumed domain.NutrientTotals, goal domain.NutrientGoal) domain.NutrientProgress {
	return domain.NutrientProgress{
		Consumed:  consumed,
		Goal:      goal,
		Remaining: Remaining(goal, consumed),
	}
}

// FoodLogs returns the day's food entries with per-entry nutrients.
func (l *Ledger) FoodLogs(ctx context.Context, userID uint, date time.Time) ([]domain.FoodLogView, error) {
	entries, err := l.store.ListFoodLogs(ctx, userID, utils.DayBounds(date, l.loc))
	if err != nil {
		return nil, fmt.Errorf("listing food logs: %w", err)
	}

	foods := make(map[uint]*domain.FoodItem)
	views := make([]domain.FoodLogView, 0, len(entries))
	for _, e := range entries {
		food, ok := foods[e.FoodID]
		if !ok {
			food, err = l.store.GetFood(ctx, e.FoodID)
			if err != nil {
				return nil, fmt.Errorf("resolving food for log %d: %w", e.ID, err)
			}
			foods[e.FoodID] = food
		}
		views = append(views, domain.FoodLogView{
			FoodLogEntry: e,
			Food:         *food,
			Nutrients:    food.NutrientTotals.Scale(e.Quantity),
		})
	}
	return views, nil
}

func sumFoodLogs(views []domain.FoodLogView, meal domain.MealType) domain.NutrientTotals {
	var total domain.NutrientTotals
	for _, v := range views {
		if meal != "" && v.MealType != meal {
			continue
		}
		total = total.Add(v.Nutrients)
	}
	return total
}

// ConsumedTotals sums every food entry of the day.
func (l *Ledger) ConsumedTotals(ctx context.Context, userID uint, date time.Time) (domain.NutrientTotals, error) {
	views, err := l.FoodLogs(ctx, userID, date)
	if err != nil {
		return domain.NutrientTotals{}, err
	}
	return sumFoodLogs(views, ""), nil
}

func (l *Ledger) DailyProgress(ctx context.Context, userID uint, date time.Time, goal domain.NutrientGoal) (domain.NutrientProgress, error) {
	consumed, err := l.ConsumedTotals(ctx, userID, date)
	if err != nil {
		return domain.NutrientProgress{}, err
	}
	return Progress(consumed, goal), nil
}

func (l *Ledger) MealTotals(ctx context.Context, userID uint, date time.Time, meal domain.MealType) (domain.NutrientTotals, error) {
	views, err := l.FoodLogs(ctx, userID, date)
	if err != nil {
		return domain.NutrientTotals{}, err
	}
	return sumFoodLogs(views, meal), nil
}

// ExerciseLogs returns the day's exercise entries with burned calories.
func (l *Ledger) ExerciseLogs(ctx context.Context, userID uint, date time.Time) ([]domain.ExerciseLogView, error) {
	entries, err := l.store.ListExerciseLogs(ctx, userID, utils.DayBounds(date, l.loc))
	if err != nil {
		return nil, fmt.Errorf("listing exercise logs: %w", err)
	}

	types := make(map[uint]*domain.ExerciseType)
	views := make([]domain.ExerciseLogView, 0, len(entries))
	for _, e := range entries {
		et, ok := types[e.ExerciseTypeID]
		if !ok {
			et, err = l.store.GetExerciseType(ctx, e.ExerciseTypeID)
			if err != nil {
				return nil, fmt.Errorf("resolving exercise for log %d: %w", e.ID, err)
			}
			types[e.ExerciseTypeID] = et
		}
		views = append(views, domain.ExerciseLogView{
			ExerciseLogEntry: e,
			Exercise:         *et,
			CaloriesBurned:   et.CaloriesPerMinute * float64(e.DurationMinutes),
		})
	}
	return views, nil
}

func (l *Ledger) TotalCaloriesBurned(ctx context.Context, userID uint, date time.Time) (float64, error) {
	views, err := l.ExerciseLogs(ctx, userID, date)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, v := range views {
		total += v.CaloriesBurned
	}
	return total, nil
}

func (l *Ledger) WaterLogs(ctx context.Context, userID uint, date time.Time) ([]domain.WaterLogEntry, error) {
	entries, err := l.store.ListWaterLogs(ctx, userID, utils.DayBounds(date, l.loc))
	if err != nil {
		return nil, fmt.Errorf("listing water logs: %w", err)
	}
	return entries, nil
}

func (l *Ledger) TotalWaterMl(ctx context.Context, userID uint, date time.Time) (float64, error) {
	entries, err := l.WaterLogs(ctx, userID, date)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, e := range entries {
		total += e.AmountMl
	}
	return total, nil
}
