package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vladimiradmaev/fittrack/internal/domain"
	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
	"github.com/vladimiradmaev/fittrack/internal/services"
	"github.com/vladimiradmaev/fittrack/internal/testutil"
)

var day = time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC)

func TestMealTotalsToastBreakfast(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewTestStore(t)
	user := testutil.CreateUser(t, store, "ana")
	toast := testutil.CreateFood(t, store, testutil.WholeGrainToast())

	logs := services.NewLogService(store)
	if _, err := logs.CreateFoodLog(ctx, &domain.FoodLogEntry{
		UserID: user.ID, FoodID: toast.ID, Quantity: 2, MealType: domain.MealBreakfast,
		LoggedAt: day.Add(8 * time.Hour),
	}); err != nil {
		t.Fatalf("CreateFoodLog: %v", err)
	}

	ledger := services.NewLedger(store, time.UTC)
	got, err := ledger.MealTotals(ctx, user.ID, day, domain.MealBreakfast)
	if err != nil {
		t.Fatalf("MealTotals: %v", err)
	}

	want := domain.NutrientTotals{Calories: 180, Protein: 6, Carbs: 32, Fat: 2}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}

	lunch, err := ledger.MealTotals(ctx, user.ID, day, domain.MealLunch)
	if err != nil {
		t.Fatalf("MealTotals: %v", err)
	}
	if lunch != (domain.NutrientTotals{}) {
		t.Errorf("expected empty lunch, got %+v", lunch)
	}
}

func TestDailyProgressEmptyDay(t *testing.T) {
	store := testutil.NewTestStore(t)
	ledger := services.NewLedger(store, time.UTC)

	progress, err := ledger.DailyProgress(context.Background(), 42, day, domain.DefaultGoals)
	if err != nil {
		t.Fatalf("DailyProgress: %v", err)
	}
	if progress.Consumed != (domain.NutrientTotals{}) {
		t.Errorf("expected zero consumption, got %+v", progress.Consumed)
	}
	if progress.Remaining != domain.DefaultGoals {
		t.Errorf("expected full goal remaining, got %+v", progress.Remaining)
	}
}

func TestDailyProgressRespectsDayBoundaries(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewTestStore(t)
	user := testutil.CreateUser(t, store, "ben")
	toast := testutil.CreateFood(t, store, testutil.WholeGrainToast())

	for _, at := range []time.Time{
		day.Add(-time.Millisecond),               // previous day
		day,                                      // first instant
		day.Add(24*time.Hour - time.Millisecond), // last instant
		day.Add(24 * time.Hour),                  // next day
	} {
		if err := store.CreateFoodLog(ctx, &domain.FoodLogEntry{
			UserID: user.ID, FoodID: toast.ID, Quantity: 1, MealType: domain.MealSnacks, LoggedAt: at,
		}); err != nil {
			t.Fatalf("CreateFoodLog: %v", err)
		}
	}

	ledger := services.NewLedger(store, time.UTC)
	progress, err := ledger.DailyProgress(ctx, user.ID, day.Add(12*time.Hour), domain.DefaultGoals)
	if err != nil {
		t.Fatalf("DailyProgress: %v", err)
	}
	if progress.Consumed.Calories != 180 {
		t.Errorf("expected two entries (180 kcal) inside the day, got %v", progress.Consumed.Calories)
	}

	again, _ := ledger.DailyProgress(ctx, user.ID, day.Add(12*time.Hour), domain.DefaultGoals)
	if again != progress {
		t.Errorf("expected repeated reads to match: %+v vs %+v", progress, again)
	}
}

func TestRemainingNeverNegative(t *testing.T) {
	goal := domain.NutrientGoal{Calories: 2000, Protein: 100, Carbs: 200, Fat: 60}
	consumed := domain.NutrientTotals{Calories: 2500, Protein: 40, Carbs: 200, Fat: 80}

	got := services.Remaining(goal, consumed)
	want := domain.NutrientTotals{Calories: 0, Protein: 60, Carbs: 0, Fat: 0}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestTotalsForWaterAndExercise(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewTestStore(t)
	user := testutil.CreateUser(t, store, "cy")
	run := testutil.CreateExercise(t, store, "Running", 11.5)

	logs := services.NewLogService(store)
	for _, ml := range []float64{250, 500} {
		if _, err := logs.CreateWaterLog(ctx, &domain.WaterLogEntry{UserID: user.ID, AmountMl: ml, LoggedAt: day.Add(time.Hour)}); err != nil {
			t.Fatalf("CreateWaterLog: %v", err)
		}
	}
	view, err := logs.CreateExerciseLog(ctx, &domain.ExerciseLogEntry{UserID: user.ID, ExerciseTypeID: run.ID, DurationMinutes: 30, LoggedAt: day.Add(2 * time.Hour)})
	if err != nil {
		t.Fatalf("CreateExerciseLog: %v", err)
	}
	if view.CaloriesBurned != 345 {
		t.Errorf("expected 345 kcal burned on create, got %v", view.CaloriesBurned)
	}

	ledger := services.NewLedger(store, time.UTC)
	water, err := ledger.TotalWaterMl(ctx, user.ID, day)
	if err != nil {
		t.Fatalf("TotalWaterMl: %v", err)
	}
	if water != 750 {
		t.Errorf("expected 750 ml, got %v", water)
	}

	burned, err := ledger.TotalCaloriesBurned(ctx, user.ID, day)
	if err != nil {
		t.Fatalf("TotalCaloriesBurned: %v", err)
	}
	if burned != 345 {
		t.Errorf("expected 345 kcal, got %v", burned)
	}

	nothing, _ := ledger.TotalWaterMl(ctx, user.ID, day.AddDate(0, 0, 1))
	if nothing != 0 {
		t.Errorf("expected 0 ml the next day, got %v", nothing)
	}
}

func TestFoodLogsUnknownFood(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewTestStore(t)
	if err := store.CreateFoodLog(ctx, &domain.FoodLogEntry{UserID: 1, FoodID: 99, Quantity: 1, MealType: domain.MealLunch, LoggedAt: day}); err != nil {
		t.Fatalf("CreateFoodLog: %v", err)
	}

	_, err := services.NewLedger(store, time.UTC).FoodLogs(ctx, 1, day)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestCreateFoodLogValidation(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewTestStore(t)
	user := testutil.CreateUser(t, store, "dee")
	toast := testutil.CreateFood(t, store, testutil.WholeGrainToast())
	logs := services.NewLogService(store)

	tests := []struct {
		name  string
		entry domain.FoodLogEntry
		want  error
	}{
		{"zero quantity", domain.FoodLogEntry{UserID: user.ID, FoodID: toast.ID, Quantity: 0, MealType: domain.MealLunch}, apperrors.ErrInvalidInput},
		{"bad meal", domain.FoodLogEntry{UserID: user.ID, FoodID: toast.ID, Quantity: 1, MealType: "brunch"}, apperrors.ErrInvalidInput},
		{"unknown food", domain.FoodLogEntry{UserID: user.ID, FoodID: 77, Quantity: 1, MealType: domain.MealLunch}, apperrors.ErrNotFound},
		{"unknown user", domain.FoodLogEntry{UserID: 77, FoodID: toast.ID, Quantity: 1, MealType: domain.MealLunch}, apperrors.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := tt.entry
			if _, err := logs.CreateFoodLog(ctx, &entry); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	entry := domain.FoodLogEntry{UserID: user.ID, FoodID: toast.ID, Quantity: 1, MealType: "Snack"}
	view, err := logs.CreateFoodLog(ctx, &entry)
	if err != nil {
		t.Fatalf("CreateFoodLog: %v", err)
	}
	if view.MealType != domain.MealSnacks {
		t.Errorf("expected snack to normalize to snacks, got %q", view.MealType)
	}
	if view.LoggedAt.IsZero() {
		t.Error("expected LoggedAt to default to now")
	}
}

func TestDeleteLogReportsMissing(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewTestStore(t)
	user := testutil.CreateUser(t, store, "eli")
	logs := services.NewLogService(store)

	entry, err := logs.CreateWaterLog(ctx, &domain.WaterLogEntry{UserID: user.ID, AmountMl: 300})
	if err != nil {
		t.Fatalf("CreateWaterLog: %v", err)
	}
	if ok, err := logs.DeleteWaterLog(ctx, entry.ID); err != nil || !ok {
		t.Fatalf("expected delete to succeed, got %v, %v", ok, err)
	}
	if ok, err := logs.DeleteWaterLog(ctx, entry.ID); err != nil || ok {
		t.Errorf("expected second delete to report false, got %v, %v", ok, err)
	}
}
