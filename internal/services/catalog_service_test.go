package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/vladimiradmaev/fittrack/internal/domain"
	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
	"github.com/vladimiradmaev/fittrack/internal/services"
	"github.com/vladimiradmaev/fittrack/internal/state"
	"github.com/vladimiradmaev/fittrack/internal/testutil"
)

func TestCreateFoodAwardsContributorOnce(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewTestStore(t)
	contributor := testutil.CreateUser(t, store, "kim")
	catalog := services.NewCatalogService(store, state.NewManager())

	food := testutil.WholeGrainToast()
	food.AddedByUserID = &contributor.ID
	if err := catalog.CreateFood(ctx, &food); err != nil {
		t.Fatalf("CreateFood: %v", err)
	}

	u, _ := store.GetUser(ctx, contributor.ID)
	if u.Points != 10 {
		t.Errorf("expected 10 points, got %d", u.Points)
	}

	// a food without contributor awards nothing
	plain := testutil.WholeGrainToast()
	if err := catalog.CreateFood(ctx, &plain); err != nil {
		t.Fatalf("CreateFood: %v", err)
	}
	u, _ = store.GetUser(ctx, contributor.ID)
	if u.Points != 10 {
		t.Errorf("expected points to stay at 10, got %d", u.Points)
	}
}

func TestCreateFoodConcurrentContributions(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewTestStore(t)
	contributor := testutil.CreateUser(t, store, "lou")
	catalog := services.NewCatalogService(store, state.NewManager())

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			food := testutil.WholeGrainToast()
			food.AddedByUserID = &contributor.ID
			if err := catalog.CreateFood(ctx, &food); err != nil {
				t.Errorf("CreateFood: %v", err)
			}
		}()
	}
	wg.Wait()

	u, _ := store.GetUser(ctx, contributor.ID)
	if u.Points != 250 {
		t.Errorf("expected 250 points, got %d", u.Points)
	}
}

func TestCreateFoodUnknownContributor(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewTestStore(t)
	catalog := services.NewCatalogService(store, state.NewManager())

	ghost := uint(404)
	food := testutil.WholeGrainToast()
	food.AddedByUserID = &ghost
	if err := catalog.CreateFood(ctx, &food); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	foods, _ := catalog.ListFoods(ctx)
	if len(foods) != 0 {
		t.Errorf("expected no food to be stored, got %d", len(foods))
	}
}

func TestCreateFoodValidation(t *testing.T) {
	catalog := services.NewCatalogService(testutil.NewTestStore(t), state.NewManager())

	tests := []struct {
		name string
		food domain.FoodItem
	}{
		{"no name", domain.FoodItem{ServingSize: 1}},
		{"zero serving", domain.FoodItem{Name: "Rice"}},
		{"negative fat", domain.FoodItem{Name: "Rice", ServingSize: 1, NutrientTotals: domain.NutrientTotals{Fat: -1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			food := tt.food
			if err := catalog.CreateFood(context.Background(), &food); !errors.Is(err, apperrors.ErrInvalidInput) {
				t.Errorf("expected invalid input, got %v", err)
			}
		})
	}
}

func TestSearchFoods(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewTestStore(t)
	testutil.CreateFood(t, store, testutil.WholeGrainToast())
	testutil.CreateFood(t, store, domain.FoodItem{Name: "Greek Yogurt", ServingSize: 170, ServingUnit: "g"})
	testutil.CreateFood(t, store, domain.FoodItem{Name: "Toasted Almonds", ServingSize: 28, ServingUnit: "g"})
	catalog := services.NewCatalogService(store, state.NewManager())

	got, err := catalog.SearchFoods(ctx, "TOAST")
	if err != nil {
		t.Fatalf("SearchFoods: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d: %+v", len(got), got)
	}
	for _, f := range got {
		if f.Name == "Greek Yogurt" {
			t.Errorf("unexpected match %q", f.Name)
		}
	}

	all, _ := catalog.SearchFoods(ctx, "  ")
	if len(all) != 3 {
		t.Errorf("expected empty query to list all 3 foods, got %d", len(all))
	}
}

func TestSearchExercises(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewTestStore(t)
	testutil.CreateExercise(t, store, "Running", 11)
	testutil.CreateExercise(t, store, "Rowing", 8)
	catalog := services.NewCatalogService(store, state.NewManager())

	got, err := catalog.SearchExercises(ctx, "run")
	if err != nil {
		t.Fatalf("SearchExercises: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Running" {
		t.Errorf("expected only Running, got %+v", got)
	}
}

func TestCreateProductValidation(t *testing.T) {
	catalog := services.NewCatalogService(testutil.NewTestStore(t), state.NewManager())

	tests := []domain.Product{
		{Name: "", PriceCents: 100},
		{Name: "Bar", PriceCents: -1},
		{Name: "Bar", PriceCents: 100, DiscountPercent: 101},
		{Name: "Bar", PriceCents: 100, PointsDiscountPercent: -5},
		{Name: "Bar", PriceCents: 100, PointsToRedeem: -1},
	}
	for i, p := range tests {
		if err := catalog.CreateProduct(context.Background(), &p); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Errorf("case %d: expected invalid input, got %v", i, err)
		}
	}

	ok := whey()
	if err := catalog.CreateProduct(context.Background(), &ok); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	listed, _ := catalog.ListProducts(context.Background(), "supplements")
	if len(listed) != 1 {
		t.Errorf("expected 1 supplement, got %d", len(listed))
	}
	none, _ := catalog.ListProducts(context.Background(), "apparel")
	if len(none) != 0 {
		t.Errorf("expected no apparel, got %d", len(none))
	}
}
