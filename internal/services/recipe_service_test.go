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

func recipe(id uint, tag domain.RecipeGoal, calories float64) domain.Recipe {
	return domain.Recipe{ID: id, GoalTag: tag, NutrientTotals: domain.NutrientTotals{Calories: calories}}
}

func ids(recipes []domain.Recipe) []uint {
	out := make([]uint, len(recipes))
	for i, r := range recipes {
		out[i] = r.ID
	}
	return out
}

func equalIDs(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRecommendFiltersAndRanks(t *testing.T) {
	catalog := []domain.Recipe{
		recipe(1, domain.RecipeGoalFatLoss, 300),
		recipe(2, domain.RecipeGoalMuscleGain, 800),
		recipe(3, domain.RecipeGoalFatLoss, 520),
		recipe(4, domain.RecipeGoalFatLoss, 480),
	}

	got := services.Recommend(domain.RecipeGoalFatLoss, domain.NutrientTotals{Calories: 500}, catalog)
	// 3 and 4 tie at 20 kcal away and keep catalog order
	if want := []uint{3, 4, 1}; !equalIDs(ids(got), want) {
		t.Errorf("expected %v, got %v", want, ids(got))
	}
}

func TestRecommendFallsBackToFullCatalog(t *testing.T) {
	catalog := []domain.Recipe{
		recipe(1, domain.RecipeGoalFatLoss, 300),
		recipe(2, domain.RecipeGoalMuscleGain, 800),
	}

	got := services.Recommend(domain.RecipeGoalHighProtein, domain.NutrientTotals{Calories: 700}, catalog)
	if want := []uint{2, 1}; !equalIDs(ids(got), want) {
		t.Errorf("expected %v, got %v", want, ids(got))
	}

	if got := services.Recommend(domain.RecipeGoalFatLoss, domain.NutrientTotals{}, nil); len(got) != 0 {
		t.Errorf("expected nothing from an empty catalog, got %v", ids(got))
	}
}

func newRecipeService(t *testing.T, gen services.RecipeGenerator) *services.RecipeService {
	t.Helper()
	store := testutil.NewTestStore(t)
	return services.NewRecipeService(store, store, services.NewLedger(store, time.UTC), gen, time.Second)
}

func TestGenerateStoresValidRecipe(t *testing.T) {
	gen := &testutil.StubGenerator{Reply: "```json\n" + `{
		"name": "Chicken Quinoa Bowl",
		"description": "Lean and filling",
		"ingredients": ["150g chicken breast", "80g quinoa"],
		"instructions": ["Cook quinoa", "Grill chicken"],
		"calories": 550, "protein": 45, "carbs": 50, "fat": 12
	}` + "\n```"}
	svc := newRecipeService(t, gen)

	got, err := svc.Generate(context.Background(), "musclegain", domain.NutrientTotals{Calories: 600, Protein: 50, Carbs: 60, Fat: 15})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got.ID == 0 {
		t.Error("expected a stored id")
	}
	if got.ImageURL != services.PlaceholderImage(domain.RecipeGoalMuscleGain) {
		t.Errorf("expected muscle gain placeholder, got %q", got.ImageURL)
	}
	if got.Instructions != "Cook quinoa\nGrill chicken" {
		t.Errorf("expected joined instructions, got %q", got.Instructions)
	}
	if got.Calories != 550 || got.Fat != 12 {
		t.Errorf("unexpected nutrients %+v", got.NutrientTotals)
	}

	stored, err := svc.Get(context.Background(), got.ID)
	if err != nil || stored.Name != "Chicken Quinoa Bowl" {
		t.Errorf("expected recipe to be retrievable, got %+v (%v)", stored, err)
	}
	if len(gen.Goals) != 1 || gen.Goals[0] != domain.RecipeGoalMuscleGain {
		t.Errorf("expected one call for musclegain, got %v", gen.Goals)
	}
}

func TestGenerateDefaultImage(t *testing.T) {
	gen := &testutil.StubGenerator{Reply: `{"name":"Salad","calories":300,"protein":20,"carbs":20,"fat":10}`}
	svc := newRecipeService(t, gen)

	got, err := svc.Generate(context.Background(), "fatloss", domain.NutrientTotals{Calories: 400})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got.ImageURL != services.PlaceholderImage(domain.RecipeGoalFatLoss) {
		t.Errorf("expected default placeholder, got %q", got.ImageURL)
	}
	if got.GoalTag != domain.RecipeGoalFatLoss {
		t.Errorf("expected fatloss tag, got %q", got.GoalTag)
	}
}

func TestGenerateFailures(t *testing.T) {
	tests := []struct {
		name string
		gen  *testutil.StubGenerator
	}{
		{"collaborator error", &testutil.StubGenerator{Err: errors.New("rate limited")}},
		{"not json", &testutil.StubGenerator{Reply: "Sorry, I cannot help with that."}},
		{"missing fat", &testutil.StubGenerator{Reply: `{"name":"Oats","calories":300,"protein":10,"carbs":50}`}},
		{"missing name", &testutil.StubGenerator{Reply: `{"calories":300,"protein":10,"carbs":50,"fat":5}`}},
		{"string calories", &testutil.StubGenerator{Reply: `{"name":"Oats","calories":"300","protein":10,"carbs":50,"fat":5}`}},
		{"negative protein", &testutil.StubGenerator{Reply: `{"name":"Oats","calories":300,"protein":-1,"carbs":50,"fat":5}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newRecipeService(t, tt.gen)
			_, err := svc.Generate(context.Background(), "maintenance", domain.NutrientTotals{Calories: 500})
			if !errors.Is(err, apperrors.ErrGenerationFailed) {
				t.Errorf("expected generation failure, got %v", err)
			}
			recipes, _ := svc.List(context.Background(), "")
			if len(recipes) != 0 {
				t.Errorf("expected nothing stored, got %d recipes", len(recipes))
			}
		})
	}
}

func TestGenerateRejectsUnknownGoal(t *testing.T) {
	gen := &testutil.StubGenerator{}
	svc := newRecipeService(t, gen)

	if _, err := svc.Generate(context.Background(), "bulk", domain.NutrientTotals{}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}
	if len(gen.Goals) != 0 {
		t.Error("expected the generator not to be called")
	}
}

func TestRecommendForUser(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewTestStore(t)
	user := testutil.CreateUser(t, store, "max")
	goal := domain.GoalMuscleGain
	if _, err := store.UpdateUser(ctx, user.ID, domain.UserPatch{
		Profile: &domain.Profile{WeightKg: 80, HeightCm: 180, AgeYears: 30, Sex: domain.SexMale, ActivityLevel: domain.ActivityActive, Goal: goal},
		Goals:   &domain.NutrientGoal{Calories: 1000, Protein: 100, Carbs: 100, Fat: 30},
	}); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	toast := testutil.CreateFood(t, store, testutil.WholeGrainToast())
	if err := store.CreateFoodLog(ctx, &domain.FoodLogEntry{
		UserID: user.ID, FoodID: toast.ID, Quantity: 2, MealType: domain.MealBreakfast, LoggedAt: day.Add(7 * time.Hour),
	}); err != nil {
		t.Fatalf("CreateFoodLog: %v", err)
	}

	testutil.CreateRecipe(t, store, "Big Pasta", domain.RecipeGoalMuscleGain, 1200)
	near := testutil.CreateRecipe(t, store, "Rice Bowl", domain.RecipeGoalMuscleGain, 800)
	testutil.CreateRecipe(t, store, "Salad", domain.RecipeGoalFatLoss, 820)

	svc := services.NewRecipeService(store, store, services.NewLedger(store, time.UTC), &testutil.StubGenerator{}, time.Second)
	rec, err := svc.RecommendForUser(ctx, user.ID, day, 1)
	if err != nil {
		t.Fatalf("RecommendForUser: %v", err)
	}
	if rec.Remaining.Calories != 820 {
		t.Errorf("expected 820 kcal remaining, got %v", rec.Remaining.Calories)
	}
	if rec.Goal != domain.RecipeGoalMuscleGain {
		t.Errorf("expected musclegain, got %q", rec.Goal)
	}
	if len(rec.Recipes) != 1 || rec.Recipes[0].ID != near.ID {
		t.Errorf("expected only %q, got %+v", near.Name, rec.Recipes)
	}
}

func TestListRecipesByGoal(t *testing.T) {
	store := testutil.NewTestStore(t)
	testutil.CreateRecipe(t, store, "A", domain.RecipeGoalFatLoss, 100)
	testutil.CreateRecipe(t, store, "B", domain.RecipeGoalHighProtein, 100)
	svc := services.NewRecipeService(store, store, services.NewLedger(store, time.UTC), &testutil.StubGenerator{}, 0)

	got, err := svc.List(context.Background(), "HighProtein")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].Name != "B" {
		t.Errorf("expected only B, got %+v", got)
	}
	if _, err := svc.List(context.Background(), "keto"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}
}
