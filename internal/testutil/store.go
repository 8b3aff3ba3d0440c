package testutil

import (
	"context"
	"sync"
	"testing"

	"github.com/vladimiradmaev/fittrack/internal/domain"
	"github.com/vladimiradmaev/fittrack/internal/repository"
)

func NewTestStore(t *testing.T) *repository.MemoryStore {
	t.Helper()
	return repository.NewMemoryStore()
}

func CreateUser(t *testing.T, store domain.UserStore, name string) *domain.User {
	t.Helper()
	u := &domain.User{Name: name, Goals: domain.DefaultGoals}
	if err := store.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("creating user: %v", err)
	}
	return u
}

// WholeGrainToast is one slice of toast.
func WholeGrainToast() domain.FoodItem {
	return domain.FoodItem{
		Name:           "Whole Grain Toast",
		NutrientTotals: domain.NutrientTotals{Calories: 90, Protein: 3, Carbs: 16, Fat: 1},
		ServingSize:    1,
		ServingUnit:    "slice",
	}
}

func CreateFood(t *testing.T, store domain.FoodStore, food domain.FoodItem) *domain.FoodItem {
	t.Helper()
	if err := store.CreateFood(context.Background(), &food, 0); err != nil {
		t.Fatalf("creating food: %v", err)
	}
	return &food
}

// GrantPoints credits a user by contributing a food worth points.
func GrantPoints(t *testing.T, store domain.FoodStore, userID uint, points int) {
	t.Helper()
	food := &domain.FoodItem{Name: "Rice Cakes", ServingSize: 1, ServingUnit: "piece", AddedByUserID: &userID}
	if err := store.CreateFood(context.Background(), food, points); err != nil {
		t.Fatalf("granting points: %v", err)
	}
}

func CreateExercise(t *testing.T, store domain.ExerciseStore, name string, perMinute float64) *domain.ExerciseType {
	t.Helper()
	e := &domain.ExerciseType{Name: name, CaloriesPerMinute: perMinute, Category: "cardio"}
	if err := store.CreateExerciseType(context.Background(), e); err != nil {
		t.Fatalf("creating exercise: %v", err)
	}
	return e
}

func CreateProduct(t *testing.T, store domain.ProductStore, product domain.Product) *domain.Product {
	t.Helper()
	if err := store.CreateProduct(context.Background(), &product); err != nil {
		t.Fatalf("creating product: %v", err)
	}
	return &product
}

func CreateRecipe(t *testing.T, store domain.RecipeStore, name string, tag domain.RecipeGoal, calories float64) *domain.Recipe {
	t.Helper()
	r := &domain.Recipe{
		Name:           name,
		Ingredients:    []string{},
		NutrientTotals: domain.NutrientTotals{Calories: calories},
		GoalTag:        tag,
	}
	if err := store.CreateRecipe(context.Background(), r); err != nil {
		t.Fatalf("creating recipe: %v", err)
	}
	return r
}

// StubGenerator returns a canned reply and records the requests it saw.
type StubGenerator struct {
	Reply string
	Err   error

	mu    sync.Mutex
	Goals []domain.RecipeGoal
}

func (g *StubGenerator) Generate(ctx context.Context, goal domain.RecipeGoal, remaining domain.NutrientTotals) (string, error) {
	g.mu.Lock()
	g.Goals = append(g.Goals, goal)
	g.mu.Unlock()
	return g.Reply, g.Err
}
