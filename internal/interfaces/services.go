package interfaces

import (
	"context"
	"time"

	"github.com/vladimiradmaev/fittrack/internal/domain"
	"github.com/vladimiradmaev/fittrack/internal/services"
)

// UserServiceInterface defines the contract for user operations
type UserServiceInterface interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id uint) (*domain.User, error)
	UpdateUser(ctx context.Context, id uint, patch domain.UserPatch) (*domain.User, error)
	ComputeTargets(ctx context.Context, userID uint, metrics services.BodyMetrics, apply bool) (domain.NutrientGoal, error)
}

// CatalogServiceInterface covers foods, exercise types and products.
type CatalogServiceInterface interface {
	ListFoods(ctx context.Context) ([]domain.FoodItem, error)
	SearchFoods(ctx context.Context, query string) ([]domain.FoodItem, error)
	CreateFood(ctx context.Context, food *domain.FoodItem) error

	ListExercises(ctx context.Context) ([]domain.ExerciseType, error)
	SearchExercises(ctx context.Context, query string) ([]domain.ExerciseType, error)
	CreateExercise(ctx context.Context, exercise *domain.ExerciseType) error

	ListProducts(ctx context.Context, category string) ([]domain.Product, error)
	GetProduct(ctx context.Context, id uint) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) error
}

// LogServiceInterface records and removes diary entries.
type LogServiceInterface interface {
	CreateFoodLog(ctx context.Context, entry *domain.FoodLogEntry) (*domain.FoodLogView, error)
	DeleteFoodLog(ctx context.Context, id uint) (bool, error)
	CreateExerciseLog(ctx context.Context, entry *domain.ExerciseLogEntry) (*domain.ExerciseLogView, error)
	DeleteExerciseLog(ctx context.Context, id uint) (bool, error)
	CreateWaterLog(ctx context.Context, entry *domain.WaterLogEntry) (*domain.WaterLogEntry, error)
	DeleteWaterLog(ctx context.Context, id uint) (bool, error)
}

// LedgerInterface answers per-day questions about a user's diary.
type LedgerInterface interface {
	Location() *time.Location
	FoodLogs(ctx context.Context, userID uint, date time.Time) ([]domain.FoodLogView, error)
	DailyProgress(ctx context.Context, userID uint, date time.Time, goal domain.NutrientGoal) (domain.NutrientProgress, error)
	MealTotals(ctx context.Context, userID uint, date time.Time, meal domain.MealType) (domain.NutrientTotals, error)
	ExerciseLogs(ctx context.Context, userID uint, date time.Time) ([]domain.ExerciseLogView, error)
	TotalCaloriesBurned(ctx context.Context, userID uint, date time.Time) (float64, error)
	WaterLogs(ctx context.Context, userID uint, date time.Time) ([]domain.WaterLogEntry, error)
	TotalWaterMl(ctx context.Context, userID uint, date time.Time) (float64, error)
}

// RecipeServiceInterface defines the contract for recipe operations
type RecipeServiceInterface interface {
	List(ctx context.Context, goal string) ([]domain.Recipe, error)
	Get(ctx context.Context, id uint) (*domain.Recipe, error)
	Create(ctx context.Context, recipe *domain.Recipe) error
	RecommendForUser(ctx context.Context, userID uint, date time.Time, limit int) (*services.Recommendation, error)
	Generate(ctx context.Context, goal string, remaining domain.NutrientTotals) (*domain.Recipe, error)
}

// CartServiceInterface defines the contract for the shopping cart
type CartServiceInterface interface {
	AddToCart(ctx context.Context, userID, productID uint, quantity int, usePoints bool) (*domain.CartLine, error)
	UpdateCartLine(ctx context.Context, id uint, patch domain.CartLinePatch) (*domain.CartLine, error)
	RemoveCartLine(ctx context.Context, id uint) (bool, error)
	ClearCart(ctx context.Context, userID uint) error
	Cart(ctx context.Context, userID uint) (*services.CartSummary, error)
}

var (
	_ UserServiceInterface    = (*services.UserService)(nil)
	_ CatalogServiceInterface = (*services.CatalogService)(nil)
	_ LogServiceInterface     = (*services.LogService)(nil)
	_ LedgerInterface         = (*services.Ledger)(nil)
	_ RecipeServiceInterface  = (*services.RecipeService)(nil)
	_ CartServiceInterface    = (*services.CartService)(nil)
)
