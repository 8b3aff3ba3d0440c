package domain

import (
	"context"
	"time"
)

// DateRange is an inclusive [From, To] interval on LoggedAt.
type DateRange struct {
	From time.Time
	To   time.Time
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

// Stores report missing records with errors matching apperrors.ErrNotFound.
// Delete methods report whether a record was removed instead.

type UserStore interface {
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id uint) (*User, error)
	UpdateUser(ctx context.Context, id uint, patch UserPatch) (*User, error)
}

type FoodStore interface {
	ListFoods(ctx context.Context) ([]FoodItem, error)
	GetFood(ctx context.Context, id uint) (*FoodItem, error)
	// CreateFood inserts the item and, when it has a contributor, credits
	// awardPoints to that user in the same atomic step.
	CreateFood(ctx context.Context, food *FoodItem, awardPoints int) error
}

type ExerciseStore interface {
	ListExerciseTypes(ctx context.Context) ([]ExerciseType, error)
	GetExerciseType(ctx context.Context, id uint) (*ExerciseType, error)
	CreateExerciseType(ctx context.Context, exercise *ExerciseType) error
}

type LogStore interface {
	CreateFoodLog(ctx context.Context, entry *FoodLogEntry) error
	ListFoodLogs(ctx context.Context, userID uint, r DateRange) ([]FoodLogEntry, error)
	DeleteFoodLog(ctx context.Context, id uint) (bool, error)

	CreateExerciseLog(ctx context.Context, entry *ExerciseLogEntry) error
	ListExerciseLogs(ctx context.Context, userID uint, r DateRange) ([]ExerciseLogEntry, error)
	DeleteExerciseLog(ctx context.Context, id uint) (bool, error)

	CreateWaterLog(ctx context.Context, entry *WaterLogEntry) error
	ListWaterLogs(ctx context.Context, userID uint, r DateRange) ([]WaterLogEntry, error)
	DeleteWaterLog(ctx context.Context, id uint) (bool, error)
}

type RecipeStore interface {
	// ListRecipes returns recipes in insertion order; an empty tag lists all.
	ListRecipes(ctx context.Context, tag RecipeGoal) ([]Recipe, error)
	GetRecipe(ctx context.Context, id uint) (*Recipe, error)
	CreateRecipe(ctx context.Context, recipe *Recipe) error
}

type ProductStore interface {
	ListProducts(ctx context.Context, category string) ([]Product, error)
	GetProduct(ctx context.Context, id uint) (*Product, error)
	CreateProduct(ctx context.Context, product *Product) error
}

type CartStore interface {
	ListCartLines(ctx context.Context, userID uint) ([]CartLine, error)
	GetCartLine(ctx context.Context, id uint) (*CartLine, error)
	// AddCartLine merges into an existing line for the same user and
	// product: quantities add up and UsePoints is overwritten.
	AddCartLine(ctx context.Context, line *CartLine) (*CartLine, error)
	UpdateCartLine(ctx context.Context, id uint, patch CartLinePatch) (*CartLine, error)
	DeleteCartLine(ctx context.Context, id uint) (bool, error)
	ClearCart(ctx context.Context, userID uint) error
}

// Store is the full persistence collaborator.
type Store interface {
	UserStore
	FoodStore
	ExerciseStore
	LogStore
	RecipeStore
	ProductStore
	CartStore
}
