package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/vladimiradmaev/fittrack/internal/domain"
	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
	"github.com/vladimiradmaev/fittrack/internal/logger"
	"github.com/vladimiradmaev/fittrack/internal/state"
)

// ContributionPoints are credited once for every food a user adds.
const ContributionPoints = 10

type CatalogStore interface {
	domain.FoodStore
	domain.ExerciseStore
	domain.ProductStore
}

// CatalogService manages foods, exercise types and products.
type CatalogService struct {
	store  CatalogStore
	locker state.Locker
}

func NewCatalogService(store CatalogStore, locker state.Locker) *CatalogService {
	return &CatalogService{store: store, locker: locker}
}

// fuzzyFilter returns the indexes of names matching query, best match first.
func fuzzyFilter(query string, names []string) []int {
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)
	out := make([]int, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, r.OriginalIndex)
	}
	return out
}

func (s *CatalogService) ListFoods(ctx context.Context) ([]domain.FoodItem, error) {
	return s.store.ListFoods(ctx)
}

func (s *CatalogService) SearchFoods(ctx context.Context, query string) ([]domain.FoodItem, error) {
	foods, err := s.store.ListFoods(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return foods, nil
	}

	names := make([]string, len(foods))
	for i, f := range foods {
		names[i] = f.Name
	}
	result := make([]domain.FoodItem, 0)
	for _, i := range fuzzyFilter(query, names) {
		result = append(result, foods[i])
	}
	return result, nil
}

func validateFood(f *domain.FoodItem) error {
	switch {
	case strings.TrimSpace(f.Name) == "":
		return apperrors.NewValidationError("food name is required")
	case f.ServingSize <= 0:
		return apperrors.NewValidationError("serving size must be positive, got %v", f.ServingSize)
	}
	return validateTotals(f.NutrientTotals)
}

// CreateFood adds a food. A contributed food credits its contributor in
// the same store operation, so the award happens exactly once.
func (s *CatalogService) CreateFood(ctx context.Context, food *domain.FoodItem) error {
	if err := validateFood(food); err != nil {
		return err
	}

	if food.AddedByUserID == nil {
		if err := s.store.CreateFood(ctx, food, 0); err != nil {
			return fmt.Errorf("creating food: %w", err)
		}
		return nil
	}

	contributor := *food.AddedByUserID
	unlock, err := s.locker.Lock(ctx, state.PointsKey(contributor))
	if err != nil {
		return fmt.Errorf("locking points of user %d: %w", contributor, err)
	}
	defer unlock()

	if err := s.store.CreateFood(ctx, food, ContributionPoints); err != nil {
		return fmt.Errorf("creating contributed food: %w", err)
	}
	logger.Info("Awarded contribution points",
		"user_id", contributor, "food_id", food.ID, "points", ContributionPoints)
	return nil
}

func (s *CatalogService) ListExercises(ctx context.Context) ([]domain.ExerciseType, error) {
	return s.store.ListExerciseTypes(ctx)
}

func (s *CatalogService) SearchExercises(ctx context.Context, query string) ([]domain.ExerciseType, error) {
	exercises, err := s.store.ListExerciseTypes(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return exercises, nil
	}

	names := make([]string, len(exercises))
	for i, e := range exercises {
		names[i] = e.Name
	}
	result := make([]domain.ExerciseType, 0)
	for _, i := range fuzzyFilter(query, names) {
		result = append(result, exercises[i])
	}
	return result, nil
}

func (s *CatalogService) CreateExercise(ctx context.Context, exercise *domain.ExerciseType) error {
	if strings.TrimSpace(exercise.Name) == "" {
		return apperrors.NewValidationError("exercise name is required")
	}
	if exercise.CaloriesPerMinute <= 0 {
		return apperrors.NewValidationError("calories burned per minute must be positive, got %v", exercise.CaloriesPerMinute)
	}
	if err := s.store.CreateExerciseType(ctx, exercise); err != nil {
		return fmt.Errorf("creating exercise: %w", err)
	}
	return nil
}

func (s *CatalogService) ListProducts(ctx context.Context, category string) ([]domain.Product, error) {
	return s.store.ListProducts(ctx, strings.TrimSpace(category))
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	return s.store.GetProduct(ctx, id)
}

func validPercent(p int) bool { return p >= 0 && p <= 100 }

func (s *CatalogService) CreateProduct(ctx context.Context, product *domain.Product) error {
	switch {
	case strings.TrimSpace(product.Name) == "":
		return apperrors.NewValidationError("product name is required")
	case product.PriceCents < 0:
		return apperrors.NewValidationError("price must not be negative")
	case !validPercent(product.DiscountPercent):
		return apperrors.NewValidationError("discount must be between 0 and 100, got %d", product.DiscountPercent)
	case !validPercent(product.PointsDiscountPercent):
		return apperrors.NewValidationError("points discount must be between 0 and 100, got %d", product.PointsDiscountPercent)
	case product.PointsToRedeem < 0:
		return apperrors.NewValidationError("points to redeem must not be negative")
	}
	if err := s.store.CreateProduct(ctx, product); err != nil {
		return fmt.Errorf("creating product: %w", err)
	}
	return nil
}
