package repository

import (
	"context"

	"github.com/vladimiradmaev/fittrack/internal/domain"
	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
	"gorm.io/gorm"
)

func (s *PostgresStore) ListFoods(ctx context.Context) ([]domain.FoodItem, error) {
	var foods []domain.FoodItem
	if err := s.db.WithContext(ctx).Order("id").Find(&foods).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return foods, nil
}

func (s *PostgresStore) GetFood(ctx context.Context, id uint) (*domain.FoodItem, error) {
	var food domain.FoodItem
	if err := s.db.WithContext(ctx).First(&food, id).Error; err != nil {
		return nil, lookupErr(err, "food", id)
	}
	return &food, nil
}

// CreateFood credits the contributor and inserts the food in one transaction.
func (s *PostgresStore) CreateFood(ctx context.Context, food *domain.FoodItem, awardPoints int) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if food.AddedByUserID != nil && awardPoints != 0 {
			res := tx.Model(&domain.User{}).
				Where("id = ?", *food.AddedByUserID).
				Update("points", gorm.Expr("points + ?", awardPoints))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return apperrors.NewNotFoundError("user", *food.AddedByUserID)
			}
		}
		return tx.Create(food).Error
	})
	return passThrough(err)
}

func (s *PostgresStore) ListExerciseTypes(ctx context.Context) ([]domain.ExerciseType, error) {
	var exercises []domain.ExerciseType
	if err := s.db.WithContext(ctx).Order("id").Find(&exercises).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return exercises, nil
}

func (s *PostgresStore) GetExerciseType(ctx context.Context, id uint) (*domain.ExerciseType, error) {
	var exercise domain.ExerciseType
	if err := s.db.WithContext(ctx).First(&exercise, id).Error; err != nil {
		return nil, lookupErr(err, "exercise", id)
	}
	return &exercise, nil
}

func (s *PostgresStore) CreateExerciseType(ctx context.Context, exercise *domain.ExerciseType) error {
	if err := s.db.WithContext(ctx).Create(exercise).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

func (s *PostgresStore) ListRecipes(ctx context.Context, tag domain.RecipeGoal) ([]domain.Recipe, error) {
	q := s.db.WithContext(ctx).Order("id")
	if tag != "" {
		q = q.Where("goal_tag = ?", tag)
	}
	var recipes []domain.Recipe
	if err := q.Find(&recipes).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return recipes, nil
}

func (s *PostgresStore) GetRecipe(ctx context.Context, id uint) (*domain.Recipe, error) {
	var recipe domain.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, id).Error; err != nil {
		return nil, lookupErr(err, "recipe", id)
	}
	return &recipe, nil
}

func (s *PostgresStore) CreateRecipe(ctx context.Context, recipe *domain.Recipe) error {
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

func (s *PostgresStore) ListProducts(ctx context.Context, category string) ([]domain.Product, error) {
	q := s.db.WithContext(ctx).Order("id")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var products []domain.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return products, nil
}

func (s *PostgresStore) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, lookupErr(err, "product", id)
	}
	return &product, nil
}

func (s *PostgresStore) CreateProduct(ctx context.Context, product *domain.Product) error {
	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}
