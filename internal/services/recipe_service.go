package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/vladimiradmaev/fittrack/internal/domain"
	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
	"github.com/vladimiradmaev/fittrack/internal/logger"
)

const (
	imageMuscleGain = "https://images.unsplash.com/photo-1482049016688-2d3e1b311543"
	imageDefault    = "https://images.unsplash.com/photo-1546069901-ba9599a7e63c"
)

// PlaceholderImage picks a stock photo for a recipe without an image.
func PlaceholderImage(goal domain.RecipeGoal) string {
	if goal == domain.RecipeGoalMuscleGain {
		return imageMuscleGain
	}
	return imageDefault
}

// Recommend orders recipes tagged with goal by how close their calories
// are to the remaining budget. If no recipe carries the tag, the whole
// catalog is ranked instead. Ties keep catalog order.
func Recommend(goal domain.RecipeGoal, remaining domain.NutrientTotals, catalog []domain.Recipe) []domain.Recipe {
	matches := make([]domain.Recipe, 0, len(catalog))
	for _, r := range catalog {
		if r.GoalTag == goal {
			matches = append(matches, r)
		}
	}
	if len(matches) == 0 {
		matches = append(matches, catalog...)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return math.Abs(matches[i].Calories-remaining.Calories) < math.Abs(matches[j].Calories-remaining.Calories)
	})
	return matches
}

type RecipeService struct {
	store     domain.RecipeStore
	users     domain.UserStore
	ledger    *Ledger
	generator RecipeGenerator
	timeout   time.Duration
}

func NewRecipeService(store domain.RecipeStore, users domain.UserStore, ledger *Ledger, generator RecipeGenerator, timeout time.Duration) *RecipeService {
	return &RecipeService{
		store:     store,
		users:     users,
		ledger:    ledger,
		generator: generator,
		timeout:   timeout,
	}
}

func parseGoalTag(s string) (domain.RecipeGoal, error) {
	tag, ok := domain.ParseRecipeGoal(s)
	if !ok {
		return "", apperrors.NewValidationError("unknown fitness goal %q", s)
	}
	return tag, nil
}

func validateTotals(n domain.NutrientTotals) error {
	if n.Calories < 0 || n.Protein < 0 || n.Carbs < 0 || n.Fat < 0 {
		return apperrors.NewValidationError("nutrient values must not be negative")
	}
	return nil
}

// List returns the catalog, optionally filtered by goal tag.
func (s *RecipeService) List(ctx context.Context, goal string) ([]domain.Recipe, error) {
	var tag domain.RecipeGoal
	if strings.TrimSpace(goal) != "" {
		var err error
		if tag, err = parseGoalTag(goal); err != nil {
			return nil, err
		}
	}
	return s.store.ListRecipes(ctx, tag)
}

func (s *RecipeService) Get(ctx context.Context, id uint) (*domain.Recipe, error) {
	return s.store.GetRecipe(ctx, id)
}

func (s *RecipeService) Create(ctx context.Context, recipe *domain.Recipe) error {
	if strings.TrimSpace(recipe.Name) == "" {
		return apperrors.NewValidationError("recipe name is required")
	}
	tag, err := parseGoalTag(string(recipe.GoalTag))
	if err != nil {
		return err
	}
	if err := validateTotals(recipe.NutrientTotals); err != nil {
		return err
	}
	recipe.GoalTag = tag
	if recipe.ImageURL == "" {
		recipe.ImageURL = PlaceholderImage(tag)
	}
	if err := s.store.CreateRecipe(ctx, recipe); err != nil {
		return fmt.Errorf("creating recipe: %w", err)
	}
	return nil
}

// Recommendation is a ranked list along with the budget it was ranked against.
type Recommendation struct {
	Goal      domain.RecipeGoal     `json:"fitnessGoal"`
	Remaining domain.NutrientTotals `json:"remaining"`
	Recipes   []domain.Recipe       `json:"recipes"`
}

// RecommendForUser ranks recipes against what the user has left for the day.
// A limit of zero or less returns every recipe.
func (s *RecipeService) RecommendForUser(ctx context.Context, userID uint, date time.Time, limit int) (*Recommendation, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	progress, err := s.ledger.DailyProgress(ctx, userID, date, user.Goals)
	if err != nil {
		return nil, err
	}
	catalog, err := s.store.ListRecipes(ctx, "")
	if err != nil {
		return nil, err
	}

	goal := user.Profile.Goal.RecipeTag()
	ranked := Recommend(goal, progress.Remaining, catalog)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return &Recommendation{Goal: goal, Remaining: progress.Remaining, Recipes: ranked}, nil
}

// Generate asks the generator for a recipe, validates it and stores it.
func (s *RecipeService) Generate(ctx context.Context, goal string, remaining domain.NutrientTotals) (*domain.Recipe, error) {
	tag, err := parseGoalTag(goal)
	if err != nil {
		return nil, err
	}
	if err := validateTotals(remaining); err != nil {
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	log := logger.WithFields("goal", tag)
	start := time.Now()
	reply, err := s.generator.Generate(ctx, tag, remaining)
	if err != nil {
		log.Error("Recipe generation failed", "error", err, "elapsed", time.Since(start))
		return nil, apperrors.NewGenerationError(err, "generator error")
	}
	generated, err := parseGeneratedRecipe(reply)
	if err != nil {
		log.Warn("Rejected generated recipe", "error", err)
		return nil, apperrors.NewGenerationError(err, "malformed response")
	}

	recipe := &domain.Recipe{
		Name:         generated.Name,
		Description:  generated.Description,
		Ingredients:  generated.Ingredients,
		Instructions: string(generated.Instructions),
		NutrientTotals: domain.NutrientTotals{
			Calories: *generated.Calories,
			Protein:  *generated.Protein,
			Carbs:    *generated.Carbs,
			Fat:      *generated.Fat,
		},
		GoalTag:  tag,
		ImageURL: generated.ImageURL,
	}
	if recipe.ImageURL == "" {
		recipe.ImageURL = PlaceholderImage(tag)
	}
	if recipe.Ingredients == nil {
		recipe.Ingredients = []string{}
	}

	if err := s.store.CreateRecipe(ctx, recipe); err != nil {
		return nil, fmt.Errorf("storing generated recipe: %w", err)
	}
	log.Info("Generated recipe", "recipe_id", recipe.ID, "elapsed", time.Since(start))
	return recipe, nil
}
