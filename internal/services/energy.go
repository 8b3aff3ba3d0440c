package services

import (
	"math"

	"github.com/vladimiradmaev/fittrack/internal/domain"
	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
)

// activityMultipliers is the single source of truth for valid activity levels.
var activityMultipliers = map[domain.ActivityLevel]float64{
	domain.ActivitySedentary:  1.2,
	domain.ActivityLight:      1.375,
	domain.ActivityModerate:   1.55,
	domain.ActivityActive:     1.725,
	domain.ActivityVeryActive: 1.9,
}

var goalMultipliers = map[domain.Goal]float64{
	domain.GoalWeightLoss:  0.8,
	domain.GoalMaintenance: 1.0,
	domain.GoalMuscleGain:  1.1,
}

// macroRatio is the share of calories per macronutrient. Each set sums to 1.
type macroRatio struct {
	protein, carbs, fat float64
}

var macroRatios = map[domain.Goal]macroRatio{
	domain.GoalWeightLoss:  {protein: 0.4, carbs: 0.3, fat: 0.3},
	domain.GoalMaintenance: {protein: 0.3, carbs: 0.45, fat: 0.25},
	domain.GoalMuscleGain:  {protein: 0.3, carbs: 0.5, fat: 0.2},
}

const (
	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

func validateProfile(p domain.Profile) error {
	switch {
	case p.WeightKg <= 0:
		return apperrors.NewValidationError("weight must be positive, got %v", p.WeightKg)
	case p.HeightCm <= 0:
		return apperrors.NewValidationError("height must be positive, got %v", p.HeightCm)
	case p.AgeYears <= 0:
		return apperrors.NewValidationError("age must be positive, got %d", p.AgeYears)
	case !p.Sex.Valid():
		return apperrors.NewValidationError("unknown sex %q", p.Sex)
	}
	if _, ok := activityMultipliers[p.ActivityLevel]; !ok {
		return apperrors.NewValidationError("unknown activity level %q", p.ActivityLevel)
	}
	if _, ok := goalMultipliers[p.Goal]; !ok {
		return apperrors.NewValidationError("unknown goal %q", p.Goal)
	}
	if b := bmr(p); b <= 0 {
		return apperrors.NewValidationError("profile gives a non-positive BMR (%.0f kcal)", b)
	}
	return nil
}

// BMR is the Mifflin-St Jeor basal metabolic rate in kcal/day.
func BMR(p domain.Profile) (float64, error) {
	if err := validateProfile(p); err != nil {
		return 0, err
	}
	return bmr(p), nil
}

func bmr(p domain.Profile) float64 {
	base := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.AgeYears)
	if p.Sex == domain.SexMale {
		return base + 5
	}
	return base - 161
}

// TDEE is BMR scaled by the activity multiplier, before any goal adjustment.
func TDEE(p domain.Profile) (float64, error) {
	if err := validateProfile(p); err != nil {
		return 0, err
	}
	return bmr(p) * activityMultipliers[p.ActivityLevel], nil
}

// ComputeDailyTargets derives calorie and macro targets from a profile.
// Calories and grams are rounded independently, so the macro calories
// may not add up to the calorie target exactly.
func ComputeDailyTargets(p domain.Profile) (domain.NutrientGoal, error) {
	if err := validateProfile(p); err != nil {
		return domain.NutrientGoal{}, err
	}

	calories := bmr(p) * activityMultipliers[p.ActivityLevel] * goalMultipliers[p.Goal]
	ratio := macroRatios[p.Goal]

	return domain.NutrientGoal{
		Calories: math.Round(calories),
		Protein:  math.Round(calories * ratio.protein / kcalPerGramProtein),
		Carbs:    math.Round(calories * ratio.carbs / kcalPerGramCarbs),
		Fat:      math.Round(calories * ratio.fat / kcalPerGramFat),
	}, nil
}
