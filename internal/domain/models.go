package domain

import (
	"strings"
	"time"
)

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "veryActive"
)

type Goal string

const (
	GoalWeightLoss  Goal = "weightLoss"
	GoalMaintenance Goal = "maintenance"
	GoalMuscleGain  Goal = "muscleGain"
)

// RecipeTag returns the recipe goal tag matching a user's fitness goal.
func (g Goal) RecipeTag() RecipeGoal {
	switch g {
	case GoalWeightLoss:
		return RecipeGoalFatLoss
	case GoalMuscleGain:
		return RecipeGoalMuscleGain
	default:
		return RecipeGoalMaintenance
	}
}

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnacks    MealType = "snacks"
)

// ParseMealType accepts the canonical names case-insensitively and "snack" as an alias.
func ParseMealType(s string) (MealType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "breakfast":
		return MealBreakfast, true
	case "lunch":
		return MealLunch, true
	case "dinner":
		return MealDinner, true
	case "snacks", "snack":
		return MealSnacks, true
	}
	return "", false
}

type RecipeGoal string

const (
	RecipeGoalFatLoss     RecipeGoal = "fatloss"
	RecipeGoalMuscleGain  RecipeGoal = "musclegain"
	RecipeGoalMaintenance RecipeGoal = "maintenance"
	RecipeGoalHighProtein RecipeGoal = "highprotein"
)

// ParseRecipeGoal normalizes a goal tag. User goal names are accepted too.
func ParseRecipeGoal(s string) (RecipeGoal, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fatloss", "weightloss":
		return RecipeGoalFatLoss, true
	case "musclegain":
		return RecipeGoalMuscleGain, true
	case "maintenance":
		return RecipeGoalMaintenance, true
	case "highprotein":
		return RecipeGoalHighProtein, true
	}
	return "", false
}

// Profile holds the body metrics used to compute daily targets.
type Profile struct {
	WeightKg      float64       `json:"weightKg"`
	HeightCm      float64       `json:"heightCm"`
	AgeYears      int           `json:"ageYears"`
	Sex           Sex           `json:"sex"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	Goal          Goal          `json:"goal"`
}

// NutrientTotals is an amount of energy and macronutrients.
type NutrientTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func (n NutrientTotals) Add(o NutrientTotals) NutrientTotals {
	return NutrientTotals{
		Calories: n.Calories + o.Calories,
		Protein:  n.Protein + o.Protein,
		Carbs:    n.Carbs + o.Carbs,
		Fat:      n.Fat + o.Fat,
	}
}

func (n NutrientTotals) Scale(k float64) NutrientTotals {
	return NutrientTotals{
		Calories: n.Calories * k,
		Protein:  n.Protein * k,
		Carbs:    n.Carbs * k,
		Fat:      n.Fat * k,
	}
}

// NutrientGoal is a daily target with the same shape as NutrientTotals.
type NutrientGoal = NutrientTotals

// DefaultGoals are assigned to users created without explicit targets.
var DefaultGoals = NutrientGoal{Calories: 2000, Protein: 140, Carbs: 220, Fat: 70}

type NutrientProgress struct {
	Consumed  NutrientTotals `json:"consumed"`
	Goal      NutrientGoal   `json:"goal"`
	Remaining NutrientTotals `json:"remaining"`
}

type User struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Points    int          `gorm:"not null;default:0" json:"points"`
	Profile   Profile      `gorm:"embedded;embeddedPrefix:profile_" json:"profile"`
	Goals     NutrientGoal `gorm:"embedded;embeddedPrefix:goal_" json:"goals"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// UserPatch carries the mutable user fields; nil means unchanged.
type UserPatch struct {
	Name    *string       `json:"name,omitempty"`
	Email   *string       `json:"email,omitempty"`
	Profile *Profile      `json:"profile,omitempty"`
	Goals   *NutrientGoal `json:"goals,omitempty"`
}

// FoodItem stores nutrients per serving.
type FoodItem struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null;index" json:"name"`
	NutrientTotals
	ServingSize   float64   `json:"servingSize"`
	ServingUnit   string    `json:"servingUnit"`
	AddedByUserID *uint     `gorm:"index" json:"addedByUserId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type FoodLogEntry struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"not null;index:idx_food_logs_user_day" json:"userId"`
	FoodID   uint      `gorm:"not null" json:"foodId"`
	Quantity float64   `json:"quantity"`
	MealType MealType  `json:"mealType"`
	LoggedAt time.Time `gorm:"index:idx_food_logs_user_day" json:"loggedAt"`
}

func (FoodLogEntry) TableName() string { return "food_logs" }

// FoodLogView is a log entry joined with its food item.
type FoodLogView struct {
	FoodLogEntry
	Food      FoodItem       `json:"food"`
	Nutrients NutrientTotals `json:"nutrients"`
}

type ExerciseType struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	Name              string  `gorm:"not null;index" json:"name"`
	CaloriesPerMinute float64 `json:"caloriesBurnedPerMinute"`
	Category          string  `json:"category"`
}

type ExerciseLogEntry struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index:idx_exercise_logs_user_day" json:"userId"`
	ExerciseTypeID  uint      `gorm:"not null" json:"exerciseTypeId"`
	DurationMinutes int       `json:"durationMinutes"`
	LoggedAt        time.Time `gorm:"index:idx_exercise_logs_user_day" json:"loggedAt"`
}

func (ExerciseLogEntry) TableName() string { return "exercise_logs" }

// ExerciseLogView adds the burned calories, which are never stored.
type ExerciseLogView struct {
	ExerciseLogEntry
	Exercise       ExerciseType `json:"exercise"`
	CaloriesBurned float64      `json:"caloriesBurned"`
}

type WaterLogEntry struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"not null;index:idx_water_logs_user_day" json:"userId"`
	AmountMl float64   `json:"amount"`
	LoggedAt time.Time `gorm:"index:idx_water_logs_user_day" json:"loggedAt"`
}

func (WaterLogEntry) TableName() string { return "water_logs" }

type Recipe struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	Name         string   `gorm:"not null" json:"name"`
	Description  string   `json:"description"`
	Ingredients  []string `gorm:"serializer:json" json:"ingredients"`
	Instructions string   `json:"instructions"`
	NutrientTotals
	GoalTag   RecipeGoal `gorm:"index" json:"fitnessGoal"`
	ImageURL  string     `json:"imageUrl"`
	CreatedAt time.Time  `json:"createdAt"`
}

type Product struct {
	ID                    uint   `gorm:"primaryKey" json:"id"`
	Name                  string `gorm:"not null" json:"name"`
	Description           string `json:"description"`
	PriceCents            int64  `gorm:"not null" json:"priceCents"`
	DiscountPercent       int    `json:"discountPercentage"`
	PointsToRedeem        int    `json:"pointsToRedeem"`
	PointsDiscountPercent int    `json:"pointsRedemptionDiscount"`
	Category              string `gorm:"index" json:"category"`
	IsBestseller          bool   `json:"isBestseller"`
	ImageURL              string `json:"imageUrl"`
}

type CartLine struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"userId"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"productId"`
	Quantity  int  `gorm:"not null" json:"quantity"`
	UsePoints bool `json:"usePoints"`
}

// CartLinePatch carries the mutable cart line fields; nil means unchanged.
type CartLinePatch struct {
	Quantity  *int  `json:"quantity,omitempty"`
	UsePoints *bool `json:"usePoints,omitempty"`
}
