package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vladimiradmaev/fittrack/internal/domain"
	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
	"github.com/vladimiradmaev/fittrack/internal/logger"
)

// BodyMetrics is a profile given in arbitrary units.
type BodyMetrics struct {
	Weight        float64              `json:"weight"`
	WeightUnit    string               `json:"weightUnit"`
	Height        float64              `json:"height"`
	HeightUnit    string               `json:"heightUnit"`
	AgeYears      int                  `json:"age"`
	Sex           domain.Sex           `json:"sex"`
	ActivityLevel domain.ActivityLevel `json:"activityLevel"`
	Goal          domain.Goal          `json:"goal"`
}

// Profile converts the metrics to metric units.
func (m BodyMetrics) Profile() (domain.Profile, error) {
	kg, cm, err := NormalizeBodyMetrics(m.Weight, m.WeightUnit, m.Height, m.HeightUnit)
	if err != nil {
		return domain.Profile{}, err
	}
	return domain.Profile{
		WeightKg:      kg,
		HeightCm:      cm,
		AgeYears:      m.AgeYears,
		Sex:           m.Sex,
		ActivityLevel: m.ActivityLevel,
		Goal:          m.Goal,
	}, nil
}

type UserService struct {
	store domain.UserStore
}

func NewUserService(store domain.UserStore) *UserService {
	return &UserService{store: store}
}

// profileSet reports whether any profile field was provided.
func profileSet(p domain.Profile) bool {
	return p != domain.Profile{}
}

// CreateUser registers a user with zero points. Missing goals get the defaults.
func (s *UserService) CreateUser(ctx context.Context, user *domain.User) error {
	if strings.TrimSpace(user.Name) == "" {
		return apperrors.NewValidationError("user name is required")
	}
	if profileSet(user.Profile) {
		if err := validateProfile(user.Profile); err != nil {
			return err
		}
	}
	if user.Goals == (domain.NutrientGoal{}) {
		user.Goals = domain.DefaultGoals
	} else if err := validateTotals(user.Goals); err != nil {
		return err
	}
	user.Points = 0

	if err := s.store.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	logger.Info("Registered user", "user_id", user.ID)
	return nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	return s.store.GetUser(ctx, id)
}

func (s *UserService) UpdateUser(ctx context.Context, id uint, patch domain.UserPatch) (*domain.User, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, apperrors.NewValidationError("user name must not be empty")
	}
	if patch.Profile != nil {
		if err := validateProfile(*patch.Profile); err != nil {
			return nil, err
		}
	}
	if patch.Goals != nil {
		if err := validateTotals(*patch.Goals); err != nil {
			return nil, err
		}
	}
	return s.store.UpdateUser(ctx, id, patch)
}

// ComputeTargets derives daily targets from metrics. With apply set the
// profile and targets are saved on the user.
func (s *UserService) ComputeTargets(ctx context.Context, userID uint, metrics BodyMetrics, apply bool) (domain.NutrientGoal, error) {
	profile, err := metrics.Profile()
	if err != nil {
		return domain.NutrientGoal{}, err
	}
	goals, err := ComputeDailyTargets(profile)
	if err != nil {
		return domain.NutrientGoal{}, err
	}
	if err := validateTotals(goals); err != nil {
		return domain.NutrientGoal{}, err
	}

	if !apply {
		if _, err := s.store.GetUser(ctx, userID); err != nil {
			return domain.NutrientGoal{}, err
		}
		return goals, nil
	}

	if _, err := s.store.UpdateUser(ctx, userID, domain.UserPatch{Profile: &profile, Goals: &goals}); err != nil {
		return domain.NutrientGoal{}, err
	}
	logger.Info("Applied computed targets", "user_id", userID, "calories", goals.Calories)
	return goals, nil
}
