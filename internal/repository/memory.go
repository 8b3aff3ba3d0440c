package repository

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/vladimiradmaev/fittrack/internal/domain"
	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
)

// MemoryStore keeps every entity in process memory. A single lock
// serializes writes, which makes award and merge steps atomic.
type MemoryStore struct {
	mu sync.RWMutex

	lastID map[string]uint

	users        map[uint]domain.User
	foods        map[uint]domain.FoodItem
	exercises    map[uint]domain.ExerciseType
	foodLogs     map[uint]domain.FoodLogEntry
	exerciseLogs map[uint]domain.ExerciseLogEntry
	waterLogs    map[uint]domain.WaterLogEntry
	recipes      map[uint]domain.Recipe
	products     map[uint]domain.Product
	cartLines    map[uint]domain.CartLine
}

var _ domain.Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		lastID:       make(map[string]uint),
		users:        make(map[uint]domain.User),
		foods:        make(map[uint]domain.FoodItem),
		exercises:    make(map[uint]domain.ExerciseType),
		foodLogs:     make(map[uint]domain.FoodLogEntry),
		exerciseLogs: make(map[uint]domain.ExerciseLogEntry),
		waterLogs:    make(map[uint]domain.WaterLogEntry),
		recipes:      make(map[uint]domain.Recipe),
		products:     make(map[uint]domain.Product),
		cartLines:    make(map[uint]domain.CartLine),
	}
}

// nextID must be called with mu held.
func (s *MemoryStore) nextID(table string) uint {
	s.lastID[table]++
	return s.lastID[table]
}

// byID returns the values of m ordered by id, i.e. insertion order.
func byID[T any](m map[uint]T, keep func(T) bool) []T {
	ids := make([]uint, 0, len(m))
	for id, v := range m {
		if keep == nil || keep(v) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

// Users

func (s *MemoryStore) CreateUser(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = s.nextID("users")
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("user", id)
	}
	return &u, nil
}

func (s *MemoryStore) UpdateUser(ctx context.Context, id uint, patch domain.UserPatch) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("user", id)
	}
	applyUserPatch(&u, patch)
	s.users[id] = u
	return &u, nil
}

// Foods and exercises

func (s *MemoryStore) ListFoods(ctx context.Context) ([]domain.FoodItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return byID(s.foods, nil), nil
}

func (s *MemoryStore) GetFood(ctx context.Context, id uint) (*domain.FoodItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.foods[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("food", id)
	}
	return &f, nil
}

func (s *MemoryStore) CreateFood(ctx context.Context, food *domain.FoodItem, awardPoints int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if food.AddedByUserID != nil && awardPoints != 0 {
		u, ok := s.users[*food.AddedByUserID]
		if !ok {
			return apperrors.NewNotFoundError("user", *food.AddedByUserID)
		}
		u.Points += awardPoints
		s.users[u.ID] = u
	}

	food.ID = s.nextID("foods")
	s.foods[food.ID] = *food
	return nil
}

func (s *MemoryStore) ListExerciseTypes(ctx context.Context) ([]domain.ExerciseType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return byID(s.exercises, nil), nil
}

func (s *MemoryStore) GetExerciseType(ctx context.Context, id uint) (*domain.ExerciseType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.exercises[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("exercise", id)
	}
	return &e, nil
}

func (s *MemoryStore) CreateExerciseType(ctx context.Context, exercise *domain.ExerciseType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exercise.ID = s.nextID("exercises")
	s.exercises[exercise.ID] = *exercise
	return nil
}

// Logs

func sortByLoggedAt[T any](entries []T, at func(T) int64) {
	sort.SliceStable(entries, func(i, j int) bool { return at(entries[i]) < at(entries[j]) })
}

func (s *MemoryStore) CreateFoodLog(ctx context.Context, entry *domain.FoodLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = s.nextID("food_logs")
	s.foodLogs[entry.ID] = *entry
	return nil
}

func (s *MemoryStore) ListFoodLogs(ctx context.Context, userID uint, r domain.DateRange) ([]domain.FoodLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := byID(s.foodLogs, func(e domain.FoodLogEntry) bool {
		return e.UserID == userID && r.Contains(e.LoggedAt)
	})
	sortByLoggedAt(out, func(e domain.FoodLogEntry) int64 { return e.LoggedAt.UnixNano() })
	return out, nil
}

func (s *MemoryStore) DeleteFoodLog(ctx context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.foodLogs[id]; !ok {
		return false, nil
	}
	delete(s.foodLogs, id)
	return true, nil
}

func (s *MemoryStore) CreateExerciseLog(ctx context.Context, entry *domain.ExerciseLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = s.nextID("exercise_logs")
	s.exerciseLogs[entry.ID] = *entry
	return nil
}

func (s *MemoryStore) ListExerciseLogs(ctx context.Context, userID uint, r domain.DateRange) ([]domain.ExerciseLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := byID(s.exerciseLogs, func(e domain.ExerciseLogEntry) bool {
		return e.UserID == userID && r.Contains(e.LoggedAt)
	})
	sortByLoggedAt(out, func(e domain.ExerciseLogEntry) int64 { return e.LoggedAt.UnixNano() })
	return out, nil
}

func (s *MemoryStore) DeleteExerciseLog(ctx context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.exerciseLogs[id]; !ok {
		return false, nil
	}
	delete(s.exerciseLogs, id)
	return true, nil
}

func (s *MemoryStore) CreateWaterLog(ctx context.Context, entry *domain.WaterLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = s.nextID("water_logs")
	s.waterLogs[entry.ID] = *entry
	return nil
}

func (s *MemoryStore) ListWaterLogs(ctx context.Context, userID uint, r domain.DateRange) ([]domain.WaterLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := byID(s.waterLogs, func(e domain.WaterLogEntry) bool {
		return e.UserID == userID && r.Contains(e.LoggedAt)
	})
	sortByLoggedAt(out, func(e domain.WaterLogEntry) int64 { return e.LoggedAt.UnixNano() })
	return out, nil
}

func (s *MemoryStore) DeleteWaterLog(ctx context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.waterLogs[id]; !ok {
		return false, nil
	}
	delete(s.waterLogs, id)
	return true, nil
}

// Recipes and products

func cloneRecipe(r domain.Recipe) domain.Recipe {
	r.Ingredients = slices.Clone(r.Ingredients)
	return r
}

func (s *MemoryStore) ListRecipes(ctx context.Context, tag domain.RecipeGoal) ([]domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := byID(s.recipes, func(r domain.Recipe) bool { return tag == "" || r.GoalTag == tag })
	for i := range out {
		out[i] = cloneRecipe(out[i])
	}
	return out, nil
}

func (s *MemoryStore) GetRecipe(ctx context.Context, id uint) (*domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.recipes[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("recipe", id)
	}
	r = cloneRecipe(r)
	return &r, nil
}

func (s *MemoryStore) CreateRecipe(ctx context.Context, recipe *domain.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	recipe.ID = s.nextID("recipes")
	s.recipes[recipe.ID] = cloneRecipe(*recipe)
	return nil
}

func (s *MemoryStore) ListProducts(ctx context.Context, category string) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return byID(s.products, func(p domain.Product) bool { return category == "" || p.Category == category }), nil
}

func (s *MemoryStore) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("product", id)
	}
	return &p, nil
}

func (s *MemoryStore) CreateProduct(ctx context.Context, product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	product.ID = s.nextID("products")
	s.products[product.ID] = *product
	return nil
}

// Cart

func (s *MemoryStore) ListCartLines(ctx context.Context, userID uint) ([]domain.CartLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return byID(s.cartLines, func(l domain.CartLine) bool { return l.UserID == userID }), nil
}

func (s *MemoryStore) GetCartLine(ctx context.Context, id uint) (*domain.CartLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.cartLines[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("cart line", id)
	}
	return &l, nil
}

func (s *MemoryStore) AddCartLine(ctx context.Context, line *domain.CartLine) (*domain.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.cartLines {
		if existing.UserID == line.UserID && existing.ProductID == line.ProductID {
			existing.Quantity += line.Quantity
			existing.UsePoints = line.UsePoints
			s.cartLines[id] = existing
			return &existing, nil
		}
	}

	created := *line
	created.ID = s.nextID("cart_lines")
	s.cartLines[created.ID] = created
	return &created, nil
}

func (s *MemoryStore) UpdateCartLine(ctx context.Context, id uint, patch domain.CartLinePatch) (*domain.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.cartLines[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("cart line", id)
	}
	if patch.Quantity != nil {
		l.Quantity = *patch.Quantity
	}
	if patch.UsePoints != nil {
		l.UsePoints = *patch.UsePoints
	}
	s.cartLines[id] = l
	return &l, nil
}

func (s *MemoryStore) DeleteCartLine(ctx context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cartLines[id]; !ok {
		return false, nil
	}
	delete(s.cartLines, id)
	return true, nil
}

func (s *MemoryStore) ClearCart(ctx context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, l := range s.cartLines {
		if l.UserID == userID {
			delete(s.cartLines, id)
		}
	}
	return nil
}

func applyUserPatch(u *domain.User, patch domain.UserPatch) {
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Profile != nil {
		u.Profile = *patch.Profile
	}
	if patch.Goals != nil {
		u.Goals = *patch.Goals
	}
}
