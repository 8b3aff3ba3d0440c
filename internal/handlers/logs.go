package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vladimiradmaev/fittrack/internal/domain"
	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
	"github.com/vladimiradmaev/fittrack/internal/interfaces"
	"github.com/vladimiradmaev/fittrack/internal/utils"
)

// LogHandler serves the food, exercise and water diaries and the
// nutrition summaries computed from them.
type LogHandler struct {
	logs   interfaces.LogServiceInterface
	ledger interfaces.LedgerInterface
	users  interfaces.UserServiceInterface
	errs   *apperrors.Handler
}

func NewLogHandler(deps Dependencies) *LogHandler {
	return &LogHandler{
		logs:   deps.LogService,
		ledger: deps.Ledger,
		users:  deps.UserService,
		errs:   deps.Errors,
	}
}

// userDay reads the {userId} path parameter and the ?date= query.
// On failure the error response has already been written.
func (h *LogHandler) userDay(w http.ResponseWriter, r *http.Request) (uint, time.Time, bool) {
	userID, err := idParam(r, "userId")
	if err != nil {
		respondError(w, r, h.errs, err)
		return 0, time.Time{}, false
	}
	date, err := dateQuery(r, h.ledger.Location())
	if err != nil {
		respondError(w, r, h.errs, err)
		return 0, time.Time{}, false
	}
	return userID, date, true
}

type totalResponse struct {
	UserID uint    `json:"userId"`
	Date   string  `json:"date"`
	Total  float64 `json:"total"`
}

func (h *LogHandler) deleted(w http.ResponseWriter, r *http.Request, entity string, del func(uint) (bool, error)) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	ok, err := del(id)
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondDeleted(w, r, h.errs, entity, id, ok)
}

// Food

func (h *LogHandler) FoodLogs(w http.ResponseWriter, r *http.Request) {
	userID, date, ok := h.userDay(w, r)
	if !ok {
		return
	}
	views, err := h.ledger.FoodLogs(r.Context(), userID, date)
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusOK, views)
}

func (h *LogHandler) CreateFoodLog(w http.ResponseWriter, r *http.Request) {
	var entry domain.FoodLogEntry
	if err := decodeJSON(r, &entry); err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	view, err := h.logs.CreateFoodLog(r.Context(), &entry)
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, view)
}

func (h *LogHandler) DeleteFoodLog(w http.ResponseWriter, r *http.Request) {
	h.deleted(w, r, "food log", func(id uint) (bool, error) {
		return h.logs.DeleteFoodLog(r.Context(), id)
	})
}

// Exercise

func (h *LogHandler) ExerciseLogs(w http.ResponseWriter, r *http.Request) {
	userID, date, ok := h.userDay(w, r)
	if !ok {
		return
	}
	views, err := h.ledger.ExerciseLogs(r.Context(), userID, date)
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusOK, views)
}

func (h *LogHandler) CaloriesBurned(w http.ResponseWriter, r *http.Request) {
	userID, date, ok := h.userDay(w, r)
	if !ok {
		return
	}
	burned, err := h.ledger.TotalCaloriesBurned(r.Context(), userID, date)
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusOK, totalResponse{UserID: userID, Date: date.Format(utils.DateLayout), Total: burned})
}

func (h *LogHandler) CreateExerciseLog(w http.ResponseWriter, r *http.Request) {
	var entry domain.ExerciseLogEntry
	if err := decodeJSON(r, &entry); err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	view, err := h.logs.CreateExerciseLog(r.Context(), &entry)
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, view)
}

func (h *LogHandler) DeleteExerciseLog(w http.ResponseWriter, r *http.Request) {
	h.deleted(w, r, "exercise log", func(id uint) (bool, error) {
		return h.logs.DeleteExerciseLog(r.Context(), id)
	})
}

// Water

func (h *LogHandler) WaterLogs(w http.ResponseWriter, r *http.Request) {
	userID, date, ok := h.userDay(w, r)
	if !ok {
		return
	}
	entries, err := h.ledger.WaterLogs(r.Context(), userID, date)
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusOK, entries)
}

func (h *LogHandler) WaterTotal(w http.ResponseWriter, r *http.Request) {
	userID, date, ok := h.userDay(w, r)
	if !ok {
		return
	}
	total, err := h.ledger.TotalWaterMl(r.Context(), userID, date)
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusOK, totalResponse{UserID: userID, Date: date.Format(utils.DateLayout), Total: total})
}

func (h *LogHandler) CreateWaterLog(w http.ResponseWriter, r *http.Request) {
	var entry domain.WaterLogEntry
	if err := decodeJSON(r, &entry); err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	created, err := h.logs.CreateWaterLog(r.Context(), &entry)
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, created)
}

func (h *LogHandler) DeleteWaterLog(w http.ResponseWriter, r *http.Request) {
	h.deleted(w, r, "water log", func(id uint) (bool, error) {
		return h.logs.DeleteWaterLog(r.Context(), id)
	})
}

// Nutrition

// Progress compares the day's intake with the user's stored goals.
func (h *LogHandler) Progress(w http.ResponseWriter, r *http.Request) {
	userID, date, ok := h.userDay(w, r)
	if !ok {
		return
	}
	user, err := h.users.GetUser(r.Context(), userID)
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	progress, err := h.ledger.DailyProgress(r.Context(), userID, date, user.Goals)
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusOK, progress)
}

func (h *LogHandler) MealTotals(w http.ResponseWriter, r *http.Request) {
	userID, date, ok := h.userDay(w, r)
	if !ok {
		return
	}
	raw := chi.URLParam(r, "mealType")
	meal, valid := domain.ParseMealType(raw)
	if !valid {
		respondError(w, r, h.errs, apperrors.NewValidationError("unknown meal type %q", raw))
		return
	}
	totals, err := h.ledger.MealTotals(r.Context(), userID, date, meal)
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusOK, totals)
}
