package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vladimiradmaev/fittrack/internal/domain"
	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
	"github.com/vladimiradmaev/fittrack/internal/interfaces"
	"github.com/vladimiradmaev/fittrack/internal/utils"
)

type RecipeHandler struct {
	recipes interfaces.RecipeServiceInterface
	loc     *time.Location
	errs    *apperrors.Handler
}

func NewRecipeHandler(deps Dependencies) *RecipeHandler {
	return &RecipeHandler{recipes: deps.RecipeService, loc: deps.Ledger.Location(), errs: deps.Errors}
}

func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.recipes.List(r.Context(), r.URL.Query().Get("goal"))
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusOK, recipes)
}

func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	recipe, err := h.recipes.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusOK, recipe)
}

func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var recipe domain.Recipe
	if err := decodeJSON(r, &recipe); err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	if err := h.recipes.Create(r.Context(), &recipe); err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, recipe)
}

// Recommend ranks recipes against ?userId's remaining budget for ?date.
func (h *RecipeHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID, err := strconv.ParseUint(q.Get("userId"), 10, 64)
	if err != nil || userID == 0 {
		respondError(w, r, h.errs, apperrors.NewValidationError("userId must be a positive integer, got %q", q.Get("userId")))
		return
	}
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil || limit < 0 {
			respondError(w, r, h.errs, apperrors.NewValidationError("limit must be a non-negative integer, got %q", raw))
			return
		}
	}
	date, err := utils.ParseDate(q.Get("date"), h.loc, time.Now())
	if err != nil {
		respondError(w, r, h.errs, apperrors.NewValidationError("%v", err))
		return
	}

	rec, err := h.recipes.RecommendForUser(r.Context(), uint(userID), date, limit)
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusOK, rec)
}

type generateRequest struct {
	FitnessGoal        string                `json:"fitnessGoal"`
	RemainingNutrition domain.NutrientTotals `json:"remainingNutrition"`
}

func (h *RecipeHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	recipe, err := h.recipes.Generate(r.Context(), req.FitnessGoal, req.RemainingNutrition)
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, recipe)
}
