package handlers

import (
	"net/http"

	"github.com/vladimiradmaev/fittrack/internal/domain"
	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
	"github.com/vladimiradmaev/fittrack/internal/interfaces"
)

// CatalogHandler serves foods, exercise types and shop products.
type CatalogHandler struct {
	catalog interfaces.CatalogServiceInterface
	errs    *apperrors.Handler
}

func NewCatalogHandler(deps Dependencies) *CatalogHandler {
	return &CatalogHandler{catalog: deps.CatalogService, errs: deps.Errors}
}

func (h *CatalogHandler) ListFoods(w http.ResponseWriter, r *http.Request) {
	foods, err := h.catalog.ListFoods(r.Context())
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusOK, foods)
}

func (h *CatalogHandler) SearchFoods(w http.ResponseWriter, r *http.Request) {
	foods, err := h.catalog.SearchFoods(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusOK, foods)
}

func (h *CatalogHandler) CreateFood(w http.ResponseWriter, r *http.Request) {
	var food domain.FoodItem
	if err := decodeJSON(r, &food); err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	if err := h.catalog.CreateFood(r.Context(), &food); err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, food)
}

func (h *CatalogHandler) ListExercises(w http.ResponseWriter, r *http.Request) {
	exercises, err := h.catalog.ListExercises(r.Context())
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusOK, exercises)
}

func (h *CatalogHandler) SearchExercises(w http.ResponseWriter, r *http.Request) {
	exercises, err := h.catalog.SearchExercises(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusOK, exercises)
}

func (h *CatalogHandler) CreateExercise(w http.ResponseWriter, r *http.Request) {
	var exercise domain.ExerciseType
	if err := decodeJSON(r, &exercise); err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	if err := h.catalog.CreateExercise(r.Context(), &exercise); err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, exercise)
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusOK, product)
}

func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := decodeJSON(r, &product); err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	if err := h.catalog.CreateProduct(r.Context(), &product); err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, product)
}
