package handlers

import (
	"net/http"

	"github.com/vladimiradmaev/fittrack/internal/domain"
	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
	"github.com/vladimiradmaev/fittrack/internal/interfaces"
	"github.com/vladimiradmaev/fittrack/internal/services"
)

type UserHandler struct {
	users interfaces.UserServiceInterface
	errs  *apperrors.Handler
}

func NewUserHandler(deps Dependencies) *UserHandler {
	return &UserHandler{users: deps.UserService, errs: deps.Errors}
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var user domain.User
	if err := decodeJSON(r, &user); err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	if err := h.users.CreateUser(r.Context(), &user); err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, user)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	user, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusOK, user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	var patch domain.UserPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	user, err := h.users.UpdateUser(r.Context(), id, patch)
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusOK, user)
}

type targetsRequest struct {
	services.BodyMetrics
	Apply bool `json:"apply"`
}

// Targets computes daily targets for a user and optionally saves them.
func (h *UserHandler) Targets(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	var req targetsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	goals, err := h.users.ComputeTargets(r.Context(), id, req.BodyMetrics, req.Apply)
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusOK, goals)
}

// Calculate is the stateless targets calculator.
func (h *UserHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var metrics services.BodyMetrics
	if err := decodeJSON(r, &metrics); err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	profile, err := metrics.Profile()
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	goals, err := services.ComputeDailyTargets(profile)
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusOK, goals)
}
