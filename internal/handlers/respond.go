package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
	"github.com/vladimiradmaev/fittrack/internal/utils"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// respondError logs err and writes it with the status its type maps to.
// Errors outside the AppError taxonomy are wrapped as internal.
func respondError(w http.ResponseWriter, r *http.Request, errs *apperrors.Handler, err error) {
	if _, ok := apperrors.As(err); !ok {
		err = apperrors.NewInternalError(err)
	}
	errs.Handle(r.Context(), err)

	body := ErrorResponse{Message: apperrors.ErrInternalServer.Message, Code: apperrors.CodeInternal}
	if appErr, ok := apperrors.As(err); ok && appErr.Type != apperrors.ErrorTypeInternal && appErr.Type != apperrors.ErrorTypeDatabase {
		body = ErrorResponse{Message: appErr.Message, Code: appErr.Code}
	}
	respondJSON(w, r, apperrors.HTTPStatus(err), body)
}

// respondDeleted answers 204 when something was removed and 404 otherwise.
func respondDeleted(w http.ResponseWriter, r *http.Request, errs *apperrors.Handler, entity string, id uint, ok bool) {
	if !ok {
		respondError(w, r, errs, apperrors.NewNotFoundError(entity, id))
		return
	}
	render.NoContent(w, r)
}

func decodeJSON(r *http.Request, v any) error {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		return apperrors.NewValidationError("invalid request body: %v", err)
	}
	return nil
}

// idParam reads a positive integer path parameter.
func idParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError("%s must be a positive integer, got %q", name, raw)
	}
	return uint(id), nil
}

func dateQuery(r *http.Request, loc *time.Location) (time.Time, error) {
	date, err := utils.ParseDate(r.URL.Query().Get("date"), loc, time.Now())
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("%v", err)
	}
	return date, nil
}
