package handlers

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/vladimiradmaev/fittrack/internal/domain"
	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
	"github.com/vladimiradmaev/fittrack/internal/interfaces"
)

type CartHandler struct {
	cart interfaces.CartServiceInterface
	errs *apperrors.Handler
}

func NewCartHandler(deps Dependencies) *CartHandler {
	return &CartHandler{cart: deps.CartService, errs: deps.Errors}
}

// Get returns the priced cart of {userId}.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userId")
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	summary, err := h.cart.Cart(r.Context(), userID)
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusOK, summary)
}

type addToCartRequest struct {
	UserID    uint `json:"userId"`
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
	UsePoints bool `json:"usePoints"`
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	line, err := h.cart.AddToCart(r.Context(), req.UserID, req.ProductID, req.Quantity, req.UsePoints)
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, line)
}

func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	var patch domain.CartLinePatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	line, err := h.cart.UpdateCartLine(r.Context(), id, patch)
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondJSON(w, r, http.StatusOK, line)
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	ok, err := h.cart.RemoveCartLine(r.Context(), id)
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	respondDeleted(w, r, h.errs, "cart line", id, ok)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userId")
	if err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	if err := h.cart.ClearCart(r.Context(), userID); err != nil {
		respondError(w, r, h.errs, err)
		return
	}
	render.NoContent(w, r)
}
