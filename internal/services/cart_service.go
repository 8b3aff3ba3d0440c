package services

import (
	"context"
	"fmt"

	"github.com/vladimiradmaev/fittrack/internal/domain"
	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
	"github.com/vladimiradmaev/fittrack/internal/state"
)

type CartServiceStore interface {
	domain.CartStore
	GetProduct(ctx context.Context, id uint) (*domain.Product, error)
	GetUser(ctx context.Context, id uint) (*domain.User, error)
}

// CartService keeps the cart and prices it. Points are never debited
// here; the balance only gates the points discount.
type CartService struct {
	store  CartServiceStore
	locker state.Locker
}

func NewCartService(store CartServiceStore, locker state.Locker) *CartService {
	return &CartService{store: store, locker: locker}
}

// AddToCart merges into the user's existing line for the product.
func (s *CartService) AddToCart(ctx context.Context, userID, productID uint, quantity int, usePoints bool) (*domain.CartLine, error) {
	if quantity <= 0 {
		return nil, apperrors.NewInvalidQuantityError(quantity)
	}
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.store.GetProduct(ctx, productID); err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, state.CartKey(userID, productID))
	if err != nil {
		return nil, fmt.Errorf("locking cart line: %w", err)
	}
	defer unlock()

	line, err := s.store.AddCartLine(ctx, &domain.CartLine{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		UsePoints: usePoints,
	})
	if err != nil {
		return nil, fmt.Errorf("adding to cart: %w", err)
	}
	return line, nil
}

func (s *CartService) UpdateCartLine(ctx context.Context, id uint, patch domain.CartLinePatch) (*domain.CartLine, error) {
	if patch.Quantity != nil && *patch.Quantity <= 0 {
		return nil, apperrors.NewInvalidQuantityError(*patch.Quantity)
	}
	line, err := s.store.GetCartLine(ctx, id)
	if err != nil {
		return nil, err
	}

	// shares AddToCart's key
	unlock, err := s.locker.Lock(ctx, state.CartKey(line.UserID, line.ProductID))
	if err != nil {
		return nil, fmt.Errorf("locking cart line: %w", err)
	}
	defer unlock()

	return s.store.UpdateCartLine(ctx, id, patch)
}

func (s *CartService) RemoveCartLine(ctx context.Context, id uint) (bool, error) {
	return s.store.DeleteCartLine(ctx, id)
}

func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	return s.store.ClearCart(ctx, userID)
}

// Cart prices the user's cart against their current point balance.
func (s *CartService) Cart(ctx context.Context, userID uint) (*CartSummary, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	lines, err := s.store.ListCartLines(ctx, userID)
	if err != nil {
		return nil, err
	}

	products := make(map[uint]domain.Product, len(lines))
	for _, l := range lines {
		if _, ok := products[l.ProductID]; ok {
			continue
		}
		p, err := s.store.GetProduct(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		products[l.ProductID] = *p
	}

	summary, err := CartTotal(lines, products, user.Points)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
