package services

import (
	"errors"
	"testing"

	"github.com/vladimiradmaev/fittrack/internal/domain"
	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
)

var wheyProduct = domain.Product{
	ID:                    1,
	Name:                  "Whey Protein",
	PriceCents:            10000,
	DiscountPercent:       10,
	PointsToRedeem:        500,
	PointsDiscountPercent: 20,
}

func TestUnitPriceDiscountsAreSequential(t *testing.T) {
	if got := UnitPrice(wheyProduct, true, 500); got != 7200 {
		t.Errorf("expected 7200 cents, got %d", got)
	}
	if got := UnitPrice(wheyProduct, false, 500); got != 9000 {
		t.Errorf("expected 9000 cents without points, got %d", got)
	}
}

func TestUnitPriceInsufficientPointsDowngrades(t *testing.T) {
	if got := UnitPrice(wheyProduct, true, 499); got != 9000 {
		t.Errorf("expected discounted-only price 9000, got %d", got)
	}
}

func TestUnitPriceRoundsToNearestCent(t *testing.T) {
	p := domain.Product{PriceCents: 1999, DiscountPercent: 15, PointsDiscountPercent: 33}
	// 1999 * .85 = 1699.15 -> 1699; 1699 * .67 = 1138.33 -> 1138
	if got := UnitPrice(p, true, 0); got != 1138 {
		t.Errorf("expected 1138, got %d", got)
	}

	p = domain.Product{PriceCents: 5, DiscountPercent: 50}
	// 2.5 rounds up
	if got := UnitPrice(p, false, 0); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
}

func TestCartTotal(t *testing.T) {
	shaker := domain.Product{ID: 2, PriceCents: 1500, PointsToRedeem: 1000, PointsDiscountPercent: 50}
	products := map[uint]domain.Product{wheyProduct.ID: wheyProduct, shaker.ID: shaker}

	lines := []domain.CartLine{
		{ID: 1, ProductID: wheyProduct.ID, Quantity: 2, UsePoints: true},
		{ID: 2, ProductID: shaker.ID, Quantity: 1, UsePoints: true},
	}

	summary, err := CartTotal(lines, products, 800)
	if err != nil {
		t.Fatalf("CartTotal: %v", err)
	}

	// protein eligible: 7200 * 2; shaker ineligible (800 < 1000): 1500
	if summary.SubtotalCents != 7200*2+1500 {
		t.Errorf("expected subtotal %d, got %d", 7200*2+1500, summary.SubtotalCents)
	}
	if summary.PointsUsed != 1000 {
		t.Errorf("expected 1000 points used, got %d", summary.PointsUsed)
	}
	if !summary.Lines[0].PointsApplied || summary.Lines[1].PointsApplied {
		t.Errorf("unexpected points flags: %+v", summary.Lines)
	}
	if !summary.Lines[1].UsePoints {
		t.Error("expected the stored intent to be reported unchanged")
	}
}

func TestCartTotalEmpty(t *testing.T) {
	summary, err := CartTotal(nil, nil, 0)
	if err != nil {
		t.Fatalf("CartTotal: %v", err)
	}
	if summary.SubtotalCents != 0 || summary.PointsUsed != 0 || len(summary.Lines) != 0 {
		t.Errorf("expected empty summary, got %+v", summary)
	}
}

func TestCartTotalErrors(t *testing.T) {
	products := map[uint]domain.Product{wheyProduct.ID: wheyProduct}

	_, err := CartTotal([]domain.CartLine{{ProductID: 99, Quantity: 1}}, products, 0)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}

	_, err = CartTotal([]domain.CartLine{{ProductID: wheyProduct.ID, Quantity: 0}}, products, 0)
	if !errors.Is(err, apperrors.ErrInvalidQuantity) {
		t.Errorf("expected invalid quantity, got %v", err)
	}
}
