package services

import (
	"github.com/vladimiradmaev/fittrack/internal/domain"
	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
)

// PricedLine is a cart line with its computed prices.
type PricedLine struct {
	domain.CartLine
	Product        domain.Product `json:"product"`
	UnitPriceCents int64          `json:"unitPriceCents"`
	LineTotalCents int64          `json:"lineTotalCents"`
	PointsApplied  bool           `json:"pointsApplied"`
	PointsUsed     int            `json:"pointsUsed"`
}

type CartSummary struct {
	Lines         []PricedLine `json:"lines"`
	SubtotalCents int64        `json:"subtotalCents"`
	PointsUsed    int          `json:"pointsUsed"`
	PointsBalance int          `json:"pointsBalance"`
}

// applyPercentOff takes pct percent off cents, rounding half up to the cent.
func applyPercentOff(cents int64, pct int) int64 {
	return (cents*int64(100-pct) + 50) / 100
}

// PointsEligible reports whether a points request can be honored for p.
// An ineligible request is priced as if points were not requested.
func PointsEligible(p domain.Product, usePoints bool, balance int) bool {
	return usePoints && balance >= p.PointsToRedeem
}

// UnitPrice applies the product discount and then, if eligible, the
// points discount on the already discounted price.
func UnitPrice(p domain.Product, usePoints bool, balance int) int64 {
	price := applyPercentOff(p.PriceCents, p.DiscountPercent)
	if PointsEligible(p, usePoints, balance) {
		price = applyPercentOff(price, p.PointsDiscountPercent)
	}
	return price
}

// CartTotal prices every line against the user's full point balance.
func CartTotal(lines []domain.CartLine, products map[uint]domain.Product, balance int) (CartSummary, error) {
	summary := CartSummary{
		Lines:         make([]PricedLine, 0, len(lines)),
		PointsBalance: balance,
	}

	for _, line := range lines {
		if line.Quantity <= 0 {
			return CartSummary{}, apperrors.NewInvalidQuantityError(line.Quantity).WithContext("cart_line_id", line.ID)
		}
		product, ok := products[line.ProductID]
		if !ok {
			return CartSummary{}, apperrors.NewNotFoundError("product", line.ProductID)
		}

		priced := PricedLine{
			CartLine:       line,
			Product:        product,
			UnitPriceCents: UnitPrice(product, line.UsePoints, balance),
			PointsApplied:  PointsEligible(product, line.UsePoints, balance),
		}
		priced.LineTotalCents = priced.UnitPriceCents * int64(line.Quantity)
		if priced.PointsApplied {
			priced.PointsUsed = product.PointsToRedeem * line.Quantity
		}

		summary.SubtotalCents += priced.LineTotalCents
		summary.PointsUsed += priced.PointsUsed
		summary.Lines = append(summary.Lines, priced)
	}

	return summary, nil
}
