package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vladimiradmaev/fittrack/internal/domain"
	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
	"github.com/vladimiradmaev/fittrack/internal/services"
	"github.com/vladimiradmaev/fittrack/internal/state"
	"github.com/vladimiradmaev/fittrack/internal/testutil"
)

func whey() domain.Product {
	return domain.Product{
		Name:                  "Whey Protein",
		PriceCents:            10000,
		DiscountPercent:       10,
		PointsToRedeem:        500,
		PointsDiscountPercent: 20,
		Category:              "supplements",
	}
}

func TestAddToCartMergesAndLastUsePointsWins(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewTestStore(t)
	user := testutil.CreateUser(t, store, "fay")
	product := testutil.CreateProduct(t, store, whey())
	cart := services.NewCartService(store, state.NewManager())

	first, err := cart.AddToCart(ctx, user.ID, product.ID, 2, true)
	if err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	second, err := cart.AddToCart(ctx, user.ID, product.ID, 3, false)
	if err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("expected merge into line %d, got new line %d", first.ID, second.ID)
	}
	if second.Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", second.Quantity)
	}
	if second.UsePoints {
		t.Error("expected usePoints from the second call (false)")
	}

	lines, _ := store.ListCartLines(ctx, user.ID)
	if len(lines) != 1 {
		t.Errorf("expected a single line, got %d", len(lines))
	}
}

func TestAddToCartConcurrentMerges(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewTestStore(t)
	user := testutil.CreateUser(t, store, "gus")
	product := testutil.CreateProduct(t, store, whey())
	cart := services.NewCartService(store, state.NewManager())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cart.AddToCart(ctx, user.ID, product.ID, 1, false); err != nil {
				t.Errorf("AddToCart: %v", err)
			}
		}()
	}
	wg.Wait()

	lines, _ := store.ListCartLines(ctx, user.ID)
	if len(lines) != 1 || lines[0].Quantity != 20 {
		t.Errorf("expected one line with quantity 20, got %+v", lines)
	}
}

func TestAddToCartErrors(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewTestStore(t)
	user := testutil.CreateUser(t, store, "hal")
	product := testutil.CreateProduct(t, store, whey())
	cart := services.NewCartService(store, state.NewManager())

	if _, err := cart.AddToCart(ctx, user.ID, product.ID, 0, false); !errors.Is(err, apperrors.ErrInvalidQuantity) {
		t.Errorf("expected invalid quantity, got %v", err)
	}
	if _, err := cart.AddToCart(ctx, user.ID, 999, 1, false); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected not found for missing product, got %v", err)
	}

	line, err := cart.AddToCart(ctx, user.ID, product.ID, 1, false)
	if err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	zero := 0
	if _, err := cart.UpdateCartLine(ctx, line.ID, domain.CartLinePatch{Quantity: &zero}); !errors.Is(err, apperrors.ErrInvalidQuantity) {
		t.Errorf("expected invalid quantity on update, got %v", err)
	}
}

func TestCartPricesWithPointsBalance(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewTestStore(t)
	user := testutil.CreateUser(t, store, "ivy")
	product := testutil.CreateProduct(t, store, whey())
	cart := services.NewCartService(store, state.NewManager())

	if _, err := cart.AddToCart(ctx, user.ID, product.ID, 1, true); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	summary, err := cart.Cart(ctx, user.ID)
	if err != nil {
		t.Fatalf("Cart: %v", err)
	}
	if summary.SubtotalCents != 9000 || summary.PointsUsed != 0 {
		t.Errorf("expected discounted-only 9000 with no points, got %d / %d", summary.SubtotalCents, summary.PointsUsed)
	}
	if !summary.Lines[0].UsePoints {
		t.Error("expected the points request to stay stored")
	}

	testutil.GrantPoints(t, store, user.ID, 500)
	summary, err = cart.Cart(ctx, user.ID)
	if err != nil {
		t.Fatalf("Cart: %v", err)
	}
	if summary.SubtotalCents != 7200 || summary.PointsUsed != 500 {
		t.Errorf("expected 7200 using 500 points, got %d / %d", summary.SubtotalCents, summary.PointsUsed)
	}
}

func TestUpdateRemoveAndClearCart(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewTestStore(t)
	user := testutil.CreateUser(t, store, "jo")
	a := testutil.CreateProduct(t, store, whey())
	b := testutil.CreateProduct(t, store, domain.Product{Name: "Shaker", PriceCents: 1200})
	cart := services.NewCartService(store, state.NewManager())

	lineA, _ := cart.AddToCart(ctx, user.ID, a.ID, 1, false)
	lineB, _ := cart.AddToCart(ctx, user.ID, b.ID, 1, false)

	qty, usePoints := 4, true
	updated, err := cart.UpdateCartLine(ctx, lineA.ID, domain.CartLinePatch{Quantity: &qty, UsePoints: &usePoints})
	if err != nil {
		t.Fatalf("UpdateCartLine: %v", err)
	}
	if updated.Quantity != 4 || !updated.UsePoints {
		t.Errorf("expected quantity 4 with points, got %+v", updated)
	}

	if ok, _ := cart.RemoveCartLine(ctx, lineB.ID); !ok {
		t.Error("expected line B to be removed")
	}
	if ok, _ := cart.RemoveCartLine(ctx, lineB.ID); ok {
		t.Error("expected removing twice to report false")
	}

	if err := cart.ClearCart(ctx, user.ID); err != nil {
		t.Fatalf("ClearCart: %v", err)
	}
	summary, err := cart.Cart(ctx, user.ID)
	if err != nil {
		t.Fatalf("Cart: %v", err)
	}
	if len(summary.Lines) != 0 || summary.SubtotalCents != 0 {
		t.Errorf("expected empty cart, got %+v", summary)
	}
}

func TestUpdateCartLineWaitsForLineLock(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewTestStore(t)
	user := testutil.CreateUser(t, store, "gil")
	product := testutil.CreateProduct(t, store, whey())
	locker := state.NewManager()
	cart := services.NewCartService(store, locker)

	line, err := cart.AddToCart(ctx, user.ID, product.ID, 1, false)
	if err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	unlock, err := locker.Lock(ctx, state.CartKey(user.ID, product.ID))
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	qty := 4
	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	if _, err := cart.UpdateCartLine(waitCtx, line.ID, domain.CartLinePatch{Quantity: &qty}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected the update to wait for the held lock, got %v", err)
	}
	unlock()

	got, err := cart.UpdateCartLine(ctx, line.ID, domain.CartLinePatch{Quantity: &qty})
	if err != nil {
		t.Fatalf("UpdateCartLine: %v", err)
	}
	if got.Quantity != 4 {
		t.Errorf("expected quantity 4, got %d", got.Quantity)
	}

	if _, err := cart.UpdateCartLine(ctx, 999, domain.CartLinePatch{Quantity: &qty}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
