package handlers

import (
	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
	"github.com/vladimiradmaev/fittrack/internal/interfaces"
)

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	UserService    interfaces.UserServiceInterface
	CatalogService interfaces.CatalogServiceInterface
	LogService     interfaces.LogServiceInterface
	Ledger         interfaces.LedgerInterface
	RecipeService  interfaces.RecipeServiceInterface
	CartService    interfaces.CartServiceInterface
	Errors         *apperrors.Handler
}
