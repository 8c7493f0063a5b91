package backend

import (
	"context"

	"storefront/model"
)

// Line is the variant-quantity pair handed to mutating cart calls. LineID
// is only required by backends that address lines with their own ids.
type Line struct {
	LineID    string
	VariantID string
	Quantity  int
}

// Backend is the narrow adapter every commerce backend implements. The cart
// synchronizer depends on this interface only, never on a concrete backend;
// the concrete implementation is picked once at startup.
type Backend interface {
	GetCart(ctx context.Context, cartID string) (model.Cart, error)
	CreateCart(ctx context.Context) (model.Cart, error)
	AddToCart(ctx context.Context, cartID string, lines []Line) (model.Cart, error)
	RemoveFromCart(ctx context.Context, cartID string, lines []Line) (model.Cart, error)
	UpdateCart(ctx context.Context, cartID string, lines []Line) (model.Cart, error)

	// CreateCheckout returns the absolute URL the buyer must be redirected
	// to. Some backends mint a dedicated checkout session; others return the
	// cart's own checkout URL.
	CreateCheckout(ctx context.Context, cartID, currency string) (string, error)

	GetProduct(ctx context.Context, handle string) (*model.Product, error)
	GetCollection(ctx context.Context, handle string) (*model.Collection, error)
	GetCollections(ctx context.Context) ([]model.Collection, error)
	GetCollectionProducts(ctx context.Context, collection string) ([]model.Product, error)
}
