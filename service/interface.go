package service

import (
	"context"

	"storefront/identity"
	"storefront/model"
)

// CartSyncer is the caller-facing contract of the cart synchronizer. Every
// mutating operation either succeeds (nil error) or returns an *OpError
// whose message is a short fixed string safe to show a buyer.
type CartSyncer interface {
	GetCart(ctx context.Context, ids *identity.Manager) (*model.Cart, error)
	AddItem(ctx context.Context, ids *identity.Manager, variantID string, quantity int) error
	RemoveItem(ctx context.Context, ids *identity.Manager, variantID string) error
	SetQuantity(ctx context.Context, ids *identity.Manager, variantID string, quantity int) error
	BeginCheckout(ctx context.Context, ids *identity.Manager, currency string) (string, error)
	CreateCartAndPersistHandle(ctx context.Context, ids *identity.Manager) (model.Cart, error)
}
