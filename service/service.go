package service

import (
	"context"
	"log/slog"

	"storefront/backend"
	"storefront/cache"
	"storefront/identity"
	"storefront/model"
)

// CartService orchestrates read-modify-write cart operations against the
// commerce backend. An operation resolves the handle, fetches the cart when
// it needs to locate a line, issues the mutation, and broadcasts the "cart"
// invalidation tag on success.
//
// The fetch-locate-mutate sequence is not atomic: two concurrent operations
// on the same handle can race and lose an update. The backend offers no
// concurrency token to close that window, so it is accepted rather than
// papered over with local locking that would not help across instances.
type CartService struct {
	backend backend.Backend
	inv     *cache.Invalidator
	log     *slog.Logger
}

func NewCartService(b backend.Backend, inv *cache.Invalidator, log *slog.Logger) *CartService {
	return &CartService{backend: b, inv: inv, log: log}
}

// fail logs the internal cause and returns the fixed user-facing error.
func (s *CartService) fail(op string, kind Kind, msg string, cause error) *OpError {
	s.log.Error("cart operation failed", "op", op, "kind", kind.String(), "msg", msg, "err", cause)
	return &OpError{Kind: kind, Message: msg, Cause: cause}
}

// GetCart returns the cart for the stored handle, or nil when no handle is
// set.
func (s *CartService) GetCart(ctx context.Context, ids *identity.Manager) (*model.Cart, error) {
	cartID, ok := ids.ResolveCartID()
	if !ok {
		return nil, nil
	}
	cart, err := s.backend.GetCart(ctx, cartID)
	if err != nil {
		return nil, s.fail("get", KindNotFound, MsgErrorFetching, err)
	}
	return &cart, nil
}

// AddItem always issues an add, never a set; the backend is the source of
// truth for whether repeated adds of one variant merge into a single line
// or stack up as duplicates.
func (s *CartService) AddItem(ctx context.Context, ids *identity.Manager, variantID string, quantity int) error {
	cartID, ok := ids.ResolveCartID()
	if !ok || variantID == "" {
		return s.fail("add", KindValidation, MsgErrorAdding, nil)
	}
	if quantity < 1 {
		quantity = 1
	}
	if _, err := s.backend.AddToCart(ctx, cartID, []backend.Line{{VariantID: variantID, Quantity: quantity}}); err != nil {
		return s.fail("add", KindTransport, MsgErrorAdding, err)
	}
	s.inv.Invalidate(cache.TagCart)
	return nil
}

// RemoveItem removes the line holding the given variant. A line that was
// never assigned a backend id cannot be addressed remotely, so it is
// reported as not found rather than guessed at.
func (s *CartService) RemoveItem(ctx context.Context, ids *identity.Manager, variantID string) error {
	cartID, ok := ids.ResolveCartID()
	if !ok {
		return s.fail("remove", KindIdentity, MsgMissingCartID, nil)
	}
	cart, err := s.backend.GetCart(ctx, cartID)
	if err != nil {
		return s.fail("remove", KindNotFound, MsgErrorFetching, err)
	}
	line := cart.Line(variantID)
	if line == nil || line.ID == "" {
		return s.fail("remove", KindNotFound, MsgItemNotFound, nil)
	}
	if _, err := s.backend.RemoveFromCart(ctx, cartID, []backend.Line{{LineID: line.ID}}); err != nil {
		return s.fail("remove", KindTransport, MsgErrorRemoving, err)
	}
	s.inv.Invalidate(cache.TagCart)
	return nil
}

// SetQuantity reconciles the cart toward the requested quantity:
//
//	line exists, quantity 0  -> remove it
//	line exists, quantity >0 -> update it
//	line absent, quantity >0 -> add it
//	line absent, quantity 0  -> nothing to do
//
// A line without a backend-assigned id falls through to the absent
// branches; it cannot be updated or removed remotely.
func (s *CartService) SetQuantity(ctx context.Context, ids *identity.Manager, variantID string, quantity int) error {
	cartID, ok := ids.ResolveCartID()
	if !ok {
		return s.fail("update", KindIdentity, MsgMissingCartID, nil)
	}
	cart, err := s.backend.GetCart(ctx, cartID)
	if err != nil {
		return s.fail("update", KindNotFound, MsgErrorFetching, err)
	}

	line := cart.Line(variantID)
	switch {
	case line != nil && line.ID != "":
		if quantity == 0 {
			_, err = s.backend.RemoveFromCart(ctx, cartID, []backend.Line{{LineID: line.ID}})
		} else {
			_, err = s.backend.UpdateCart(ctx, cartID, []backend.Line{{LineID: line.ID, VariantID: variantID, Quantity: quantity}})
		}
	case quantity > 0:
		_, err = s.backend.AddToCart(ctx, cartID, []backend.Line{{VariantID: variantID, Quantity: quantity}})
	default:
		// Nothing in the cart and nothing requested.
	}
	if err != nil {
		return s.fail("update", KindTransport, MsgErrorUpdating, err)
	}
	s.inv.Invalidate(cache.TagCart)
	return nil
}

// BeginCheckout hands the caller the URL to redirect the buyer to.
func (s *CartService) BeginCheckout(ctx context.Context, ids *identity.Manager, currency string) (string, error) {
	cartID, ok := ids.ResolveCartID()
	if !ok {
		return "", s.fail("checkout", KindIdentity, MsgMissingCartID, nil)
	}
	cart, err := s.backend.GetCart(ctx, cartID)
	if err != nil {
		return "", s.fail("checkout", KindNotFound, MsgErrorFetching, err)
	}
	if len(cart.Lines) == 0 {
		return "", s.fail("checkout", KindValidation, MsgCartEmpty, nil)
	}
	url, err := s.backend.CreateCheckout(ctx, cartID, currency)
	if err != nil {
		return "", s.fail("checkout", KindTransport, MsgErrorCheckingOut, err)
	}
	return url, nil
}

// CreateCartAndPersistHandle is first-touch initialization: it always
// creates a fresh cart and overwrites the durable handle. Calling it with a
// valid handle in place orphans the previous cart.
func (s *CartService) CreateCartAndPersistHandle(ctx context.Context, ids *identity.Manager) (model.Cart, error) {
	cart, err := ids.CreateCart(ctx)
	if err != nil {
		return model.Cart{}, s.fail("create", KindTransport, MsgErrorCreating, err)
	}
	s.inv.Invalidate(cache.TagCart)
	return cart, nil
}
