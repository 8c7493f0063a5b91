package identity

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"storefront/backend"
	"storefront/model"
)

// ---- fake backend; only the cart lookup/create paths matter here ----
type fakeBackend struct {
	GetCartFn    func(cartID string) (model.Cart, error)
	CreateCartFn func() (model.Cart, error)
	creates      int
}

func (f *fakeBackend) GetCart(_ context.Context, cartID string) (model.Cart, error) {
	return f.GetCartFn(cartID)
}
func (f *fakeBackend) CreateCart(_ context.Context) (model.Cart, error) {
	f.creates++
	return f.CreateCartFn()
}
func (f *fakeBackend) AddToCart(_ context.Context, _ string, _ []backend.Line) (model.Cart, error) {
	return model.Cart{}, nil
}
func (f *fakeBackend) RemoveFromCart(_ context.Context, _ string, _ []backend.Line) (model.Cart, error) {
	return model.Cart{}, nil
}
func (f *fakeBackend) UpdateCart(_ context.Context, _ string, _ []backend.Line) (model.Cart, error) {
	return model.Cart{}, nil
}
func (f *fakeBackend) CreateCheckout(_ context.Context, _, _ string) (string, error) {
	return "", nil
}
func (f *fakeBackend) GetProduct(_ context.Context, _ string) (*model.Product, error) {
	return nil, nil
}
func (f *fakeBackend) GetCollection(_ context.Context, _ string) (*model.Collection, error) {
	return nil, nil
}
func (f *fakeBackend) GetCollections(_ context.Context) ([]model.Collection, error) {
	return nil, nil
}
func (f *fakeBackend) GetCollectionProducts(_ context.Context, _ string) ([]model.Product, error) {
	return nil, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolveCartID(t *testing.T) {
	store := &MemStore{}
	m := NewManager(store, &fakeBackend{}, testLogger())
	if _, ok := m.ResolveCartID(); ok {
		t.Fatalf("expected no handle")
	}
	store.Set("cart-1")
	if id, ok := m.ResolveCartID(); !ok || id != "cart-1" {
		t.Fatalf("expected cart-1, got %q", id)
	}
}

func TestEnsureCartReturnsLiveCart(t *testing.T) {
	fb := &fakeBackend{
		GetCartFn:    func(cartID string) (model.Cart, error) { return model.Cart{ID: cartID}, nil },
		CreateCartFn: func() (model.Cart, error) { return model.Cart{ID: "cart-new"}, nil },
	}
	store := &MemStore{}
	store.Set("cart-1")
	m := NewManager(store, fb, testLogger())

	cart, err := m.EnsureCart(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.ID != "cart-1" {
		t.Fatalf("expected existing cart, got %q", cart.ID)
	}
	if fb.creates != 0 {
		t.Fatalf("expected no cart creation, got %d", fb.creates)
	}
}

func TestEnsureCartReplacesDeadHandle(t *testing.T) {
	fb := &fakeBackend{
		GetCartFn:    func(string) (model.Cart, error) { return model.Cart{}, errors.New("expired") },
		CreateCartFn: func() (model.Cart, error) { return model.Cart{ID: "cart-new"}, nil },
	}
	store := &MemStore{}
	store.Set("cart-dead")
	m := NewManager(store, fb, testLogger())

	cart, err := m.EnsureCart(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.ID != "cart-new" {
		t.Fatalf("expected new cart, got %q", cart.ID)
	}
	if id, ok := store.Get(); !ok || id != "cart-new" {
		t.Fatalf("expected handle persisted, got %q", id)
	}
	if fb.creates != 1 {
		t.Fatalf("expected exactly one create, got %d", fb.creates)
	}
}

func TestEnsureCartProvisionsWhenAbsent(t *testing.T) {
	fb := &fakeBackend{
		CreateCartFn: func() (model.Cart, error) { return model.Cart{ID: "cart-new"}, nil },
	}
	store := &MemStore{}
	m := NewManager(store, fb, testLogger())

	cart, err := m.EnsureCart(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.ID != "cart-new" {
		t.Fatalf("expected new cart, got %q", cart.ID)
	}
	if id, _ := store.Get(); id != "cart-new" {
		t.Fatalf("expected handle persisted")
	}
}

func TestCreateCartFailurePersistsNothing(t *testing.T) {
	fb := &fakeBackend{
		CreateCartFn: func() (model.Cart, error) { return model.Cart{}, errors.New("down") },
	}
	store := &MemStore{}
	m := NewManager(store, fb, testLogger())

	if _, err := m.CreateCart(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if _, ok := store.Get(); ok {
		t.Fatalf("expected no handle written on failure")
	}
}
