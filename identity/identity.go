// Package identity owns the durable per-client cart handle. The handle is
// the only state this service keeps outside the commerce backend, and only
// this package writes to it.
package identity

import (
	"context"
	"log/slog"
	"net/http"

	"storefront/backend"
	"storefront/model"
)

// CookieName is the durable storage slot for the cart handle.
const CookieName = "cartId"

// HandleStore is the durable per-client slot holding the opaque cart id.
// The production implementation is a cookie pair; tests substitute MemStore.
type HandleStore interface {
	Get() (string, bool)
	Set(id string)
	Clear()
}

// CookieStore binds a HandleStore to one request/response pair.
type CookieStore struct {
	w http.ResponseWriter
	r *http.Request
}

func ForRequest(w http.ResponseWriter, r *http.Request) *CookieStore {
	return &CookieStore{w: w, r: r}
}

func (c *CookieStore) Get() (string, bool) {
	cookie, err := c.r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func (c *CookieStore) Set(id string) {
	http.SetCookie(c.w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c *CookieStore) Clear() {
	http.SetCookie(c.w, &http.Cookie{Name: CookieName, Value: "", Path: "/", MaxAge: -1})
}

// MemStore holds the handle in memory.
type MemStore struct {
	id  string
	set bool
}

func (m *MemStore) Get() (string, bool) { return m.id, m.set && m.id != "" }
func (m *MemStore) Set(id string)       { m.id, m.set = id, true }
func (m *MemStore) Clear()              { m.id, m.set = "", false }

// Manager resolves the cart handle and lazily provisions a cart when none
// exists. It writes at most one new handle per call; two concurrent
// requests sharing a client can still each create a cart, and the backend
// keeps whichever handle is written last. That race is accepted, matching
// the backend's own lack of concurrency tokens.
type Manager struct {
	handles HandleStore
	backend backend.Backend
	log     *slog.Logger
}

func NewManager(handles HandleStore, b backend.Backend, log *slog.Logger) *Manager {
	return &Manager{handles: handles, backend: b, log: log}
}

// ResolveCartID reads the durable handle without touching the backend.
func (m *Manager) ResolveCartID() (string, bool) {
	return m.handles.Get()
}

// EnsureCart returns the live cart for the stored handle, creating a cart
// and persisting its handle first when no usable handle exists.
func (m *Manager) EnsureCart(ctx context.Context) (model.Cart, error) {
	if id, ok := m.handles.Get(); ok {
		cart, err := m.backend.GetCart(ctx, id)
		if err == nil {
			return cart, nil
		}
		m.log.Warn("stored cart handle is dead, creating a new cart", "cartId", id, "err", err)
	}
	return m.CreateCart(ctx)
}

// CreateCart unconditionally creates a new cart and overwrites the durable
// handle. Calling this while a valid handle exists orphans the old cart.
func (m *Manager) CreateCart(ctx context.Context) (model.Cart, error) {
	cart, err := m.backend.CreateCart(ctx)
	if err != nil {
		return model.Cart{}, err
	}
	m.handles.Set(cart.ID)
	return cart, nil
}
