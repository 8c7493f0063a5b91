package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"storefront/backend"
	"storefront/cache"
	"storefront/config"
	"storefront/identity"
	"storefront/service"
)

// Handler is the HTTP layer over the cart synchronizer and the catalog
// read path.
type Handler struct {
	svc     service.CartSyncer
	backend backend.Backend
	store   *cache.TagStore
	inv     *cache.Invalidator
	cfg     *config.Config
	log     *slog.Logger
}

func NewHandler(svc service.CartSyncer, b backend.Backend, store *cache.TagStore, inv *cache.Invalidator, cfg *config.Config, log *slog.Logger) *Handler {
	return &Handler{svc: svc, backend: b, store: store, inv: inv, cfg: cfg, log: log}
}

// RegisterRoutes registers all routes on the provided router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.Use(h.requestID)

	// Cart
	r.HandleFunc("/cart", h.GetCart).Methods("GET")
	r.HandleFunc("/cart/add", h.AddItem).Methods("POST")
	r.HandleFunc("/cart/remove", h.RemoveItem).Methods("POST")
	r.HandleFunc("/cart/update", h.SetQuantity).Methods("POST")
	r.HandleFunc("/cart/checkout", h.BeginCheckout).Methods("POST")

	// Catalog (cached reads)
	r.HandleFunc("/products/{handle}", h.GetProduct).Methods("GET")
	r.HandleFunc("/collections", h.GetCollections).Methods("GET")
	r.HandleFunc("/collections/{handle}/products", h.GetCollectionProducts).Methods("GET")

	// Inbound change notifications
	r.HandleFunc("/api/revalidate", h.Revalidate).Methods("POST")
}

// requestID tags every request with an id carried through the logs and the
// response headers.
func (h *Handler) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		h.log.Debug("request", "id", id, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// --- request / response shapes ---

type addItemReq struct {
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity,omitempty"`
}

type removeItemReq struct {
	VariantID string `json:"variant_id"`
}

type setQuantityReq struct {
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

type checkoutReq struct {
	Currency string `json:"currency,omitempty"`
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeOpErr maps the synchronizer's fixed error vocabulary onto HTTP
// status codes. The body carries only the user-facing string.
func writeOpErr(w http.ResponseWriter, err error) {
	var op *service.OpError
	if errors.As(err, &op) {
		code := http.StatusBadRequest
		if op.Kind == service.KindNotFound {
			code = http.StatusNotFound
		}
		writeErr(w, code, op.Message)
		return
	}
	writeErr(w, http.StatusInternalServerError, err.Error())
}

func (h *Handler) ids(w http.ResponseWriter, r *http.Request) *identity.Manager {
	return identity.NewManager(identity.ForRequest(w, r), h.backend, h.log)
}

// --- cart handlers ---

// GetCart handles GET /cart
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.svc.GetCart(r.Context(), h.ids(w, r))
	if err != nil {
		writeOpErr(w, err)
		return
	}
	if cart == nil {
		// First touch: provision a cart and hand its handle back.
		created, err := h.svc.CreateCartAndPersistHandle(r.Context(), h.ids(w, r))
		if err != nil {
			writeOpErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, created)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// AddItem handles POST /cart/add
// body: { "variant_id": "...", "quantity": 1 }
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.svc.AddItem(r.Context(), h.ids(w, r), req.VariantID, req.Quantity); err != nil {
		writeOpErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "added"})
}

// RemoveItem handles POST /cart/remove
// body: { "variant_id": "..." }
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	var req removeItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.svc.RemoveItem(r.Context(), h.ids(w, r), req.VariantID); err != nil {
		writeOpErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// SetQuantity handles POST /cart/update
// body: { "variant_id": "...", "quantity": 2 }
func (h *Handler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var req setQuantityReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.svc.SetQuantity(r.Context(), h.ids(w, r), req.VariantID, req.Quantity); err != nil {
		writeOpErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// BeginCheckout handles POST /cart/checkout and answers with the URL the
// buyer must be redirected to.
func (h *Handler) BeginCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Currency == "" {
		req.Currency = "USD"
	}
	url, err := h.svc.BeginCheckout(r.Context(), h.ids(w, r), req.Currency)
	if err != nil {
		writeOpErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
