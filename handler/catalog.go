package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"storefront/cache"
	"storefront/model"
)

// Catalog reads are memoized in the tag store; the revalidation webhook and
// cart mutations drop the relevant entries.

// GetProduct handles GET /products/{handle}
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	handle := mux.Vars(r)["handle"]
	key := "product:" + handle

	if v, ok := h.store.Get(key); ok {
		writeJSON(w, http.StatusOK, v)
		return
	}
	product, err := h.backend.GetProduct(r.Context(), handle)
	if err != nil {
		h.log.Error("product fetch failed", "handle", handle, "err", err)
		writeErr(w, http.StatusInternalServerError, "Error fetching product")
		return
	}
	if product == nil {
		writeErr(w, http.StatusNotFound, "Product not found")
		return
	}
	h.store.Set(key, product, cache.TagProducts)
	writeJSON(w, http.StatusOK, product)
}

// GetCollections handles GET /collections. The synthetic "All" collection
// comes first and hidden-* collections are dropped from the listing.
func (h *Handler) GetCollections(w http.ResponseWriter, r *http.Request) {
	const key = "collections"

	if v, ok := h.store.Get(key); ok {
		writeJSON(w, http.StatusOK, v)
		return
	}
	collections, err := h.backend.GetCollections(r.Context())
	if err != nil {
		h.log.Error("collections fetch failed", "err", err)
		writeErr(w, http.StatusInternalServerError, "Error fetching collections")
		return
	}
	out := []model.Collection{{
		Handle:      "",
		Title:       "All",
		Description: "All products",
		SEO:         model.SEO{Title: "All", Description: "All products"},
		Path:        "/search",
	}}
	for _, c := range collections {
		if len(c.Handle) >= 6 && c.Handle[:6] == "hidden" {
			continue
		}
		out = append(out, c)
	}
	h.store.Set(key, out, cache.TagCollections)
	writeJSON(w, http.StatusOK, out)
}

// GetCollectionProducts handles GET /collections/{handle}/products
func (h *Handler) GetCollectionProducts(w http.ResponseWriter, r *http.Request) {
	handle := mux.Vars(r)["handle"]
	key := "collection-products:" + handle

	if v, ok := h.store.Get(key); ok {
		writeJSON(w, http.StatusOK, v)
		return
	}
	products, err := h.backend.GetCollectionProducts(r.Context(), handle)
	if err != nil {
		h.log.Error("collection products fetch failed", "collection", handle, "err", err)
		writeErr(w, http.StatusInternalServerError, "Error fetching products")
		return
	}
	h.store.Set(key, products, cache.TagProducts, cache.TagCollections)
	writeJSON(w, http.StatusOK, products)
}
