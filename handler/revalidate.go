package handler

import (
	"crypto/subtle"
	"net/http"
	"time"

	"storefront/cache"
)

var (
	collectionTopics = []string{"collections/create", "collections/delete", "collections/update"}
	productTopics    = []string{"products/create", "products/delete", "products/update"}
)

// Revalidate handles POST /api/revalidate, the inbound change notification
// from the commerce backend. The sender retries on anything but a 200, so
// the handler always acknowledges; a bad secret or an unknown topic only
// skips the internal invalidation.
func (h *Handler) Revalidate(w http.ResponseWriter, r *http.Request) {
	topic := r.Header.Get("X-Shopify-Topic")
	if topic == "" {
		topic = "unknown"
	}
	secret := r.URL.Query().Get("secret")

	if secret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(h.cfg.RevalidationSecret)) != 1 {
		h.log.Error("invalid revalidation secret", "topic", topic)
		writeJSON(w, http.StatusOK, map[string]any{"status": 200})
		return
	}

	var tag string
	switch {
	case contains(collectionTopics, topic):
		tag = cache.TagCollections
	case contains(productTopics, topic):
		tag = cache.TagProducts
	default:
		writeJSON(w, http.StatusOK, map[string]any{"status": 200})
		return
	}

	h.inv.Invalidate(tag)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      200,
		"revalidated": true,
		"now":         time.Now().UnixMilli(),
	})
}

func contains(topics []string, topic string) bool {
	for _, t := range topics {
		if t == topic {
			return true
		}
	}
	return false
}
