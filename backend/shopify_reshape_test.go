package backend

import (
	"encoding/json"
	"testing"
)

func TestReshapeShopifyCartFlattensAndRecomputes(t *testing.T) {
	raw := `{
	  "id": "gid://shopify/Cart/1",
	  "checkoutUrl": "https://shop.example/checkout/abc",
	  "lines": {"edges": [
	    {"node": {
	      "id": "gid://shopify/CartLine/1",
	      "quantity": 2,
	      "merchandise": {
	        "id": "gid://shopify/ProductVariant/11",
	        "title": "Small",
	        "price": {"amount": "12.50", "currencyCode": "USD"},
	        "product": {"id": "p1", "handle": "tee", "title": "Tee",
	          "featuredImage": {"url": "https://cdn/img.png", "altText": "Tee", "width": 10, "height": 10}}
	      }
	    }},
	    {"node": {
	      "id": "gid://shopify/CartLine/2",
	      "quantity": 1,
	      "merchandise": {
	        "id": "gid://shopify/ProductVariant/12",
	        "title": "Large",
	        "price": {"amount": "7.25", "currencyCode": "USD"},
	        "product": {"id": "p1", "handle": "tee", "title": "Tee"}
	      }
	    }}
	  ]}
	}`
	var native shCart
	if err := json.Unmarshal([]byte(raw), &native); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	cart, err := reshapeShopifyCart(native)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.CheckoutURL != "https://shop.example/checkout/abc" {
		t.Fatalf("unexpected checkout url %q", cart.CheckoutURL)
	}
	if len(cart.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(cart.Lines))
	}
	if cart.Lines[0].ID != "gid://shopify/CartLine/1" || cart.Lines[0].VariantID != "gid://shopify/ProductVariant/11" {
		t.Fatalf("unexpected line identity: %+v", cart.Lines[0])
	}
	if !cart.TotalCost.Value.Equal(dec("32.25")) || cart.TotalCost.CurrencyCode != "USD" {
		t.Fatalf("expected recomputed total 32.25 USD, got %+v", cart.TotalCost)
	}
}

func TestReshapeShopifyCartEmpty(t *testing.T) {
	cart, err := reshapeShopifyCart(shCart{ID: "gid://shopify/Cart/1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Lines) != 0 || !cart.TotalCost.Value.IsZero() || cart.TotalCost.CurrencyCode != "USD" {
		t.Fatalf("expected empty USD cart, got %+v", cart)
	}
}

func TestReshapeShopifyCartMissingID(t *testing.T) {
	if _, err := reshapeShopifyCart(shCart{}); err == nil {
		t.Fatalf("expected error for cart without id")
	}
}

func TestReshapeShopifyProduct(t *testing.T) {
	if p := reshapeShopifyProduct(nil); p != nil {
		t.Fatalf("expected nil for nil product")
	}

	raw := `{
	  "id": "p1", "handle": "tee", "title": "Tee", "description": "A tee.",
	  "images": {"edges": [{"node": {"url": "https://cdn/shots/front.png", "width": 5, "height": 5}}]},
	  "variants": {"edges": [{"node": {"id": "v1", "title": "Small", "availableForSale": true,
	    "price": {"amount": "19.99", "currencyCode": "USD"}}}]}
	}`
	var native shProduct
	if err := json.Unmarshal([]byte(raw), &native); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	p := reshapeShopifyProduct(&native)
	if p == nil {
		t.Fatalf("expected product")
	}
	if p.Images[0].AltText != "Tee - front" {
		t.Fatalf("expected derived alt text, got %q", p.Images[0].AltText)
	}
	if len(p.Variants) != 1 || !p.Variants[0].Price.Value.Equal(dec("19.99")) {
		t.Fatalf("unexpected variants: %+v", p.Variants)
	}
}
