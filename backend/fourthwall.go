package backend

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"storefront/config"
	"storefront/model"
)

// Native Fourthwall shapes. The REST API carries no line ids, no cart
// totals and no tax fields; the reshaper fills those gaps.
type fwMoney struct {
	Value        float64 `json:"value"`
	CurrencyCode string  `json:"currencyCode"`
}

type fwImage struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type fwVariant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SKU       string    `json:"sku"`
	UnitPrice fwMoney   `json:"unitPrice"`
	Images    []fwImage `json:"images"`
}

type fwCartItem struct {
	Variant  fwVariant `json:"variant"`
	Quantity int       `json:"quantity"`
}

type fwCart struct {
	ID    string       `json:"id"`
	Items []fwCartItem `json:"items"`
}

type fwProduct struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Slug        string      `json:"slug"`
	Description string      `json:"description"`
	Images      []fwImage   `json:"images"`
	Variants    []fwVariant `json:"variants"`
}

type fwCollection struct {
	Handle      string    `json:"handle"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	SEO         model.SEO `json:"seo"`
	UpdatedAt   string    `json:"updatedAt"`
}

// Fourthwall talks to the Fourthwall public REST API. The shop id travels
// as the X-ShopId header and the shared secret as a query parameter on
// every call.
type Fourthwall struct {
	client *Client
	cfg    *config.Config
	log    *slog.Logger
}

func NewFourthwall(client *Client, cfg *config.Config, log *slog.Logger) *Fourthwall {
	return &Fourthwall{client: client, cfg: cfg, log: log}
}

func (f *Fourthwall) endpoint(path string) string {
	return fmt.Sprintf("%s/api/public/v1.0%s?secret=%s", f.cfg.FourthwallURL, path, url.QueryEscape(f.cfg.FourthwallSecret))
}

func (f *Fourthwall) shopHeader() RequestOption {
	return WithHeader("X-ShopId", f.cfg.FourthwallShopID)
}

func (f *Fourthwall) GetCart(ctx context.Context, cartID string) (model.Cart, error) {
	var native fwCart
	if _, err := f.client.Get(ctx, f.endpoint("/carts/"+cartID), &native, f.shopHeader(), WithNoStore()); err != nil {
		return model.Cart{}, err
	}
	return reshapeFourthwallCart(native)
}

func (f *Fourthwall) CreateCart(ctx context.Context) (model.Cart, error) {
	var native fwCart
	payload := map[string]any{"items": []any{}}
	if _, err := f.client.Post(ctx, f.endpoint("/carts"), payload, &native, f.shopHeader(), WithNoStore()); err != nil {
		return model.Cart{}, err
	}
	return reshapeFourthwallCart(native)
}

func (f *Fourthwall) AddToCart(ctx context.Context, cartID string, lines []Line) (model.Cart, error) {
	items := make([]map[string]any, 0, len(lines))
	for _, l := range lines {
		items = append(items, map[string]any{"variantId": l.VariantID, "quantity": l.Quantity})
	}
	var native fwCart
	if _, err := f.client.Post(ctx, f.endpoint("/carts/"+cartID+"/add"), map[string]any{"items": items}, &native, f.shopHeader(), WithNoStore()); err != nil {
		return model.Cart{}, err
	}
	return reshapeFourthwallCart(native)
}

func (f *Fourthwall) RemoveFromCart(ctx context.Context, cartID string, lines []Line) (model.Cart, error) {
	items := make([]map[string]any, 0, len(lines))
	for _, l := range lines {
		// Fourthwall addresses lines by variant id; the synchronizer puts
		// the backend-assigned line id in LineID, which is the variant id
		// here (see the reshaper).
		items = append(items, map[string]any{"variantId": l.LineID})
	}
	var native fwCart
	if _, err := f.client.Post(ctx, f.endpoint("/carts/"+cartID+"/remove"), map[string]any{"items": items}, &native, f.shopHeader(), WithNoStore()); err != nil {
		return model.Cart{}, err
	}
	return reshapeFourthwallCart(native)
}

func (f *Fourthwall) UpdateCart(ctx context.Context, cartID string, lines []Line) (model.Cart, error) {
	items := make([]map[string]any, 0, len(lines))
	for _, l := range lines {
		items = append(items, map[string]any{"variantId": l.VariantID, "quantity": l.Quantity})
	}
	var native fwCart
	if _, err := f.client.Post(ctx, f.endpoint("/carts/"+cartID+"/change"), map[string]any{"items": items}, &native, f.shopHeader(), WithNoStore()); err != nil {
		return model.Cart{}, err
	}
	return reshapeFourthwallCart(native)
}

func (f *Fourthwall) CreateCheckout(ctx context.Context, cartID, currency string) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	payload := map[string]any{"cartId": cartID, "currency": currency}
	if _, err := f.client.Post(ctx, f.endpoint("/checkouts"), payload, &out, f.shopHeader(), WithNoStore()); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("checkout response carried no id for cart %s", cartID)
	}
	return fmt.Sprintf("%s/checkout/%s", f.cfg.FourthwallCheckout, out.ID), nil
}

func (f *Fourthwall) GetProduct(ctx context.Context, handle string) (*model.Product, error) {
	// No product-by-slug endpoint; list the configured collection and pick
	// the matching slug.
	products, err := f.GetCollectionProducts(ctx, f.cfg.FourthwallCollection)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].Handle == handle {
			return &products[i], nil
		}
	}
	return nil, nil
}

func (f *Fourthwall) GetCollection(ctx context.Context, handle string) (*model.Collection, error) {
	var out struct {
		Collection *fwCollection `json:"collection"`
	}
	if _, err := f.client.Get(ctx, f.endpoint("/collections/"+handle), &out, f.shopHeader()); err != nil {
		return nil, err
	}
	return reshapeFourthwallCollection(out.Collection), nil
}

func (f *Fourthwall) GetCollections(ctx context.Context) ([]model.Collection, error) {
	var out struct {
		Collections []fwCollection `json:"collections"`
	}
	if _, err := f.client.Get(ctx, f.endpoint("/collections"), &out, f.shopHeader()); err != nil {
		return nil, err
	}
	return reshapeFourthwallCollections(out.Collections), nil
}

func (f *Fourthwall) GetCollectionProducts(ctx context.Context, collection string) ([]model.Product, error) {
	var out struct {
		Results []fwProduct `json:"results"`
	}
	if _, err := f.client.Get(ctx, f.endpoint("/collections/"+collection+"/products"), &out, f.shopHeader()); err != nil {
		return nil, err
	}
	if out.Results == nil {
		f.log.Info("no products for collection", "collection", collection)
		return []model.Product{}, nil
	}
	return reshapeFourthwallProducts(out.Results), nil
}
