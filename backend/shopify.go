package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"storefront/config"
	"storefront/model"
)

const cartFragment = `fragment cart on Cart {
  id
  checkoutUrl
  lines(first: 100) {
    edges {
      node {
        id
        quantity
        merchandise {
          ... on ProductVariant {
            id
            title
            price { amount currencyCode }
            product { id handle title featuredImage { url altText width height } }
          }
        }
      }
    }
  }
}`

const productFragment = `fragment product on Product {
  id
  handle
  title
  description
  images(first: 20) { edges { node { url altText width height } } }
  variants(first: 100) {
    edges { node { id title availableForSale price { amount currencyCode } } }
  }
}`

const collectionFragment = `fragment collection on Collection {
  handle
  title
  description
  updatedAt
}`

// Shopify talks to the Storefront GraphQL API: one endpoint, every request
// a POST carrying a query plus variables, authenticated with the storefront
// access token header.
type Shopify struct {
	client *Client
	cfg    *config.Config
	log    *slog.Logger
}

func NewShopify(client *Client, cfg *config.Config, log *slog.Logger) *Shopify {
	return &Shopify{client: client, cfg: cfg, log: log}
}

func (s *Shopify) endpoint() string {
	domain := s.cfg.ShopifyDomain
	if !strings.HasPrefix(domain, "https://") {
		domain = "https://" + domain
	}
	return domain + "/api/2023-01/graphql.json"
}

type graphqlError struct {
	Message string `json:"message"`
}

// query runs one GraphQL operation and decodes the data field into out.
// GraphQL-level errors surface as TransportError so that the synchronizer's
// boundary handling treats them like any other backend failure.
func (s *Shopify) query(ctx context.Context, query string, variables, out any) error {
	payload := map[string]any{"query": query}
	if variables != nil {
		payload = map[string]any{"query": query, "variables": variables}
	}
	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphqlError  `json:"errors"`
	}
	if _, err := s.client.Post(ctx, s.endpoint(), payload, &envelope,
		WithHeader("X-Shopify-Storefront-Access-Token", s.cfg.ShopifyToken), WithNoStore()); err != nil {
		return err
	}
	if len(envelope.Errors) > 0 {
		return &TransportError{URL: s.endpoint(), Payload: payload, Err: fmt.Errorf("graphql: %s", envelope.Errors[0].Message)}
	}
	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return &TransportError{URL: s.endpoint(), Payload: payload, Err: err}
		}
	}
	return nil
}

func (s *Shopify) GetCart(ctx context.Context, cartID string) (model.Cart, error) {
	q := cartFragment + `
query getCart($cartId: ID!) { cart(id: $cartId) { ...cart } }`
	var out struct {
		Cart *shCart `json:"cart"`
	}
	if err := s.query(ctx, q, map[string]any{"cartId": cartID}, &out); err != nil {
		return model.Cart{}, err
	}
	if out.Cart == nil {
		return model.Cart{}, fmt.Errorf("cart %s not found", cartID)
	}
	return reshapeShopifyCart(*out.Cart)
}

func (s *Shopify) CreateCart(ctx context.Context) (model.Cart, error) {
	q := cartFragment + `
mutation createCart { cartCreate { cart { ...cart } } }`
	var out struct {
		CartCreate struct {
			Cart *shCart `json:"cart"`
		} `json:"cartCreate"`
	}
	if err := s.query(ctx, q, nil, &out); err != nil {
		return model.Cart{}, err
	}
	if out.CartCreate.Cart == nil {
		return model.Cart{}, fmt.Errorf("cartCreate returned no cart")
	}
	return reshapeShopifyCart(*out.CartCreate.Cart)
}

func (s *Shopify) AddToCart(ctx context.Context, cartID string, lines []Line) (model.Cart, error) {
	q := cartFragment + `
mutation addToCart($cartId: ID!, $lines: [CartLineInput!]!) {
  cartLinesAdd(cartId: $cartId, lines: $lines) { cart { ...cart } }
}`
	input := make([]map[string]any, 0, len(lines))
	for _, l := range lines {
		input = append(input, map[string]any{"merchandiseId": l.VariantID, "quantity": l.Quantity})
	}
	var out struct {
		CartLinesAdd struct {
			Cart *shCart `json:"cart"`
		} `json:"cartLinesAdd"`
	}
	if err := s.query(ctx, q, map[string]any{"cartId": cartID, "lines": input}, &out); err != nil {
		return model.Cart{}, err
	}
	if out.CartLinesAdd.Cart == nil {
		return model.Cart{}, fmt.Errorf("cartLinesAdd returned no cart")
	}
	return reshapeShopifyCart(*out.CartLinesAdd.Cart)
}

func (s *Shopify) RemoveFromCart(ctx context.Context, cartID string, lines []Line) (model.Cart, error) {
	q := cartFragment + `
mutation removeFromCart($cartId: ID!, $lineIds: [ID!]!) {
  cartLinesRemove(cartId: $cartId, lineIds: $lineIds) { cart { ...cart } }
}`
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.LineID)
	}
	var out struct {
		CartLinesRemove struct {
			Cart *shCart `json:"cart"`
		} `json:"cartLinesRemove"`
	}
	if err := s.query(ctx, q, map[string]any{"cartId": cartID, "lineIds": ids}, &out); err != nil {
		return model.Cart{}, err
	}
	if out.CartLinesRemove.Cart == nil {
		return model.Cart{}, fmt.Errorf("cartLinesRemove returned no cart")
	}
	return reshapeShopifyCart(*out.CartLinesRemove.Cart)
}

func (s *Shopify) UpdateCart(ctx context.Context, cartID string, lines []Line) (model.Cart, error) {
	q := cartFragment + `
mutation updateCart($cartId: ID!, $lines: [CartLineUpdateInput!]!) {
  cartLinesUpdate(cartId: $cartId, lines: $lines) { cart { ...cart } }
}`
	input := make([]map[string]any, 0, len(lines))
	for _, l := range lines {
		input = append(input, map[string]any{"id": l.LineID, "merchandiseId": l.VariantID, "quantity": l.Quantity})
	}
	var out struct {
		CartLinesUpdate struct {
			Cart *shCart `json:"cart"`
		} `json:"cartLinesUpdate"`
	}
	if err := s.query(ctx, q, map[string]any{"cartId": cartID, "lines": input}, &out); err != nil {
		return model.Cart{}, err
	}
	if out.CartLinesUpdate.Cart == nil {
		return model.Cart{}, fmt.Errorf("cartLinesUpdate returned no cart")
	}
	return reshapeShopifyCart(*out.CartLinesUpdate.Cart)
}

// CreateCheckout: Shopify hands the checkout URL back with the cart itself,
// so checkout is a cart fetch.
func (s *Shopify) CreateCheckout(ctx context.Context, cartID, currency string) (string, error) {
	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return "", err
	}
	if cart.CheckoutURL == "" {
		return "", fmt.Errorf("cart %s carried no checkout url", cartID)
	}
	return cart.CheckoutURL, nil
}

func (s *Shopify) GetProduct(ctx context.Context, handle string) (*model.Product, error) {
	q := productFragment + `
query getProduct($handle: String!) { product(handle: $handle) { ...product } }`
	var out struct {
		Product *shProduct `json:"product"`
	}
	if err := s.query(ctx, q, map[string]any{"handle": handle}, &out); err != nil {
		return nil, err
	}
	return reshapeShopifyProduct(out.Product), nil
}

func (s *Shopify) GetCollection(ctx context.Context, handle string) (*model.Collection, error) {
	q := collectionFragment + `
query getCollection($handle: String!) { collection(handle: $handle) { ...collection } }`
	var out struct {
		Collection *shCollection `json:"collection"`
	}
	if err := s.query(ctx, q, map[string]any{"handle": handle}, &out); err != nil {
		return nil, err
	}
	return reshapeShopifyCollection(out.Collection), nil
}

func (s *Shopify) GetCollections(ctx context.Context) ([]model.Collection, error) {
	q := collectionFragment + `
query getCollections { collections(first: 100) { edges { node { ...collection } } } }`
	var out struct {
		Collections shConnection[shCollection] `json:"collections"`
	}
	if err := s.query(ctx, q, nil, &out); err != nil {
		return nil, err
	}
	collections := make([]model.Collection, 0, len(out.Collections.Edges))
	for _, edge := range out.Collections.Edges {
		node := edge.Node
		if c := reshapeShopifyCollection(&node); c != nil {
			collections = append(collections, *c)
		}
	}
	return collections, nil
}

func (s *Shopify) GetCollectionProducts(ctx context.Context, collection string) ([]model.Product, error) {
	q := productFragment + `
query getCollectionProducts($handle: String!) {
  collection(handle: $handle) { products(first: 100) { edges { node { ...product } } } }
}`
	var out struct {
		Collection *struct {
			Products shConnection[shProduct] `json:"products"`
		} `json:"collection"`
	}
	if err := s.query(ctx, q, map[string]any{"handle": collection}, &out); err != nil {
		return nil, err
	}
	if out.Collection == nil {
		s.log.Info("no products for collection", "collection", collection)
		return []model.Product{}, nil
	}
	products := make([]model.Product, 0, len(out.Collection.Products.Edges))
	for _, edge := range out.Collection.Products.Edges {
		node := edge.Node
		if p := reshapeShopifyProduct(&node); p != nil {
			products = append(products, *p)
		}
	}
	return products, nil
}
