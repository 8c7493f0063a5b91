package backend

import (
	"fmt"

	"github.com/shopspring/decimal"

	"storefront/model"
)

// Native Shopify GraphQL shapes. Everything list-valued arrives as a
// connection of edges; the reshaper flattens those.

type shConnection[T any] struct {
	Edges []struct {
		Node T `json:"node"`
	} `json:"edges"`
}

type shMoney struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type shImage struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

type shMerchandise struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Price   shMoney `json:"price"`
	Product struct {
		ID            string  `json:"id"`
		Handle        string  `json:"handle"`
		Title         string  `json:"title"`
		FeaturedImage shImage `json:"featuredImage"`
	} `json:"product"`
}

type shCartLine struct {
	ID          string        `json:"id"`
	Quantity    int           `json:"quantity"`
	Merchandise shMerchandise `json:"merchandise"`
}

type shCart struct {
	ID          string                   `json:"id"`
	CheckoutURL string                   `json:"checkoutUrl"`
	Lines       shConnection[shCartLine] `json:"lines"`
}

type shVariant struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	AvailableForSale bool    `json:"availableForSale"`
	Price            shMoney `json:"price"`
}

type shProduct struct {
	ID          string                  `json:"id"`
	Handle      string                  `json:"handle"`
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Images      shConnection[shImage]   `json:"images"`
	Variants    shConnection[shVariant] `json:"variants"`
}

type shCollection struct {
	Handle      string    `json:"handle"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	SEO         model.SEO `json:"seo"`
	UpdatedAt   string    `json:"updatedAt"`
}

func shMoneyToModel(m shMoney) (model.Money, error) {
	if m.Amount == "" {
		return model.Money{Value: decimal.Zero, CurrencyCode: m.CurrencyCode}, nil
	}
	value, err := decimal.NewFromString(m.Amount)
	if err != nil {
		return model.Money{}, fmt.Errorf("bad money amount %q: %w", m.Amount, err)
	}
	return model.Money{Value: value, CurrencyCode: m.CurrencyCode}, nil
}

// reshapeShopifyCart flattens the line connection and recomputes the total
// from the lines. Shopify does report cart-level cost fields, but the two
// backends disagree on which of those exist, so neither is trusted.
func reshapeShopifyCart(native shCart) (model.Cart, error) {
	if native.ID == "" {
		return model.Cart{}, fmt.Errorf("cart payload missing id")
	}

	cart := model.Cart{
		ID:          native.ID,
		CheckoutURL: native.CheckoutURL,
		Lines:       make([]model.CartLine, 0, len(native.Lines.Edges)),
		TotalCost:   model.ZeroMoney(defaultCurrency),
	}
	total := model.Money{Value: decimal.Zero}
	for _, edge := range native.Lines.Edges {
		node := edge.Node
		unit, err := shMoneyToModel(node.Merchandise.Price)
		if err != nil {
			return model.Cart{}, err
		}
		line := model.CartLine{
			ID:        node.ID,
			VariantID: node.Merchandise.ID,
			Title:     node.Merchandise.Title,
			Quantity:  node.Quantity,
			UnitPrice: unit,
			LineTotal: unit.MulInt(node.Quantity),
			Image: model.Image{
				URL:     node.Merchandise.Product.FeaturedImage.URL,
				AltText: node.Merchandise.Product.FeaturedImage.AltText,
				Width:   node.Merchandise.Product.FeaturedImage.Width,
				Height:  node.Merchandise.Product.FeaturedImage.Height,
			},
		}
		total = total.Add(line.LineTotal)
		cart.Lines = append(cart.Lines, line)
	}
	if len(cart.Lines) > 0 {
		cart.TotalCost = total
	}
	return cart, nil
}

func reshapeShopifyProduct(native *shProduct) *model.Product {
	if native == nil {
		return nil
	}
	images := make([]model.Image, 0, len(native.Images.Edges))
	for _, edge := range native.Images.Edges {
		img := edge.Node
		alt := img.AltText
		if alt == "" {
			alt = imageAltText(native.Title, img.URL)
		}
		images = append(images, model.Image{URL: img.URL, AltText: alt, Width: img.Width, Height: img.Height})
	}
	variants := make([]model.ProductVariant, 0, len(native.Variants.Edges))
	for _, edge := range native.Variants.Edges {
		v := edge.Node
		price, err := shMoneyToModel(v.Price)
		if err != nil {
			price = model.ZeroMoney(defaultCurrency)
		}
		variants = append(variants, model.ProductVariant{
			ID:               v.ID,
			Title:            v.Title,
			AvailableForSale: v.AvailableForSale,
			Price:            price,
		})
	}
	return &model.Product{
		ID:          native.ID,
		Handle:      native.Handle,
		Title:       native.Title,
		Description: native.Description,
		Images:      images,
		Variants:    variants,
	}
}

func reshapeShopifyCollection(native *shCollection) *model.Collection {
	if native == nil {
		return nil
	}
	return &model.Collection{
		Handle:      native.Handle,
		Title:       native.Title,
		Description: native.Description,
		SEO:         native.SEO,
		Path:        "/search/" + native.Handle,
		UpdatedAt:   native.UpdatedAt,
	}
}
