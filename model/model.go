package model

// CartLine is one variant-quantity pairing inside a cart. ID is the
// backend-assigned line identifier and stays empty until the line has been
// persisted remotely; VariantID is the stable merchandise identity.
type CartLine struct {
	ID        string `json:"id,omitempty"`
	VariantID string `json:"variantId"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice Money  `json:"unitPrice"`
	LineTotal Money  `json:"lineTotal"`
	Image     Image  `json:"image"`
}

// Cart is the canonical cart shape both backends are reshaped into.
// TotalCost is always recomputed from the lines, never copied from the
// backend. CheckoutURL is only set by backends that hand one back with the
// cart itself.
type Cart struct {
	ID          string     `json:"id"`
	Lines       []CartLine `json:"lines"`
	TotalCost   Money      `json:"totalCost"`
	CheckoutURL string     `json:"checkoutUrl,omitempty"`
}

// Line returns the cart line holding the given variant, or nil.
func (c *Cart) Line(variantID string) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].VariantID == variantID {
			return &c.Lines[i]
		}
	}
	return nil
}

type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

type Product struct {
	ID          string           `json:"id"`
	Handle      string           `json:"handle"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Images      []Image          `json:"images"`
	Variants    []ProductVariant `json:"variants"`
}

type ProductVariant struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	AvailableForSale bool   `json:"availableForSale"`
	Price            Money  `json:"price"`
}

type SEO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Collection struct {
	Handle      string `json:"handle"`
	Title       string `json:"title"`
	Description string `json:"description"`
	SEO         SEO    `json:"seo"`
	Path        string `json:"path"`
	UpdatedAt   string `json:"updatedAt"`
}
