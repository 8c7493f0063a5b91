package backend

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"

	"storefront/model"
)

// Reshaping is pure and total over its declared domain: absent collections
// become empty slices and a nil product reshapes to nil so batch callers
// can filter silently. Only a payload missing its required id is a hard
// failure.

// defaultCurrency is the policy fallback for carts with no lines; an empty
// cart has no currency of its own.
const defaultCurrency = "USD"

var imageStemPattern = regexp.MustCompile(`.*/(.*)\..*`)

func fwMoneyToModel(m fwMoney) model.Money {
	return model.Money{Value: decimal.NewFromFloat(m.Value), CurrencyCode: m.CurrencyCode}
}

// reshapeFourthwallCart maps a native cart into the canonical shape. The
// total is recomputed from the line items; Fourthwall sends no total of its
// own and the cart-level fields of other backends are not trusted either.
// Fourthwall carries no line ids, so the variant id doubles as the line id.
func reshapeFourthwallCart(native fwCart) (model.Cart, error) {
	if native.ID == "" {
		return model.Cart{}, fmt.Errorf("cart payload missing id")
	}

	cart := model.Cart{
		ID:        native.ID,
		Lines:     make([]model.CartLine, 0, len(native.Items)),
		TotalCost: model.ZeroMoney(defaultCurrency),
	}
	total := model.Money{Value: decimal.Zero}
	for _, item := range native.Items {
		unit := fwMoneyToModel(item.Variant.UnitPrice)
		line := model.CartLine{
			ID:        item.Variant.ID,
			VariantID: item.Variant.ID,
			Title:     item.Variant.Name,
			Quantity:  item.Quantity,
			UnitPrice: unit,
			LineTotal: unit.MulInt(item.Quantity),
		}
		if len(item.Variant.Images) > 0 {
			img := item.Variant.Images[0]
			line.Image = model.Image{URL: img.URL, AltText: item.Variant.Name, Width: img.Width, Height: img.Height}
		}
		total = total.Add(line.LineTotal)
		cart.Lines = append(cart.Lines, line)
	}
	if len(cart.Lines) > 0 {
		cart.TotalCost = total
	}
	return cart, nil
}

// imageAltText derives a readable alt text from the image URL's filename
// stem; when the URL does not match the pattern the raw URL is used
// instead.
func imageAltText(productTitle, url string) string {
	stem := url
	if m := imageStemPattern.FindStringSubmatch(url); m != nil {
		stem = m[1]
	}
	return fmt.Sprintf("%s - %s", productTitle, stem)
}

func reshapeFourthwallImages(images []fwImage, productTitle string) []model.Image {
	out := make([]model.Image, 0, len(images))
	for _, img := range images {
		out = append(out, model.Image{
			URL:     img.URL,
			AltText: imageAltText(productTitle, img.URL),
			Width:   img.Width,
			Height:  img.Height,
		})
	}
	return out
}

// Variants are always orderable as far as this layer is concerned; stock
// levels are not modeled.
func reshapeFourthwallVariants(variants []fwVariant) []model.ProductVariant {
	out := make([]model.ProductVariant, 0, len(variants))
	for _, v := range variants {
		out = append(out, model.ProductVariant{
			ID:               v.ID,
			Title:            v.Name,
			AvailableForSale: true,
			Price:            fwMoneyToModel(v.UnitPrice),
		})
	}
	return out
}

func reshapeFourthwallProduct(native *fwProduct) *model.Product {
	if native == nil {
		return nil
	}
	return &model.Product{
		ID:          native.ID,
		Handle:      native.Slug,
		Title:       native.Name,
		Description: native.Description,
		Images:      reshapeFourthwallImages(native.Images, native.Name),
		Variants:    reshapeFourthwallVariants(native.Variants),
	}
}

func reshapeFourthwallProducts(natives []fwProduct) []model.Product {
	out := make([]model.Product, 0, len(natives))
	for i := range natives {
		if p := reshapeFourthwallProduct(&natives[i]); p != nil {
			out = append(out, *p)
		}
	}
	return out
}

func reshapeFourthwallCollection(native *fwCollection) *model.Collection {
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

func reshapeFourthwallCollections(natives []fwCollection) []model.Collection {
	out := make([]model.Collection, 0, len(natives))
	for i := range natives {
		if c := reshapeFourthwallCollection(&natives[i]); c != nil {
			out = append(out, *c)
		}
	}
	return out
}
