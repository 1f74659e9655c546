// Package catalog holds the immutable product facts the shopping
// session works with. Products are owned by the catalog collaborator
// and are referenced, never mutated, by cart and checkout state.
package catalog

// Product is a point-in-time view of a catalog listing.
type Product struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	Price         int64    `json:"price"`
	OriginalPrice int64    `json:"originalPrice"`
	Category      string   `json:"category"`
	Image         string   `json:"image,omitempty"`
	Images        []string `json:"images,omitempty"`
	Rating        float64  `json:"rating,omitempty"`
	ReviewsCount  int      `json:"reviewsCount,omitempty"`
	Trending      bool     `json:"trending,omitempty"`
	Brand         string   `json:"brand,omitempty"`
	Colors        []string `json:"colors,omitempty"`
	Sizes         []string `json:"sizes,omitempty"`
}

// CartLine is one cart entry: a product copy plus quantity and the
// variant the shopper picked.
type CartLine struct {
	Product
	Quantity      int    `json:"quantity"`
	SelectedColor string `json:"selectedColor,omitempty"`
	SelectedSize  string `json:"selectedSize,omitempty"`
}

// LineKey identifies a cart line: two lines with the same product but
// different variant selections are distinct entries.
type LineKey struct {
	ProductID string
	Color     string
	Size      string
}

// Key returns the line's identity key.
func (l CartLine) Key() LineKey {
	return LineKey{ProductID: l.Product.ID, Color: l.SelectedColor, Size: l.SelectedSize}
}

// CopyProducts deep-copies a slice of products.
func CopyProducts(products []Product) []Product {
	if products == nil {
		return nil
	}
	copied := make([]Product, len(products))
	for i, p := range products {
		copied[i] = p
		copied[i].Images = append([]string(nil), p.Images...)
		copied[i].Colors = append([]string(nil), p.Colors...)
		copied[i].Sizes = append([]string(nil), p.Sizes...)
	}
	return copied
}

// CopyLines deep-copies a slice of cart lines. Slices inside the
// embedded product are duplicated so snapshots never alias cart state.
func CopyLines(lines []CartLine) []CartLine {
	if lines == nil {
		return nil
	}
	copied := make([]CartLine, len(lines))
	for i, line := range lines {
		copied[i] = line
		copied[i].Images = append([]string(nil), line.Images...)
		copied[i].Colors = append([]string(nil), line.Colors...)
		copied[i].Sizes = append([]string(nil), line.Sizes...)
	}
	return copied
}
