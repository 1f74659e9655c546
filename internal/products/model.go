package product

import (
	"time"

	"github.com/swiftcart/swiftcart-backend/internal/shopping/catalog"
)

// Product is the catalog row. Variant lists are JSON columns so the
// schema works on both postgres and sqlite.
type Product struct {
	ID                  string    `gorm:"column:id;primaryKey"`
	Title               string    `gorm:"column:title;not null"`
	Description         string    `gorm:"column:description"`
	PriceRupees         int64     `gorm:"column:price_rupees;not null"`
	OriginalPriceRupees int64     `gorm:"column:original_price_rupees;not null"`
	Category            string    `gorm:"column:category;not null;index"`
	Image               string    `gorm:"column:image"`
	Images              []string  `gorm:"column:images;type:jsonb;serializer:json"`
	Rating              float64   `gorm:"column:rating"`
	ReviewsCount        int       `gorm:"column:reviews_count"`
	Trending            bool      `gorm:"column:trending;not null;default:false"`
	Brand               string    `gorm:"column:brand"`
	Colors              []string  `gorm:"column:colors;type:jsonb;serializer:json"`
	Sizes               []string  `gorm:"column:sizes;type:jsonb;serializer:json"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table name.
func (Product) TableName() string {
	return "products"
}

func (p Product) toCatalog() catalog.Product {
	return catalog.Product{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Price:         p.PriceRupees,
		OriginalPrice: p.OriginalPriceRupees,
		Category:      p.Category,
		Image:         p.Image,
		Images:        p.Images,
		Rating:        p.Rating,
		ReviewsCount:  p.ReviewsCount,
		Trending:      p.Trending,
		Brand:         p.Brand,
		Colors:        p.Colors,
		Sizes:         p.Sizes,
	}
}

func fromCatalog(p catalog.Product) Product {
	return Product{
		ID:                  p.ID,
		Title:               p.Title,
		Description:         p.Description,
		PriceRupees:         p.Price,
		OriginalPriceRupees: p.OriginalPrice,
		Category:            p.Category,
		Image:               p.Image,
		Images:              p.Images,
		Rating:              p.Rating,
		ReviewsCount:        p.ReviewsCount,
		Trending:            p.Trending,
		Brand:               p.Brand,
		Colors:              p.Colors,
		Sizes:               p.Sizes,
	}
}
