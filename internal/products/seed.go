package product

import "github.com/swiftcart/swiftcart-backend/internal/shopping/catalog"

// DefaultCatalog is the built-in product set. It seeds empty databases
// and doubles as the offline fallback catalog, so ids must stay
// deterministic.
func DefaultCatalog() []catalog.Product {
	return []catalog.Product{
		{
			ID:            "p-iphone-15",
			Title:         "Apple iPhone 15 (128 GB)",
			Description:   "6.1-inch Super Retina XDR display, A16 Bionic chip.",
			Price:         72999,
			OriginalPrice: 79900,
			Category:      "Mobiles",
			Brand:         "Apple",
			Rating:        4.6,
			ReviewsCount:  12874,
			Trending:      true,
			Colors:        []string{"Black", "Blue", "Pink"},
		},
		{
			ID:            "p-galaxy-s24",
			Title:         "Samsung Galaxy S24 5G (256 GB)",
			Description:   "6.2-inch Dynamic AMOLED 2X, Snapdragon 8 Gen 3.",
			Price:         74999,
			OriginalPrice: 84999,
			Category:      "Mobiles",
			Brand:         "Samsung",
			Rating:        4.5,
			ReviewsCount:  8321,
			Colors:        []string{"Onyx Black", "Marble Grey", "Cobalt Violet"},
		},
		{
			ID:            "p-nike-air-max-270",
			Title:         "Nike Air Max 270",
			Description:   "Lifestyle running shoe with Max Air heel unit.",
			Price:         11495,
			OriginalPrice: 14995,
			Category:      "Fashion",
			Brand:         "Nike",
			Rating:        4.3,
			ReviewsCount:  4410,
			Trending:      true,
			Colors:        []string{"Black", "White", "Red"},
			Sizes:         []string{"UK 7", "UK 8", "UK 9", "UK 10"},
		},
		{
			ID:            "p-levis-511-jeans",
			Title:         "Levi's 511 Slim Fit Jeans",
			Description:   "Mid-rise slim jeans in stretch denim.",
			Price:         2399,
			OriginalPrice: 3999,
			Category:      "Fashion",
			Brand:         "Levi's",
			Rating:        4.2,
			ReviewsCount:  2980,
			Colors:        []string{"Indigo", "Black"},
			Sizes:         []string{"30", "32", "34", "36"},
		},
		{
			ID:            "p-sony-wh1000xm5",
			Title:         "Sony WH-1000XM5 Wireless Headphones",
			Description:   "Industry-leading noise cancellation, 30-hour battery.",
			Price:         26990,
			OriginalPrice: 34990,
			Category:      "Electronics",
			Brand:         "Sony",
			Rating:        4.7,
			ReviewsCount:  6655,
			Trending:      true,
			Colors:        []string{"Black", "Silver"},
		},
		{
			ID:            "p-boat-airdopes-141",
			Title:         "boAt Airdopes 141 TWS Earbuds",
			Description:   "42-hour playback, low-latency gaming mode.",
			Price:         1099,
			OriginalPrice: 4490,
			Category:      "Electronics",
			Brand:         "boAt",
			Rating:        4.1,
			ReviewsCount:  211034,
			Colors:        []string{"Bold Black", "Pure White"},
		},
		{
			ID:            "p-prestige-induction-cooktop",
			Title:         "Prestige PIC 20 Induction Cooktop",
			Description:   "1600W cooktop with Indian menu presets.",
			Price:         2249,
			OriginalPrice: 3295,
			Category:      "Home & Kitchen",
			Brand:         "Prestige",
			Rating:        4.3,
			ReviewsCount:  58211,
		},
		{
			ID:            "p-atomic-habits",
			Title:         "Atomic Habits (Paperback)",
			Description:   "James Clear's guide to building good habits.",
			Price:         449,
			OriginalPrice: 899,
			Category:      "Books",
			Brand:         "Penguin",
			Rating:        4.6,
			ReviewsCount:  90412,
		},
	}
}
