package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/swiftcart/swiftcart-backend/api/responses"
	"github.com/swiftcart/swiftcart-backend/api/validators"
	productsvc "github.com/swiftcart/swiftcart-backend/internal/products"
	"github.com/swiftcart/swiftcart-backend/internal/shopping/catalog"
	pkgerrors "github.com/swiftcart/swiftcart-backend/pkg/errors"
	"github.com/swiftcart/swiftcart-backend/pkg/logger"
)

// ListProducts returns the catalog, optionally filtered by category.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		category := strings.TrimSpace(r.URL.Query().Get("category"))
		products, err := svc.List(r.Context(), category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id := chi.URLParam(r, "productID")
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		product, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

type productRequest struct {
	ID            string   `json:"id"`
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description"`
	Price         int64    `json:"price" validate:"required,min=1"`
	OriginalPrice int64    `json:"originalPrice" validate:"omitempty,min=1"`
	Category      string   `json:"category" validate:"required"`
	Image         string   `json:"image"`
	Images        []string `json:"images"`
	Rating        float64  `json:"rating" validate:"omitempty,gte=0,lte=5"`
	ReviewsCount  int      `json:"reviewsCount" validate:"omitempty,min=0"`
	Trending      bool     `json:"trending"`
	Brand         string   `json:"brand"`
	Colors        []string `json:"colors"`
	Sizes         []string `json:"sizes"`
}

func (p productRequest) toCatalog() catalog.Product {
	original := p.OriginalPrice
	if original == 0 {
		original = p.Price
	}
	return catalog.Product{
		ID:            strings.TrimSpace(p.ID),
		Title:         strings.TrimSpace(p.Title),
		Description:   p.Description,
		Price:         p.Price,
		OriginalPrice: original,
		Category:      strings.TrimSpace(p.Category),
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

// CreateProduct adds a catalog entry. Admin only.
func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := payload.toCatalog()
		if input.ID == "" {
			input.ID = "p-" + uuid.NewString()
		}

		product, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// UpdateProduct replaces a catalog entry. Admin only.
func UpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id := chi.URLParam(r, "productID")
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := payload.toCatalog()
		input.ID = id

		product, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// DeleteProduct removes a catalog entry. Admin only.
func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id := chi.URLParam(r, "productID")
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"id": id, "status": "deleted"})
	}
}
