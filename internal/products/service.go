// Package product manages the catalog the storefront sells from.
package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/swiftcart/swiftcart-backend/internal/shopping/catalog"
	pkgerrors "github.com/swiftcart/swiftcart-backend/pkg/errors"
	"github.com/swiftcart/swiftcart-backend/pkg/logger"
)

// Service exposes catalog operations.
type Service interface {
	List(ctx context.Context, category string) ([]catalog.Product, error)
	Get(ctx context.Context, id string) (*catalog.Product, error)
	Create(ctx context.Context, input catalog.Product) (*catalog.Product, error)
	Update(ctx context.Context, id string, input catalog.Product) (*catalog.Product, error)
	Delete(ctx context.Context, id string) error
	Seed(ctx context.Context) error
}

type service struct {
	repo *Repository
	logg *logger.Logger
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) List(ctx context.Context, category string) ([]catalog.Product, error) {
	rows, err := s.repo.List(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	out := make([]catalog.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toCatalog())
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id string) (*catalog.Product, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := row.toCatalog()
	return &dto, nil
}

func (s *service) Create(ctx context.Context, input catalog.Product) (*catalog.Product, error) {
	if err := validateProduct(input); err != nil {
		return nil, err
	}
	row := fromCatalog(input)
	if err := s.repo.Create(ctx, &row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	dto := row.toCatalog()
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id string, input catalog.Product) (*catalog.Product, error) {
	if err := validateProduct(input); err != nil {
		return nil, err
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := fromCatalog(input)
	updated.ID = row.ID
	updated.CreatedAt = row.CreatedAt
	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	dto := updated.toCatalog()
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Seed loads the default catalog into an empty database. A non-empty
// catalog is left alone.
func (s *service) Seed(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count products")
	}
	if count > 0 {
		return nil
	}

	for _, p := range DefaultCatalog() {
		row := fromCatalog(p)
		if err := s.repo.Create(ctx, &row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "seed products")
		}
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "count", len(DefaultCatalog())), "seeded default catalog")
	}
	return nil
}

func validateProduct(p catalog.Product) error {
	if strings.TrimSpace(p.ID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if strings.TrimSpace(p.Title) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if p.Price <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if p.OriginalPrice < p.Price {
		return pkgerrors.New(pkgerrors.CodeValidation, "original price cannot undercut the selling price")
	}
	if strings.TrimSpace(p.Category) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	return nil
}
