package product

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/swiftcart/swiftcart-backend/internal/repo"
	pkgerrors "github.com/swiftcart/swiftcart-backend/pkg/errors"
)

// Repository persists catalog rows.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// FindByID loads one product.
func (r *Repository) FindByID(ctx context.Context, id string) (*Product, error) {
	var row Product
	if err := r.DB(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, err
	}
	return &row, nil
}

// List returns the catalog, optionally filtered by category, newest
// rows last so the seeded ordering is stable.
func (r *Repository) List(ctx context.Context, category string) ([]Product, error) {
	query := r.DB(ctx).Order("created_at ASC, id ASC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var rows []Product
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts a new row.
func (r *Repository) Create(ctx context.Context, row *Product) error {
	return r.DB(ctx).Create(row).Error
}

// Update saves every column of the row.
func (r *Repository) Update(ctx context.Context, row *Product) error {
	return r.DB(ctx).Save(row).Error
}

// Delete removes a row by id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	result := r.DB(ctx).Delete(&Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

// Count reports how many rows the catalog holds.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.DB(ctx).Model(&Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
