package order

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/swiftcart/swiftcart-backend/internal/repo"
	pkgerrors "github.com/swiftcart/swiftcart-backend/pkg/errors"
)

// Repository persists order rows.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a new order. A duplicate id is a conflict: order ids
// are caller-generated and creation is not idempotent.
func (r *Repository) Create(ctx context.Context, row *Order) error {
	if err := r.DB(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint") {
			return pkgerrors.New(pkgerrors.CodeConflict, "order id already exists")
		}
		return err
	}
	return nil
}

// FindByID loads one order.
func (r *Repository) FindByID(ctx context.Context, id string) (*Order, error) {
	var row Order
	if err := r.DB(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, err
	}
	return &row, nil
}

// ListByUser returns a user's orders, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	var rows []Order
	err := r.DB(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// List returns every order, newest first.
func (r *Repository) List(ctx context.Context) ([]Order, error) {
	var rows []Order
	if err := r.DB(ctx).Order("date DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update saves every column of the row.
func (r *Repository) Update(ctx context.Context, row *Order) error {
	return r.DB(ctx).Save(row).Error
}
