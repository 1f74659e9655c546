package user

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/swiftcart/swiftcart-backend/internal/repo"
	pkgerrors "github.com/swiftcart/swiftcart-backend/pkg/errors"
)

// Repository persists user rows.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// FindByID loads one user.
func (r *Repository) FindByID(ctx context.Context, id string) (*User, error) {
	var row User
	if err := r.DB(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, err
	}
	return &row, nil
}

// FindByIdentifier loads a user by email or mobile.
func (r *Repository) FindByIdentifier(ctx context.Context, identifier string) (*User, error) {
	var row User
	err := r.DB(ctx).
		Where("email = ? OR mobile = ?", identifier, identifier).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no account for this email or mobile")
		}
		return nil, err
	}
	return &row, nil
}

// Create inserts a new user. Duplicate email or mobile is a conflict.
func (r *Repository) Create(ctx context.Context, row *User) error {
	if err := r.DB(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint") {
			return pkgerrors.New(pkgerrors.CodeConflict, "an account with this email or mobile already exists")
		}
		return err
	}
	return nil
}

// Update saves every column of the row.
func (r *Repository) Update(ctx context.Context, row *User) error {
	if err := r.DB(ctx).Save(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint") {
			return pkgerrors.New(pkgerrors.CodeConflict, "an account with this email or mobile already exists")
		}
		return err
	}
	return nil
}
