// Package user manages shopper identities. Sign-in is two step: the
// OTP service verifies possession of the identifier, then this service
// mints the session token.
package user

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/swiftcart/swiftcart-backend/pkg/auth"
	"github.com/swiftcart/swiftcart-backend/pkg/config"
	"github.com/swiftcart/swiftcart-backend/pkg/enums"
	pkgerrors "github.com/swiftcart/swiftcart-backend/pkg/errors"
	"github.com/swiftcart/swiftcart-backend/pkg/logger"
)

var (
	emailPattern  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	mobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)
)

// Profile is the identity as the API exposes it.
type Profile struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Email  string         `json:"email"`
	Mobile string         `json:"mobile"`
	Gender string         `json:"gender,omitempty"`
	Role   enums.UserRole `json:"role"`
}

// AuthResult is a signed-in profile plus its bearer token.
type AuthResult struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// RegisterInput creates an account.
type RegisterInput struct {
	Name   string
	Email  string
	Mobile string
	Gender string
}

// UpdateInput edits profile fields. Empty fields are left unchanged.
type UpdateInput struct {
	Name   string
	Email  string
	Mobile string
	Gender string
}

// Service exposes identity operations.
type Service interface {
	CheckIdentifierExists(ctx context.Context, identifier string) (bool, error)
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Authenticate(ctx context.Context, identifier string) (*AuthResult, error)
	Get(ctx context.Context, id string) (*Profile, error)
	Update(ctx context.Context, id string, input UpdateInput) (*Profile, error)
}

type service struct {
	repo   *Repository
	jwtCfg config.JWTConfig
	logg   *logger.Logger
	now    func() time.Time
	newID  func() string
}

// NewService constructs a user service instance.
func NewService(repo *Repository, jwtCfg config.JWTConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if jwtCfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret required")
	}
	return &service{
		repo:   repo,
		jwtCfg: jwtCfg,
		logg:   logg,
		now:    time.Now,
		newID:  func() string { return "u-" + uuid.NewString() },
	}, nil
}

// CheckIdentifierExists reports whether an email or mobile already has
// an account. Used by the sign-in page to branch between login and
// registration.
func (s *service) CheckIdentifierExists(ctx context.Context, identifier string) (bool, error) {
	identifier = normalizeIdentifier(identifier)
	if err := validateIdentifier(identifier); err != nil {
		return false, err
	}

	_, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = normalizeIdentifier(input.Email)
	input.Mobile = strings.TrimSpace(input.Mobile)

	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if !emailPattern.MatchString(input.Email) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "enter a valid email")
	}
	if !mobilePattern.MatchString(input.Mobile) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "enter a valid 10-digit mobile number")
	}

	row := User{
		ID:     s.newID(),
		Name:   input.Name,
		Email:  input.Email,
		Mobile: input.Mobile,
		Gender: input.Gender,
		Role:   enums.UserRoleUser,
	}
	if err := s.repo.Create(ctx, &row); err != nil {
		return nil, err
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithUserID(ctx, row.ID), "user registered")
	}
	return s.signIn(row)
}

// Authenticate signs in an existing account. It trusts that the caller
// already passed OTP verification for the identifier.
func (s *service) Authenticate(ctx context.Context, identifier string) (*AuthResult, error) {
	identifier = normalizeIdentifier(identifier)
	if err := validateIdentifier(identifier); err != nil {
		return nil, err
	}

	row, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return s.signIn(*row)
}

func (s *service) Get(ctx context.Context, id string) (*Profile, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	profile := toProfile(*row)
	return &profile, nil
}

func (s *service) Update(ctx context.Context, id string, input UpdateInput) (*Profile, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		row.Name = name
	}
	if email := normalizeIdentifier(input.Email); email != "" {
		if !emailPattern.MatchString(email) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "enter a valid email")
		}
		row.Email = email
	}
	if mobile := strings.TrimSpace(input.Mobile); mobile != "" {
		if !mobilePattern.MatchString(mobile) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "enter a valid 10-digit mobile number")
		}
		row.Mobile = mobile
	}
	if gender := strings.TrimSpace(input.Gender); gender != "" {
		row.Gender = gender
	}

	if err := s.repo.Update(ctx, row); err != nil {
		return nil, err
	}
	profile := toProfile(*row)
	return &profile, nil
}

func (s *service) signIn(row User) (*AuthResult, error) {
	token, err := auth.MintAccessToken(s.jwtCfg, s.now(), row.ID, row.Role)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	return &AuthResult{Token: token, User: toProfile(row)}, nil
}

func toProfile(row User) Profile {
	return Profile{
		ID:     row.ID,
		Name:   row.Name,
		Email:  row.Email,
		Mobile: row.Mobile,
		Gender: row.Gender,
		Role:   row.Role,
	}
}

func normalizeIdentifier(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

func validateIdentifier(identifier string) error {
	if emailPattern.MatchString(identifier) || mobilePattern.MatchString(identifier) {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "enter a valid email or 10-digit mobile number")
}
