// Package otp issues and checks the one-time codes that gate sign-in.
// Codes live in Redis when it is up, falling back to process-local
// memory so a dev setup without Redis still signs in.
package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/swiftcart/swiftcart-backend/pkg/config"
	pkgerrors "github.com/swiftcart/swiftcart-backend/pkg/errors"
	"github.com/swiftcart/swiftcart-backend/pkg/logger"
)

// StoreOrigin names which store served an OTP operation.
type StoreOrigin string

const (
	OriginRedis  StoreOrigin = "redis"
	OriginMemory StoreOrigin = "memory"
)

// SendResult reports the outcome of a send.
type SendResult struct {
	// DevCode carries the code back to the caller when no live
	// delivery channel is configured.
	DevCode string `json:"devCode,omitempty"`
	// Resent is true when an unexpired code already existed and no new
	// one was generated.
	Resent bool `json:"resent,omitempty"`
	// Origin names the store that holds the code.
	Origin StoreOrigin `json:"-"`
	// FallbackReason is set when the primary store was skipped.
	FallbackReason error `json:"-"`
}

// Service issues and verifies codes.
type Service struct {
	cfg      config.OTPConfig
	primary  codeStore
	fallback codeStore
	logg     *logger.Logger
	newCode  func() string
}

// NewService builds the OTP service. The primary store may be nil when
// Redis is not configured; the in-memory fallback is always available.
func NewService(cfg config.OTPConfig, primary codeStore, logg *logger.Logger) (*Service, error) {
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("otp ttl must be positive")
	}
	return &Service{
		cfg:      cfg,
		primary:  primary,
		fallback: NewMemoryStore(),
		logg:     logg,
		newCode:  randomCode,
	}, nil
}

func randomCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		// crypto/rand only fails when the platform source is broken.
		return "0000"
	}
	return fmt.Sprintf("%04d", n.Int64())
}

// Send issues a 4-digit code for the identifier. A send while an
// unexpired code exists is a no-op re-send: the pending code stays
// valid and no new one is generated.
func (s *Service) Send(ctx context.Context, identifier string) (*SendResult, error) {
	identifier = normalize(identifier)
	if identifier == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "identifier is required")
	}

	existing, origin, reason := s.load(ctx, identifier)
	if existing != "" {
		result := &SendResult{Resent: true, Origin: origin, FallbackReason: reason}
		if !s.cfg.LiveDelivery {
			result.DevCode = existing
		}
		return result, nil
	}

	code := s.newCode()
	origin, reason, err := s.save(ctx, identifier, code)
	if err != nil {
		return nil, err
	}

	result := &SendResult{Origin: origin, FallbackReason: reason}
	if !s.cfg.LiveDelivery {
		result.DevCode = code
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "store", string(origin)), "otp issued")
	}
	return result, nil
}

// Verify checks a code. The demo code always passes. A wrong code
// fails without consuming the stored one; a right code consumes it so
// it cannot be replayed.
func (s *Service) Verify(ctx context.Context, identifier, code string) error {
	identifier = normalize(identifier)
	code = strings.TrimSpace(code)
	if identifier == "" || code == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "identifier and code are required")
	}

	if s.cfg.DemoCode != "" && code == s.cfg.DemoCode {
		s.remove(ctx, identifier)
		return nil
	}

	stored, _, _ := s.load(ctx, identifier)
	if stored == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "code expired or was never sent")
	}
	if stored != code {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "incorrect code")
	}

	s.remove(ctx, identifier)
	return nil
}

// load walks the store chain. A primary failure is carried back as the
// fallback reason, never as a hard error.
func (s *Service) load(ctx context.Context, identifier string) (code string, origin StoreOrigin, reason error) {
	if s.primary != nil {
		code, ok, err := s.primary.Load(ctx, identifier)
		if err == nil {
			if ok {
				return code, OriginRedis, nil
			}
		} else {
			reason = pkgerrors.Wrap(pkgerrors.CodeDependency, err, "otp primary store read")
			if s.logg != nil {
				s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "otp store unavailable, using memory")
			}
		}
	}

	code, ok, _ := s.fallback.Load(ctx, identifier)
	if ok {
		return code, OriginMemory, reason
	}
	return "", OriginMemory, reason
}

func (s *Service) save(ctx context.Context, identifier, code string) (origin StoreOrigin, reason error, err error) {
	if s.primary != nil {
		err := s.primary.Save(ctx, identifier, code, s.cfg.TTL)
		if err == nil {
			return OriginRedis, nil, nil
		}
		reason := pkgerrors.Wrap(pkgerrors.CodeDependency, err, "otp primary store write")
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "otp store unavailable, using memory")
		}
		if ferr := s.fallback.Save(ctx, identifier, code, s.cfg.TTL); ferr != nil {
			return "", nil, pkgerrors.Wrap(pkgerrors.CodeInternal, ferr, "otp fallback store write")
		}
		return OriginMemory, reason, nil
	}

	if err := s.fallback.Save(ctx, identifier, code, s.cfg.TTL); err != nil {
		return "", nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "otp fallback store write")
	}
	return OriginMemory, nil, nil
}

func (s *Service) remove(ctx context.Context, identifier string) {
	if s.primary != nil {
		if err := s.primary.Remove(ctx, identifier); err != nil && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "otp primary store delete failed")
		}
	}
	_ = s.fallback.Remove(ctx, identifier)
}

func normalize(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}
