package controllers

import (
	"net/http"

	"github.com/swiftcart/swiftcart-backend/api/responses"
	"github.com/swiftcart/swiftcart-backend/api/validators"
	otpsvc "github.com/swiftcart/swiftcart-backend/internal/otp"
	"github.com/swiftcart/swiftcart-backend/pkg/config"
	pkgerrors "github.com/swiftcart/swiftcart-backend/pkg/errors"
	"github.com/swiftcart/swiftcart-backend/pkg/logger"
)

type sendOTPRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

type sendOTPResponse struct {
	Sent    bool   `json:"sent"`
	Resent  bool   `json:"resent,omitempty"`
	DevCode string `json:"devCode,omitempty"`
}

// SendOTP issues a one-time code for the identifier. Without live
// delivery configured the code rides back in the response as devCode.
func SendOTP(svc *otpsvc.Service, cfg config.OTPConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "otp service unavailable"))
			return
		}

		var payload sendOTPRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Send(r.Context(), payload.Identifier)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := sendOTPResponse{Sent: true, Resent: result.Resent}
		if !cfg.LiveDelivery {
			out.DevCode = result.DevCode
		}
		responses.WriteSuccess(w, out)
	}
}

type verifyOTPRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Code       string `json:"code" validate:"required,min=4,max=6"`
}

func VerifyOTP(svc *otpsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "otp service unavailable"))
			return
		}

		var payload verifyOTPRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Verify(r.Context(), payload.Identifier, payload.Code); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"verified": true})
	}
}
