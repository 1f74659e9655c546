package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/swiftcart/swiftcart-backend/api/responses"
	"github.com/swiftcart/swiftcart-backend/api/validators"
	paymentsvc "github.com/swiftcart/swiftcart-backend/internal/payment"
	contract "github.com/swiftcart/swiftcart-backend/internal/shopping/payment"
	"github.com/swiftcart/swiftcart-backend/pkg/enums"
	pkgerrors "github.com/swiftcart/swiftcart-backend/pkg/errors"
	"github.com/swiftcart/swiftcart-backend/pkg/logger"
)

type initiatePaymentRequest struct {
	OrderID string          `json:"orderId" validate:"required"`
	Amount  decimal.Decimal `json:"amount"`
	Email   string          `json:"email" validate:"omitempty,email"`
	Mobile  string          `json:"mobile"`
	Mode    string          `json:"mode" validate:"required"`
	VPA     string          `json:"vpa"`
}

// InitiatePayment opens a gateway payment for a pending checkout.
func InitiatePayment(svc *paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		var payload initiatePaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mode, err := enums.ParsePaymentMode(strings.TrimSpace(payload.Mode))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment mode"))
			return
		}

		result, err := svc.Initiate(r.Context(), contract.InitiateInput{
			Amount:  payload.Amount,
			OrderID: payload.OrderID,
			Email:   payload.Email,
			Mobile:  payload.Mobile,
			Mode:    mode,
			VPA:     payload.VPA,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
