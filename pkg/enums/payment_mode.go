package enums

import "fmt"

// PaymentMode describes how a buyer settles an order. The set is
// closed so mode handling can be an exhaustive switch.
type PaymentMode string

const (
	PaymentModeGPay       PaymentMode = "GPAY"
	PaymentModePhonePe    PaymentMode = "PHONEPE"
	PaymentModePaytm      PaymentMode = "PAYTM"
	PaymentModeUPI        PaymentMode = "UPI_ID"
	PaymentModeCard       PaymentMode = "CARD"
	PaymentModeWallet     PaymentMode = "WALLET"
	PaymentModeNetBanking PaymentMode = "NETBANKING"
	PaymentModeEMI        PaymentMode = "EMI"
	PaymentModeCOD        PaymentMode = "COD"
)

var validPaymentModes = []PaymentMode{
	PaymentModeGPay,
	PaymentModePhonePe,
	PaymentModePaytm,
	PaymentModeUPI,
	PaymentModeCard,
	PaymentModeWallet,
	PaymentModeNetBanking,
	PaymentModeEMI,
	PaymentModeCOD,
}

// String implements fmt.Stringer.
func (p PaymentMode) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMode.
func (p PaymentMode) IsValid() bool {
	for _, candidate := range validPaymentModes {
		if candidate == p {
			return true
		}
	}
	return false
}

// RequiresVPA reports whether the mode needs a UPI id from the buyer.
func (p PaymentMode) RequiresVPA() bool {
	return p == PaymentModeUPI
}

// ParsePaymentMode converts raw input into a PaymentMode.
func ParsePaymentMode(value string) (PaymentMode, error) {
	for _, candidate := range validPaymentModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment mode %q", value)
}
