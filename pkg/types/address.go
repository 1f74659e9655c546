package types

import (
	"regexp"
	"strings"

	"github.com/swiftcart/swiftcart-backend/pkg/enums"
	pkgerrors "github.com/swiftcart/swiftcart-backend/pkg/errors"
)

var (
	mobilePattern  = regexp.MustCompile(`^[6-9]\d{9}$`)
	pincodePattern = regexp.MustCompile(`^\d{6}$`)
)

// IndianStates is the closed set of values accepted for Address.State.
var IndianStates = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh", "Goa", "Gujarat", "Haryana",
	"Himachal Pradesh", "Jharkhand", "Karnataka", "Kerala", "Madhya Pradesh", "Maharashtra", "Manipur",
	"Meghalaya", "Mizoram", "Nagaland", "Odisha", "Punjab", "Rajasthan", "Sikkim", "Tamil Nadu", "Telangana",
	"Tripura", "Uttar Pradesh", "Uttarakhand", "West Bengal", "Andaman and Nicobar Islands", "Chandigarh",
	"Dadra and Nagar Haveli and Daman and Diu", "Delhi", "Jammu and Kashmir", "Ladakh", "Lakshadweep", "Puducherry",
}

// Address is the shipping address collected during checkout.
type Address struct {
	Name            string            `json:"name"`
	Mobile          string            `json:"mobile"`
	Pincode         string            `json:"pincode"`
	Locality        string            `json:"locality"`
	Street          string            `json:"address"`
	City            string            `json:"city"`
	State           string            `json:"state"`
	Landmark        string            `json:"landmark,omitempty"`
	AlternateMobile string            `json:"alternateMobile,omitempty"`
	AddressType     enums.AddressType `json:"addressType,omitempty"`
}

// Validate checks every field the address step requires. The first
// failing field is reported; callers surface it inline, not as a fault.
func (a Address) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if !mobilePattern.MatchString(a.Mobile) {
		return pkgerrors.New(pkgerrors.CodeValidation, "enter a valid 10-digit mobile number")
	}
	if !pincodePattern.MatchString(a.Pincode) {
		return pkgerrors.New(pkgerrors.CodeValidation, "enter a valid 6-digit pincode")
	}
	if strings.TrimSpace(a.Locality) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "locality is required")
	}
	if strings.TrimSpace(a.Street) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "address is required")
	}
	if strings.TrimSpace(a.City) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "city is required")
	}
	if !isKnownState(a.State) {
		return pkgerrors.New(pkgerrors.CodeValidation, "state is required")
	}
	if a.AlternateMobile != "" && !mobilePattern.MatchString(a.AlternateMobile) {
		return pkgerrors.New(pkgerrors.CodeValidation, "enter a valid alternate mobile number")
	}
	if a.AddressType != "" && !a.AddressType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "address type must be Home or Work")
	}
	return nil
}

func isKnownState(state string) bool {
	for _, s := range IndianStates {
		if s == state {
			return true
		}
	}
	return false
}
