package enums

// CheckoutStep names one stage of the linear checkout flow.
type CheckoutStep string

const (
	CheckoutStepCart    CheckoutStep = "cart"
	CheckoutStepAddress CheckoutStep = "address"
	CheckoutStepSummary CheckoutStep = "summary"
	CheckoutStepPayment CheckoutStep = "payment"
	CheckoutStepSuccess CheckoutStep = "success"
)

var orderedCheckoutSteps = []CheckoutStep{
	CheckoutStepCart,
	CheckoutStepAddress,
	CheckoutStepSummary,
	CheckoutStepPayment,
	CheckoutStepSuccess,
}

// String implements fmt.Stringer.
func (c CheckoutStep) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CheckoutStep.
func (c CheckoutStep) IsValid() bool {
	for _, candidate := range orderedCheckoutSteps {
		if candidate == c {
			return true
		}
	}
	return false
}

// Index returns the step's position in the flow, or -1 when unknown.
func (c CheckoutStep) Index() int {
	for i, candidate := range orderedCheckoutSteps {
		if candidate == c {
			return i
		}
	}
	return -1
}

