package domain

// PaymentMethod is the customer's declared payment method. The restaurant
// settles payment out of band; the platform only relays the choice.
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "Cartão"
	PaymentPix  PaymentMethod = "Pix"
	PaymentCash PaymentMethod = "Dinheiro"
)

// Valid reports whether m is one of the accepted payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentPix, PaymentCash:
		return true
	}
	return false
}

// CustomerInfo carries the checkout form fields. Address is required only
// when the restaurant delivers; otherwise the restaurant's own address is
// used as the pickup point.
type CustomerInfo struct {
	Name          string        `validate:"required"`
	Address       string        `validate:"required_if=NeedsAddress true"`
	PaymentMethod PaymentMethod `validate:"required"`

	// NeedsAddress mirrors the restaurant's AllowsDelivery flag so the
	// validator can gate the address requirement.
	NeedsAddress bool `json:"-"`
}

// OrderHandoff is the result of a successful checkout: the rendered order
// message and the deep link the storefront opens. Orders are not persisted;
// once the handoff is produced the session cart is cleared.
type OrderHandoff struct {
	Message     string
	WhatsAppURL string
	TotalPrice  int64
}

var (
	ErrRestaurantClosed = &Error{Code: ECLOSED, Message: "Restaurant is not accepting orders right now"}
	ErrCartEmpty        = &Error{Code: EINVALID, Message: "Cart is empty"}
	ErrInvalidPayment   = &Error{Code: EINVALID, Message: "Unknown payment method"}
)
