package service

import (
	"context"
	"fmt"

	"github.com/cardap-io/cardap/internal/cart"
	"github.com/cardap-io/cardap/internal/domain"
	"github.com/cardap-io/cardap/internal/menu"
	"github.com/cardap-io/cardap/internal/whatsapp"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CheckoutService turns a session cart plus the customer form into a
// WhatsApp order hand-off. There is no server-side order record: the
// hand-off is fire-and-forget, and the cart is cleared only after the
// hand-off is produced.
type CheckoutService interface {
	// Submit validates the order and builds the hand-off. All rejections
	// are domain errors: ECLOSED when the restaurant is closed, EINVALID
	// for an empty cart or a below-minimum total, and a ValidationError
	// enumerating every missing customer field.
	Submit(ctx context.Context, restaurantID uuid.UUID, c *cart.Cart, info domain.CustomerInfo) (*domain.OrderHandoff, error)
}

type checkoutService struct {
	restaurants domain.RestaurantService
	validate    *validator.Validate
}

// NewCheckoutService creates a CheckoutService backed by the restaurant
// settings store.
func NewCheckoutService(restaurants domain.RestaurantService) CheckoutService {
	return &checkoutService{
		restaurants: restaurants,
		validate:    validator.New(),
	}
}

func (s *checkoutService) Submit(ctx context.Context, restaurantID uuid.UUID, c *cart.Cart, info domain.CustomerInfo) (*domain.OrderHandoff, error) {
	restaurant, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	if !restaurant.IsOpen {
		return nil, domain.ErrRestaurantClosed
	}

	lines := c.Lines()
	if len(lines) == 0 {
		return nil, domain.ErrCartEmpty
	}

	info.NeedsAddress = restaurant.AllowsDelivery
	if err := s.validateCustomer(info); err != nil {
		return nil, err
	}

	total := c.Total()
	if total < restaurant.MinOrderValue {
		shortfall := restaurant.MinOrderValue - total
		return nil, domain.Errorf(domain.EINVALID, "checkout.submit",
			"order total is %s below the minimum of %s",
			menu.FormatCents(shortfall), menu.FormatCents(restaurant.MinOrderValue))
	}

	message := whatsapp.BuildMessage(whatsapp.Order{
		RestaurantName: restaurant.Name,
		Lines:          lines,
		Total:          total,
		Customer:       info,
		Delivery:       restaurant.AllowsDelivery,
		PickupAddress:  restaurant.Address,
	})

	handoff := &domain.OrderHandoff{
		Message:     message,
		WhatsAppURL: whatsapp.BuildLink(restaurant.WhatsApp, message),
		TotalPrice:  total,
	}

	// The cart is only cleared once the hand-off exists.
	c.Clear()

	return handoff, nil
}

// validateCustomer checks the checkout form and reports every missing field
// at once rather than stopping at the first.
func (s *checkoutService) validateCustomer(info domain.CustomerInfo) error {
	var result error

	if err := s.validate.Struct(info); err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			return domain.Internal(err, "checkout.validate", "customer validation failed")
		}
		for _, fe := range errs {
			switch fe.Field() {
			case "Name":
				result = domain.AddFieldError(result, "name", "Informe seu nome")
			case "Address":
				result = domain.AddFieldError(result, "address", "Informe o endereço de entrega")
			case "PaymentMethod":
				result = domain.AddFieldError(result, "payment_method", "Escolha a forma de pagamento")
			default:
				result = domain.AddFieldError(result, fe.Field(), fmt.Sprintf("invalid value for %s", fe.Field()))
			}
		}
	}

	if info.PaymentMethod != "" && !info.PaymentMethod.Valid() {
		result = domain.AddFieldError(result, "payment_method", "Forma de pagamento desconhecida")
	}

	return result
}
