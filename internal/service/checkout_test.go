package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cardap-io/cardap/internal/cart"
	"github.com/cardap-io/cardap/internal/domain"
	"github.com/google/uuid"
)

// mockRestaurantService implements domain.RestaurantService for testing
type mockRestaurantService struct {
	getBySlugFunc      func(ctx context.Context, slug string) (*domain.Restaurant, error)
	getByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error)
	updateSettingsFunc func(ctx context.Context, id uuid.UUID, params domain.UpdateRestaurantParams) error
}

func (m *mockRestaurantService) GetBySlug(ctx context.Context, slug string) (*domain.Restaurant, error) {
	if m.getBySlugFunc != nil {
		return m.getBySlugFunc(ctx, slug)
	}
	return nil, domain.ErrRestaurantNotFound
}

func (m *mockRestaurantService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, domain.ErrRestaurantNotFound
}

func (m *mockRestaurantService) UpdateSettings(ctx context.Context, id uuid.UUID, params domain.UpdateRestaurantParams) error {
	if m.updateSettingsFunc != nil {
		return m.updateSettingsFunc(ctx, id, params)
	}
	return nil
}

func openRestaurant() *domain.Restaurant {
	return &domain.Restaurant{
		ID:             uuid.New(),
		Name:           "Pizzaria do Zé",
		Slug:           "pizzaria-do-ze",
		WhatsApp:       "5511999998888",
		Address:        "Av. Central, 45",
		IsOpen:         true,
		AllowsDelivery: true,
	}
}

func restaurantMock(r *domain.Restaurant) *mockRestaurantService {
	return &mockRestaurantService{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
			return r, nil
		},
	}
}

func filledCart(price int64) *cart.Cart {
	c := cart.New()
	c.AddLine(domain.Product{ID: uuid.New(), Name: "Pizza Calabresa", BasePrice: price}, 1, nil, nil, "")
	return c
}

func validCustomer() domain.CustomerInfo {
	return domain.CustomerInfo{
		Name:          "Maria Silva",
		Address:       "Rua das Flores, 123",
		PaymentMethod: domain.PaymentPix,
	}
}

func TestSubmit_Success(t *testing.T) {
	restaurant := openRestaurant()
	svc := NewCheckoutService(restaurantMock(restaurant))
	c := filledCart(2490)

	handoff, err := svc.Submit(context.Background(), restaurant.ID, c, validCustomer())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if handoff.TotalPrice != 2490 {
		t.Errorf("TotalPrice = %d, want 2490", handoff.TotalPrice)
	}
	if !strings.Contains(handoff.Message, "Pizza Calabresa") {
		t.Error("message should list the cart line")
	}
	if !strings.HasPrefix(handoff.WhatsAppURL, "https://wa.me/5511999998888?text=") {
		t.Errorf("unexpected URL: %s", handoff.WhatsAppURL)
	}
	if c.Len() != 0 {
		t.Error("cart must be cleared after a successful hand-off")
	}
}

func TestSubmit_RestaurantClosed(t *testing.T) {
	restaurant := openRestaurant()
	restaurant.IsOpen = false
	svc := NewCheckoutService(restaurantMock(restaurant))
	c := filledCart(2490)

	_, err := svc.Submit(context.Background(), restaurant.ID, c, validCustomer())
	if !errors.Is(err, domain.ErrRestaurantClosed) {
		t.Fatalf("err = %v, want ErrRestaurantClosed", err)
	}
	if c.Len() != 1 {
		t.Error("cart must survive a rejected checkout")
	}
}

func TestSubmit_EmptyCart(t *testing.T) {
	restaurant := openRestaurant()
	svc := NewCheckoutService(restaurantMock(restaurant))

	_, err := svc.Submit(context.Background(), restaurant.ID, cart.New(), validCustomer())
	if !errors.Is(err, domain.ErrCartEmpty) {
		t.Fatalf("err = %v, want ErrCartEmpty", err)
	}
}

func TestSubmit_MissingFieldsEnumerated(t *testing.T) {
	restaurant := openRestaurant()
	svc := NewCheckoutService(restaurantMock(restaurant))
	c := filledCart(2490)

	_, err := svc.Submit(context.Background(), restaurant.ID, c, domain.CustomerInfo{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !domain.IsValidationError(err) {
		t.Fatalf("err = %v, want validation error", err)
	}

	fields := domain.GetValidationFields(err)
	for _, field := range []string{"name", "address", "payment_method"} {
		if _, ok := fields[field]; !ok {
			t.Errorf("missing field %q not reported; fields = %v", field, fields)
		}
	}
	if c.Len() != 1 {
		t.Error("cart must survive a rejected checkout")
	}
}

func TestSubmit_AddressOptionalForPickup(t *testing.T) {
	restaurant := openRestaurant()
	restaurant.AllowsDelivery = false
	svc := NewCheckoutService(restaurantMock(restaurant))
	c := filledCart(2490)

	info := validCustomer()
	info.Address = ""

	handoff, err := svc.Submit(context.Background(), restaurant.ID, c, info)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !strings.Contains(handoff.Message, "RETIRADA NO LOCAL") {
		t.Error("pickup order should render the pickup block")
	}
	if !strings.Contains(handoff.Message, restaurant.Address) {
		t.Error("pickup order should carry the restaurant address")
	}
}

func TestSubmit_UnknownPaymentMethod(t *testing.T) {
	restaurant := openRestaurant()
	svc := NewCheckoutService(restaurantMock(restaurant))

	info := validCustomer()
	info.PaymentMethod = "Cheque"

	_, err := svc.Submit(context.Background(), restaurant.ID, filledCart(2490), info)
	if !domain.IsValidationError(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if _, ok := domain.GetValidationFields(err)["payment_method"]; !ok {
		t.Error("unknown payment method should be reported on payment_method")
	}
}

func TestSubmit_BelowMinimumOrder(t *testing.T) {
	restaurant := openRestaurant()
	restaurant.MinOrderValue = 3000
	svc := NewCheckoutService(restaurantMock(restaurant))
	c := filledCart(2490)

	_, err := svc.Submit(context.Background(), restaurant.ID, c, validCustomer())
	if err == nil {
		t.Fatal("expected minimum-order rejection")
	}
	if domain.ErrorCode(err) != domain.EINVALID {
		t.Errorf("code = %q, want EINVALID", domain.ErrorCode(err))
	}
	if !strings.Contains(domain.ErrorMessage(err), "R$ 5.10") {
		t.Errorf("message should state the shortfall, got %q", domain.ErrorMessage(err))
	}
	if c.Len() != 1 {
		t.Error("cart must survive a rejected checkout")
	}
}

func TestSubmit_RestaurantLookupFails(t *testing.T) {
	svc := NewCheckoutService(&mockRestaurantService{})

	_, err := svc.Submit(context.Background(), uuid.New(), filledCart(2490), validCustomer())
	if !errors.Is(err, domain.ErrRestaurantNotFound) {
		t.Fatalf("err = %v, want ErrRestaurantNotFound", err)
	}
}
