package postgres

import (
	"context"
	"errors"

	"github.com/cardap-io/cardap/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RestaurantService implements domain.RestaurantService using PostgreSQL.
type RestaurantService struct {
	db *pgxpool.Pool
}

// Compile-time check that RestaurantService implements domain.RestaurantService.
var _ domain.RestaurantService = (*RestaurantService)(nil)

// NewRestaurantService creates a PostgreSQL-backed restaurant service.
func NewRestaurantService(db *pgxpool.Pool) *RestaurantService {
	return &RestaurantService{db: db}
}

const restaurantColumns = `id, name, slug, description, contact_email, contact_phone,
	whatsapp, address, is_open, min_order_value, allows_delivery`

// GetBySlug retrieves a restaurant by its public storefront slug.
func (s *RestaurantService) GetBySlug(ctx context.Context, slug string) (*domain.Restaurant, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE slug = $1`, slug)

	r, err := scanRestaurant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, domain.Internal(err, "restaurant.get_by_slug", "failed to load restaurant")
	}
	return r, nil
}

// GetByID retrieves a restaurant by ID.
func (s *RestaurantService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id)

	r, err := scanRestaurant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, domain.Internal(err, "restaurant.get_by_id", "failed to load restaurant")
	}
	return r, nil
}

// UpdateSettings updates ordering-related settings. Nil fields are left
// unchanged.
func (s *RestaurantService) UpdateSettings(ctx context.Context, id uuid.UUID, params domain.UpdateRestaurantParams) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE restaurants SET
			name            = COALESCE($2, name),
			description     = COALESCE($3, description),
			whatsapp        = COALESCE($4, whatsapp),
			address         = COALESCE($5, address),
			is_open         = COALESCE($6, is_open),
			min_order_value = COALESCE($7, min_order_value),
			allows_delivery = COALESCE($8, allows_delivery),
			updated_at      = now()
		WHERE id = $1`,
		id, params.Name, params.Description, params.WhatsApp, params.Address,
		params.IsOpen, params.MinOrderValue, params.AllowsDelivery)
	if err != nil {
		return domain.Internal(err, "restaurant.update_settings", "failed to update restaurant")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRestaurantNotFound
	}
	return nil
}

func scanRestaurant(row pgx.Row) (*domain.Restaurant, error) {
	var r domain.Restaurant
	err := row.Scan(&r.ID, &r.Name, &r.Slug, &r.Description, &r.ContactEmail,
		&r.ContactPhone, &r.WhatsApp, &r.Address, &r.IsOpen, &r.MinOrderValue,
		&r.AllowsDelivery)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
