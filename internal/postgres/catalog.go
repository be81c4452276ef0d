package postgres

import (
	"context"
	"errors"
	"sort"

	"github.com/cardap-io/cardap/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogService implements domain.CatalogService using PostgreSQL.
type CatalogService struct {
	db *pgxpool.Pool
}

// Compile-time check that CatalogService implements domain.CatalogService.
var _ domain.CatalogService = (*CatalogService)(nil)

// NewCatalogService creates a PostgreSQL-backed catalog service.
func NewCatalogService(db *pgxpool.Pool) *CatalogService {
	return &CatalogService{db: db}
}

// =============================================================================
// CATEGORIES
// =============================================================================

// ListCategories returns the restaurant's categories in display order.
func (s *CatalogService) ListCategories(ctx context.Context, restaurantID uuid.UUID) ([]domain.Category, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, restaurant_id, name, sort_order
		FROM categories
		WHERE restaurant_id = $1
		ORDER BY sort_order, name`, restaurantID)
	if err != nil {
		return nil, domain.Internal(err, "catalog.list_categories", "failed to list categories")
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.RestaurantID, &c.Name, &c.SortOrder); err != nil {
			return nil, domain.Internal(err, "catalog.list_categories", "failed to scan category")
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CreateCategory creates a new category.
func (s *CatalogService) CreateCategory(ctx context.Context, params domain.CreateCategoryParams) (*domain.Category, error) {
	c := domain.Category{
		ID:           uuid.New(),
		RestaurantID: params.RestaurantID,
		Name:         params.Name,
		SortOrder:    params.SortOrder,
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO categories (id, restaurant_id, name, sort_order)
		VALUES ($1, $2, $3, $4)`,
		c.ID, c.RestaurantID, c.Name, c.SortOrder)
	if err != nil {
		return nil, domain.Internal(err, "catalog.create_category", "failed to create category")
	}
	return &c, nil
}

// UpdateCategory renames or reorders a category.
func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, name string, sortOrder int32) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE categories SET name = $2, sort_order = $3 WHERE id = $1`,
		id, name, sortOrder)
	if err != nil {
		return domain.Internal(err, "catalog.update_category", "failed to update category")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// DeleteCategory removes a category. Products under it cascade.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return domain.Internal(err, "catalog.delete_category", "failed to delete category")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// =============================================================================
// PRODUCTS
// =============================================================================

const productColumns = `id, restaurant_id, category_id, name, description, base_price,
	image_url, is_available, is_promotion, allows_observations,
	price_display_min, price_display_max, has_variations`

// ListProducts returns all products of the restaurant in category order.
func (s *CatalogService) ListProducts(ctx context.Context, restaurantID uuid.UUID) ([]domain.Product, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE restaurant_id = $1
		ORDER BY category_id, is_promotion DESC, name`, restaurantID)
	if err != nil {
		return nil, domain.Internal(err, "catalog.list_products", "failed to list products")
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, domain.Internal(err, "catalog.list_products", "failed to scan product")
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// GetProduct retrieves a single product.
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Internal(err, "catalog.get_product", "failed to load product")
	}
	return p, nil
}

// CreateProduct creates a new product.
func (s *CatalogService) CreateProduct(ctx context.Context, params domain.CreateProductParams) (*domain.Product, error) {
	if params.BasePrice < 0 {
		return nil, domain.ErrNegativePrice
	}

	p := domain.Product{
		ID:                 uuid.New(),
		RestaurantID:       params.RestaurantID,
		CategoryID:         params.CategoryID,
		Name:               params.Name,
		Description:        params.Description,
		BasePrice:          params.BasePrice,
		ImageURL:           params.ImageURL,
		IsAvailable:        params.IsAvailable,
		IsPromotion:        params.IsPromotion,
		AllowsObservations: params.AllowsObservations,
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO products (id, restaurant_id, category_id, name, description,
			base_price, image_url, is_available, is_promotion, allows_observations)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.RestaurantID, p.CategoryID, p.Name, p.Description,
		p.BasePrice, p.ImageURL, p.IsAvailable, p.IsPromotion, p.AllowsObservations)
	if err != nil {
		return nil, domain.Internal(err, "catalog.create_product", "failed to create product")
	}
	return &p, nil
}

// UpdateProduct updates an existing product. Nil fields are left unchanged.
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, params domain.UpdateProductParams) error {
	if params.BasePrice != nil && *params.BasePrice < 0 {
		return domain.ErrNegativePrice
	}

	tag, err := s.db.Exec(ctx, `
		UPDATE products SET
			category_id         = COALESCE($2, category_id),
			name                = COALESCE($3, name),
			description         = COALESCE($4, description),
			base_price          = COALESCE($5, base_price),
			image_url           = COALESCE($6, image_url),
			is_available        = COALESCE($7, is_available),
			is_promotion        = COALESCE($8, is_promotion),
			allows_observations = COALESCE($9, allows_observations),
			updated_at          = now()
		WHERE id = $1`,
		id, params.CategoryID, params.Name, params.Description, params.BasePrice,
		params.ImageURL, params.IsAvailable, params.IsPromotion, params.AllowsObservations)
	if err != nil {
		return domain.Internal(err, "catalog.update_product", "failed to update product")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// DeleteProduct removes a product along with its extras, private variation
// groups, and template assignments (cascade).
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return domain.Internal(err, "catalog.delete_product", "failed to delete product")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// =============================================================================
// EXTRAS
// =============================================================================

// ListExtras returns all extras of a product, available or not.
func (s *CatalogService) ListExtras(ctx context.Context, productID uuid.UUID) ([]domain.Extra, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, product_id, name, price, is_available
		FROM product_extras
		WHERE product_id = $1
		ORDER BY name`, productID)
	if err != nil {
		return nil, domain.Internal(err, "catalog.list_extras", "failed to list extras")
	}
	defer rows.Close()

	var out []domain.Extra
	for rows.Next() {
		var e domain.Extra
		if err := rows.Scan(&e.ID, &e.ProductID, &e.Name, &e.Price, &e.IsAvailable); err != nil {
			return nil, domain.Internal(err, "catalog.list_extras", "failed to scan extra")
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CreateExtra creates a new product extra.
func (s *CatalogService) CreateExtra(ctx context.Context, params domain.CreateExtraParams) (*domain.Extra, error) {
	if params.Price < 0 {
		return nil, domain.ErrNegativePrice
	}

	e := domain.Extra{
		ID:          uuid.New(),
		ProductID:   params.ProductID,
		Name:        params.Name,
		Price:       params.Price,
		IsAvailable: params.IsAvailable,
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO product_extras (id, product_id, name, price, is_available)
		VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.ProductID, e.Name, e.Price, e.IsAvailable)
	if err != nil {
		return nil, domain.Internal(err, "catalog.create_extra", "failed to create extra")
	}
	return &e, nil
}

// UpdateExtra updates an extra. Nil fields are left unchanged.
func (s *CatalogService) UpdateExtra(ctx context.Context, id uuid.UUID, params domain.UpdateExtraParams) error {
	if params.Price != nil && *params.Price < 0 {
		return domain.ErrNegativePrice
	}

	tag, err := s.db.Exec(ctx, `
		UPDATE product_extras SET
			name         = COALESCE($2, name),
			price        = COALESCE($3, price),
			is_available = COALESCE($4, is_available)
		WHERE id = $1`,
		id, params.Name, params.Price, params.IsAvailable)
	if err != nil {
		return domain.Internal(err, "catalog.update_extra", "failed to update extra")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExtraNotFound
	}
	return nil
}

// DeleteExtra removes an extra.
func (s *CatalogService) DeleteExtra(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM product_extras WHERE id = $1`, id)
	if err != nil {
		return domain.Internal(err, "catalog.delete_extra", "failed to delete extra")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExtraNotFound
	}
	return nil
}

// =============================================================================
// PRODUCT CONFIGURATION (storefront read)
// =============================================================================

// GetProductConfiguration loads a product together with its merged variation
// groups and available options and extras.
//
// Two catalog shapes feed the configuration: groups the product owns
// privately and restaurant-level templates assigned to the product. Both are
// normalized into one ordered []VariationGroup here; downstream consumers
// never see where a group came from beyond the Source tag.
func (s *CatalogService) GetProductConfiguration(ctx context.Context, productID uuid.UUID) (*domain.ProductConfiguration, error) {
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	private, err := listGroups(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}

	assigned, err := listAssignedGroups(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}

	groups := append(private, assigned...)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].SortOrder < groups[j].SortOrder
	})

	options := make(map[uuid.UUID][]domain.VariationOption, len(groups))
	for _, g := range groups {
		var opts []domain.VariationOption
		switch g.Source {
		case domain.GroupSourceTemplate:
			opts, err = listTemplateOptionsAsOptions(ctx, s.db, g.ID)
		default:
			opts, err = listAvailableOptions(ctx, s.db, g.ID)
		}
		if err != nil {
			return nil, err
		}
		options[g.ID] = opts
	}

	allExtras, err := s.ListExtras(ctx, productID)
	if err != nil {
		return nil, err
	}
	extras := make([]domain.Extra, 0, len(allExtras))
	for _, e := range allExtras {
		if e.IsAvailable {
			extras = append(extras, e)
		}
	}

	return &domain.ProductConfiguration{
		Product: *product,
		Groups:  groups,
		Options: options,
		Extras:  extras,
	}, nil
}

// listAssignedGroups loads the templates assigned to a product as variation
// groups tagged with the template source. The group ID is the template ID;
// ordering follows the assignment's sort order.
func listAssignedGroups(ctx context.Context, db *pgxpool.Pool, productID uuid.UUID) ([]domain.VariationGroup, error) {
	rows, err := db.Query(ctx, `
		SELECT t.id, a.product_id, t.name, t.is_required, t.allow_multiple,
			t.max_selections, a.sort_order
		FROM product_template_assignments a
		JOIN variation_group_templates t ON t.id = a.template_id
		WHERE a.product_id = $1
		ORDER BY a.sort_order`, productID)
	if err != nil {
		return nil, domain.Internal(err, "catalog.assigned_groups", "failed to list assigned templates")
	}
	defer rows.Close()

	var out []domain.VariationGroup
	for rows.Next() {
		g := domain.VariationGroup{Source: domain.GroupSourceTemplate}
		if err := rows.Scan(&g.ID, &g.ProductID, &g.Name, &g.IsRequired,
			&g.AllowMultiple, &g.MaxSelections, &g.SortOrder); err != nil {
			return nil, domain.Internal(err, "catalog.assigned_groups", "failed to scan assigned template")
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// listTemplateOptionsAsOptions loads a template's options shaped as
// variation options. Template options have no availability flag; they are
// always offered.
func listTemplateOptionsAsOptions(ctx context.Context, db *pgxpool.Pool, templateID uuid.UUID) ([]domain.VariationOption, error) {
	rows, err := db.Query(ctx, `
		SELECT id, template_id, name, price_adjustment, is_default, sort_order
		FROM variation_option_templates
		WHERE template_id = $1
		ORDER BY sort_order`, templateID)
	if err != nil {
		return nil, domain.Internal(err, "catalog.template_options", "failed to list template options")
	}
	defer rows.Close()

	var out []domain.VariationOption
	for rows.Next() {
		o := domain.VariationOption{IsAvailable: true}
		if err := rows.Scan(&o.ID, &o.GroupID, &o.Name, &o.PriceAdjustment,
			&o.IsDefault, &o.SortOrder); err != nil {
			return nil, domain.Internal(err, "catalog.template_options", "failed to scan template option")
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.RestaurantID, &p.CategoryID, &p.Name, &p.Description,
		&p.BasePrice, &p.ImageURL, &p.IsAvailable, &p.IsPromotion,
		&p.AllowsObservations, &p.PriceDisplayMin, &p.PriceDisplayMax, &p.HasVariations)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
