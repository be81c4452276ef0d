package postgres

import (
	"context"

	"github.com/cardap-io/cardap/internal/domain"
	"github.com/cardap-io/cardap/internal/menu"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// VariationService implements domain.VariationService using PostgreSQL.
//
// Every mutation that changes a product's effective variation set finishes
// by recomputing that product's price-range display fields, so storefront
// listings stay consistent with the catalog without loading variation data.
type VariationService struct {
	db *pgxpool.Pool
}

// Compile-time check that VariationService implements domain.VariationService.
var _ domain.VariationService = (*VariationService)(nil)

// NewVariationService creates a PostgreSQL-backed variation service.
func NewVariationService(db *pgxpool.Pool) *VariationService {
	return &VariationService{db: db}
}

// =============================================================================
// PRIVATE GROUPS
// =============================================================================

// ListGroups returns a product's private variation groups in display order.
func (s *VariationService) ListGroups(ctx context.Context, productID uuid.UUID) ([]domain.VariationGroup, error) {
	return listGroups(ctx, s.db, productID)
}

// CreateGroup creates a private variation group on a product.
func (s *VariationService) CreateGroup(ctx context.Context, params domain.CreateGroupParams) (*domain.VariationGroup, error) {
	max := params.MaxSelections
	if params.AllowMultiple && max < 1 {
		return nil, domain.ErrInvalidMaxSelections
	}
	if !params.AllowMultiple {
		max = 1
	}

	g := domain.VariationGroup{
		ID:            uuid.New(),
		ProductID:     params.ProductID,
		Name:          params.Name,
		IsRequired:    params.IsRequired,
		AllowMultiple: params.AllowMultiple,
		MaxSelections: max,
		SortOrder:     params.SortOrder,
		Source:        domain.GroupSourcePrivate,
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO product_variation_groups
			(id, product_id, name, is_required, allow_multiple, max_selections, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		g.ID, g.ProductID, g.Name, g.IsRequired, g.AllowMultiple, g.MaxSelections, g.SortOrder)
	if err != nil {
		return nil, domain.Internal(err, "variation.create_group", "failed to create variation group")
	}

	if err := s.recomputePriceRange(ctx, g.ProductID); err != nil {
		return nil, err
	}
	return &g, nil
}

// UpdateGroup updates a private group. Nil fields are left unchanged.
func (s *VariationService) UpdateGroup(ctx context.Context, id uuid.UUID, params domain.UpdateGroupParams) error {
	if params.MaxSelections != nil && *params.MaxSelections < 1 {
		return domain.ErrInvalidMaxSelections
	}

	productID, err := s.groupProduct(ctx, id)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(ctx, `
		UPDATE product_variation_groups SET
			name           = COALESCE($2, name),
			is_required    = COALESCE($3, is_required),
			allow_multiple = COALESCE($4, allow_multiple),
			max_selections = COALESCE($5, max_selections),
			sort_order     = COALESCE($6, sort_order),
			updated_at     = now()
		WHERE id = $1`,
		id, params.Name, params.IsRequired, params.AllowMultiple,
		params.MaxSelections, params.SortOrder)
	if err != nil {
		return domain.Internal(err, "variation.update_group", "failed to update variation group")
	}

	return s.recomputePriceRange(ctx, productID)
}

// DeleteGroup removes a private group and its options (cascade).
func (s *VariationService) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	productID, err := s.groupProduct(ctx, id)
	if err != nil {
		return err
	}

	if _, err := s.db.Exec(ctx, `DELETE FROM product_variation_groups WHERE id = $1`, id); err != nil {
		return domain.Internal(err, "variation.delete_group", "failed to delete variation group")
	}

	return s.recomputePriceRange(ctx, productID)
}

// =============================================================================
// OPTIONS
// =============================================================================

// ListOptions returns all options of a private group, available or not.
func (s *VariationService) ListOptions(ctx context.Context, groupID uuid.UUID) ([]domain.VariationOption, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, group_id, name, price_adjustment, is_default, is_available, sort_order
		FROM product_variation_options
		WHERE group_id = $1
		ORDER BY sort_order`, groupID)
	if err != nil {
		return nil, domain.Internal(err, "variation.list_options", "failed to list options")
	}
	defer rows.Close()

	var out []domain.VariationOption
	for rows.Next() {
		var o domain.VariationOption
		if err := rows.Scan(&o.ID, &o.GroupID, &o.Name, &o.PriceAdjustment,
			&o.IsDefault, &o.IsAvailable, &o.SortOrder); err != nil {
			return nil, domain.Internal(err, "variation.list_options", "failed to scan option")
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// CreateOption creates an option in a private group. Marking it default
// clears the default flag on any sibling, keeping at most one default per
// group.
func (s *VariationService) CreateOption(ctx context.Context, params domain.CreateOptionParams) (*domain.VariationOption, error) {
	productID, err := s.groupProduct(ctx, params.GroupID)
	if err != nil {
		return nil, err
	}

	o := domain.VariationOption{
		ID:              uuid.New(),
		GroupID:         params.GroupID,
		Name:            params.Name,
		PriceAdjustment: params.PriceAdjustment,
		IsDefault:       params.IsDefault,
		IsAvailable:     params.IsAvailable,
		SortOrder:       params.SortOrder,
	}

	if o.IsDefault {
		if err := s.clearDefault(ctx, o.GroupID); err != nil {
			return nil, err
		}
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO product_variation_options
			(id, group_id, name, price_adjustment, is_default, is_available, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		o.ID, o.GroupID, o.Name, o.PriceAdjustment, o.IsDefault, o.IsAvailable, o.SortOrder)
	if err != nil {
		return nil, domain.Internal(err, "variation.create_option", "failed to create option")
	}

	if err := s.recomputePriceRange(ctx, productID); err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateOption updates an option. Nil fields are left unchanged.
func (s *VariationService) UpdateOption(ctx context.Context, id uuid.UUID, params domain.UpdateOptionParams) error {
	var groupID uuid.UUID
	err := s.db.QueryRow(ctx,
		`SELECT group_id FROM product_variation_options WHERE id = $1`, id).Scan(&groupID)
	if err != nil {
		return domain.ErrOptionNotFound
	}

	if params.IsDefault != nil && *params.IsDefault {
		if err := s.clearDefault(ctx, groupID); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(ctx, `
		UPDATE product_variation_options SET
			name             = COALESCE($2, name),
			price_adjustment = COALESCE($3, price_adjustment),
			is_default       = COALESCE($4, is_default),
			is_available     = COALESCE($5, is_available),
			sort_order       = COALESCE($6, sort_order)
		WHERE id = $1`,
		id, params.Name, params.PriceAdjustment, params.IsDefault,
		params.IsAvailable, params.SortOrder)
	if err != nil {
		return domain.Internal(err, "variation.update_option", "failed to update option")
	}

	productID, err := s.groupProduct(ctx, groupID)
	if err != nil {
		return err
	}
	return s.recomputePriceRange(ctx, productID)
}

// DeleteOption removes an option.
func (s *VariationService) DeleteOption(ctx context.Context, id uuid.UUID) error {
	var groupID uuid.UUID
	err := s.db.QueryRow(ctx,
		`SELECT group_id FROM product_variation_options WHERE id = $1`, id).Scan(&groupID)
	if err != nil {
		return domain.ErrOptionNotFound
	}

	if _, err := s.db.Exec(ctx, `DELETE FROM product_variation_options WHERE id = $1`, id); err != nil {
		return domain.Internal(err, "variation.delete_option", "failed to delete option")
	}

	productID, err := s.groupProduct(ctx, groupID)
	if err != nil {
		return err
	}
	return s.recomputePriceRange(ctx, productID)
}

// =============================================================================
// TEMPLATES
// =============================================================================

// ListTemplates returns the restaurant's reusable group templates.
func (s *VariationService) ListTemplates(ctx context.Context, restaurantID uuid.UUID) ([]domain.GroupTemplate, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, restaurant_id, name, is_required, allow_multiple, max_selections, sort_order
		FROM variation_group_templates
		WHERE restaurant_id = $1
		ORDER BY sort_order, name`, restaurantID)
	if err != nil {
		return nil, domain.Internal(err, "variation.list_templates", "failed to list templates")
	}
	defer rows.Close()

	var out []domain.GroupTemplate
	for rows.Next() {
		var t domain.GroupTemplate
		if err := rows.Scan(&t.ID, &t.RestaurantID, &t.Name, &t.IsRequired,
			&t.AllowMultiple, &t.MaxSelections, &t.SortOrder); err != nil {
			return nil, domain.Internal(err, "variation.list_templates", "failed to scan template")
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// CreateTemplate creates a restaurant-level group template.
func (s *VariationService) CreateTemplate(ctx context.Context, params domain.CreateTemplateParams) (*domain.GroupTemplate, error) {
	max := params.MaxSelections
	if params.AllowMultiple && max < 1 {
		return nil, domain.ErrInvalidMaxSelections
	}
	if !params.AllowMultiple {
		max = 1
	}

	t := domain.GroupTemplate{
		ID:            uuid.New(),
		RestaurantID:  params.RestaurantID,
		Name:          params.Name,
		IsRequired:    params.IsRequired,
		AllowMultiple: params.AllowMultiple,
		MaxSelections: max,
		SortOrder:     params.SortOrder,
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO variation_group_templates
			(id, restaurant_id, name, is_required, allow_multiple, max_selections, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.RestaurantID, t.Name, t.IsRequired, t.AllowMultiple, t.MaxSelections, t.SortOrder)
	if err != nil {
		return nil, domain.Internal(err, "variation.create_template", "failed to create template")
	}
	return &t, nil
}

// UpdateTemplate updates a template and refreshes the price range of every
// product it is assigned to.
func (s *VariationService) UpdateTemplate(ctx context.Context, id uuid.UUID, params domain.UpdateTemplateParams) error {
	if params.MaxSelections != nil && *params.MaxSelections < 1 {
		return domain.ErrInvalidMaxSelections
	}

	tag, err := s.db.Exec(ctx, `
		UPDATE variation_group_templates SET
			name           = COALESCE($2, name),
			is_required    = COALESCE($3, is_required),
			allow_multiple = COALESCE($4, allow_multiple),
			max_selections = COALESCE($5, max_selections),
			sort_order     = COALESCE($6, sort_order),
			updated_at     = now()
		WHERE id = $1`,
		id, params.Name, params.IsRequired, params.AllowMultiple,
		params.MaxSelections, params.SortOrder)
	if err != nil {
		return domain.Internal(err, "variation.update_template", "failed to update template")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTemplateNotFound
	}

	return s.recomputeForTemplate(ctx, id)
}

// DeleteTemplate removes a template, its options, and its assignments
// (cascade), then refreshes affected products.
func (s *VariationService) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	products, err := s.templateProducts(ctx, id)
	if err != nil {
		return err
	}

	tag, err := s.db.Exec(ctx, `DELETE FROM variation_group_templates WHERE id = $1`, id)
	if err != nil {
		return domain.Internal(err, "variation.delete_template", "failed to delete template")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTemplateNotFound
	}

	for _, productID := range products {
		if err := s.recomputePriceRange(ctx, productID); err != nil {
			return err
		}
	}
	return nil
}

// ListTemplateOptions returns a template's options in display order.
func (s *VariationService) ListTemplateOptions(ctx context.Context, templateID uuid.UUID) ([]domain.OptionTemplate, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, template_id, name, price_adjustment, is_default, sort_order
		FROM variation_option_templates
		WHERE template_id = $1
		ORDER BY sort_order`, templateID)
	if err != nil {
		return nil, domain.Internal(err, "variation.list_template_options", "failed to list template options")
	}
	defer rows.Close()

	var out []domain.OptionTemplate
	for rows.Next() {
		var o domain.OptionTemplate
		if err := rows.Scan(&o.ID, &o.TemplateID, &o.Name, &o.PriceAdjustment,
			&o.IsDefault, &o.SortOrder); err != nil {
			return nil, domain.Internal(err, "variation.list_template_options", "failed to scan template option")
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// CreateTemplateOption creates an option inside a template and refreshes
// the price range of every product the template is assigned to.
func (s *VariationService) CreateTemplateOption(ctx context.Context, params domain.CreateTemplateOptionParams) (*domain.OptionTemplate, error) {
	o := domain.OptionTemplate{
		ID:              uuid.New(),
		TemplateID:      params.TemplateID,
		Name:            params.Name,
		PriceAdjustment: params.PriceAdjustment,
		IsDefault:       params.IsDefault,
		SortOrder:       params.SortOrder,
	}

	if o.IsDefault {
		_, err := s.db.Exec(ctx,
			`UPDATE variation_option_templates SET is_default = false WHERE template_id = $1`,
			o.TemplateID)
		if err != nil {
			return nil, domain.Internal(err, "variation.create_template_option", "failed to clear default")
		}
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO variation_option_templates
			(id, template_id, name, price_adjustment, is_default, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		o.ID, o.TemplateID, o.Name, o.PriceAdjustment, o.IsDefault, o.SortOrder)
	if err != nil {
		return nil, domain.Internal(err, "variation.create_template_option", "failed to create template option")
	}

	if err := s.recomputeForTemplate(ctx, o.TemplateID); err != nil {
		return nil, err
	}
	return &o, nil
}

// DeleteTemplateOption removes a template option and refreshes affected
// products.
func (s *VariationService) DeleteTemplateOption(ctx context.Context, id uuid.UUID) error {
	var templateID uuid.UUID
	err := s.db.QueryRow(ctx,
		`SELECT template_id FROM variation_option_templates WHERE id = $1`, id).Scan(&templateID)
	if err != nil {
		return domain.ErrOptionNotFound
	}

	if _, err := s.db.Exec(ctx, `DELETE FROM variation_option_templates WHERE id = $1`, id); err != nil {
		return domain.Internal(err, "variation.delete_template_option", "failed to delete template option")
	}

	return s.recomputeForTemplate(ctx, templateID)
}

// =============================================================================
// ASSIGNMENTS
// =============================================================================

// ListAssignments returns a product's template assignments in display order.
func (s *VariationService) ListAssignments(ctx context.Context, productID uuid.UUID) ([]domain.TemplateAssignment, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, product_id, template_id, sort_order
		FROM product_template_assignments
		WHERE product_id = $1
		ORDER BY sort_order`, productID)
	if err != nil {
		return nil, domain.Internal(err, "variation.list_assignments", "failed to list assignments")
	}
	defer rows.Close()

	var out []domain.TemplateAssignment
	for rows.Next() {
		var a domain.TemplateAssignment
		if err := rows.Scan(&a.ID, &a.ProductID, &a.TemplateID, &a.SortOrder); err != nil {
			return nil, domain.Internal(err, "variation.list_assignments", "failed to scan assignment")
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// AssignTemplate links a template to a product.
func (s *VariationService) AssignTemplate(ctx context.Context, productID, templateID uuid.UUID, sortOrder int32) (*domain.TemplateAssignment, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM product_template_assignments
			WHERE product_id = $1 AND template_id = $2
		)`, productID, templateID).Scan(&exists)
	if err != nil {
		return nil, domain.Internal(err, "variation.assign_template", "failed to check assignment")
	}
	if exists {
		return nil, domain.ErrTemplateAssigned
	}

	a := domain.TemplateAssignment{
		ID:         uuid.New(),
		ProductID:  productID,
		TemplateID: templateID,
		SortOrder:  sortOrder,
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO product_template_assignments (id, product_id, template_id, sort_order)
		VALUES ($1, $2, $3, $4)`,
		a.ID, a.ProductID, a.TemplateID, a.SortOrder)
	if err != nil {
		return nil, domain.Internal(err, "variation.assign_template", "failed to assign template")
	}

	if err := s.recomputePriceRange(ctx, productID); err != nil {
		return nil, err
	}
	return &a, nil
}

// UnassignTemplate removes a template assignment.
func (s *VariationService) UnassignTemplate(ctx context.Context, assignmentID uuid.UUID) error {
	var productID uuid.UUID
	err := s.db.QueryRow(ctx,
		`SELECT product_id FROM product_template_assignments WHERE id = $1`, assignmentID).Scan(&productID)
	if err != nil {
		return domain.NotFound("variation.unassign_template", "assignment", assignmentID.String())
	}

	if _, err := s.db.Exec(ctx, `DELETE FROM product_template_assignments WHERE id = $1`, assignmentID); err != nil {
		return domain.Internal(err, "variation.unassign_template", "failed to remove assignment")
	}

	return s.recomputePriceRange(ctx, productID)
}

// =============================================================================
// PRICE-RANGE WRITE-BACK
// =============================================================================

// recomputePriceRange derives the pooled min/max adjustment across every
// group attached to the product (private and assigned) and writes the
// display fields back to the product row. Fields are cleared when the
// product has no variations.
func (s *VariationService) recomputePriceRange(ctx context.Context, productID uuid.UUID) error {
	var basePrice int64
	err := s.db.QueryRow(ctx, `SELECT base_price FROM products WHERE id = $1`, productID).Scan(&basePrice)
	if err != nil {
		return domain.ErrProductNotFound
	}

	private, err := listGroups(ctx, s.db, productID)
	if err != nil {
		return err
	}
	assigned, err := listAssignedGroups(ctx, s.db, productID)
	if err != nil {
		return err
	}

	groups := append(private, assigned...)
	options := make(map[uuid.UUID][]domain.VariationOption, len(groups))
	for _, g := range groups {
		var opts []domain.VariationOption
		if g.Source == domain.GroupSourceTemplate {
			opts, err = listTemplateOptionsAsOptions(ctx, s.db, g.ID)
		} else {
			opts, err = listAvailableOptions(ctx, s.db, g.ID)
		}
		if err != nil {
			return err
		}
		options[g.ID] = opts
	}

	pr := menu.ComputePriceRange(basePrice, groups, options)

	var minVal, maxVal *int64
	if pr.HasVariations {
		minVal, maxVal = &pr.Min, &pr.Max
	}

	_, err = s.db.Exec(ctx, `
		UPDATE products SET
			price_display_min = $2,
			price_display_max = $3,
			has_variations    = $4,
			updated_at        = now()
		WHERE id = $1`,
		productID, minVal, maxVal, pr.HasVariations)
	if err != nil {
		return domain.Internal(err, "variation.price_range", "failed to store price range")
	}
	return nil
}

// recomputeForTemplate refreshes every product the template is assigned to.
func (s *VariationService) recomputeForTemplate(ctx context.Context, templateID uuid.UUID) error {
	products, err := s.templateProducts(ctx, templateID)
	if err != nil {
		return err
	}
	for _, productID := range products {
		if err := s.recomputePriceRange(ctx, productID); err != nil {
			return err
		}
	}
	return nil
}

func (s *VariationService) templateProducts(ctx context.Context, templateID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.Query(ctx,
		`SELECT product_id FROM product_template_assignments WHERE template_id = $1`, templateID)
	if err != nil {
		return nil, domain.Internal(err, "variation.template_products", "failed to list assigned products")
	}
	defer rows.Close()

	var out []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, domain.Internal(err, "variation.template_products", "failed to scan product id")
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (s *VariationService) groupProduct(ctx context.Context, groupID uuid.UUID) (uuid.UUID, error) {
	var productID uuid.UUID
	err := s.db.QueryRow(ctx,
		`SELECT product_id FROM product_variation_groups WHERE id = $1`, groupID).Scan(&productID)
	if err != nil {
		return uuid.Nil, domain.ErrGroupNotFound
	}
	return productID, nil
}

func (s *VariationService) clearDefault(ctx context.Context, groupID uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		`UPDATE product_variation_options SET is_default = false WHERE group_id = $1`, groupID)
	if err != nil {
		return domain.Internal(err, "variation.clear_default", "failed to clear default option")
	}
	return nil
}

// listGroups loads a product's private variation groups.
func listGroups(ctx context.Context, db *pgxpool.Pool, productID uuid.UUID) ([]domain.VariationGroup, error) {
	rows, err := db.Query(ctx, `
		SELECT id, product_id, name, is_required, allow_multiple, max_selections, sort_order
		FROM product_variation_groups
		WHERE product_id = $1
		ORDER BY sort_order`, productID)
	if err != nil {
		return nil, domain.Internal(err, "variation.list_groups", "failed to list variation groups")
	}
	defer rows.Close()

	var out []domain.VariationGroup
	for rows.Next() {
		g := domain.VariationGroup{Source: domain.GroupSourcePrivate}
		if err := rows.Scan(&g.ID, &g.ProductID, &g.Name, &g.IsRequired,
			&g.AllowMultiple, &g.MaxSelections, &g.SortOrder); err != nil {
			return nil, domain.Internal(err, "variation.list_groups", "failed to scan variation group")
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// listAvailableOptions loads only the available options of a private group.
func listAvailableOptions(ctx context.Context, db *pgxpool.Pool, groupID uuid.UUID) ([]domain.VariationOption, error) {
	rows, err := db.Query(ctx, `
		SELECT id, group_id, name, price_adjustment, is_default, is_available, sort_order
		FROM product_variation_options
		WHERE group_id = $1 AND is_available = true
		ORDER BY sort_order`, groupID)
	if err != nil {
		return nil, domain.Internal(err, "variation.available_options", "failed to list options")
	}
	defer rows.Close()

	var out []domain.VariationOption
	for rows.Next() {
		var o domain.VariationOption
		if err := rows.Scan(&o.ID, &o.GroupID, &o.Name, &o.PriceAdjustment,
			&o.IsDefault, &o.IsAvailable, &o.SortOrder); err != nil {
			return nil, domain.Internal(err, "variation.available_options", "failed to scan option")
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
