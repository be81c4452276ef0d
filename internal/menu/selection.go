package menu

import (
	"slices"

	"github.com/cardap-io/cardap/internal/domain"
	"github.com/google/uuid"
)

// Selection tracks one customer's in-progress configuration of a single
// product: which option is chosen per variation group and which extras are
// on. It is pure in-memory state; catalog data passed in is never mutated.
//
// Cardinality rules:
//   - single-select groups (AllowMultiple false) have radio semantics:
//     toggling an option replaces the previous choice;
//   - multi-select groups hold a set of options capped at MaxSelections,
//     and a required multi-select group is satisfied only when the count
//     equals MaxSelections exactly.
type Selection struct {
	groups  []domain.VariationGroup
	options map[uuid.UUID][]domain.VariationOption
	extras  []domain.Extra

	chosen       map[uuid.UUID][]uuid.UUID // group ID -> selected option IDs, in pick order
	chosenExtras map[uuid.UUID]bool
}

// ToggleResult reports the outcome of a ToggleOption call. LimitReached is
// an expected, recoverable condition (the storefront shows a notice), not a
// fault: when set, no state changed.
type ToggleResult struct {
	Selected      bool // whether the option is selected after the call
	LimitReached  bool
	MaxSelections int32 // populated when LimitReached
}

// NewSelection builds the initial selection state for a product
// configuration. Single-select groups are seeded with their default option
// when one is present and available; multi-select groups always start
// empty.
func NewSelection(groups []domain.VariationGroup, options map[uuid.UUID][]domain.VariationOption, extras []domain.Extra) *Selection {
	s := &Selection{
		groups:       groups,
		options:      make(map[uuid.UUID][]domain.VariationOption, len(options)),
		extras:       extras,
		chosen:       make(map[uuid.UUID][]uuid.UUID, len(groups)),
		chosenExtras: make(map[uuid.UUID]bool),
	}

	for groupID, opts := range options {
		available := make([]domain.VariationOption, 0, len(opts))
		for _, opt := range opts {
			if opt.IsAvailable {
				available = append(available, opt)
			}
		}
		s.options[groupID] = available
	}

	for _, g := range groups {
		if g.AllowMultiple {
			continue
		}
		for _, opt := range s.options[g.ID] {
			if opt.IsDefault {
				s.chosen[g.ID] = []uuid.UUID{opt.ID}
				break
			}
		}
	}

	return s
}

// ToggleOption selects or deselects an option.
//
// Single-select group: the selection becomes exactly {optionID}.
// Multi-select group: an already-selected option is removed; a new option is
// added unless the group is at MaxSelections, in which case nothing changes
// and LimitReached is reported.
func (s *Selection) ToggleOption(groupID, optionID uuid.UUID) (ToggleResult, error) {
	group := s.findGroup(groupID)
	if group == nil {
		return ToggleResult{}, domain.Errorf(domain.EINVALID, "menu.toggle_option", "unknown variation group %s", groupID)
	}
	if s.findOption(groupID, optionID) == nil {
		return ToggleResult{}, domain.Errorf(domain.EINVALID, "menu.toggle_option", "option %s does not belong to group %s", optionID, groupID)
	}

	if !group.AllowMultiple {
		s.chosen[groupID] = []uuid.UUID{optionID}
		return ToggleResult{Selected: true}, nil
	}

	current := s.chosen[groupID]
	if idx := slices.Index(current, optionID); idx >= 0 {
		// Re-toggle deselects, regardless of remaining slots.
		s.chosen[groupID] = slices.Delete(current, idx, idx+1)
		return ToggleResult{Selected: false}, nil
	}

	max := group.MaxSelections
	if max < 1 {
		max = 1
	}
	if int32(len(current)) >= max {
		return ToggleResult{LimitReached: true, MaxSelections: max}, nil
	}

	s.chosen[groupID] = append(current, optionID)
	return ToggleResult{Selected: true}, nil
}

// ToggleExtra adds or removes an extra. Extras carry no cardinality rules.
func (s *Selection) ToggleExtra(extraID uuid.UUID) (bool, error) {
	if s.findExtra(extraID) == nil {
		return false, domain.Errorf(domain.EINVALID, "menu.toggle_extra", "unknown extra %s", extraID)
	}

	if s.chosenExtras[extraID] {
		delete(s.chosenExtras, extraID)
		return false, nil
	}
	s.chosenExtras[extraID] = true
	return true, nil
}

// ComputeTotal returns the price for the current configuration at the given
// quantity: (base + Σ selected adjustments + Σ selected extras) × quantity.
// Callers keep quantity at 1 or above; anything lower is treated as 1.
func (s *Selection) ComputeTotal(basePrice int64, quantity int) int64 {
	if quantity < 1 {
		quantity = 1
	}

	unit := basePrice
	for _, g := range s.groups {
		for _, optID := range s.chosen[g.ID] {
			if opt := s.findOption(g.ID, optID); opt != nil {
				unit += opt.PriceAdjustment
			}
		}
	}
	for _, e := range s.extras {
		if s.chosenExtras[e.ID] {
			unit += e.Price
		}
	}

	return unit * int64(quantity)
}

// CanSubmit reports whether every required group satisfies its cardinality
// rule. Optional groups impose no constraint regardless of their count.
func (s *Selection) CanSubmit() bool {
	return len(s.MissingGroups()) == 0
}

// MissingGroups returns the required groups whose selection does not satisfy
// the cardinality rule, in display order. Used to build the blocking
// "select all required options" message.
func (s *Selection) MissingGroups() []domain.VariationGroup {
	var missing []domain.VariationGroup
	for _, g := range s.groups {
		if !g.IsRequired {
			continue
		}

		count := int32(len(s.chosen[g.ID]))
		want := int32(1)
		if g.AllowMultiple {
			want = g.MaxSelections
			if want < 1 {
				want = 1
			}
		}
		if count != want {
			missing = append(missing, g)
		}
	}
	return missing
}

// SelectedVariations snapshots the current per-group choices for a cart
// line, in group display order then pick order.
func (s *Selection) SelectedVariations() []domain.SelectedVariation {
	var out []domain.SelectedVariation
	for _, g := range s.groups {
		for _, optID := range s.chosen[g.ID] {
			opt := s.findOption(g.ID, optID)
			if opt == nil {
				continue
			}
			out = append(out, domain.SelectedVariation{
				GroupID:         g.ID,
				GroupName:       g.Name,
				OptionID:        opt.ID,
				OptionName:      opt.Name,
				PriceAdjustment: opt.PriceAdjustment,
			})
		}
	}
	return out
}

// SelectedExtras snapshots the chosen extras in catalog order.
func (s *Selection) SelectedExtras() []domain.Extra {
	var out []domain.Extra
	for _, e := range s.extras {
		if s.chosenExtras[e.ID] {
			out = append(out, e)
		}
	}
	return out
}

// SelectedCount returns how many options are selected in one group.
func (s *Selection) SelectedCount(groupID uuid.UUID) int {
	return len(s.chosen[groupID])
}

// IsOptionSelected reports whether one option is currently selected.
func (s *Selection) IsOptionSelected(groupID, optionID uuid.UUID) bool {
	return slices.Contains(s.chosen[groupID], optionID)
}

func (s *Selection) findGroup(id uuid.UUID) *domain.VariationGroup {
	for i := range s.groups {
		if s.groups[i].ID == id {
			return &s.groups[i]
		}
	}
	return nil
}

func (s *Selection) findOption(groupID, optionID uuid.UUID) *domain.VariationOption {
	opts := s.options[groupID]
	for i := range opts {
		if opts[i].ID == optionID {
			return &opts[i]
		}
	}
	return nil
}

func (s *Selection) findExtra(id uuid.UUID) *domain.Extra {
	for i := range s.extras {
		if s.extras[i].ID == id {
			return &s.extras[i]
		}
	}
	return nil
}
