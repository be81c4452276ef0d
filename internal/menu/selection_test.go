package menu

import (
	"testing"

	"github.com/cardap-io/cardap/internal/domain"
	"github.com/google/uuid"
)

func singleGroup(name string, required bool) domain.VariationGroup {
	return domain.VariationGroup{
		ID:            uuid.New(),
		Name:          name,
		IsRequired:    required,
		AllowMultiple: false,
		MaxSelections: 1,
	}
}

func multiGroup(name string, required bool, max int32) domain.VariationGroup {
	return domain.VariationGroup{
		ID:            uuid.New(),
		Name:          name,
		IsRequired:    required,
		AllowMultiple: true,
		MaxSelections: max,
	}
}

func option(groupID uuid.UUID, name string, adjustment int64) domain.VariationOption {
	return domain.VariationOption{
		ID:              uuid.New(),
		GroupID:         groupID,
		Name:            name,
		PriceAdjustment: adjustment,
		IsAvailable:     true,
	}
}

func TestToggleOption_SingleSelectReplacesPrevious(t *testing.T) {
	group := singleGroup("Tamanho", true)
	small := option(group.ID, "Pequena", 0)
	large := option(group.ID, "Grande", 1000)

	sel := NewSelection(
		[]domain.VariationGroup{group},
		map[uuid.UUID][]domain.VariationOption{group.ID: {small, large}},
		nil,
	)

	if _, err := sel.ToggleOption(group.ID, small.ID); err != nil {
		t.Fatalf("toggle small: %v", err)
	}
	if _, err := sel.ToggleOption(group.ID, large.ID); err != nil {
		t.Fatalf("toggle large: %v", err)
	}

	if sel.IsOptionSelected(group.ID, small.ID) {
		t.Error("small should have been replaced")
	}
	if !sel.IsOptionSelected(group.ID, large.ID) {
		t.Error("large should be selected")
	}
	if got := sel.SelectedCount(group.ID); got != 1 {
		t.Errorf("selected count = %d, want 1", got)
	}
}

func TestToggleOption_MultiSelectLimit(t *testing.T) {
	group := multiGroup("Sabores", true, 2)
	a := option(group.ID, "Calabresa", 0)
	b := option(group.ID, "Mussarela", 0)
	c := option(group.ID, "Portuguesa", 500)

	sel := NewSelection(
		[]domain.VariationGroup{group},
		map[uuid.UUID][]domain.VariationOption{group.ID: {a, b, c}},
		nil,
	)

	for _, opt := range []domain.VariationOption{a, b} {
		result, err := sel.ToggleOption(group.ID, opt.ID)
		if err != nil {
			t.Fatalf("toggle %s: %v", opt.Name, err)
		}
		if !result.Selected || result.LimitReached {
			t.Fatalf("toggle %s: result = %+v", opt.Name, result)
		}
	}

	// Third add must be rejected without changing state.
	result, err := sel.ToggleOption(group.ID, c.ID)
	if err != nil {
		t.Fatalf("toggle over limit: %v", err)
	}
	if !result.LimitReached {
		t.Error("expected LimitReached")
	}
	if result.MaxSelections != 2 {
		t.Errorf("MaxSelections = %d, want 2", result.MaxSelections)
	}
	if sel.IsOptionSelected(group.ID, c.ID) {
		t.Error("third option must not be selected")
	}
	if got := sel.SelectedCount(group.ID); got != 2 {
		t.Errorf("selected count = %d, want 2", got)
	}
}

func TestToggleOption_MultiSelectDeselectAtLimit(t *testing.T) {
	group := multiGroup("Sabores", true, 2)
	a := option(group.ID, "Calabresa", 0)
	b := option(group.ID, "Mussarela", 0)

	sel := NewSelection(
		[]domain.VariationGroup{group},
		map[uuid.UUID][]domain.VariationOption{group.ID: {a, b}},
		nil,
	)

	sel.ToggleOption(group.ID, a.ID)
	sel.ToggleOption(group.ID, b.ID)

	// Re-toggling a selected option deselects it even at the limit.
	result, err := sel.ToggleOption(group.ID, a.ID)
	if err != nil {
		t.Fatalf("re-toggle: %v", err)
	}
	if result.Selected || result.LimitReached {
		t.Errorf("re-toggle result = %+v, want deselected", result)
	}
	if sel.IsOptionSelected(group.ID, a.ID) {
		t.Error("option should be deselected")
	}
}

func TestToggleOption_UnknownGroupOrOption(t *testing.T) {
	group := singleGroup("Tamanho", false)
	opt := option(group.ID, "Média", 0)

	sel := NewSelection(
		[]domain.VariationGroup{group},
		map[uuid.UUID][]domain.VariationOption{group.ID: {opt}},
		nil,
	)

	if _, err := sel.ToggleOption(uuid.New(), opt.ID); err == nil {
		t.Error("expected error for unknown group")
	}
	if _, err := sel.ToggleOption(group.ID, uuid.New()); err == nil {
		t.Error("expected error for unknown option")
	}
}

func TestNewSelection_SeedsSingleSelectDefault(t *testing.T) {
	group := singleGroup("Tamanho", true)
	def := domain.VariationOption{
		ID: uuid.New(), GroupID: group.ID, Name: "Média",
		IsDefault: true, IsAvailable: true,
	}
	other := option(group.ID, "Grande", 800)

	multi := multiGroup("Adicionais", false, 3)
	multiDef := domain.VariationOption{
		ID: uuid.New(), GroupID: multi.ID, Name: "Bacon",
		IsDefault: true, IsAvailable: true,
	}

	sel := NewSelection(
		[]domain.VariationGroup{group, multi},
		map[uuid.UUID][]domain.VariationOption{
			group.ID: {def, other},
			multi.ID: {multiDef},
		},
		nil,
	)

	if !sel.IsOptionSelected(group.ID, def.ID) {
		t.Error("single-select default should be pre-selected")
	}
	if sel.SelectedCount(multi.ID) != 0 {
		t.Error("multi-select groups must start empty")
	}
}

func TestNewSelection_FiltersUnavailableOptions(t *testing.T) {
	group := singleGroup("Tamanho", true)
	unavailable := domain.VariationOption{
		ID: uuid.New(), GroupID: group.ID, Name: "Gigante", IsAvailable: false,
	}

	sel := NewSelection(
		[]domain.VariationGroup{group},
		map[uuid.UUID][]domain.VariationOption{group.ID: {unavailable}},
		nil,
	)

	if _, err := sel.ToggleOption(group.ID, unavailable.ID); err == nil {
		t.Error("unavailable option must not be selectable")
	}
}

func TestCanSubmit(t *testing.T) {
	required := singleGroup("Tamanho", true)
	reqOpt := option(required.ID, "Média", 0)

	multi := multiGroup("Sabores", true, 2)
	f1 := option(multi.ID, "Calabresa", 0)
	f2 := option(multi.ID, "Mussarela", 0)

	optional := multiGroup("Extras", false, 3)
	o1 := option(optional.ID, "Borda recheada", 700)

	sel := NewSelection(
		[]domain.VariationGroup{required, multi, optional},
		map[uuid.UUID][]domain.VariationOption{
			required.ID: {reqOpt},
			multi.ID:    {f1, f2},
			optional.ID: {o1},
		},
		nil,
	)

	if sel.CanSubmit() {
		t.Fatal("nothing selected, must not submit")
	}

	sel.ToggleOption(required.ID, reqOpt.ID)
	if sel.CanSubmit() {
		t.Fatal("required multi-select incomplete, must not submit")
	}

	// One of two flavors: still short of the exact count.
	sel.ToggleOption(multi.ID, f1.ID)
	if sel.CanSubmit() {
		t.Fatal("required multi-select needs exactly 2 selections")
	}

	sel.ToggleOption(multi.ID, f2.ID)
	if !sel.CanSubmit() {
		t.Fatal("all required groups satisfied, should submit")
	}

	missing := sel.MissingGroups()
	if len(missing) != 0 {
		t.Errorf("missing groups = %d, want 0", len(missing))
	}
}

func TestMissingGroups_Order(t *testing.T) {
	g1 := singleGroup("Tamanho", true)
	g2 := multiGroup("Sabores", true, 2)

	sel := NewSelection(
		[]domain.VariationGroup{g1, g2},
		map[uuid.UUID][]domain.VariationOption{
			g1.ID: {option(g1.ID, "Média", 0)},
			g2.ID: {option(g2.ID, "Calabresa", 0), option(g2.ID, "Mussarela", 0)},
		},
		nil,
	)

	missing := sel.MissingGroups()
	if len(missing) != 2 {
		t.Fatalf("missing = %d, want 2", len(missing))
	}
	if missing[0].Name != "Tamanho" || missing[1].Name != "Sabores" {
		t.Errorf("missing order = %q, %q", missing[0].Name, missing[1].Name)
	}
}

func TestComputeTotal(t *testing.T) {
	group := singleGroup("Tamanho", true)
	large := option(group.ID, "Grande", 1000)

	extra := domain.Extra{ID: uuid.New(), Name: "Bacon", Price: 300, IsAvailable: true}

	sel := NewSelection(
		[]domain.VariationGroup{group},
		map[uuid.UUID][]domain.VariationOption{group.ID: {large}},
		[]domain.Extra{extra},
	)
	sel.ToggleOption(group.ID, large.ID)
	sel.ToggleExtra(extra.ID)

	tests := []struct {
		name     string
		quantity int
		want     int64
	}{
		{"quantity 1", 1, 2490 + 1000 + 300},
		{"quantity 3", 3, (2490 + 1000 + 300) * 3},
		{"quantity 0 clamps to 1", 0, 2490 + 1000 + 300},
		{"negative quantity clamps to 1", -5, 2490 + 1000 + 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sel.ComputeTotal(2490, tt.quantity); got != tt.want {
				t.Errorf("ComputeTotal = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestToggleExtra(t *testing.T) {
	extra := domain.Extra{ID: uuid.New(), Name: "Bacon", Price: 300, IsAvailable: true}
	sel := NewSelection(nil, nil, []domain.Extra{extra})

	on, err := sel.ToggleExtra(extra.ID)
	if err != nil || !on {
		t.Fatalf("first toggle = (%v, %v), want (true, nil)", on, err)
	}
	on, err = sel.ToggleExtra(extra.ID)
	if err != nil || on {
		t.Fatalf("second toggle = (%v, %v), want (false, nil)", on, err)
	}
	if _, err := sel.ToggleExtra(uuid.New()); err == nil {
		t.Error("expected error for unknown extra")
	}
}

func TestSelectedVariations_Snapshot(t *testing.T) {
	g1 := singleGroup("Tamanho", true)
	g2 := multiGroup("Sabores", true, 2)
	size := option(g1.ID, "Grande", 1000)
	f1 := option(g2.ID, "Calabresa", 0)
	f2 := option(g2.ID, "Mussarela", 200)

	sel := NewSelection(
		[]domain.VariationGroup{g1, g2},
		map[uuid.UUID][]domain.VariationOption{
			g1.ID: {size},
			g2.ID: {f1, f2},
		},
		nil,
	)
	sel.ToggleOption(g2.ID, f2.ID)
	sel.ToggleOption(g2.ID, f1.ID)
	sel.ToggleOption(g1.ID, size.ID)

	got := sel.SelectedVariations()
	if len(got) != 3 {
		t.Fatalf("variations = %d, want 3", len(got))
	}
	// Group display order first, pick order within the group.
	if got[0].OptionName != "Grande" {
		t.Errorf("first variation = %q, want Grande", got[0].OptionName)
	}
	if got[1].OptionName != "Mussarela" || got[2].OptionName != "Calabresa" {
		t.Errorf("flavor order = %q, %q", got[1].OptionName, got[2].OptionName)
	}
	if got[0].GroupName != "Tamanho" || got[0].PriceAdjustment != 1000 {
		t.Errorf("variation snapshot = %+v", got[0])
	}
}
