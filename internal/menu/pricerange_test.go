package menu

import (
	"testing"

	"github.com/cardap-io/cardap/internal/domain"
	"github.com/google/uuid"
)

func TestComputePriceRange(t *testing.T) {
	g1 := domain.VariationGroup{ID: uuid.New(), Name: "Tamanho"}
	g2 := domain.VariationGroup{ID: uuid.New(), Name: "Massa"}

	opts := func(groupID uuid.UUID, adjustments ...int64) []domain.VariationOption {
		var out []domain.VariationOption
		for _, a := range adjustments {
			out = append(out, domain.VariationOption{
				ID: uuid.New(), GroupID: groupID, PriceAdjustment: a, IsAvailable: true,
			})
		}
		return out
	}

	tests := []struct {
		name    string
		base    int64
		groups  []domain.VariationGroup
		options map[uuid.UUID][]domain.VariationOption
		want    PriceRange
	}{
		{
			name:   "no groups",
			base:   2490,
			groups: nil,
			want:   PriceRange{},
		},
		{
			name:    "single group",
			base:    2490,
			groups:  []domain.VariationGroup{g1},
			options: map[uuid.UUID][]domain.VariationOption{g1.ID: opts(g1.ID, -500, 0, 1000)},
			want:    PriceRange{Min: 1990, Max: 3490, HasVariations: true},
		},
		{
			name:   "adjustments pooled across groups",
			base:   2490,
			groups: []domain.VariationGroup{g1, g2},
			options: map[uuid.UUID][]domain.VariationOption{
				g1.ID: opts(g1.ID, 0, 1000),
				g2.ID: opts(g2.ID, -200, 500),
			},
			// Min and max come from the pooled option set, not one pick
			// per group.
			want: PriceRange{Min: 2290, Max: 3490, HasVariations: true},
		},
		{
			name:   "all options unavailable",
			base:   2490,
			groups: []domain.VariationGroup{g1},
			options: map[uuid.UUID][]domain.VariationOption{
				g1.ID: {{ID: uuid.New(), GroupID: g1.ID, PriceAdjustment: 500, IsAvailable: false}},
			},
			want: PriceRange{},
		},
		{
			name:    "degenerate range",
			base:    2490,
			groups:  []domain.VariationGroup{g1},
			options: map[uuid.UUID][]domain.VariationOption{g1.ID: opts(g1.ID, 0, 0)},
			want:    PriceRange{Min: 2490, Max: 2490, HasVariations: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputePriceRange(tt.base, tt.groups, tt.options)
			if got != tt.want {
				t.Errorf("ComputePriceRange = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFormatProductPrice(t *testing.T) {
	ptr := func(v int64) *int64 { return &v }

	tests := []struct {
		name    string
		product domain.Product
		want    string
	}{
		{
			name:    "no variations",
			product: domain.Product{BasePrice: 2490},
			want:    "R$ 24.90",
		},
		{
			name: "price range",
			product: domain.Product{
				BasePrice: 2490, HasVariations: true,
				PriceDisplayMin: ptr(1990), PriceDisplayMax: ptr(3490),
			},
			want: "R$ 19.90 – R$ 34.90",
		},
		{
			name: "degenerate range collapses to single price",
			product: domain.Product{
				BasePrice: 2490, HasVariations: true,
				PriceDisplayMin: ptr(2490), PriceDisplayMax: ptr(2490),
			},
			want: "R$ 24.90",
		},
		{
			name: "has_variations without display fields falls back to base",
			product: domain.Product{
				BasePrice: 2490, HasVariations: true,
			},
			want: "R$ 24.90",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatProductPrice(tt.product); got != tt.want {
				t.Errorf("FormatProductPrice = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "R$ 0.00"},
		{5, "R$ 0.05"},
		{2490, "R$ 24.90"},
		{100000, "R$ 1000.00"},
	}

	for _, tt := range tests {
		if got := FormatCents(tt.cents); got != tt.want {
			t.Errorf("FormatCents(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"24.90", 2490, false},
		{"24.9", 2490, false},
		{"0", 0, false},
		{"24.999", 2500, false},
		{"-5.00", -500, false},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParsePrice(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePrice(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePrice(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
