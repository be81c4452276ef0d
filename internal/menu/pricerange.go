package menu

import (
	"fmt"

	"github.com/cardap-io/cardap/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceRange is the precomputed "from X to Y" display bound stored on the
// product record so listings render without loading variation data.
//
// The bound pools every available option's adjustment across ALL groups of
// the product, rather than combining one selection per group. That
// understates the achievable extremes when several required groups compose
// additively, but storefront listings depend on this estimate, so it is
// kept as-is.
type PriceRange struct {
	Min           int64
	Max           int64
	HasVariations bool
}

// ComputePriceRange derives the display price range for a product from its
// variation groups' available options. With no groups, or no available
// options in any group, the product has no variations and the display
// fields stay clear.
func ComputePriceRange(basePrice int64, groups []domain.VariationGroup, options map[uuid.UUID][]domain.VariationOption) PriceRange {
	var (
		minAdj, maxAdj int64
		found          bool
	)

	for _, g := range groups {
		for _, opt := range options[g.ID] {
			if !opt.IsAvailable {
				continue
			}
			if !found {
				minAdj, maxAdj = opt.PriceAdjustment, opt.PriceAdjustment
				found = true
				continue
			}
			if opt.PriceAdjustment < minAdj {
				minAdj = opt.PriceAdjustment
			}
			if opt.PriceAdjustment > maxAdj {
				maxAdj = opt.PriceAdjustment
			}
		}
	}

	if !found {
		return PriceRange{}
	}

	return PriceRange{
		Min:           basePrice + minAdj,
		Max:           basePrice + maxAdj,
		HasVariations: true,
	}
}

// FormatProductPrice renders the listing price for a product. Products with
// a price range show "R$ min – R$ max"; a degenerate range (min == max) and
// products without variations show a single price.
func FormatProductPrice(p domain.Product) string {
	if p.HasVariations && p.PriceDisplayMin != nil && p.PriceDisplayMax != nil {
		min, max := *p.PriceDisplayMin, *p.PriceDisplayMax
		if min == max {
			return FormatCents(min)
		}
		return fmt.Sprintf("%s – %s", FormatCents(min), FormatCents(max))
	}
	return FormatCents(p.BasePrice)
}

// FormatCents renders a centavo amount as "R$ 24.90".
func FormatCents(cents int64) string {
	return "R$ " + decimal.New(cents, -2).StringFixed(2)
}

// ParsePrice converts a human-entered decimal price string ("24.90") into
// centavos, rounding half up at the second decimal place.
func ParsePrice(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, domain.Errorf(domain.EINVALID, "menu.parse_price", "invalid price %q", s)
	}
	return d.Shift(2).Round(0).IntPart(), nil
}
