package app

import (
	"fmt"
	"math"
	"strconv"

	"github.com/oskar-del/newbuild-homes-costa-blanca-sub013/internal/domain"
)

// developmentImageCap bounds the aggregated image pool per development.
const developmentImageCap = 20

// OrderedGroups is a slug-keyed partition of properties whose keys keep
// first-encounter order, so identical input yields identical output.
type OrderedGroups struct {
	keys  []string
	byKey map[string][]domain.Property
}

func newOrderedGroups() *OrderedGroups {
	return &OrderedGroups{byKey: make(map[string][]domain.Property)}
}

func (g *OrderedGroups) add(key string, p domain.Property) {
	if _, ok := g.byKey[key]; !ok {
		g.keys = append(g.keys, key)
	}
	g.byKey[key] = append(g.byKey[key], p)
}

// Keys returns the group keys in first-encounter order.
func (g *OrderedGroups) Keys() []string { return g.keys }

// Get returns the members of one group, nil for unknown keys.
func (g *OrderedGroups) Get(key string) []domain.Property { return g.byKey[key] }

// Len reports the number of groups.
func (g *OrderedGroups) Len() int { return len(g.keys) }

// GroupByDevelopment partitions the flat catalog by development slug and
// derives per-development summaries. Descriptive fields come from the
// first member; the group is not validated for internal consistency, so
// colliding slugs merge silently.
func GroupByDevelopment(properties []domain.Property) []domain.Development {
	groups := newOrderedGroups()
	for _, p := range properties {
		groups.add(p.DevelopmentSlug, p)
	}

	out := make([]domain.Development, 0, groups.Len())
	for _, slug := range groups.Keys() {
		members := groups.Get(slug)
		first := members[0]

		var priceFrom, priceTo *float64
		minBeds, maxBeds := 0, 0
		haveBeds := false
		var images []string
		for _, p := range members {
			if p.Price != nil {
				if priceFrom == nil || *p.Price < *priceFrom {
					v := *p.Price
					priceFrom = &v
				}
				if priceTo == nil || *p.Price > *priceTo {
					v := *p.Price
					priceTo = &v
				}
			}
			if p.Bedrooms != nil {
				if !haveBeds || *p.Bedrooms < minBeds {
					minBeds = *p.Bedrooms
				}
				if !haveBeds || *p.Bedrooms > maxBeds {
					maxBeds = *p.Bedrooms
				}
				haveBeds = true
			}
			if len(images) < developmentImageCap {
				images = append(images, p.Images...)
			}
		}
		if len(images) > developmentImageCap {
			images = images[:developmentImageCap]
		}

		bedroomsRange := ""
		if haveBeds {
			bedroomsRange = fmt.Sprintf("%d-%d bed", minBeds, maxBeds)
		}

		out = append(out, domain.Development{
			Slug:          slug,
			Name:          first.DevelopmentName,
			Developer:     first.Developer,
			DeveloperSlug: first.DeveloperSlug,
			Town:          first.Town,
			Province:      first.Province,
			PropertyCount: len(members),
			PriceFrom:     priceFrom,
			PriceTo:       priceTo,
			BedroomsRange: bedroomsRange,
			Images:        images,
			Properties:    members,
		})
	}
	return out
}

// GroupByDeveloper partitions properties by developer slug.
func GroupByDeveloper(properties []domain.Property) *OrderedGroups {
	groups := newOrderedGroups()
	for _, p := range properties {
		groups.add(p.DeveloperSlug, p)
	}
	return groups
}

// GroupByArea partitions properties by slugified town.
func GroupByArea(properties []domain.Property) *OrderedGroups {
	groups := newOrderedGroups()
	for _, p := range properties {
		groups.add(CreateSlug(p.Town), p)
	}
	return groups
}

// Stats summarizes the catalog for the stats endpoint.
func Stats(properties []domain.Property) domain.CatalogStats {
	developments := GroupByDevelopment(properties)

	var low, high *float64
	for _, d := range developments {
		if d.PriceFrom != nil && (low == nil || *d.PriceFrom < *low) {
			v := *d.PriceFrom
			low = &v
		}
		if d.PriceTo != nil && (high == nil || *d.PriceTo > *high) {
			v := *d.PriceTo
			high = &v
		}
	}

	priceRange := "Contact for pricing"
	if low != nil && high != nil {
		priceRange = FormatPrice(*low) + " - " + FormatPrice(*high)
	}

	return domain.CatalogStats{
		TotalProperties:   len(properties),
		TotalDevelopments: len(developments),
		TotalDevelopers:   GroupByDeveloper(properties).Len(),
		TotalAreas:        GroupByArea(properties).Len(),
		LowestPrice:       low,
		PriceRange:        priceRange,
	}
}

// FormatPrice renders a euro amount with thousands separators and no
// decimals, e.g. €1,234,500.
func FormatPrice(price float64) string {
	n := int64(math.Round(price))
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return "€" + s
}
