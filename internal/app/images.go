package app

import (
	"fmt"
	"strings"

	"github.com/oskar-del/newbuild-homes-costa-blanca-sub013/internal/domain"
)

// PlaceholderImage is served when a development has no usable images.
const PlaceholderImage = "/images/placeholder-development.svg"

// categoryRules is the prioritized keyword table behind the URL
// classifier. Order matters: the first rule whose keyword appears in the
// URL wins, so more distinctive keywords sit above generic ones.
var categoryRules = []struct {
	category domain.ImageCategory
	keywords []string
}{
	{domain.CategoryAerial, []string{"aerial", "drone"}},
	{domain.CategoryExterior, []string{"exterior", "facade", "building"}},
	{domain.CategoryPool, []string{"pool", "piscina"}},
	{domain.CategoryGarden, []string{"garden", "jardin", "outdoor"}},
	{domain.CategoryInteriorLiving, []string{"living", "salon", "lounge"}},
	{domain.CategoryInteriorKitchen, []string{"kitchen", "cocina"}},
	{domain.CategoryInteriorBedroom, []string{"bedroom", "dormitorio", "habitacion"}},
	{domain.CategoryInteriorBathroom, []string{"bathroom", "bano", "bath"}},
	{domain.CategoryTerrace, []string{"terrace", "terraza", "balcon"}},
	{domain.CategoryView, []string{"view", "vista", "sea", "golf"}},
}

// Preference order when picking the one main "community" shot.
var communityPriority = []domain.ImageCategory{
	domain.CategoryAerial,
	domain.CategoryExterior,
	domain.CategoryPool,
	domain.CategoryGarden,
}

// Preference order when picking secondary "property" shots.
var propertyPriority = []domain.ImageCategory{
	domain.CategoryInteriorLiving,
	domain.CategoryTerrace,
	domain.CategoryView,
	domain.CategoryInteriorKitchen,
	domain.CategoryInteriorBedroom,
	domain.CategoryInteriorBathroom,
}

// CategorizeImageByURL classifies an image from keywords in its URL.
// Feeds with opaque filenames simply land in unknown.
func CategorizeImageByURL(url string) domain.ImageCategory {
	lower := strings.ToLower(url)
	for _, rule := range categoryRules {
		for _, k := range rule.keywords {
			if strings.Contains(lower, k) {
				return rule.category
			}
		}
	}
	return domain.CategoryUnknown
}

// GenerateAltTag builds an accessibility description for one image from
// its category and the development context.
func GenerateAltTag(category domain.ImageCategory, developmentName, town, propertyType string) string {
	if propertyType == "" {
		propertyType = "property"
	}
	location := fmt.Sprintf("%s in %s", developmentName, town)

	switch category {
	case domain.CategoryAerial:
		return fmt.Sprintf("Aerial view of %s new build development", location)
	case domain.CategoryExterior:
		return fmt.Sprintf("%s - modern new build exterior", location)
	case domain.CategoryPool:
		return fmt.Sprintf("Communal swimming pool at %s", location)
	case domain.CategoryGarden:
		return fmt.Sprintf("Landscaped gardens at %s", location)
	case domain.CategoryInteriorLiving:
		return fmt.Sprintf("Spacious living area in %s at %s", propertyType, location)
	case domain.CategoryInteriorKitchen:
		return fmt.Sprintf("Modern fitted kitchen at %s", location)
	case domain.CategoryInteriorBedroom:
		return fmt.Sprintf("Bedroom in %s at %s", propertyType, location)
	case domain.CategoryInteriorBathroom:
		return fmt.Sprintf("Contemporary bathroom at %s", location)
	case domain.CategoryTerrace:
		return fmt.Sprintf("Private terrace at %s", location)
	case domain.CategoryView:
		return fmt.Sprintf("Stunning views from %s", location)
	default:
		return fmt.Sprintf("%s - new build %s in Spain", location, propertyType)
	}
}

// SortedImages is the result of categorizing one property's or
// development's image list.
type SortedImages struct {
	Community []domain.CategorizedImage
	Property  []domain.CategorizedImage
	All       []domain.CategorizedImage
	Main      *domain.CategorizedImage
	Secondary []domain.CategorizedImage
}

// CategorizeAndSortImages classifies every URL and selects display
// images: the main shot prefers community categories and falls back
// through unknown to the first image of any kind; up to two secondary
// shots prefer property categories, backfilled from unknown.
func CategorizeAndSortImages(urls []string, developmentName, town, propertyType string) SortedImages {
	all := make([]domain.CategorizedImage, 0, len(urls))
	for _, url := range urls {
		category := CategorizeImageByURL(url)
		all = append(all, domain.CategorizedImage{
			URL:      url,
			Category: category,
			AltTag:   GenerateAltTag(category, developmentName, town, propertyType),
		})
	}

	community := filterByPriority(all, communityPriority)
	property := filterByPriority(all, propertyPriority)
	var unknown []domain.CategorizedImage
	for _, img := range all {
		if img.Category == domain.CategoryUnknown {
			unknown = append(unknown, img)
		}
	}

	var main *domain.CategorizedImage
	switch {
	case len(community) > 0:
		main = &community[0]
	case len(unknown) > 0:
		main = &unknown[0]
	case len(all) > 0:
		main = &all[0]
	}
	if main != nil {
		main.IsPrimary = true
	}

	secondary := property
	if len(secondary) > 2 {
		secondary = secondary[:2]
	} else if len(secondary) < 2 {
		need := 2 - len(secondary)
		if need > len(unknown) {
			need = len(unknown)
		}
		secondary = append(secondary[:len(secondary):len(secondary)], unknown[:need]...)
	}
	for i := range secondary {
		secondary[i].IsSecondary = true
	}

	return SortedImages{
		Community: community,
		Property:  property,
		All:       all,
		Main:      main,
		Secondary: secondary,
	}
}

// filterByPriority keeps images whose category is in the priority list,
// ordered by that list; ties keep input order.
func filterByPriority(images []domain.CategorizedImage, priority []domain.ImageCategory) []domain.CategorizedImage {
	var out []domain.CategorizedImage
	for _, cat := range priority {
		for _, img := range images {
			if img.Category == cat {
				out = append(out, img)
			}
		}
	}
	return out
}

// GetCardImages is the card-rendering entry point: one main image and up
// to two secondary images with alt text. An empty input list produces a
// placeholder rather than nothing, so cards always render.
func GetCardImages(urls []string, developmentName, town string) domain.CardImages {
	if len(urls) == 0 {
		return domain.CardImages{
			Main: domain.CardImage{
				URL: PlaceholderImage,
				Alt: fmt.Sprintf("%s in %s - new build development", developmentName, town),
			},
			Secondary: []domain.CardImage{},
		}
	}

	sorted := CategorizeAndSortImages(urls, developmentName, town, "")
	main := domain.CardImage{URL: urls[0], Alt: fmt.Sprintf("%s in %s", developmentName, town)}
	if sorted.Main != nil {
		main = domain.CardImage{URL: sorted.Main.URL, Alt: sorted.Main.AltTag}
	}
	secondary := make([]domain.CardImage, 0, len(sorted.Secondary))
	for _, img := range sorted.Secondary {
		secondary = append(secondary, domain.CardImage{URL: img.URL, Alt: img.AltTag})
	}
	return domain.CardImages{Main: main, Secondary: secondary}
}
