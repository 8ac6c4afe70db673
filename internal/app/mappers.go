package app

import (
	"strconv"
	"strings"

	"github.com/oskar-del/newbuild-homes-costa-blanca-sub013/internal/domain"
)

/********** alias registries (single source of truth) **********/

// Each canonical field tries its aliases in order and takes the first
// non-empty hit. Upstream feeds mix Spanish and English tag names, so
// both appear here.
var propertyAliases = map[string][]string{
	"id":          {"id", "referencia", "ref", "reference"},
	"title":       {"titulo", "nombre", "title", "name"},
	"development": {"promocion", "urbanizacion", "development", "development_name"},
	"developer":   {"promotor", "agencia", "developer", "builder"},
	"town":        {"poblacion", "ciudad", "localidad", "town", "location", "city"},
	"province":    {"provincia", "province"},
	"price":       {"precio", "price"},
	"bedrooms":    {"habitaciones", "dormitorios", "bedrooms", "beds"},
	"bathrooms":   {"banos", "bathrooms", "baths"},
	"size":        {"superficie", "metros", "built_size", "surface_area", "size"},
	"description": {"descripcion", "observaciones", "description", "desc"},
	"type":        {"tipo", "subtipo", "type", "property_type"},
	"status":      {"estado", "status"},
}

// Defaults used when every alias comes up empty. Developer falls back
// per feed because single-developer feeds never carry the tag.
const (
	defaultTitle       = "Property"
	defaultDevelopment = "Development"
	defaultTown        = "Costa Blanca"
	defaultProvince    = "Alicante"
	defaultDeveloper   = "Developer"
	defaultStatus      = "available"
)

var feedDeveloperDefaults = map[string]string{
	"miralbo": "Miralbo Urbana",
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// extractText pulls a usable string out of whatever shape a feed hands
// us: a bare string, a number, or an element object carrying its text
// under a conventional key. Degrades to "" instead of failing.
func extractText(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case map[string]any:
		for _, k := range []string{"#text", "_text"} {
			if inner, ok := t[k]; ok {
				return extractText(inner)
			}
		}
	}
	return ""
}

// extractNumber parses a float out of noisy feed text, tolerating
// currency symbols, thousands separators, and unit suffixes mixed in
// with the digits. Nil when nothing numeric survives.
func extractNumber(v any) *float64 {
	text := extractText(v)
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return nil
	}
	return &f
}

// firstText: first non-empty extraction across a field's aliases.
func firstText(rec map[string]any, field string) string {
	for _, path := range propertyAliases[field] {
		if s := extractText(lookupAny(rec, path)); s != "" {
			return s
		}
	}
	return ""
}

func firstNumber(rec map[string]any, field string) *float64 {
	for _, path := range propertyAliases[field] {
		if v := lookupAny(rec, path); v != nil {
			if f := extractNumber(v); f != nil {
				return f
			}
		}
	}
	return nil
}

func firstInt(rec map[string]any, field string) *int {
	if f := firstNumber(rec, field); f != nil {
		n := int(*f)
		return &n
	}
	return nil
}

func textOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

/********** image extraction **********/

// Image collection conventions seen across feeds: a wrapping element
// holding one child per image, single or repeated.
var imageCollections = [][2]string{
	{"fotos", "foto"},
	{"images", "image"},
	{"photos", "photo"},
}

// extractImages collects absolute image URLs in discovery order.
// Relative and otherwise malformed URLs are dropped, not kept as blanks;
// duplicates within one record are kept.
func extractImages(rec map[string]any) []string {
	var images []string
	for _, coll := range imageCollections {
		wrapper, ok := lookupAny(rec, coll[0]).(map[string]any)
		if !ok {
			continue
		}
		items, ok := wrapper[coll[1]]
		if !ok {
			continue
		}
		list, ok := items.([]any)
		if !ok {
			list = []any{items}
		}
		for _, it := range list {
			url := imageURL(it)
			if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
				images = append(images, url)
			}
		}
	}
	return images
}

func imageURL(item any) string {
	if m, ok := item.(map[string]any); ok {
		for _, k := range []string{"url", "-url", "src"} {
			if s := extractText(m[k]); s != "" {
				return s
			}
		}
	}
	return extractText(item)
}

/********** type & status normalization **********/

var propertyTypeKeywords = []struct {
	label    string
	keywords []string
}{
	{"Villa", []string{"villa", "chalet", "detached"}},
	{"Townhouse", []string{"townhouse", "town house", "adosado", "semi-detached"}},
	{"Penthouse", []string{"penthouse", "atico", "ático"}},
	{"Bungalow", []string{"bungalow"}},
	{"Duplex", []string{"duplex"}},
	{"Land", []string{"land", "plot", "terreno", "solar"}},
	{"Apartment", []string{"apartment", "apartamento", "flat", "piso"}},
}

// normalizePropertyType maps raw feed type text onto a small canonical
// set; unrecognized non-empty text is kept as-is, empty falls back to
// Apartment.
func normalizePropertyType(raw string) string {
	if raw == "" {
		return "Apartment"
	}
	lower := strings.ToLower(raw)
	for _, t := range propertyTypeKeywords {
		for _, k := range t.keywords {
			if strings.Contains(lower, k) {
				return t.label
			}
		}
	}
	return raw
}

// normalizeStatus buckets free-text availability into the statuses the
// site understands. Feeds that never send a status get "available".
func normalizeStatus(raw string) string {
	if raw == "" {
		return defaultStatus
	}
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "sold") || strings.Contains(lower, "vendido"):
		return "sold"
	case strings.Contains(lower, "key") || strings.Contains(lower, "ready") || strings.Contains(lower, "llave"):
		return "key-ready"
	case strings.Contains(lower, "off-plan") || strings.Contains(lower, "plano"):
		return "off-plan"
	case strings.Contains(lower, "3 month"):
		return "completion-3-months"
	default:
		return "under-construction"
	}
}

/********** property mapper **********/

// normalizeProperty maps one raw feed record into the canonical shape.
// It never fails: a record missing everything still comes out with the
// default labels and nil numerics.
func normalizeProperty(feed string, rec map[string]any) domain.Property {
	id := firstText(rec, "id")
	title := textOr(firstText(rec, "title"), defaultTitle)
	development := textOr(firstText(rec, "development"), defaultDevelopment)
	developerDefault := feedDeveloperDefaults[feed]
	if developerDefault == "" {
		developerDefault = defaultDeveloper
	}
	developer := textOr(firstText(rec, "developer"), developerDefault)
	town := textOr(firstText(rec, "town"), defaultTown)

	return domain.Property{
		ID:              id,
		Title:           title,
		Slug:            CreateSlug(id + "-" + title),
		Price:           firstNumber(rec, "price"),
		Bedrooms:        firstInt(rec, "bedrooms"),
		Bathrooms:       firstInt(rec, "bathrooms"),
		Size:            firstNumber(rec, "size"),
		Description:     firstText(rec, "description"),
		Images:          extractImages(rec),
		Town:            town,
		Province:        textOr(firstText(rec, "province"), defaultProvince),
		Developer:       developer,
		DeveloperSlug:   CreateSlug(developer),
		DevelopmentName: development,
		DevelopmentSlug: CreateSlug(development),
		PropertyType:    normalizePropertyType(firstText(rec, "type")),
		Status:          normalizeStatus(firstText(rec, "status")),
		Source:          feed,
	}
}

// normalizeAll runs the mapper over a decoded payload.
func normalizeAll(feed string, recs []map[string]any) []domain.Property {
	out := make([]domain.Property, 0, len(recs))
	for _, rec := range recs {
		out = append(out, normalizeProperty(feed, rec))
	}
	return out
}
