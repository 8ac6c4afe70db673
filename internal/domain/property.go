package domain

// FeedSource is one upstream provider of property listings. Built once at
// process start from the registry and immutable afterwards.
type FeedSource struct {
	Name     string `yaml:"name"`
	Endpoint string `yaml:"endpoint"`
	Format   string `yaml:"format"` // xml|json
	Enabled  bool   `yaml:"enabled"`
}

// Property is the canonical record every feed is normalized into.
// Numeric fields are nil, not zero, when the upstream value is absent or
// unparsable.
type Property struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Slug            string   `json:"slug"`
	Price           *float64 `json:"price"`
	Bedrooms        *int     `json:"bedrooms"`
	Bathrooms       *int     `json:"bathrooms"`
	Size            *float64 `json:"size"`
	Description     string   `json:"description"`
	Images          []string `json:"images"`
	Town            string   `json:"town"`
	Province        string   `json:"province"`
	Developer       string   `json:"developer"`
	DeveloperSlug   string   `json:"developerSlug"`
	DevelopmentName string   `json:"developmentName"`
	DevelopmentSlug string   `json:"developmentSlug"`
	PropertyType    string   `json:"propertyType"`
	Status          string   `json:"status"`
	Source          string   `json:"source"`
}

// Development is derived from the current property list on every
// aggregation pass; it has no identity beyond the stability of its slug.
type Development struct {
	Slug          string     `json:"slug"`
	Name          string     `json:"name"`
	Developer     string     `json:"developer"`
	DeveloperSlug string     `json:"developerSlug"`
	Town          string     `json:"town"`
	Province      string     `json:"province"`
	PropertyCount int        `json:"propertyCount"`
	PriceFrom     *float64   `json:"priceFrom"`
	PriceTo       *float64   `json:"priceTo"`
	BedroomsRange string     `json:"bedroomsRange"`
	Images        []string   `json:"images"`
	Properties    []Property `json:"properties"`
}

// CatalogStats is a summary over the grouped catalog.
type CatalogStats struct {
	TotalProperties   int      `json:"totalProperties"`
	TotalDevelopments int      `json:"totalDevelopments"`
	TotalDevelopers   int      `json:"totalDevelopers"`
	TotalAreas        int      `json:"totalAreas"`
	LowestPrice       *float64 `json:"lowestPrice"`
	PriceRange        string   `json:"priceRange"`
}
