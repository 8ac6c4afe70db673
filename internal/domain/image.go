package domain

// ImageCategory is the semantic class assigned to one image URL by the
// keyword heuristic. False negatives are expected; they land in
// CategoryUnknown rather than erroring.
type ImageCategory string

const (
	CategoryAerial           ImageCategory = "aerial"
	CategoryExterior         ImageCategory = "exterior"
	CategoryPool             ImageCategory = "pool"
	CategoryGarden           ImageCategory = "garden"
	CategoryInteriorLiving   ImageCategory = "interior-living"
	CategoryInteriorKitchen  ImageCategory = "interior-kitchen"
	CategoryInteriorBedroom  ImageCategory = "interior-bedroom"
	CategoryInteriorBathroom ImageCategory = "interior-bathroom"
	CategoryTerrace          ImageCategory = "terrace"
	CategoryView             ImageCategory = "view"
	CategoryUnknown          ImageCategory = "unknown"
)

// CategorizedImage is computed per request from a cached property's image
// list and never cached on its own.
type CategorizedImage struct {
	URL         string        `json:"url"`
	Category    ImageCategory `json:"category"`
	AltTag      string        `json:"altTag"`
	IsPrimary   bool          `json:"isPrimary,omitempty"`
	IsSecondary bool          `json:"isSecondary,omitempty"`
}

// CardImage is one display image with its accessibility text.
type CardImage struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// CardImages is the selection page renderers use for development cards:
// one main shot plus up to two secondary shots.
type CardImages struct {
	Main      CardImage   `json:"main"`
	Secondary []CardImage `json:"secondary"`
}
