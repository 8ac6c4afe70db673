package mysql

// One row per normalized property, keyed by (source, id). Nullable
// numeric columns carry "field absent in feed" through to readers.
const insertPropertiesPrefix = "INSERT INTO properties\n" +
	"  (source, id, slug, title, price, bedrooms, bathrooms, size, description, images,\n" +
	"   town, province, developer, developer_slug, development_name, development_slug,\n" +
	"   property_type, status)\nVALUES "

const insertPropertiesOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  slug             = VALUES(slug),\n" +
	"  title            = VALUES(title),\n" +
	"  price            = VALUES(price),\n" +
	"  bedrooms         = VALUES(bedrooms),\n" +
	"  bathrooms        = VALUES(bathrooms),\n" +
	"  size             = VALUES(size),\n" +
	"  description      = VALUES(description),\n" +
	"  images           = VALUES(images),\n" +
	"  town             = VALUES(town),\n" +
	"  province         = VALUES(province),\n" +
	"  developer        = VALUES(developer),\n" +
	"  developer_slug   = VALUES(developer_slug),\n" +
	"  development_name = VALUES(development_name),\n" +
	"  development_slug = VALUES(development_slug),\n" +
	"  property_type    = VALUES(property_type),\n" +
	"  status           = VALUES(status),\n" +
	"  updated_at       = CURRENT_TIMESTAMP\n"

const insertFeedMissSQL = `
INSERT INTO feed_misses (feed, http_status, reason)
VALUES (?, ?, ?)
`

const listPropertiesSQL = `
SELECT
  source, id, slug, title, price, bedrooms, bathrooms, size, description, images,
  town, province, developer, developer_slug, development_name, development_slug,
  property_type, status
FROM properties
ORDER BY source, id
`
