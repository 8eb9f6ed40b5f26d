package models

// Location column names shared by the visits and conversions tables.
const (
	ColumnCountry   = "country_code"
	ColumnRegion    = "region_code"
	ColumnCity      = "city"
	ColumnLatitude  = "latitude"
	ColumnLongitude = "longitude"
)

// LocationColumns lists the tracked columns in a fixed order so that
// generated UPDATE statements are deterministic.
var LocationColumns = []string{
	ColumnCountry,
	ColumnRegion,
	ColumnCity,
	ColumnLatitude,
	ColumnLongitude,
}

// Visit represents one logged session with its raw network address and the
// location fields derived from it. Only the five location fields are ever
// rewritten; the identifier and raw address are immutable.
type Visit struct {
	ID        int64   // ID is the store-assigned, monotonically increasing identifier.
	IP        []byte  // IP is the packed network address the visit was logged with.
	Country   string  // Country is the stored two-letter country code, empty if unset.
	Region    string  // Region is the stored region code, empty if unset.
	City      string  // City is the stored city name, empty if unset.
	Latitude  float64 // Latitude of the stored location, zero if unset.
	Longitude float64 // Longitude of the stored location, zero if unset.
}

// FieldUpdates maps a location column name to its new value. An empty set
// means no write is required. It is built fresh per visit and never shared.
type FieldUpdates map[string]any
