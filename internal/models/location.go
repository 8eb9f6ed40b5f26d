package models

// Location is the result of resolving one raw address. Nil fields mean the
// resolver could not determine that part of the location; an all-nil value
// is a valid result, not an error. Locations are created per visit, consumed
// immediately and never persisted as-is.
type Location struct {
	CountryCode *string  // Two-letter country code, e.g. "US".
	RegionCode  *string  // Region/state code, e.g. "CA".
	City        *string  // City name.
	Latitude    *float64 // Latitude of the resolved point.
	Longitude   *float64 // Longitude of the resolved point.
}

// Empty reports whether resolution produced no data at all.
func (l Location) Empty() bool {
	return l.CountryCode == nil && l.RegionCode == nil && l.City == nil &&
		l.Latitude == nil && l.Longitude == nil
}
