package service

import (
	"strings"

	"github.com/UnknownOlympus/regeo/internal/models"
)

// compareMode selects how a resolved value is compared against storage.
type compareMode int

const (
	// compareExact stages the resolved value when it differs from the
	// stored value under plain equality.
	compareExact compareMode = iota
	// compareLowerNormalize lowercases the resolved value first, then
	// compares exactly. A stored value differing only in case therefore
	// still produces a lowercase-normalized write, and a re-run over the
	// normalized value produces none.
	compareLowerNormalize
)

// diffRule associates one stored column with its resolved counterpart and
// the comparison mode. Keeping the association in one ordered table avoids a
// special-cased branch per field in the diff routine.
type diffRule struct {
	column   string
	mode     compareMode
	resolved func(models.Location) (any, bool)
	stored   func(models.Visit) any
}

var diffRules = []diffRule{
	{
		column:   models.ColumnCountry,
		mode:     compareLowerNormalize,
		resolved: func(l models.Location) (any, bool) { return deref(l.CountryCode) },
		stored:   func(v models.Visit) any { return v.Country },
	},
	{
		column:   models.ColumnRegion,
		mode:     compareExact,
		resolved: func(l models.Location) (any, bool) { return deref(l.RegionCode) },
		stored:   func(v models.Visit) any { return v.Region },
	},
	{
		column:   models.ColumnCity,
		mode:     compareExact,
		resolved: func(l models.Location) (any, bool) { return deref(l.City) },
		stored:   func(v models.Visit) any { return v.City },
	},
	{
		column:   models.ColumnLatitude,
		mode:     compareExact,
		resolved: func(l models.Location) (any, bool) { return deref(l.Latitude) },
		stored:   func(v models.Visit) any { return v.Latitude },
	},
	{
		column:   models.ColumnLongitude,
		mode:     compareExact,
		resolved: func(l models.Location) (any, bool) { return deref(l.Longitude) },
		stored:   func(v models.Visit) any { return v.Longitude },
	},
}

func deref[T any](p *T) (any, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

// diffLocation stages the fields whose resolved value differs from storage.
// Fields absent from the resolved location are left alone. An empty result
// means no write is required.
func diffLocation(visit models.Visit, location models.Location) models.FieldUpdates {
	updates := models.FieldUpdates{}

	for _, rule := range diffRules {
		value, ok := rule.resolved(location)
		if !ok {
			continue
		}
		if rule.mode == compareLowerNormalize {
			value = strings.ToLower(value.(string))
		}
		if value == rule.stored(visit) {
			continue
		}
		updates[rule.column] = value
	}

	return updates
}
