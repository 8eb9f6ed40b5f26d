package geolocation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/regeo/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleResolver resolves addresses through the Google Maps Geocoding API.
type GoogleResolver struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// NewGoogleResolver wraps an existing Google Maps client as a Resolver.
func NewGoogleResolver(client GoogleAPIClient, log *slog.Logger) *GoogleResolver {
	return &GoogleResolver{client: client, log: log}
}

// Resolve geocodes the address and extracts the five tracked location fields
// from the top result: country and region from the address components'
// short names, city from the locality component, coordinates from the result
// geometry. An empty result set is a valid "no data" outcome.
func (gr *GoogleResolver) Resolve(ctx context.Context, address string) (models.Location, error) {
	gr.log.DebugContext(ctx, "Resolving using Google Maps", "address", address)

	req := maps.GeocodingRequest{Address: address}
	results, err := gr.client.Geocode(ctx, &req)
	if err != nil {
		return models.Location{}, fmt.Errorf("failed to geocode address: %w", err)
	}

	if len(results) == 0 {
		gr.log.DebugContext(ctx, "Google Maps has no data for address", "address", address)
		return models.Location{}, nil
	}

	top := results[0]
	coords := top.Geometry.Location
	location := models.Location{
		Latitude:  &coords.Lat,
		Longitude: &coords.Lng,
	}

	for _, component := range top.AddressComponents {
		for _, kind := range component.Types {
			switch kind {
			case "country":
				code := component.ShortName
				location.CountryCode = &code
			case "administrative_area_level_1":
				code := component.ShortName
				location.RegionCode = &code
			case "locality":
				name := component.LongName
				location.City = &name
			}
		}
	}

	return location, nil
}
