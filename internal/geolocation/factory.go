package geolocation

import (
	"errors"
	"fmt"
	"log/slog"

	"googlemaps.github.io/maps"
)

// ResolverType represents the type of location resolver.
type ResolverType string

const (
	// ResolverTypeIPAPI represents the ip-api.com resolver (system default).
	ResolverTypeIPAPI ResolverType = "ipapi"
	// ResolverTypeGoogle represents the Google Maps Geocoding resolver.
	ResolverTypeGoogle ResolverType = "google"
)

// DefaultResolverType is used when the selection is unset or invalid.
const DefaultResolverType = ResolverTypeIPAPI

// ResolverConfig holds configuration for creating a location resolver.
type ResolverConfig struct {
	Type      ResolverType // Type of resolver to create
	APIKey    string       // API key (used by the Google resolver)
	RateLimit int          // Requests per minute (used by the ip-api resolver)
	Logger    *slog.Logger // Logger for the resolver
}

// NewResolver creates a location resolver based on the provided configuration.
//
// Supported resolver types:
// - "ipapi": ip-api.com JSON API (free, no API key required)
// - "google": Google Maps Geocoding API (requires API key)
//
// Returns an error if the resolver type is unsupported or if creation fails.
func NewResolver(config ResolverConfig) (Resolver, error) {
	switch config.Type {
	case ResolverTypeIPAPI:
		return NewIPAPIResolver(config.RateLimit, config.Logger), nil
	case ResolverTypeGoogle:
		return newGoogleResolver(config)
	default:
		return nil, fmt.Errorf("unsupported resolver type: %s", config.Type)
	}
}

// NewResolverOrDefault creates the requested resolver, falling back to the
// system default when the selection is unset or cannot be constructed. The
// returned type names the resolver actually in use.
func NewResolverOrDefault(config ResolverConfig) (Resolver, ResolverType) {
	if config.Type == "" {
		config.Type = DefaultResolverType
	}

	resolver, err := NewResolver(config)
	if err != nil {
		config.Logger.Warn("Falling back to default resolver",
			"requested", string(config.Type), "default", string(DefaultResolverType), "error", err)
		return NewIPAPIResolver(config.RateLimit, config.Logger), DefaultResolverType
	}

	return resolver, config.Type
}

// newGoogleResolver creates a Google Maps location resolver.
func newGoogleResolver(config ResolverConfig) (Resolver, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google resolver")
	}

	client, err := maps.NewClient(maps.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleResolver(client, config.Logger), nil
}
