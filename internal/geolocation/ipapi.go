package geolocation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/UnknownOlympus/regeo/internal/models"
	"golang.org/x/time/rate"
)

// IPAPIBaseURL -- ip-api.com JSON endpoint base URL.
const IPAPIBaseURL = "http://ip-api.com/json"

// ipAPIFields limits the response to the fields the diff routine tracks.
const ipAPIFields = "status,message,countryCode,region,city,lat,lon"

// minutesPerWindow converts the per-minute quota into a limiter rate.
const minutesPerWindow = 60.0

// IPAPIResolver resolves addresses through the ip-api.com JSON API.
// The free tier allows 45 requests per minute, enforced client-side with a
// rate limiter so long scans do not get the source address banned.
type IPAPIResolver struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL for the ip-api endpoint
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ipAPIResponse represents the JSON response from ip-api.com.
type ipAPIResponse struct {
	Status      string  `json:"status"`      // "success" or "fail"
	Message     string  `json:"message"`     // Failure reason, e.g. "private range"
	CountryCode string  `json:"countryCode"` // Two-letter country code
	Region      string  `json:"region"`      // Region/state code
	City        string  `json:"city"`        // City name
	Lat         float64 `json:"lat"`         // Latitude
	Lon         float64 `json:"lon"`         // Longitude
}

// NewIPAPIResolver creates a new ip-api.com resolver. rateLimit is the number
// of requests allowed per minute; zero selects the free-tier quota.
func NewIPAPIResolver(rateLimit int, log *slog.Logger) *IPAPIResolver {
	const timeout = 10
	const freeTierLimit = 45

	if rateLimit <= 0 {
		rateLimit = freeTierLimit
	}

	return &IPAPIResolver{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL: IPAPIBaseURL,
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(float64(rateLimit)/minutesPerWindow), 1),
	}
}

// NewIPAPIResolverWithClient allows injecting a custom HTTP client and
// limiter. Useful for testing with mocked HTTP clients.
func NewIPAPIResolverWithClient(client HTTPClient, limiter *rate.Limiter, log *slog.Logger) *IPAPIResolver {
	return &IPAPIResolver{
		client:  client,
		baseURL: IPAPIBaseURL,
		log:     log,
		limiter: limiter,
	}
}

// Resolve looks up the address through ip-api.com. A lookup the service
// cannot answer (unknown, reserved or malformed address) yields an empty
// location with a nil error; only transport and protocol failures return an
// error.
func (ir *IPAPIResolver) Resolve(ctx context.Context, address string) (models.Location, error) {
	ir.log.DebugContext(ctx, "Resolving using ip-api", "address", address)

	if err := ir.limiter.Wait(ctx); err != nil {
		return models.Location{}, fmt.Errorf("rate limiter interrupted: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s?fields=%s", ir.baseURL, url.PathEscape(address), ipAPIFields)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return models.Location{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := ir.client.Do(req)
	if err != nil {
		return models.Location{}, fmt.Errorf("failed to execute lookup request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return models.Location{}, fmt.Errorf("ip-api returned status %d: %s", resp.StatusCode, string(body))
	}

	var result ipAPIResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return models.Location{}, fmt.Errorf("failed to decode ip-api response: %w", err)
	}

	if result.Status != "success" {
		// Unknown or reserved addresses are a normal outcome, not a failure.
		ir.log.DebugContext(ctx, "ip-api has no data for address", "address", address, "reason", result.Message)
		return models.Location{}, nil
	}

	location := models.Location{
		Latitude:  &result.Lat,
		Longitude: &result.Lon,
	}
	if result.CountryCode != "" {
		location.CountryCode = &result.CountryCode
	}
	if result.Region != "" {
		location.RegionCode = &result.Region
	}
	if result.City != "" {
		location.City = &result.City
	}

	return location, nil
}
