package geolocation_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/UnknownOlympus/regeo/internal/geolocation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func unlimited() *rate.Limiter {
	return rate.NewLimiter(rate.Inf, 0)
}

func TestIPAPIResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("successful resolution", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				// Verify request parameters
				assert.Equal(t, "GET", req.Method)
				assert.Contains(t, req.URL.String(), "ip-api.com/json/8.8.8.8")
				assert.Equal(t, "status,message,countryCode,region,city,lat,lon", req.URL.Query().Get("fields"))

				responseBody := `{"status":"success","countryCode":"US","region":"CA",` +
					`"city":"Mountain View","lat":37.386,"lon":-122.0838}`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		resolver := geolocation.NewIPAPIResolverWithClient(mockClient, unlimited(), logger)
		location, err := resolver.Resolve(ctx, "8.8.8.8")

		require.NoError(t, err)
		require.NotNil(t, location.CountryCode)
		assert.Equal(t, "US", *location.CountryCode)
		require.NotNil(t, location.RegionCode)
		assert.Equal(t, "CA", *location.RegionCode)
		require.NotNil(t, location.City)
		assert.Equal(t, "Mountain View", *location.City)
		require.NotNil(t, location.Latitude)
		assert.InEpsilon(t, 37.386, *location.Latitude, 0.0001)
		require.NotNil(t, location.Longitude)
		assert.InEpsilon(t, -122.0838, *location.Longitude, 0.0001)
	})

	t.Run("failed lookup is an empty location, not an error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				responseBody := `{"status":"fail","message":"private range"}`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		resolver := geolocation.NewIPAPIResolverWithClient(mockClient, unlimited(), logger)
		location, err := resolver.Resolve(ctx, "127.0.0.1")

		require.NoError(t, err)
		assert.True(t, location.Empty())
	})

	t.Run("partial response leaves missing fields absent", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				responseBody := `{"status":"success","countryCode":"UA","region":"","city":"","lat":50.45,"lon":30.52}`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		resolver := geolocation.NewIPAPIResolverWithClient(mockClient, unlimited(), logger)
		location, err := resolver.Resolve(ctx, "93.175.200.1")

		require.NoError(t, err)
		require.NotNil(t, location.CountryCode)
		assert.Equal(t, "UA", *location.CountryCode)
		assert.Nil(t, location.RegionCode)
		assert.Nil(t, location.City)
		require.NotNil(t, location.Latitude)
		assert.InEpsilon(t, 50.45, *location.Latitude, 0.0001)
	})

	t.Run("HTTP error status", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				responseBody := `too many requests`
				return &http.Response{
					StatusCode: http.StatusTooManyRequests,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		resolver := geolocation.NewIPAPIResolverWithClient(mockClient, unlimited(), logger)
		_, err := resolver.Resolve(ctx, "8.8.8.8")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "ip-api returned status 429")
	})

	t.Run("transport error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}

		resolver := geolocation.NewIPAPIResolverWithClient(mockClient, unlimited(), logger)
		_, err := resolver.Resolve(ctx, "8.8.8.8")

		require.Error(t, err)
		require.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "failed to execute lookup request")
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`invalid json`)),
				}, nil
			},
		}

		resolver := geolocation.NewIPAPIResolverWithClient(mockClient, unlimited(), logger)
		_, err := resolver.Resolve(ctx, "8.8.8.8")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode ip-api response")
	})

	t.Run("cancelled context interrupts the limiter", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				t.Fatal("request must not be executed after cancellation")
				return nil, nil
			},
		}

		cancelledCtx, cancel := context.WithCancel(context.Background())
		cancel()

		resolver := geolocation.NewIPAPIResolverWithClient(mockClient, rate.NewLimiter(1, 1), logger)
		_, err := resolver.Resolve(cancelledCtx, "8.8.8.8")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate limiter interrupted")
	})
}
