package geolocation_test

import (
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/regeo/internal/geolocation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResolver(t *testing.T) {
	logger := slog.Default()

	t.Run("create ip-api resolver successfully", func(t *testing.T) {
		config := geolocation.ResolverConfig{
			Type:      geolocation.ResolverTypeIPAPI,
			RateLimit: 45,
			Logger:    logger,
		}

		resolver, err := geolocation.NewResolver(config)

		require.NoError(t, err)
		require.NotNil(t, resolver)
		_, ok := resolver.(*geolocation.IPAPIResolver)
		assert.True(t, ok, "expected resolver to be *IPAPIResolver")
	})

	t.Run("ip-api resolver needs no API key", func(t *testing.T) {
		config := geolocation.ResolverConfig{
			Type:   geolocation.ResolverTypeIPAPI,
			APIKey: "",
			Logger: logger,
		}

		resolver, err := geolocation.NewResolver(config)

		require.NoError(t, err)
		require.NotNil(t, resolver)
	})

	t.Run("create Google resolver successfully", func(t *testing.T) {
		config := geolocation.ResolverConfig{
			Type:   geolocation.ResolverTypeGoogle,
			APIKey: "test-api-key",
			Logger: logger,
		}

		resolver, err := geolocation.NewResolver(config)

		require.NoError(t, err)
		require.NotNil(t, resolver)
		_, ok := resolver.(*geolocation.GoogleResolver)
		assert.True(t, ok, "expected resolver to be *GoogleResolver")
	})

	t.Run("create Google resolver without API key fails", func(t *testing.T) {
		config := geolocation.ResolverConfig{
			Type:   geolocation.ResolverTypeGoogle,
			APIKey: "",
			Logger: logger,
		}

		resolver, err := geolocation.NewResolver(config)

		require.Error(t, err)
		require.Nil(t, resolver)
		assert.Contains(t, err.Error(), "API key is required for Google resolver")
	})

	t.Run("unsupported resolver type", func(t *testing.T) {
		config := geolocation.ResolverConfig{
			Type:   geolocation.ResolverType("unsupported"),
			Logger: logger,
		}

		resolver, err := geolocation.NewResolver(config)

		require.Error(t, err)
		require.Nil(t, resolver)
		assert.Contains(t, err.Error(), "unsupported resolver type: unsupported")
	})
}

func TestNewResolverOrDefault(t *testing.T) {
	logger := slog.Default()

	t.Run("empty selection falls back to the default", func(t *testing.T) {
		config := geolocation.ResolverConfig{Logger: logger}

		resolver, used := geolocation.NewResolverOrDefault(config)

		require.NotNil(t, resolver)
		assert.Equal(t, geolocation.DefaultResolverType, used)
		_, ok := resolver.(*geolocation.IPAPIResolver)
		assert.True(t, ok, "expected resolver to be *IPAPIResolver")
	})

	t.Run("unknown selection falls back to the default", func(t *testing.T) {
		config := geolocation.ResolverConfig{
			Type:   geolocation.ResolverType("bogus"),
			Logger: logger,
		}

		resolver, used := geolocation.NewResolverOrDefault(config)

		require.NotNil(t, resolver)
		assert.Equal(t, geolocation.DefaultResolverType, used)
	})

	t.Run("google without key falls back to the default", func(t *testing.T) {
		config := geolocation.ResolverConfig{
			Type:   geolocation.ResolverTypeGoogle,
			Logger: logger,
		}

		resolver, used := geolocation.NewResolverOrDefault(config)

		require.NotNil(t, resolver)
		assert.Equal(t, geolocation.DefaultResolverType, used)
	})

	t.Run("valid selection is used as-is", func(t *testing.T) {
		config := geolocation.ResolverConfig{
			Type:   geolocation.ResolverTypeGoogle,
			APIKey: "test-api-key",
			Logger: logger,
		}

		resolver, used := geolocation.NewResolverOrDefault(config)

		require.NotNil(t, resolver)
		assert.Equal(t, geolocation.ResolverTypeGoogle, used)
		_, ok := resolver.(*geolocation.GoogleResolver)
		assert.True(t, ok, "expected resolver to be *GoogleResolver")
	})
}
