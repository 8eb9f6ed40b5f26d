package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/UnknownOlympus/regeo/internal/config"
	"github.com/UnknownOlympus/regeo/internal/geolocation"
	"github.com/UnknownOlympus/regeo/internal/metrics"
	"github.com/UnknownOlympus/regeo/internal/progress"
	"github.com/UnknownOlympus/regeo/internal/repository"
	"github.com/UnknownOlympus/regeo/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// expectedDates is the number of values a date-range argument must carry.
const expectedDates = 2

// CLI flags.
var (
	cfgFile     string
	datesArg    string
	percentStep string
	resolverArg string
	pageSize    int
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "regeo",
	Short: "Re-attribute historical visit geolocation data",
	Long: `regeo scans the visits log over a date range, resolves each visit's raw
address to a structured location and rewrites only the location fields that
no longer match, together with the conversions sharing the visit identifier.

The scan pages through the log by ascending identifier, so memory stays
bounded regardless of range size. Re-running over the same range is safe:
unchanged fields are never rewritten.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "",
		"Path to configuration file")
	rootCmd.Flags().StringVar(&datesArg, "dates", "",
		"Date range to re-attribute, as two comma-separated dates: YYYY-MM-DD,YYYY-MM-DD")
	rootCmd.Flags().StringVar(&percentStep, "percent-step", "5",
		"Report progress at each multiple of this percentage")
	rootCmd.Flags().StringVar(&resolverArg, "resolver", "",
		"Location resolver to use (ipapi, google); invalid selections fall back to the default")
	rootCmd.Flags().IntVar(&pageSize, "page-size", service.DefaultPageSize,
		"Number of visits fetched per page")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Log every skipped record and write decision")

	_ = rootCmd.MarkFlagRequired("dates")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	// Cancel the scan on an interrupt signal; records already written stay
	// written and a re-run picks the range up from the start.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A malformed date range is fatal before any processing begins.
	from, to, err := parseDateRange(datesArg)
	if err != nil {
		return err
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Env, verbose)

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// Initialize the database connection.
	dtb, err := repository.NewDatabase(
		ctx, cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to connect to DB: %w", err)
	}
	defer dtb.Close()

	repo := repository.NewRepository(dtb, logger)

	// Create the location resolver using the factory. An unset or invalid
	// selection falls back to the system default.
	resolver, resolverName := geolocation.NewResolverOrDefault(geolocation.ResolverConfig{
		Type:      geolocation.ResolverType(resolverArg),
		APIKey:    cfg.ResolverKey,
		RateLimit: cfg.RateLimit,
		Logger:    logger,
	})

	logger.InfoContext(ctx, "Location resolver initialized", "type", string(resolverName))

	// Long scans benefit from liveness and throughput visibility, so the
	// monitoring server runs for the duration of the scan.
	if cfg.MetricsPort > 0 {
		go startMonitoringServer(ctx, logger, reg, dtb, cfg.MetricsPort)
	}

	scan := service.NewAttribution(logger, repo, resolver, string(resolverName), appMetrics, service.Options{
		From:        from,
		To:          to,
		PageSize:    pageSize,
		PercentStep: progress.ParseStep(percentStep),
	})

	if err = scan.Run(ctx); err != nil {
		return fmt.Errorf("re-attribution scan failed: %w", err)
	}

	return nil
}

// parseDateRange interprets a comma-separated pair of dates as the half-open
// range [from, to). Exactly two parseable dates are required.
func parseDateRange(raw string) (time.Time, time.Time, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != expectedDates {
		return time.Time{}, time.Time{}, fmt.Errorf(
			"expected exactly two comma-separated dates, got %d", len(parts))
	}

	from, err := time.Parse(time.DateOnly, strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: %w", parts[0], err)
	}

	to, err := time.Parse(time.DateOnly, strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q: %w", parts[1], err)
	}

	return from, to, nil
}

// startMonitoringServer starts an HTTP server that provides health check and
// metrics endpoints while the scan is running.
func startMonitoringServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	dtb *pgxpool.Pool,
	port int,
) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(writer http.ResponseWriter, _ *http.Request) {
		log.DebugContext(ctx, "Performing health checks...")
		status, body := http.StatusOK, "OK"
		if err := dtb.Ping(ctx); err != nil {
			status, body = http.StatusServiceUnavailable, "DB ping failed"
		}
		writer.WriteHeader(status)
		if _, err := writer.Write([]byte(body)); err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	log.InfoContext(ctx, "Starting monitoring server", "port", port)
	readTimeout := 5
	writeTimeout := 10
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		log.ErrorContext(ctx, "Monitoring server failed", "error", err)
	}
}

// setupLogger initializes and returns a logger based on the environment
// provided. Verbose mode forces debug-level output so per-record skip and
// write decisions become visible.
func setupLogger(env string, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: level,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: level,
			}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: level,
			}),
		)

		log.Warn(
			"The env parameter was not specified or was invalid.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
