package service

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/UnknownOlympus/regeo/internal/geolocation"
	"github.com/UnknownOlympus/regeo/internal/metrics"
	"github.com/UnknownOlympus/regeo/internal/models"
	"github.com/UnknownOlympus/regeo/internal/progress"
	"github.com/UnknownOlympus/regeo/internal/repository"
)

// DefaultPageSize is the fetch limit used when none is configured.
const DefaultPageSize = 1000

// Options carry the scan parameters for one invocation.
type Options struct {
	From        time.Time // Start of the date range (inclusive)
	To          time.Time // End of the date range (exclusive)
	PageSize    int       // Records per page; values < 1 select the default
	PercentStep int       // Percent step for progress reporting
}

// Attribution scans the visits log in identifier order and rewrites the
// location fields that no longer match what the resolver derives from each
// visit's raw address. One instance performs one scan; all collaborators are
// injected, so the pipeline itself never touches a database driver or an
// HTTP client.
type Attribution struct {
	log          *slog.Logger         // Logger for scan activity
	repo         repository.Interface // Store access for counting, paging and updating
	resolver     geolocation.Resolver // Address-to-location capability
	resolverName string               // Resolver name for logging and metrics labeling
	metrics      *metrics.Metrics     // Scan instrumentation
	opts         Options              // Scan parameters
	progress     *progress.Reporter   // Per-scan counters, created after the count
}

// NewAttribution creates an Attribution scan with explicit collaborators.
func NewAttribution(
	log *slog.Logger,
	repo repository.Interface,
	resolver geolocation.Resolver,
	resolverName string,
	metrics *metrics.Metrics,
	opts Options,
) *Attribution {
	if opts.PageSize < 1 {
		opts.PageSize = DefaultPageSize
	}

	return &Attribution{
		log:          log,
		repo:         repo,
		resolver:     resolver,
		resolverName: resolverName,
		metrics:      metrics,
		opts:         opts,
	}
}

// Run executes the scan to completion. The scan is single-threaded and
// strictly sequential: one page is fetched and fully drained, including all
// writes for that page, before the next page is requested. A write failure
// aborts the remaining scan; a re-run re-applies idempotent diffs, so
// interrupted scans cost redundant resolution work, not redundant writes.
func (a *Attribution) Run(ctx context.Context) error {
	total, err := a.repo.CountVisits(ctx, a.opts.From, a.opts.To)
	if err != nil {
		return fmt.Errorf("failed to count candidate visits: %w", err)
	}

	a.log.InfoContext(ctx, "Starting re-attribution scan",
		"from", a.opts.From.Format(time.DateOnly),
		"to", a.opts.To.Format(time.DateOnly),
		"total", total,
		"resolver", a.resolverName,
		"page_size", a.opts.PageSize,
	)

	a.progress = progress.NewReporter(a.log, total, a.opts.PercentStep)

	var cursor int64
	for {
		page, err := a.repo.FetchVisits(ctx, a.opts.From, a.opts.To, cursor, a.opts.PageSize)
		if err != nil {
			return fmt.Errorf("failed to fetch page after id %d: %w", cursor, err)
		}
		a.metrics.PagesFetched.Inc()

		for _, visit := range page {
			if err = a.processVisit(ctx, visit); err != nil {
				return err
			}
			a.progress.RecordProcessed()
		}

		if len(page) > 0 {
			cursor = page[len(page)-1].ID
		}

		// The scan ends on a short page, not merely an empty one: a page
		// exactly equal to the page size always triggers one more fetch,
		// even if that fetch turns out empty.
		if len(page) < a.opts.PageSize {
			break
		}
	}

	a.log.InfoContext(ctx, "Re-attribution scan finished",
		"processed", a.progress.Processed(),
		"elapsed", a.progress.Elapsed().Round(time.Millisecond).String(),
	)

	return nil
}

// processVisit validates, resolves and diffs one visit, writing only when a
// tracked field actually changed. Writes go to the visit first, then to its
// conversions; no transaction spans the two calls.
func (a *Attribution) processVisit(ctx context.Context, visit models.Visit) error {
	if visit.ID == 0 || len(visit.IP) == 0 {
		a.log.DebugContext(ctx, "Skipping visit without identifier or raw address", "visit", visit.ID)
		a.metrics.VisitsProcessed.WithLabelValues(metrics.OutcomeSkipped).Inc()
		return nil
	}

	address := net.IP(visit.IP).String()

	startTime := time.Now()
	location, err := a.resolver.Resolve(ctx, address)
	a.metrics.ResolveSeconds.WithLabelValues(a.resolverName).Observe(time.Since(startTime).Seconds())
	if err != nil {
		// Resolution failures are never fatal; an unresolved address simply
		// has nothing to contribute to the diff.
		a.log.DebugContext(ctx, "Resolution failed", "visit", visit.ID, "error", err)
		a.metrics.ResolveFailures.Inc()
		location = models.Location{}
	}

	updates := diffLocation(visit, location)
	if len(updates) == 0 {
		a.log.DebugContext(ctx, "Nothing to update", "visit", visit.ID)
		a.metrics.VisitsProcessed.WithLabelValues(metrics.OutcomeUnchanged).Inc()
		return nil
	}

	if err = a.repo.UpdateVisit(ctx, visit.ID, updates); err != nil {
		return fmt.Errorf("failed to update visit %d: %w", visit.ID, err)
	}
	if err = a.repo.UpdateConversions(ctx, visit.ID, updates); err != nil {
		return fmt.Errorf("failed to update conversions for visit %d: %w", visit.ID, err)
	}

	a.log.DebugContext(ctx, "Visit re-attributed", "visit", visit.ID, "fields", len(updates))
	a.metrics.VisitsProcessed.WithLabelValues(metrics.OutcomeUpdated).Inc()

	return nil
}
