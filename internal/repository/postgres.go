package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/UnknownOlympus/regeo/internal/models"
)

// CountVisits returns the number of visits in the half-open range [from, to).
// The count is advisory: it is taken once to seed the progress percentage and
// is never re-validated against the rows actually scanned, so drift from
// concurrent inserts is tolerated.
func (r *Repository) CountVisits(ctx context.Context, from, to time.Time) (int64, error) {
	var total int64
	query := `SELECT COUNT(*) FROM visits WHERE visited_at >= $1 AND visited_at < $2;`

	if err := r.db.QueryRow(ctx, query, from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count visits in range: %w", err)
	}

	return total, nil
}

// FetchVisits retrieves up to limit visits within [from, to) whose identifier
// is strictly greater than afterID, ordered ascending by identifier. Only the
// tracked columns are selected; NULL location values are read back as empty.
// An empty slice means the range is exhausted past the cursor.
//
// The cursor predicate guarantees each row is visited at most once across the
// whole scan, even when new rows are being appended at the tail of the log.
func (r *Repository) FetchVisits(
	ctx context.Context,
	from, to time.Time,
	afterID int64,
	limit int,
) ([]models.Visit, error) {
	var visits []models.Visit
	query := `
		SELECT
			id,
			ip,
			COALESCE(country_code, ''),
			COALESCE(region_code, ''),
			COALESCE(city, ''),
			COALESCE(latitude, 0),
			COALESCE(longitude, 0)
		FROM visits
		WHERE visited_at >= $1 AND visited_at < $2 AND id > $3
		ORDER BY id ASC
		LIMIT $4;
	`

	rows, err := r.db.Query(ctx, query, from, to, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query visits after id %d: %w", afterID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var visit models.Visit
		if errScan := rows.Scan(
			&visit.ID, &visit.IP,
			&visit.Country, &visit.Region, &visit.City,
			&visit.Latitude, &visit.Longitude,
		); errScan != nil {
			return nil, fmt.Errorf("failed to scan visit row: %w", errScan)
		}
		visits = append(visits, visit)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return visits, nil
}

// UpdateVisit applies the staged field updates to the visit with the given
// identifier. Assignments are pure, so re-applying the same set is a no-op on
// the final state. An empty set performs no write at all.
func (r *Repository) UpdateVisit(ctx context.Context, visitID int64, updates models.FieldUpdates) error {
	if len(updates) == 0 {
		return nil
	}

	query, args := buildUpdate("visits", "id", visitID, updates)

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update visit location: %w", err)
	}

	return nil
}

// UpdateConversions applies the same field updates to every conversion that
// shares the visit identifier. A visit with zero conversions matches zero
// rows, which is not an error.
func (r *Repository) UpdateConversions(ctx context.Context, visitID int64, updates models.FieldUpdates) error {
	if len(updates) == 0 {
		return nil
	}

	query, args := buildUpdate("conversions", "visit_id", visitID, updates)

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update conversion locations: %w", err)
	}

	return nil
}

// buildUpdate renders an UPDATE statement over the staged columns. Columns
// are emitted in models.LocationColumns order so the statement text is
// deterministic for a given update set.
func buildUpdate(table, idColumn string, id int64, updates models.FieldUpdates) (string, []any) {
	assignments := make([]string, 0, len(updates))
	args := make([]any, 0, len(updates)+1)

	for _, column := range models.LocationColumns {
		value, ok := updates[column]
		if !ok {
			continue
		}
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s = $%d;",
		table, strings.Join(assignments, ", "), idColumn, len(args),
	)

	return query, args
}
