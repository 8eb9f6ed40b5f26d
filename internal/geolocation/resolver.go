package geolocation

import (
	"context"

	"github.com/UnknownOlympus/regeo/internal/models"
)

// Resolver maps the external string form of a raw address to a structured
// location. Implementations must treat "no data for this address" as a valid
// result (an empty models.Location with a nil error), never as an error;
// returned errors are reserved for transport and protocol failures.
type Resolver interface {
	Resolve(ctx context.Context, address string) (models.Location, error)
}
