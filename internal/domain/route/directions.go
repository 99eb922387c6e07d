package route

import (
	"context"
	"errors"
	"fmt"
)

// StatusOK is the directions API status of a successful query.
const StatusOK = "OK"

// ErrNoLeg is returned when an OK response carries no route or leg.
var ErrNoLeg = errors.New("directions response has no route leg")

// StatusError reports a directions response whose status is not OK.
type StatusError struct {
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("directions status %s", e.Status)
	}
	return fmt.Sprintf("directions status %s: %s", e.Status, e.Message)
}

// DirectionsProvider looks up the first leg between two places.
type DirectionsProvider interface {
	// GetLeg returns the metrics of the first leg of the first route.
	// A non-OK API status is reported as *StatusError.
	GetLeg(ctx context.Context, origin, destination string) (LegMetrics, error)
}
