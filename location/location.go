// Package location looks up the device position for a capture.
package location

import (
	"context"
	"errors"
	"time"

	"highway_inspector/models"

	"github.com/apex/log"
)

// DefaultTimeout bounds a position lookup.
const DefaultTimeout = 5 * time.Second

// ErrUnavailable is returned by locators that have no position to give.
var ErrUnavailable = errors.New("location unavailable")

// Locator reports the device position.
type Locator interface {
	CurrentPosition(ctx context.Context) (models.Coordinates, error)
}

// Static always reports the same position, typically from configuration.
type Static models.Coordinates

func (s Static) CurrentPosition(_ context.Context) (models.Coordinates, error) {
	return models.Coordinates(s), nil
}

// Unavailable never has a position.
type Unavailable struct{}

func (Unavailable) CurrentPosition(_ context.Context) (models.Coordinates, error) {
	return models.Coordinates{}, ErrUnavailable
}

// Lookup asks l for the current position, giving up after timeout.
// Any failure is logged and yields nil; a capture never fails for lack of GPS.
func Lookup(ctx context.Context, l Locator, timeout time.Duration) *models.Coordinates {
	if l == nil {
		return nil
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		c   models.Coordinates
		err error
	}
	done := make(chan result, 1)
	go func() {
		c, err := l.CurrentPosition(ctx)
		done <- result{c, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			log.WithError(r.err).Warn("position lookup failed, continuing without coordinates")
			return nil
		}
		return &r.c
	case <-ctx.Done():
		log.WithError(ctx.Err()).Warn("position lookup timed out, continuing without coordinates")
		return nil
	}
}
