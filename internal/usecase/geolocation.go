package usecase

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/weekend-fixtures/internal/domain/geo"
)

const (
	geoPending int32 = iota
	geoResolved
	geoTimedOut
)

// GeolocationTask tracks one background position lookup. The locator result
// and the timeout race for a single CAS on state. A success that loses to the
// timeout is still applied once, after the timeout notice has been emitted.
type GeolocationTask struct {
	state   atomic.Int32
	applied atomic.Bool
	noticed chan struct{}
	done    chan struct{}
}

func newGeolocationTask() *GeolocationTask {
	return &GeolocationTask{noticed: make(chan struct{}), done: make(chan struct{})}
}

func finishedGeolocationTask() *GeolocationTask {
	task := newGeolocationTask()
	task.state.Store(geoResolved)
	close(task.done)
	return task
}

// Done is closed once the locator has returned.
func (t *GeolocationTask) Done() <-chan struct{} {
	return t.done
}

func (t *GeolocationTask) TimedOut() bool {
	return t.state.Load() == geoTimedOut
}

func (t *GeolocationTask) Applied() bool {
	return t.applied.Load()
}

func (s *Session) startGeolocation(ctx context.Context, locator geo.Locator) *GeolocationTask {
	task := newGeolocationTask()

	timer := time.AfterFunc(s.cfg.GeolocationTimeout, func() {
		if !task.state.CompareAndSwap(geoPending, geoTimedOut) {
			return
		}
		s.logger.WarnContext(ctx, "geolocation timed out", "timeout", s.cfg.GeolocationTimeout.String())
		s.Notify(ctx, geolocationNotice(geo.ErrLocationTimeout))
		close(task.noticed)
	})

	go func() {
		defer close(task.done)

		point, err := locator.Locate(ctx)
		if task.state.CompareAndSwap(geoPending, geoResolved) {
			timer.Stop()
		} else {
			// Timed out: failures stay silent, a success waits for the notice.
			if err != nil {
				return
			}
			select {
			case <-task.noticed:
			case <-ctx.Done():
				return
			}
		}

		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.WarnContext(ctx, "geolocation failed", "error", err)
			s.Notify(ctx, geolocationNotice(err))
			return
		}

		if err := s.ApplyPosition(ctx, point); err != nil {
			s.logger.WarnContext(ctx, "discard geolocation result", "error", err)
			s.Notify(ctx, geolocationNotice(geo.ErrLocationUnavailable))
			return
		}
		task.applied.Store(true)
		s.logger.InfoContext(ctx, "position applied", "lat", point.Lat, "lon", point.Lon)
	}()

	return task
}
