// Package observability wires tracing and profiling for the API process.
package observability

import (
	"context"
	"net/http"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/weekend-fixtures/internal/config"
	"github.com/riskibarqy/weekend-fixtures/internal/platform/logging"
)

// Stack holds the started components so they can be stopped in reverse
// order. Disabled components are no-ops.
type Stack struct {
	logger          *logging.Logger
	shutdownTracing func(context.Context) error
	stopProfiler    func() error
	pprof           *http.Server
}

// Start brings up Uptrace, Pyroscope and the pprof listener according to cfg.
// On error, anything already started is stopped before returning.
func Start(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Stack, error) {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Stack{
		logger:          logger,
		shutdownTracing: noopShutdown,
		stopProfiler:    noopStop,
	}

	var err error
	if s.shutdownTracing, err = InitUptrace(cfg, logger); err != nil {
		return nil, crerr.Wrap(err, "init uptrace")
	}
	if s.stopProfiler, err = InitPyroscope(cfg, logger); err != nil {
		_ = s.shutdownTracing(ctx)
		return nil, crerr.Wrap(err, "init pyroscope")
	}
	s.pprof = StartPprofServer(cfg, logger)
	return s, nil
}

// Shutdown stops every component and reports all failures together.
func (s *Stack) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}
	var errs error
	if err := StopPprofServer(ctx, s.pprof, s.logger); err != nil {
		errs = crerr.CombineErrors(errs, crerr.Wrap(err, "stop pprof"))
	}
	if err := s.stopProfiler(); err != nil {
		errs = crerr.CombineErrors(errs, crerr.Wrap(err, "stop pyroscope"))
	}
	if err := s.shutdownTracing(ctx); err != nil {
		errs = crerr.CombineErrors(errs, crerr.Wrap(err, "shutdown uptrace"))
	}
	return errs
}

func noopShutdown(context.Context) error { return nil }

func noopStop() error { return nil }
