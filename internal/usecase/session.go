package usecase

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/riskibarqy/weekend-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/geo"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/weekend"
	"github.com/riskibarqy/weekend-fixtures/internal/platform/logging"
)

// Frame is the full input of one render pass.
type Frame struct {
	Seq       int
	Month     weekend.Month
	Window    weekend.Window
	Level     string
	RadiusKm  float64
	Reference geo.Point
	Located   bool
	Items     []fixture.Filtered
	Levels    []string
	Skipped   int
}

// Renderer receives render passes and notices. Calls are serialized by the Session.
type Renderer interface {
	Render(ctx context.Context, frame Frame)
	Notify(ctx context.Context, notice Notice)
}

type SessionConfig struct {
	DefaultReference   geo.Point
	DefaultRadiusKm    float64
	GeolocationTimeout time.Duration
}

// Session owns the interactive state: selected month, weekend, level,
// radius, reference position and the loaded collection. Every mutator ends
// with exactly one render pass.
type Session struct {
	mu       sync.Mutex
	fixtures *FixtureService
	renderer Renderer
	logger   *logging.Logger
	cfg      SessionConfig

	seq        int
	month      weekend.Month
	window     weekend.Window
	level      string
	radiusKm   float64
	reference  geo.Point
	located    bool
	loaded     []weekend.Month
	collection MonthCollection
}

func NewSession(fixtures *FixtureService, renderer Renderer, cfg SessionConfig, logger *logging.Logger) *Session {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.GeolocationTimeout <= 0 {
		cfg.GeolocationTimeout = 3 * time.Second
	}
	return &Session{
		fixtures:  fixtures,
		renderer:  renderer,
		logger:    logger,
		cfg:       cfg,
		level:     fixture.LevelAll,
		radiusKm:  cfg.DefaultRadiusKm,
		reference: cfg.DefaultReference,
	}
}

// Boot loads the current month, renders on the default position, and
// starts geolocation in the background. A nil locator only emits a notice.
func (s *Session) Boot(ctx context.Context, locator geo.Locator) (*GeolocationTask, error) {
	if err := s.SelectMonth(ctx, s.fixtures.Calendar().CurrentMonth()); err != nil {
		return nil, err
	}
	if locator == nil {
		s.Notify(ctx, geolocationNotice(geo.ErrLocationUnavailable))
		return finishedGeolocationTask(), nil
	}
	return s.startGeolocation(ctx, locator), nil
}

func (s *Session) SetLevel(ctx context.Context, level string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.level = fixture.NormalizeLevel(level)
	s.render(ctx)
}

func (s *Session) SetRadiusKm(ctx context.Context, km float64) error {
	if math.IsNaN(km) || math.IsInf(km, 0) || km < 0 {
		return fmt.Errorf("%w: radius must be >= 0", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.radiusKm = km
	s.render(ctx)
	return nil
}

// SelectMonth replaces the collection and moves to the month's default
// weekend. The render happens after the load completes.
func (s *Session) SelectMonth(ctx context.Context, month weekend.Month) error {
	if month.IsZero() {
		return fmt.Errorf("%w: month is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	window := s.fixtures.Calendar().DefaultWeekend(month)
	if err := s.load(ctx, window); err != nil {
		return err
	}
	s.month = month
	s.window = window
	s.render(ctx)
	return nil
}

func (s *Session) SelectWeekend(ctx context.Context, id string) error {
	window, err := s.fixtures.Calendar().ParseWeekend(id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.covers(window) {
		if err := s.load(ctx, window); err != nil {
			return err
		}
	}
	s.window = window
	s.render(ctx)
	return nil
}

// ApplyPosition replaces the reference position and re-renders.
func (s *Session) ApplyPosition(ctx context.Context, point geo.Point) error {
	if !point.Valid() {
		return fmt.Errorf("%w: position out of range", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.reference = point
	s.located = true
	s.render(ctx)
	return nil
}

func (s *Session) Notify(ctx context.Context, notice Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.renderer.Notify(ctx, notice)
}

// Snapshot rebuilds the current frame without rendering it.
func (s *Session) Snapshot() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.frame()
}

func (s *Session) covers(window weekend.Window) bool {
	for _, m := range window.Months() {
		if !slices.Contains(s.loaded, m) {
			return false
		}
	}
	return true
}

func (s *Session) load(ctx context.Context, window weekend.Window) error {
	collection, err := s.fixtures.LoadWindow(ctx, window)
	if err != nil {
		return err
	}
	s.collection = collection
	s.loaded = collection.Months
	for _, notice := range collection.Notices {
		s.renderer.Notify(ctx, notice)
	}
	return nil
}

func (s *Session) frame() Frame {
	items := fixture.Select(s.collection.Fixtures, fixture.Criteria{
		Level:        s.level,
		Window:       s.window,
		Reference:    s.reference,
		RadiusMeters: s.radiusKm * 1000,
	})
	return Frame{
		Seq:       s.seq,
		Month:     s.month,
		Window:    s.window,
		Level:     s.level,
		RadiusKm:  s.radiusKm,
		Reference: s.reference,
		Located:   s.located,
		Items:     items,
		Levels:    fixture.Levels(s.collection.Fixtures),
		Skipped:   s.collection.Skipped,
	}
}

// render must be called with mu held.
func (s *Session) render(ctx context.Context) {
	s.seq++
	frame := s.frame()
	s.logger.DebugContext(ctx, "render pass",
		"seq", frame.Seq,
		"weekend", frame.Window.ID(),
		"level", frame.Level,
		"radius_km", frame.RadiusKm,
		"items", len(frame.Items),
	)
	s.renderer.Render(ctx, frame)
}
