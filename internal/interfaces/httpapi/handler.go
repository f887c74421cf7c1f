package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/geo"
	"github.com/riskibarqy/weekend-fixtures/internal/platform/logging"
	"github.com/riskibarqy/weekend-fixtures/internal/usecase"
)

// Defaults are applied to nearby searches that omit the corresponding parameter.
type Defaults struct {
	Reference geo.Point
	RadiusKm  float64
}

type Handler struct {
	fixtureService *usecase.FixtureService
	calendar       *usecase.CalendarService
	locator        geo.Locator
	defaults       Defaults
	logger         *logging.Logger
	validator      *validator.Validate
}

// NewHandler builds the API handler. A nil locator falls back to the CDN
// edge headers captured by EdgeLocation.
func NewHandler(
	fixtureService *usecase.FixtureService,
	locator geo.Locator,
	defaults Defaults,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if locator == nil {
		locator = HeaderLocator{}
	}

	return &Handler{
		fixtureService: fixtureService,
		calendar:       fixtureService.Calendar(),
		locator:        locator,
		defaults:       defaults,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
