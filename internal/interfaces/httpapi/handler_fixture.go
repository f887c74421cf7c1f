package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/weekend-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/geo"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/weekend"
	"github.com/riskibarqy/weekend-fixtures/internal/interfaces/presenter"
	"github.com/riskibarqy/weekend-fixtures/internal/usecase"
)

const (
	referenceSourceQuery   = "query"
	referenceSourceLocated = "located"
	referenceSourceDefault = "default"
)

type monthPathRequest struct {
	Month string `validate:"required,datetime=2006-01"`
}

type nearbyRequest struct {
	Month    string `validate:"omitempty,datetime=2006-01"`
	Weekend  string `validate:"omitempty,datetime=2006-01-02"`
	Level    string `validate:"omitempty,max=16"`
	RadiusKm string `validate:"omitempty,numeric"`
	Lat      string `validate:"omitempty,latitude"`
	Lon      string `validate:"omitempty,longitude"`
}

type monthDTO struct {
	Month   string `json:"month"`
	Label   string `json:"label"`
	Current bool   `json:"current"`
}

type weekendDTO struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Default bool   `json:"default,omitempty"`
}

type noticeDTO struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type venueDTO struct {
	Name string  `json:"name"`
	City string  `json:"city"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type fixtureDTO struct {
	Sport       string   `json:"sport"`
	Level       string   `json:"level"`
	StartsAt    string   `json:"startsAt"`
	Competition string   `json:"competition"`
	HomeTeam    string   `json:"homeTeam"`
	AwayTeam    string   `json:"awayTeam"`
	Venue       venueDTO `json:"venue"`
	SourceURL   string   `json:"sourceUrl,omitempty"`
	DistanceKm  *float64 `json:"distanceKm,omitempty"`
}

type monthFixturesDTO struct {
	Month    string       `json:"month"`
	Items    []fixtureDTO `json:"items"`
	Levels   []string     `json:"levels"`
	Skipped  int          `json:"skipped"`
	Notices  []noticeDTO  `json:"notices"`
	Weekends []weekendDTO `json:"weekends"`
}

type referenceDTO struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Source string  `json:"source"`
}

type nearbyDTO struct {
	Month     string       `json:"month"`
	Weekend   weekendDTO   `json:"weekend"`
	Level     string       `json:"level"`
	RadiusKm  float64      `json:"radiusKm"`
	Reference referenceDTO `json:"reference"`
	Levels    []string     `json:"levels"`
	Skipped   int          `json:"skipped"`
	Notices   []noticeDTO  `json:"notices"`
	Items     []fixtureDTO `json:"items"`
	presenter.View
}

func (h *Handler) ListMonths(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMonths")
	defer span.End()

	options := h.calendar.ListMonths(ctx)
	items := make([]monthDTO, 0, len(options))
	for _, opt := range options {
		items = append(items, monthDTO{Month: opt.Month.String(), Label: opt.Label, Current: opt.Current})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListMonthWeekends(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMonthWeekends")
	defer span.End()

	month, err := h.parseMonthPath(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, h.weekendsToDTO(ctx, month))
}

func (h *Handler) ListMonthFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMonthFixtures")
	defer span.End()

	month, err := h.parseMonthPath(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	collection, err := h.fixtureService.LoadMonth(ctx, month)
	if err != nil {
		h.logger.WarnContext(ctx, "load month failed", "month", month.String(), "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]fixtureDTO, 0, len(collection.Fixtures))
	for _, f := range collection.Fixtures {
		items = append(items, fixtureToDTO(f, nil))
	}

	writeSuccess(ctx, w, http.StatusOK, monthFixturesDTO{
		Month:    month.String(),
		Items:    items,
		Levels:   nonNilStrings(fixture.Levels(collection.Fixtures)),
		Skipped:  collection.Skipped,
		Notices:  noticesToDTO(collection.Notices),
		Weekends: h.weekendsToDTO(ctx, month),
	})
}

func (h *Handler) ListNearbyFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListNearbyFixtures")
	defer span.End()

	query := r.URL.Query()
	req := nearbyRequest{
		Month:    strings.TrimSpace(query.Get("month")),
		Weekend:  strings.TrimSpace(query.Get("weekend")),
		Level:    strings.TrimSpace(query.Get("level")),
		RadiusKm: strings.TrimSpace(query.Get("radius_km")),
		Lat:      strings.TrimSpace(query.Get("lat")),
		Lon:      strings.TrimSpace(query.Get("lon")),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input, source, err := h.nearbyInput(ctx, req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.fixtureService.Search(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "nearby search failed",
			"month", req.Month,
			"weekend", req.Weekend,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	loc := h.calendar.Location()
	items := make([]fixtureDTO, 0, len(result.Items))
	for _, item := range result.Items {
		km := item.DistanceKm()
		items = append(items, fixtureToDTO(item.Fixture, &km))
	}

	writeSuccess(ctx, w, http.StatusOK, nearbyDTO{
		Month:     result.Month.String(),
		Weekend:   windowToDTO(result.Window, false),
		Level:     result.Level,
		RadiusKm:  result.RadiusKm,
		Reference: referenceDTO{Lat: result.Reference.Lat, Lon: result.Reference.Lon, Source: source},
		Levels:    nonNilStrings(result.Levels),
		Skipped:   result.Skipped,
		Notices:   noticesToDTO(result.Notices),
		Items:     items,
		View:      presenter.Build(result.Items, result.Reference, loc),
	})
}

func (h *Handler) nearbyInput(ctx context.Context, req nearbyRequest) (usecase.SearchInput, string, error) {
	ctx, span := startSpan(ctx, "httpapi.Handler.nearbyInput")
	defer span.End()

	input := usecase.SearchInput{
		WeekendID: req.Weekend,
		Level:     req.Level,
		RadiusKm:  h.defaults.RadiusKm,
	}

	if req.Month != "" {
		month, err := weekend.ParseMonth(req.Month)
		if err != nil {
			return usecase.SearchInput{}, "", fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
		}
		input.Month = month
	}
	if req.RadiusKm != "" {
		radius, err := strconv.ParseFloat(req.RadiusKm, 64)
		if err != nil {
			return usecase.SearchInput{}, "", fmt.Errorf("%w: invalid radius_km: %v", usecase.ErrInvalidInput, err)
		}
		input.RadiusKm = radius
	}

	if (req.Lat == "") != (req.Lon == "") {
		return usecase.SearchInput{}, "", fmt.Errorf("%w: lat and lon must be given together", usecase.ErrInvalidInput)
	}
	if req.Lat != "" {
		lat, errLat := strconv.ParseFloat(req.Lat, 64)
		lon, errLon := strconv.ParseFloat(req.Lon, 64)
		if errLat != nil || errLon != nil {
			return usecase.SearchInput{}, "", fmt.Errorf("%w: invalid lat/lon", usecase.ErrInvalidInput)
		}
		input.Reference = geo.Point{Lat: lat, Lon: lon}
		return input, referenceSourceQuery, nil
	}

	point, err := h.locator.Locate(ctx)
	if err == nil && point.Valid() {
		input.Reference = point
		return input, referenceSourceLocated, nil
	}
	if err != nil {
		h.logger.DebugContext(ctx, "request location unavailable, using default reference", "error", err)
	}

	input.Reference = h.defaults.Reference
	return input, referenceSourceDefault, nil
}

func (h *Handler) parseMonthPath(ctx context.Context, r *http.Request) (weekend.Month, error) {
	ctx, span := startSpan(ctx, "httpapi.Handler.parseMonthPath")
	defer span.End()

	raw := strings.TrimSpace(r.PathValue("month"))
	if err := h.validateRequest(ctx, monthPathRequest{Month: raw}); err != nil {
		return weekend.Month{}, err
	}

	month, err := weekend.ParseMonth(raw)
	if err != nil {
		return weekend.Month{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return month, nil
}

func (h *Handler) weekendsToDTO(ctx context.Context, month weekend.Month) []weekendDTO {
	options := h.calendar.ListWeekends(ctx, month)
	items := make([]weekendDTO, 0, len(options))
	for _, opt := range options {
		items = append(items, windowToDTO(opt.Window, opt.Default))
	}
	return items
}

func windowToDTO(w weekend.Window, isDefault bool) weekendDTO {
	return weekendDTO{
		ID:      w.ID(),
		Label:   w.Label(),
		Start:   w.Start.Format(time.RFC3339Nano),
		End:     w.End.Format(time.RFC3339Nano),
		Default: isDefault,
	}
}

func fixtureToDTO(f fixture.Fixture, distanceKm *float64) fixtureDTO {
	return fixtureDTO{
		Sport:       f.Sport,
		Level:       f.Level,
		StartsAt:    f.StartsAt.Format(time.RFC3339),
		Competition: f.Competition,
		HomeTeam:    f.HomeTeam,
		AwayTeam:    f.AwayTeam,
		Venue: venueDTO{
			Name: f.Venue.Name,
			City: f.Venue.City,
			Lat:  f.Venue.Lat,
			Lon:  f.Venue.Lon,
		},
		SourceURL:  f.SourceURL,
		DistanceKm: distanceKm,
	}
}

func noticesToDTO(notices []usecase.Notice) []noticeDTO {
	out := make([]noticeDTO, 0, len(notices))
	for _, n := range notices {
		out = append(out, noticeDTO{Kind: string(n.Kind), Message: n.Message})
	}
	return out
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
