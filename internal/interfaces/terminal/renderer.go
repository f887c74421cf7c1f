// Package terminal is the line-oriented front end of the fixture finder:
// a text Renderer for usecase.Session and the command loop driving it.
package terminal

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/weekend-fixtures/internal/interfaces/presenter"
	"github.com/riskibarqy/weekend-fixtures/internal/usecase"
)

type Renderer struct {
	mu   sync.Mutex
	out  io.Writer
	loc  *time.Location
	last presenter.View
}

func NewRenderer(out io.Writer, loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.Local
	}
	return &Renderer{out: out, loc: loc}
}

func (r *Renderer) Render(_ context.Context, frame usecase.Frame) {
	view := presenter.Build(frame.Items, frame.Reference, r.loc)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = view

	position := "position par défaut"
	if frame.Located {
		position = "votre position"
	}
	fmt.Fprintf(r.out, "\n== %s | %s | niveau %s | %s km autour de %s ==\n",
		frame.Month.Label(), frame.Window.Label(), frame.Level, presenter.FormatKm(frame.RadiusKm), position)
	if len(frame.Levels) > 0 {
		fmt.Fprintf(r.out, "niveaux: %s\n", strings.Join(frame.Levels, ", "))
	}
	fmt.Fprintln(r.out, view.CountLabel)
	for i, card := range view.Cards {
		fmt.Fprintf(r.out, "%2d. %s\n    %s\n    %s\n    itinéraire: %s\n", i+1, card.Meta, card.Title, card.Place, card.DirectionsURL)
		if card.SourceURL != "" {
			fmt.Fprintf(r.out, "    source: %s\n", card.SourceURL)
		}
	}
	fmt.Fprintf(r.out, "carte: %.4f, %.4f (zoom %d)\n", view.Center.Lat, view.Center.Lon, view.Center.Zoom)
}

func (r *Renderer) Notify(_ context.Context, notice usecase.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "! %s\n", notice.Message)
}

// Printf writes free text between render passes without interleaving them.
func (r *Renderer) Printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, format, args...)
}

// Focus prints the map center of the n-th card (1-based) of the last render.
func (r *Renderer) Focus(n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n < 1 || n > len(r.last.Cards) {
		return fmt.Errorf("%w: no match #%d", usecase.ErrInvalidInput, n)
	}
	card := r.last.Cards[n-1]
	center := presenter.Focus(card)
	fmt.Fprintf(r.out, "carte: %.4f, %.4f (zoom %d) %s\n", center.Lat, center.Lon, center.Zoom, card.Title)
	return nil
}
