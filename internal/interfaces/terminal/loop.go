package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/riskibarqy/weekend-fixtures/internal/domain/weekend"
	"github.com/riskibarqy/weekend-fixtures/internal/platform/logging"
	"github.com/riskibarqy/weekend-fixtures/internal/usecase"
)

const helpText = `commandes:
  level <CODE|ALL>        filtrer par niveau
  radius <km>             rayon de recherche
  month <YYYY-MM>         changer de mois
  weekend <YYYY-MM-DD>    choisir le week-end (samedi)
  months | weekends       lister les choix
  focus <n>               centrer la carte sur le match n
  where                   réafficher la sélection
  quit`

var errQuit = errors.New("quit")

// Loop reads one command per line and applies it to the session. Invalid
// commands print an error and never stop the loop.
type Loop struct {
	session  *usecase.Session
	calendar *usecase.CalendarService
	renderer *Renderer
	logger   *logging.Logger
}

func NewLoop(session *usecase.Session, calendar *usecase.CalendarService, renderer *Renderer, logger *logging.Logger) *Loop {
	if logger == nil {
		logger = logging.Default()
	}
	return &Loop{session: session, calendar: calendar, renderer: renderer, logger: logger}
}

// Run returns on "quit", end of input, or context cancellation.
func (l *Loop) Run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if err := l.Handle(ctx, line); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				l.renderer.Printf("erreur: %v\n", err)
			}
		}
	}
}

func (l *Loop) Handle(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	l.logger.DebugContext(ctx, "finder command", "command", cmd, "args", args)

	switch cmd {
	case "quit", "exit", "q":
		return errQuit
	case "help", "?":
		l.renderer.Printf("%s\n", helpText)
		return nil
	case "where":
		l.renderer.Render(ctx, l.session.Snapshot())
		return nil
	case "months":
		for _, opt := range l.calendar.ListMonths(ctx) {
			l.renderer.Printf("  %s  %s%s\n", opt.Month, opt.Label, marker(opt.Current))
		}
		return nil
	case "weekends":
		for _, opt := range l.calendar.ListWeekends(ctx, l.session.Snapshot().Month) {
			l.renderer.Printf("  %s  %s%s\n", opt.Window.ID(), opt.Label, marker(opt.Default))
		}
		return nil
	}

	switch cmd {
	case "level", "radius", "month", "weekend", "focus":
	default:
		return fmt.Errorf("%w: commande inconnue %q (help pour l'aide)", usecase.ErrInvalidInput, cmd)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: %q attend un argument (help pour l'aide)", usecase.ErrInvalidInput, cmd)
	}
	arg := args[0]

	switch cmd {
	case "level":
		l.session.SetLevel(ctx, arg)
		return nil
	case "radius":
		km, err := strconv.ParseFloat(strings.Replace(arg, ",", ".", 1), 64)
		if err != nil {
			return fmt.Errorf("%w: rayon %q invalide", usecase.ErrInvalidInput, arg)
		}
		return l.session.SetRadiusKm(ctx, km)
	case "month":
		month, err := weekend.ParseMonth(arg)
		if err != nil {
			return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
		}
		return l.session.SelectMonth(ctx, month)
	case "weekend":
		return l.session.SelectWeekend(ctx, arg)
	case "focus":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("%w: numéro %q invalide", usecase.ErrInvalidInput, arg)
		}
		return l.renderer.Focus(n)
	}
	return nil
}

func marker(on bool) string {
	if on {
		return "  *"
	}
	return ""
}
