package file

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/weekend"
	"github.com/riskibarqy/weekend-fixtures/internal/infrastructure/fixturedoc"
)

// FixtureRepository reads one "<dir>/YYYY-MM.json" document per month.
type FixtureRepository struct {
	dir string
}

func NewFixtureRepository(dir string) *FixtureRepository {
	return &FixtureRepository{dir: dir}
}

func MonthPath(dir string, month weekend.Month) string {
	return filepath.Join(dir, month.String()+".json")
}

func (r *FixtureRepository) ListByMonth(ctx context.Context, month weekend.Month) ([]fixture.Fixture, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := MonthPath(r.dir, month)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, crerr.Wrapf(fixture.ErrMonthNotFound, "month=%s", month.String())
		}
		return nil, crerr.Wrapf(err, "read %s", path)
	}

	items, err := fixturedoc.Decode(data)
	if err != nil {
		return nil, crerr.Wrapf(err, "month=%s", month.String())
	}
	return items, nil
}
