package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/weekend"
	qb "github.com/riskibarqy/weekend-fixtures/internal/platform/querybuilder"
)

const fixtureInsertBatchSize = 500

// FixtureRepository stores fixtures in the "fixtures" table. Month bounds
// are computed in loc.
type FixtureRepository struct {
	db  *sqlx.DB
	loc *time.Location
}

func NewFixtureRepository(db *sqlx.DB, loc *time.Location) *FixtureRepository {
	if loc == nil {
		loc = time.Local
	}
	return &FixtureRepository{db: db, loc: loc}
}

func (r *FixtureRepository) ListByMonth(ctx context.Context, month weekend.Month) ([]fixture.Fixture, error) {
	query, args, err := r.listByMonthQuery(month)
	if err != nil {
		return nil, fmt.Errorf("build select fixtures by month query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		if isResultFormatMismatch(err) {
			return nil, fmt.Errorf("select fixtures by month (set DB_DISABLE_PREPARED_BINARY_RESULT=true): %w", err)
		}
		return nil, fmt.Errorf("select fixtures by month: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("month=%s: %w", month.String(), fixture.ErrMonthNotFound)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain(r.loc))
	}
	return out, nil
}

// ReplaceMonth soft-deletes the month's live rows and inserts items in one
// transaction.
func (r *FixtureRepository) ReplaceMonth(ctx context.Context, month weekend.Month, items []fixture.Fixture) (int, error) {
	from, to := r.monthBounds(month)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin replace month tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Update("fixtures").
		SetExpr("deleted_at", "NOW()").
		SetExpr("updated_at", "NOW()").
		Where(qb.HalfOpen("starts_at", from, to), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build soft delete month query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("soft delete month=%s: %w", month.String(), err)
	}

	inserted := 0
	for start := 0; start < len(items); start += fixtureInsertBatchSize {
		end := min(start+fixtureInsertBatchSize, len(items))
		models := make([]fixtureTableModel, 0, end-start)
		for _, item := range items[start:end] {
			models = append(models, fixtureModelFromDomain(item))
		}

		query, args, err := qb.InsertModels("fixtures", models, "")
		if err != nil {
			return 0, fmt.Errorf("build insert fixtures query: %w", err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("insert fixtures month=%s: %w", month.String(), err)
		}
		n, _ := res.RowsAffected()
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit replace month tx: %w", err)
	}
	return inserted, nil
}

func (r *FixtureRepository) listByMonthQuery(month weekend.Month) (string, []any, error) {
	from, to := r.monthBounds(month)
	return qb.Select(fixtureColumns...).From("fixtures").
		Where(
			qb.HalfOpen("starts_at", from, to),
			qb.IsNull("deleted_at"),
		).
		OrderBy("starts_at", "id").
		ToSQL()
}

func (r *FixtureRepository) monthBounds(month weekend.Month) (time.Time, time.Time) {
	from := month.FirstDay(r.loc)
	return from, month.AddMonths(1).FirstDay(r.loc)
}

func isResultFormatMismatch(err error) bool {
	if err == nil {
		return false
	}
	text := strings.ToLower(err.Error())
	return strings.Contains(text, "bind message has") &&
		strings.Contains(text, "result formats") &&
		strings.Contains(text, "query has")
}
