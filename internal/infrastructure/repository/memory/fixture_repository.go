package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/weekend-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/weekend"
)

type FixtureRepository struct {
	mu              sync.RWMutex
	fixturesByMonth map[weekend.Month][]fixture.Fixture
}

// NewFixtureRepository buckets fixtures by the month of their own kickoff
// wall clock, the same way monthly files are split.
func NewFixtureRepository(fixtures []fixture.Fixture) *FixtureRepository {
	fixturesByMonth := make(map[weekend.Month][]fixture.Fixture)
	for _, item := range fixtures {
		month := weekend.MonthOf(item.StartsAt)
		fixturesByMonth[month] = append(fixturesByMonth[month], item)
	}

	return &FixtureRepository{fixturesByMonth: fixturesByMonth}
}

func (r *FixtureRepository) ListByMonth(_ context.Context, month weekend.Month) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items, ok := r.fixturesByMonth[month]
	if !ok {
		return nil, fixture.ErrMonthNotFound
	}
	out := make([]fixture.Fixture, 0, len(items))
	out = append(out, items...)
	return out, nil
}

func (r *FixtureRepository) Put(items ...fixture.Fixture) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		month := weekend.MonthOf(item.StartsAt)
		r.fixturesByMonth[month] = append(r.fixturesByMonth[month], item)
	}
}
