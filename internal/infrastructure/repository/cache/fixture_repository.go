package cache

import (
	"context"
	"errors"
	"time"

	"github.com/riskibarqy/weekend-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/weekend"
	basecache "github.com/riskibarqy/weekend-fixtures/internal/platform/cache"
)

const fixtureKeyPrefix = "fixture:month:"

// cachedMonth also remembers that a month has no data, so a missing file
// is not re-read on every request.
type cachedMonth struct {
	items   []fixture.Fixture
	missing bool
}

type FixtureRepository struct {
	next  fixture.Repository
	cache *basecache.Store[cachedMonth]
}

func NewFixtureRepository(next fixture.Repository, ttl time.Duration) *FixtureRepository {
	return &FixtureRepository{next: next, cache: basecache.NewStore[cachedMonth](ttl)}
}

func (r *FixtureRepository) ListByMonth(ctx context.Context, month weekend.Month) ([]fixture.Fixture, error) {
	key := fixtureKeyPrefix + month.String()
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (cachedMonth, error) {
		items, err := r.next.ListByMonth(ctx, month)
		if errors.Is(err, fixture.ErrMonthNotFound) {
			return cachedMonth{missing: true}, nil
		}
		if err != nil {
			return cachedMonth{}, err
		}
		return cachedMonth{items: append([]fixture.Fixture(nil), items...)}, nil
	})
	if err != nil {
		return nil, err
	}
	if v.missing {
		return nil, fixture.ErrMonthNotFound
	}
	return append([]fixture.Fixture(nil), v.items...), nil
}

// Stats reports hits, misses and cached months since start.
func (r *FixtureRepository) Stats() basecache.Stats {
	return r.cache.Stats()
}
