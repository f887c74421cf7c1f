package fixture

import (
	"context"

	"github.com/riskibarqy/weekend-fixtures/internal/domain/weekend"
)

// Repository exposes monthly fixture collections. Implementations return
// ErrMonthNotFound when no collection exists for the month.
type Repository interface {
	ListByMonth(ctx context.Context, month weekend.Month) ([]Fixture, error)
}
