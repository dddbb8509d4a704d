package queries

import (
	"errors"

	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

const (
	// DefaultPopularLimit is the number of popular items returned when the
	// caller does not ask for a specific count.
	DefaultPopularLimit = 5
	MaxPopularLimit     = 100
)

var ErrGetStatisticsQueryIsNotConstructed = errors.New(
	"GetStatisticsQuery must be created via NewGetStatisticsQuery constructor",
)

// GetStatisticsQuery derives statistics over all stored orders.
type GetStatisticsQuery struct {
	popularLimit int
	guard        guard.ConstructorGuard
}

// NewGetStatisticsQuery accepts a popular items limit in [0, MaxPopularLimit];
// 0 selects DefaultPopularLimit.
func NewGetStatisticsQuery(popularLimit int) (GetStatisticsQuery, error) {
	if popularLimit < 0 || popularLimit > MaxPopularLimit {
		return GetStatisticsQuery{}, errs.NewValueIsOutOfRangeError("popular limit", popularLimit, 0, MaxPopularLimit)
	}
	if popularLimit == 0 {
		popularLimit = DefaultPopularLimit
	}
	return GetStatisticsQuery{popularLimit: popularLimit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetStatisticsQuery) Validate() error {
	return q.guard.Validate(ErrGetStatisticsQueryIsNotConstructed)
}

func (q GetStatisticsQuery) PopularLimit() int {
	return q.popularLimit
}
