// Package services provides domain services of the pizzeria that work on
// more than one aggregate.
//
// The package includes:
//   - StatisticsAggregator: derives order counts, revenue and item popularity
//     from a set of orders
//   - LocalDay: calendar day bounds used for "today" queries
package services
