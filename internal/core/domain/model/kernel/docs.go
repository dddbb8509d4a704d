// Package kernel holds the value objects shared by every aggregate of the
// pizzeria domain:
//   - UUID: identifiers of orders and customers
//   - Money: exact non-negative decimal amounts used for prices, line totals and revenue
//
// Both are immutable and reject their zero value in Validate, so an aggregate
// holding one can check it was initialised.
package kernel
