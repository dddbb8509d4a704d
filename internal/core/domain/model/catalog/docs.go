// Package catalog models the pizzeria menu. An Item carries the price and
// preparation time that order lines snapshot at placement time, together
// with its Size (diameter class) and Category.
package catalog
