// Package calendar builds year and month trees whose day leaves share their
// weekday data and renderer instead of copying them.
//
// A year of day leaves holds at most seven weekday records, one per weekday,
// obtained from a flyweight.Registry. Every leaf points at the same
// DayRenderer; only the date itself is stored per leaf.
package calendar
