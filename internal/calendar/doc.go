// Package calendar builds the month grid shown next to the day view.
// The grid is plain data so templates stay logic-free: six rows of
// seven cells, Sunday first, with leading and trailing days of the
// neighboring months filled in.
package calendar
