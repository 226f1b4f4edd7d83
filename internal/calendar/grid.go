package calendar

import (
	"fmt"
	"time"

	"github.com/hywnj/cursor-todo/internal/todo"
)

// Cell is one day slot in the month grid.
type Cell struct {
	Day todo.Day

	// InMonth is false for the padding days of adjacent months.
	InMonth bool

	// Selected marks the day the user is currently viewing.
	Selected bool

	// Today marks the current real-world day.
	Today bool
}

// Month is a rendered month grid around a selected day.
type Month struct {
	// Label is the grid heading, e.g. "2024년 3월".
	Label string

	// Weeks always holds six rows of seven cells, Sunday first.
	Weeks [][]Cell

	// Prev and Next address the first day of the neighboring months,
	// for the grid's paging links.
	Prev todo.Day
	Next todo.Day
}

// Weekdays are the column headers, Sunday first.
var Weekdays = []string{"일", "월", "화", "수", "목", "금", "토"}

// MonthOf builds the grid for the month containing selected. today is
// the current day in the viewer's calendar, used only for highlighting.
func MonthOf(selected, today todo.Day) Month {
	first := todo.Day{Year: selected.Year, Month: selected.Month, Day: 1}

	m := Month{
		Label: fmt.Sprintf("%d년 %d월", selected.Year, int(selected.Month)),
		Prev:  firstOfMonth(first.AddDays(-1)),
		Next:  firstOfMonth(lastOfMonth(first).AddDays(1)),
	}

	// Back up to the Sunday on or before the 1st.
	cursor := first.AddDays(-int(first.Time().Weekday()))

	for row := 0; row < 6; row++ {
		week := make([]Cell, 0, 7)
		for col := 0; col < 7; col++ {
			week = append(week, Cell{
				Day:      cursor,
				InMonth:  cursor.Month == selected.Month && cursor.Year == selected.Year,
				Selected: cursor == selected,
				Today:    cursor == today,
			})
			cursor = cursor.AddDays(1)
		}
		m.Weeks = append(m.Weeks, week)
	}
	return m
}

func firstOfMonth(d todo.Day) todo.Day {
	return todo.Day{Year: d.Year, Month: d.Month, Day: 1}
}

func lastOfMonth(first todo.Day) todo.Day {
	t := time.Date(first.Year, first.Month+1, 1, 0, 0, 0, 0, time.Local).AddDate(0, 0, -1)
	return todo.DayOf(t)
}
