package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hywnj/cursor-todo/internal/todo"
)

func TestMonthOfShape(t *testing.T) {
	selected := todo.Day{Year: 2024, Month: time.March, Day: 15}
	m := MonthOf(selected, selected)

	require.Len(t, m.Weeks, 6)
	for _, week := range m.Weeks {
		assert.Len(t, week, 7)
	}
	assert.Equal(t, "2024년 3월", m.Label)
}

func TestMonthOfStartsOnSunday(t *testing.T) {
	// March 2024 starts on a Friday, so the grid begins Sunday Feb 25.
	selected := todo.Day{Year: 2024, Month: time.March, Day: 1}
	m := MonthOf(selected, selected)

	first := m.Weeks[0][0]
	assert.Equal(t, todo.Day{Year: 2024, Month: time.February, Day: 25}, first.Day)
	assert.False(t, first.InMonth)
	assert.Equal(t, time.Sunday, first.Day.Time().Weekday())
}

func TestMonthOfMarksSelectedAndToday(t *testing.T) {
	selected := todo.Day{Year: 2024, Month: time.March, Day: 15}
	today := todo.Day{Year: 2024, Month: time.March, Day: 20}
	m := MonthOf(selected, today)

	var selectedCount, todayCount int
	for _, week := range m.Weeks {
		for _, cell := range week {
			if cell.Selected {
				selectedCount++
				assert.Equal(t, selected, cell.Day)
			}
			if cell.Today {
				todayCount++
				assert.Equal(t, today, cell.Day)
			}
		}
	}
	assert.Equal(t, 1, selectedCount)
	assert.Equal(t, 1, todayCount)
}

func TestMonthOfNeighborPaging(t *testing.T) {
	selected := todo.Day{Year: 2024, Month: time.January, Day: 10}
	m := MonthOf(selected, selected)

	assert.Equal(t, todo.Day{Year: 2023, Month: time.December, Day: 1}, m.Prev)
	assert.Equal(t, todo.Day{Year: 2024, Month: time.February, Day: 1}, m.Next)
}

func TestMonthOfYearRollover(t *testing.T) {
	selected := todo.Day{Year: 2024, Month: time.December, Day: 31}
	m := MonthOf(selected, selected)

	assert.Equal(t, todo.Day{Year: 2025, Month: time.January, Day: 1}, m.Next)
	assert.Equal(t, todo.Day{Year: 2024, Month: time.November, Day: 1}, m.Prev)
}
