package todo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Day
		wantErr bool
	}{
		{
			name:  "valid date",
			input: "2024-03-01",
			want:  Day{Year: 2024, Month: time.March, Day: 1},
		},
		{
			name:  "leap day",
			input: "2024-02-29",
			want:  Day{Year: 2024, Month: time.February, Day: 29},
		},
		{
			name:    "not a leap day",
			input:   "2023-02-29",
			wantErr: true,
		},
		{
			name:    "missing zero padding",
			input:   "2024-3-1",
			wantErr: true,
		},
		{
			name:    "garbage",
			input:   "yesterday",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDay(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDayString(t *testing.T) {
	d := Day{Year: 2024, Month: time.March, Day: 1}
	assert.Equal(t, "2024-03-01", d.String())

	// String output must round-trip through ParseDay
	parsed, err := ParseDay(d.String())
	require.NoError(t, err)
	assert.Equal(t, d, parsed)
}

func TestDayOfDecomposesInLocalTime(t *testing.T) {
	// 2024-03-01 23:59 local must land on 2024-03-01 no matter how the
	// instant would render in UTC
	lateEvening := time.Date(2024, time.March, 1, 23, 59, 0, 0, time.Local)
	assert.Equal(t, Day{Year: 2024, Month: time.March, Day: 1}, DayOf(lateEvening))

	// The same instant expressed in a different zone still decomposes on
	// this machine's wall clock
	assert.Equal(t, DayOf(lateEvening), DayOf(lateEvening.UTC()))
}

func TestDayTime(t *testing.T) {
	d := Day{Year: 2024, Month: time.March, Day: 1}
	midnight := d.Time()

	assert.Equal(t, 0, midnight.Hour())
	assert.Equal(t, 0, midnight.Minute())
	assert.Equal(t, 0, midnight.Second())
	assert.True(t, d.Contains(midnight))

	// The instant one nanosecond before midnight belongs to the previous day
	assert.True(t, d.AddDays(-1).Contains(midnight.Add(-time.Nanosecond)))
}

func TestDayAddDays(t *testing.T) {
	tests := []struct {
		name  string
		start Day
		n     int
		want  Day
	}{
		{
			name:  "forward across month boundary",
			start: Day{Year: 2024, Month: time.February, Day: 29},
			n:     1,
			want:  Day{Year: 2024, Month: time.March, Day: 1},
		},
		{
			name:  "backward across year boundary",
			start: Day{Year: 2024, Month: time.January, Day: 1},
			n:     -1,
			want:  Day{Year: 2023, Month: time.December, Day: 31},
		},
		{
			name:  "zero",
			start: Day{Year: 2024, Month: time.June, Day: 15},
			n:     0,
			want:  Day{Year: 2024, Month: time.June, Day: 15},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.start.AddDays(tt.n))
		})
	}
}

func TestDayContains(t *testing.T) {
	d := Day{Year: 2024, Month: time.March, Day: 1}

	assert.True(t, d.Contains(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local)))
	assert.True(t, d.Contains(time.Date(2024, time.March, 1, 23, 59, 59, 0, time.Local)))
	assert.False(t, d.Contains(time.Date(2024, time.February, 29, 23, 59, 59, 0, time.Local)))
	assert.False(t, d.Contains(time.Date(2024, time.March, 2, 0, 0, 0, 0, time.Local)))
}
