package renderer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderClock(t *testing.T) {
	// Wednesday
	at := time.Date(2020, time.April, 15, 14, 5, 0, 0, time.UTC)

	tests := []struct {
		name        string
		showSeconds bool
		at          time.Time
		timeText    string
		dateText    string
	}{
		{"seconds hidden", false, at, "02:05 PM", "Wednesday, April 15"},
		{"seconds shown", true, at, "02:05:00 PM", "Wednesday, April 15"},
		{"morning", true, time.Date(2021, time.January, 3, 9, 7, 42, 0, time.UTC), "09:07:42 AM", "Sunday, January 03"},
		{"midnight", false, time.Date(2021, time.December, 31, 0, 0, 59, 0, time.UTC), "12:00 AM", "Friday, December 31"},
		{"noon", false, time.Date(2022, time.June, 1, 12, 30, 0, 0, time.UTC), "12:30 PM", "Wednesday, June 01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timeText, dateText := NewClockRenderer(tt.showSeconds).RenderClock(tt.at)
			assert.Equal(t, tt.timeText, timeText)
			assert.Equal(t, tt.dateText, dateText)
		})
	}
}

func TestNewClockFormat(t *testing.T) {
	assert.NotContains(t, NewClockFormat(false).Time, "05")
	assert.Contains(t, NewClockFormat(true).Time, ":05")
	assert.Equal(t, NewClockFormat(false).Date, NewClockFormat(true).Date)
	assert.Equal(t, NewClockFormat(true), NewClockRenderer(true).Format())
}
