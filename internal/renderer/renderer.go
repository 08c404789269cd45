package renderer

import "time"

const (
	// Time layouts
	timeLayout        = "03:04 PM"
	timeLayoutSeconds = "03:04:05 PM"

	// Date layout, shared by both clock formats
	dateLayout = "Monday, January 02"
)

// ClockFormat is the pair of layouts used for the two overlay lines.
type ClockFormat struct {
	Time string
	Date string
}

// NewClockFormat returns the clock layouts with or without a seconds field.
func NewClockFormat(showSeconds bool) ClockFormat {
	if showSeconds {
		return ClockFormat{Time: timeLayoutSeconds, Date: dateLayout}
	}
	return ClockFormat{Time: timeLayout, Date: dateLayout}
}

// ClockRenderer defines the interface for turning an instant into overlay text.
type ClockRenderer interface {
	RenderClock(t time.Time) (timeText, dateText string)
}

// StandardClockRenderer implements ClockRenderer with a fixed ClockFormat.
type StandardClockRenderer struct {
	format ClockFormat
}

// NewClockRenderer creates a StandardClockRenderer for the given seconds setting.
func NewClockRenderer(showSeconds bool) *StandardClockRenderer {
	return &StandardClockRenderer{format: NewClockFormat(showSeconds)}
}

// Format returns the layouts this renderer was built with.
func (r *StandardClockRenderer) Format() ClockFormat {
	return r.format
}

// RenderClock formats t as a 12-hour time line and a weekday/month/day line.
func (r *StandardClockRenderer) RenderClock(t time.Time) (string, string) {
	return t.Format(r.format.Time), t.Format(r.format.Date)
}
