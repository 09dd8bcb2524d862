package duedate

import "time"

const (
	DateLayout      = "Jan 02, 2006"
	ShortDateLayout = "Jan 02"
	ClockLayout     = "15:04"
	Clock12Layout   = "3:04 PM"
)

// FormatDate formats t with layout (DateLayout when empty). The zero time formats as "".
func FormatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	if layout == "" {
		layout = DateLayout
	}
	return t.Format(layout)
}

// FormatClock turns a "HH:MM" time of day into "3:04 PM". Invalid input formats as "".
func FormatClock(hhmm string) string {
	t, err := time.Parse(ClockLayout, hhmm)
	if err != nil {
		return ""
	}
	return t.Format(Clock12Layout)
}
