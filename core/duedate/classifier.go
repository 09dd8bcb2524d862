// Package duedate classifies due dates relative to an explicit "now".
//
// Every function takes the current instant as a parameter; nothing in this package reads the wall clock.
// Day boundaries are computed in the location of `now`.
package duedate

import (
	"fmt"
	"time"
)

type Urgency string

const (
	UrgencyNone     Urgency = "none"
	UrgencyOverdue  Urgency = "overdue"
	UrgencyToday    Urgency = "today"
	UrgencySoon     Urgency = "soon"
	UrgencyUpcoming Urgency = "upcoming"
)

// Tone is the badge colour hint of a due date.
type Tone string

const (
	ToneSafe    Tone = "safe"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
)

const (
	DefaultSoonWindowDays    = 7
	DefaultWarningWindowDays = 3
)

type Config struct {
	// SoonWindowDays is the "due soon" horizon.
	SoonWindowDays int
	// WarningWindowDays is the horizon of the warning Tone.
	WarningWindowDays int
}

func DefaultConfig() Config {
	return Config{
		SoonWindowDays:    DefaultSoonWindowDays,
		WarningWindowDays: DefaultWarningWindowDays,
	}
}

type Classifier struct {
	conf Config
}

// NewClassifier returns a Classifier; non-positive windows fall back to the defaults.
func NewClassifier(conf Config) *Classifier {
	if conf.SoonWindowDays <= 0 {
		conf.SoonWindowDays = DefaultSoonWindowDays
	}
	if conf.WarningWindowDays <= 0 {
		conf.WarningWindowDays = DefaultWarningWindowDays
	}
	return &Classifier{conf: conf}
}

func (c *Classifier) Config() Config { return c.conf }

// Urgency partitions (due, now) pairs: exactly one tier applies to any input.
func (c *Classifier) Urgency(due *time.Time, now time.Time) Urgency {
	if due == nil {
		return UrgencyNone
	}
	d := due.In(now.Location())
	switch {
	case endOfDay(d).Before(now):
		return UrgencyOverdue
	case sameDay(d, now):
		return UrgencyToday
	case d.Before(endOfDay(now.AddDate(0, 0, c.conf.SoonWindowDays))):
		return UrgencySoon
	default:
		return UrgencyUpcoming
	}
}

func (c *Classifier) IsOverdue(due *time.Time, now time.Time) bool {
	return c.Urgency(due, now) == UrgencyOverdue
}

func (c *Classifier) IsDueToday(due *time.Time, now time.Time) bool {
	return c.Urgency(due, now) == UrgencyToday
}

// IsDueSoon reports whether due falls inside the soon window, today included.
func (c *Classifier) IsDueSoon(due *time.Time, now time.Time) bool {
	u := c.Urgency(due, now)
	return u == UrgencyToday || u == UrgencySoon
}

// Tone is ToneDanger for past days, ToneWarning within the warning window and ToneSafe otherwise.
// A missing due date is ToneSafe.
func (c *Classifier) Tone(due *time.Time, now time.Time) Tone {
	days, ok := DaysUntilDue(due, now)
	switch {
	case !ok:
		return ToneSafe
	case days < 0:
		return ToneDanger
	case days <= c.conf.WarningWindowDays:
		return ToneWarning
	default:
		return ToneSafe
	}
}

// Status is the presentation bundle of a due date.
type Status struct {
	Urgency      Urgency `json:"urgency"`
	DaysUntilDue *int    `json:"days_until_due"`
	Label        string  `json:"label"`
	Relative     string  `json:"relative"`
	Tone         Tone    `json:"tone"`
}

func (c *Classifier) Status(due *time.Time, now time.Time) Status {
	st := Status{
		Urgency:  c.Urgency(due, now),
		Label:    Label(due, now),
		Relative: RelativeText(due, now),
		Tone:     c.Tone(due, now),
	}
	if days, ok := DaysUntilDue(due, now); ok {
		st.DaysUntilDue = &days
	}
	return st
}

// DaysUntilDue counts calendar days from the start of now's day to the start of due's day.
// Negative values are days already past. ok is false when there is no due date.
func DaysUntilDue(due *time.Time, now time.Time) (days int, ok bool) {
	if due == nil {
		return 0, false
	}
	dy, dm, dd := due.In(now.Location()).Date()
	ny, nm, nd := now.Date()
	// UTC midnights are exactly 24h apart, whatever DST does in now's location.
	dueDay := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	nowDay := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return int(dueDay.Sub(nowDay) / (24 * time.Hour)), true
}

// Label is the due badge text, eg. "2 days overdue", "Due today", "Due in 4 days".
func Label(due *time.Time, now time.Time) string {
	days, ok := DaysUntilDue(due, now)
	switch {
	case !ok:
		return ""
	case days < 0:
		return fmt.Sprintf("%d %s overdue", -days, plural(-days, "day", "days"))
	case days == 0:
		return "Due today"
	case days == 1:
		return "Due tomorrow"
	default:
		return fmt.Sprintf("Due in %d days", days)
	}
}

// RelativeText is the calendar flavour of Label, eg. "Yesterday", "In 3 days", "Mar 14".
func RelativeText(due *time.Time, now time.Time) string {
	days, ok := DaysUntilDue(due, now)
	switch {
	case !ok:
		return ""
	case days < -1:
		return fmt.Sprintf("%d days ago", -days)
	case days == -1:
		return "Yesterday"
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days <= 7:
		return fmt.Sprintf("In %d days", days)
	default:
		return FormatDate(due.In(now.Location()), ShortDateLayout)
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
