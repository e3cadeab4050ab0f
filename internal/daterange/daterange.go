// Package daterange turns the search's date flags into a concrete time window.
package daterange

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	DefaultHours = 24
	MaxHours     = 8760
	MaxSpan      = 365 * 24 * time.Hour

	defaultRangeDays = 30
	dayLayout        = "January 02, 2006"
)

// ErrConflictingModes is returned when more than one date mode is set.
var ErrConflictingModes = errors.New("hours, date and start/end date are mutually exclusive")

// InvalidRangeError reports a start that falls after the end.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("start date %s is after end date %s",
		e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"))
}

// RangeTooLargeError reports a window wider than MaxSpan.
type RangeTooLargeError struct {
	Span time.Duration
	Max  time.Duration
}

func (e *RangeTooLargeError) Error() string {
	return fmt.Sprintf("date range of %d days exceeds the maximum of %d days",
		ceilDays(e.Span), ceilDays(e.Max))
}

// Input holds at most one date mode. Zero values mean "not set".
// Dates only contribute their calendar day.
type Input struct {
	HoursBack int
	Date      time.Time
	StartDate time.Time
	EndDate   time.Time
}

// Window is a resolved [Start, End) interval.
type Window struct {
	Start       time.Time
	End         time.Time
	Description string
	TotalDays   int
}

// Contains reports whether t lies in the window widened by buffer on both sides.
func (w Window) Contains(t time.Time, buffer time.Duration) bool {
	return !t.Before(w.Start.Add(-buffer)) && !t.After(w.End.Add(buffer))
}

// Resolve builds the window for in, using now's location for calendar days.
func Resolve(in Input, now time.Time) (Window, error) {
	hasHours := in.HoursBack != 0
	hasDate := !in.Date.IsZero()
	hasRange := !in.StartDate.IsZero() || !in.EndDate.IsZero()

	modes := 0
	for _, set := range []bool{hasHours, hasDate, hasRange} {
		if set {
			modes++
		}
	}
	if modes > 1 {
		return Window{}, ErrConflictingModes
	}

	switch {
	case hasDate:
		start := startOfDay(in.Date, now.Location())
		end := start.AddDate(0, 0, 1)
		return build(start, end, calendarSpan(start, end), "on "+start.Format(dayLayout))
	case hasRange:
		return resolveRange(in, now)
	default:
		return resolveHours(in.HoursBack, now)
	}
}

func resolveHours(hours int, now time.Time) (Window, error) {
	if hours == 0 {
		hours = DefaultHours
	}
	if hours < 1 || hours > MaxHours {
		return Window{}, fmt.Errorf("hours must be between 1 and %d, got %d", MaxHours, hours)
	}

	var desc string
	switch {
	case hours == 24:
		desc = "in the last 24 hours"
	case hours < 24:
		desc = fmt.Sprintf("in the last %d hours", hours)
	case hours%24 == 0:
		desc = fmt.Sprintf("in the last %d days", hours/24)
	default:
		desc = fmt.Sprintf("in the last %d hours", hours)
	}

	start := now.Add(-time.Duration(hours) * time.Hour)
	return build(start, now, now.Sub(start), desc)
}

func resolveRange(in Input, now time.Time) (Window, error) {
	loc := now.Location()

	endDay := startOfDay(now, loc)
	if !in.EndDate.IsZero() {
		endDay = startOfDay(in.EndDate, loc)
	}
	end := endDay.AddDate(0, 0, 1)

	var start time.Time
	if in.StartDate.IsZero() {
		start = endDay.AddDate(0, 0, -defaultRangeDays)
	} else {
		start = startOfDay(in.StartDate, loc)
	}

	if start.After(endDay) {
		return Window{}, &InvalidRangeError{Start: start, End: endDay}
	}

	desc := fmt.Sprintf("from %s to %s", start.Format(dayLayout), endDay.Format(dayLayout))
	return build(start, end, calendarSpan(start, end), desc)
}

// build checks span, the window's length as measured by its mode, against
// MaxSpan.
func build(start, end time.Time, span time.Duration, desc string) (Window, error) {
	if start.After(end) {
		return Window{}, &InvalidRangeError{Start: start, End: end}
	}
	if span > MaxSpan {
		return Window{}, &RangeTooLargeError{Span: span, Max: MaxSpan}
	}
	return Window{
		Start:       start,
		End:         end,
		Description: desc,
		TotalDays:   ceilDays(span),
	}, nil
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// calendarSpan measures whole days between the calendar dates of start and
// end, ignoring DST shifts in their location.
func calendarSpan(start, end time.Time) time.Duration {
	ys, ms, ds := start.Date()
	ye, me, de := end.Date()
	return time.Date(ye, me, de, 0, 0, 0, 0, time.UTC).Sub(time.Date(ys, ms, ds, 0, 0, 0, 0, time.UTC))
}

func ceilDays(d time.Duration) int {
	return int(math.Ceil(d.Hours() / 24))
}
