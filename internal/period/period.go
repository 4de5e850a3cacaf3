// Package period resolves report period keywords into date ranges and
// compares metrics between two periods.
package period

import (
	"fmt"
	"math"
	"time"

	apperrors "posfinance/internal/errors"
)

// Keyword selects how a report period is derived from today's date.
type Keyword string

const (
	Current   Keyword = "current"
	LastMonth Keyword = "last_month"
	Quarter   Keyword = "quarter"
	Year      Keyword = "year"
	Custom    Keyword = "custom"
)

// Valid reports whether k is a known keyword.
func (k Keyword) Valid() bool {
	switch k {
	case Current, LastMonth, Quarter, Year, Custom:
		return true
	}
	return false
}

// ReportPeriod is an inclusive date range. Start and End are midnight dates.
type ReportPeriod struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
	Label string    `json:"label"`
}

// EndExclusive is the first instant after the period, for half-open queries.
func (p ReportPeriod) EndExclusive() time.Time {
	return p.End.AddDate(0, 0, 1)
}

// Contains reports whether t falls on a day inside the period.
func (p ReportPeriod) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.EndExclusive())
}

// Derive resolves keyword against today.
//
// The quarter keyword is the two months before today's month plus today's
// month, not a calendar quarter: for 2024-05-15 it spans 2024-03-01 to
// 2024-05-31. Report pages depend on this rule.
func Derive(keyword Keyword, today time.Time, customStart, customEnd *time.Time) (ReportPeriod, error) {
	today = dateOnly(today)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())

	switch keyword {
	case Current, "":
		return newPeriod(monthStart, lastOfMonth(monthStart)), nil
	case LastMonth:
		start := monthStart.AddDate(0, -1, 0)
		return newPeriod(start, lastOfMonth(start)), nil
	case Quarter:
		return newPeriod(monthStart.AddDate(0, -2, 0), lastOfMonth(monthStart)), nil
	case Year:
		start := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
		end := time.Date(today.Year(), time.December, 31, 0, 0, 0, 0, today.Location())
		return newPeriod(start, end), nil
	case Custom:
		if customStart == nil || customEnd == nil {
			return ReportPeriod{}, apperrors.ErrMissingRange
		}
		start, end := dateOnly(*customStart), dateOnly(*customEnd)
		if end.Before(start) {
			return ReportPeriod{}, apperrors.ErrInvalidRange
		}
		return newPeriod(start, end), nil
	default:
		return ReportPeriod{}, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("unknown period %q", keyword))
	}
}

// Previous returns the period immediately before p. Spans made of whole
// calendar months step back by the same number of months; other spans shift
// back by their own length.
func Previous(p ReportPeriod) ReportPeriod {
	if p.Start.Day() == 1 && p.End.Equal(lastOfMonth(p.End)) {
		months := (p.End.Year()-p.Start.Year())*12 + int(p.End.Month()-p.Start.Month()) + 1
		start := p.Start.AddDate(0, -months, 0)
		return newPeriod(start, p.Start.AddDate(0, 0, -1))
	}
	days := int(math.Round(p.End.Sub(p.Start).Hours()/24)) + 1
	return newPeriod(p.Start.AddDate(0, 0, -days), p.Start.AddDate(0, 0, -1))
}

func newPeriod(start, end time.Time) ReportPeriod {
	return ReportPeriod{Start: start, End: end, Label: label(start, end)}
}

func label(start, end time.Time) string {
	if start.Day() == 1 && end.Equal(lastOfMonth(end)) {
		if start.Year() == end.Year() && start.Month() == end.Month() {
			return start.Format("January 2006")
		}
		if start.Month() == time.January && end.Month() == time.December && start.Year() == end.Year() {
			return start.Format("2006")
		}
		return start.Format("Jan 2006") + " - " + end.Format("Jan 2006")
	}
	return start.Format("2006-01-02") + " - " + end.Format("2006-01-02")
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func lastOfMonth(t time.Time) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.AddDate(0, 1, -1)
}
