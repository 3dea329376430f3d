package booking

import (
	"errors"
	"time"
)

var ErrInvalidPeriod = errors.New("booking period start must be before end")

// Period is a half-open time window [start, end).
type Period struct {
	start time.Time
	end   time.Time
}

func NewPeriod(start, end time.Time) (Period, error) {
	if start.IsZero() || end.IsZero() || !start.Before(end) {
		return Period{}, ErrInvalidPeriod
	}

	return Period{start: start, end: end}, nil
}

func (p Period) Start() time.Time {
	return p.start
}

func (p Period) End() time.Time {
	return p.end
}

func (p Period) Duration() time.Duration {
	return p.end.Sub(p.start)
}

// Overlaps reports half-open interval intersection: each period's start
// precedes the other's end.
func (p Period) Overlaps(other Period) bool {
	return p.start.Before(other.end) && other.start.Before(p.end)
}

func (p Period) InProgressAt(now time.Time) bool {
	return p.start.Before(now) && p.end.After(now)
}

func (p Period) EndedBefore(now time.Time) bool {
	return p.end.Before(now)
}

func (p Period) StartsAfter(now time.Time) bool {
	return p.start.After(now)
}
