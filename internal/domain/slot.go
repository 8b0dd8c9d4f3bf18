package domain

import "time"

// Interval is a half-open time range [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals intersect.
// Touching intervals (a.End == b.Start) do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// CandidateSlot is a bookable window of exactly one service duration
type CandidateSlot struct {
	Start time.Time
	End   time.Time
}

// Interval returns the slot as an interval
func (s CandidateSlot) Interval() Interval {
	return Interval{Start: s.Start, End: s.End}
}

// DurationMinutes returns the slot length in minutes
func (s CandidateSlot) DurationMinutes() int {
	return int(s.End.Sub(s.Start) / time.Minute)
}
