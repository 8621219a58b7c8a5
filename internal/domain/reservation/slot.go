package reservation

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	slotLayout = "15:04"
	slotStep   = 30 * time.Minute
)

type servingWindow struct {
	first string
	last  string
}

// Lunch and dinner services; both bounds are bookable slots.
var servingWindows = []servingWindow{
	{first: "11:00", last: "14:30"},
	{first: "17:00", last: "21:30"},
}

var timeSlots = buildTimeSlots()

func buildTimeSlots() []string {
	var out []string
	for _, w := range servingWindows {
		first, err := time.Parse(slotLayout, w.first)
		if err != nil {
			panic(fmt.Sprintf("invalid serving window %q: %v", w.first, err))
		}
		last, err := time.Parse(slotLayout, w.last)
		if err != nil {
			panic(fmt.Sprintf("invalid serving window %q: %v", w.last, err))
		}
		for cur := first; !cur.After(last); cur = cur.Add(slotStep) {
			out = append(out, cur.Format(slotLayout))
		}
	}
	return out
}

// TimeSlots returns the bookable slot labels in chronological order.
func TimeSlots() []string {
	out := make([]string, len(timeSlots))
	copy(out, timeSlots)
	return out
}

func IsValidTimeSlot(label string) bool {
	for _, s := range timeSlots {
		if s == label {
			return true
		}
	}
	return false
}

// NormalizeDate keeps the calendar day of t (in t's own location) and
// returns it as UTC midnight.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts "2006-01-02" or an RFC 3339 timestamp and returns the
// calendar day the client wrote, at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return NormalizeDate(t), nil
}

// Today is the calendar day of now, where now is already in the restaurant's location.
func Today(now time.Time) time.Time {
	return NormalizeDate(now)
}

// IsBookableDate rejects days strictly before today.
func IsBookableDate(date, now time.Time) bool {
	return !NormalizeDate(date).Before(Today(now))
}
