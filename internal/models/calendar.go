package models

import "time"

const (
	DateLayout = "2006-01-02"
	SlotLayout = "15:04"
)

// ParseDate parses a YYYY-MM-DD calendar date as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, err
	}
	if d.Format(DateLayout) != s {
		return time.Time{}, &time.ParseError{Layout: DateLayout, Value: s, Message: ": not a canonical date"}
	}
	return d, nil
}

// IsTimeSlot reports whether s is a zero-padded 24h HH:MM wall-clock time.
func IsTimeSlot(s string) bool {
	if len(s) != len(SlotLayout) {
		return false
	}
	_, err := time.Parse(SlotLayout, s)
	return err == nil
}
