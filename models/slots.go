package models

import (
	"fmt"
	"slices"
	"time"
)

// PreferredDateLayout is the ISO calendar date used for preferredDate.
const PreferredDateLayout = "2006-01-02"

// TimeSlots lists the bookable half-hour labels. There is no slot between
// 12:30 PM and 02:00 PM.
var TimeSlots = []string{
	"09:00 AM", "09:30 AM", "10:00 AM", "10:30 AM",
	"11:00 AM", "11:30 AM", "12:00 PM", "12:30 PM",
	"02:00 PM", "02:30 PM", "03:00 PM", "03:30 PM",
	"04:00 PM", "04:30 PM", "05:00 PM", "05:30 PM",
	"06:00 PM", "06:30 PM", "07:00 PM", "07:30 PM",
}

// IsTimeSlot reports whether label is one of TimeSlots.
func IsTimeSlot(label string) bool {
	return slices.Contains(TimeSlots, label)
}

// ParsePreferredDate parses a yyyy-MM-dd string.
func ParsePreferredDate(raw string) (time.Time, error) {
	t, err := time.Parse(PreferredDateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("preferred date %q is not yyyy-MM-dd", raw)
	}
	return t, nil
}
