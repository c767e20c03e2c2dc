// Package slot models the fixed hourly grid a working day is booked against.
//
// A day exposes 17 addressable slots, 08:00 through 23:00 and then 00:00 (midnight,
// the closing slot of the same working day). Hours are handled as integers in [0, 24)
// and wrap with modular arithmetic.
package slot

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const (
	FirstHour    = 8
	LastHour     = 23
	HoursPerDay  = 24
	SlotsPerDay  = LastHour - FirstHour + 2
	hourSuffix   = ":00"
	hourDigits   = 2
	midnightSlot = "00:00"
)

var ErrInvalidHour = errors.New("invalid hour")

// Grid returns the ordered slots of a working day.
func Grid() []string {
	grid := make([]string, 0, SlotsPerDay)

	for hour := FirstHour; hour <= LastHour; hour++ {
		grid = append(grid, Format(hour))
	}

	return append(grid, midnightSlot)
}

// Parse reads an "HH:00" string into an hour in [0, 24).
func Parse(value string) (int, error) {
	hh, ok := strings.CutSuffix(value, hourSuffix)
	if !ok || len(hh) != hourDigits {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHour, value)
	}

	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour >= HoursPerDay {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHour, value)
	}

	return hour, nil
}

func Format(hour int) string {
	return fmt.Sprintf("%02d%s", Normalize(hour), hourSuffix)
}

func Normalize(hour int) int {
	return ((hour % HoursPerDay) + HoursPerDay) % HoursPerDay
}

func Next(hour int) int {
	return Normalize(hour + 1)
}

func Prev(hour int) int {
	return Normalize(hour - 1)
}

// IsGridHour reports whether value is one of the bookable slots.
func IsGridHour(value string) bool {
	return slices.Contains(Grid(), value)
}

// Expand lists the hours of the half-open range [start, end). When end is before
// start the range crosses midnight and is split into [start, 23] and [0, end).
// An end of 0 closes the range at midnight.
func Expand(start, end int) []int {
	start, end = Normalize(start), Normalize(end)

	if end == 0 {
		end = HoursPerDay
	}

	hours := []int{}

	if end > start {
		for hour := start; hour < end; hour++ {
			hours = append(hours, Normalize(hour))
		}

		return hours
	}

	for hour := start; hour < HoursPerDay; hour++ {
		hours = append(hours, hour)
	}

	for hour := 0; hour < end; hour++ {
		hours = append(hours, hour)
	}

	return hours
}

// Duration is the length in hours of [start, end), wrapping past midnight.
// Unset or empty ranges count as one hour.
func Duration(start, end string) int {
	startHour, err := Parse(start)
	if err != nil {
		return 1
	}

	endHour, err := Parse(end)
	if err != nil {
		return 1
	}

	duration := endHour - startHour
	if duration < 0 {
		duration += HoursPerDay
	}

	if duration <= 0 {
		return 1
	}

	return duration
}
