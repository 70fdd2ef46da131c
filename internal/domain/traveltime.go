package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"field-delivery-sync/internal/apperr"
)

// ParseTravelTime converts "HH:MM:SS" into whole minutes, rounding seconds to
// the nearest minute. Durations of a day or more may carry a day prefix,
// "D HH:MM:SS" or "D day(s), HH:MM:SS".
func ParseTravelTime(s string) (int, error) {
	days, clock, err := splitDays(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, apperr.ErrMalformedTravelTime)
	}
	parts := strings.Split(clock, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%q: %w", s, apperr.ErrMalformedTravelTime)
	}
	var hms [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%q: %w", s, apperr.ErrMalformedTravelTime)
		}
		hms[i] = n
	}
	if hms[1] > 59 || hms[2] > 59 {
		return 0, fmt.Errorf("%q: %w", s, apperr.ErrMalformedTravelTime)
	}
	return days*24*60 + hms[0]*60 + hms[1] + int(math.Round(float64(hms[2])/60)), nil
}

func splitDays(s string) (int, string, error) {
	fields := strings.Fields(s)
	switch {
	case len(fields) == 1:
		return 0, fields[0], nil
	case len(fields) == 2:
	case len(fields) == 3 && (fields[1] == "day," || fields[1] == "days,"):
	default:
		return 0, "", apperr.ErrMalformedTravelTime
	}
	days, err := strconv.Atoi(fields[0])
	if err != nil || days < 0 {
		return 0, "", apperr.ErrMalformedTravelTime
	}
	return days, fields[len(fields)-1], nil
}

// FormatTravelTime renders minutes as "HH:MM:00". Hours are not wrapped at
// 24; ParseTravelTime reads both that form and the day-prefixed one.
func FormatTravelTime(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d:00", minutes/60, minutes%60)
}

// MinutesBetween returns the rounded number of minutes from start to end.
func MinutesBetween(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Minutes()))
}
