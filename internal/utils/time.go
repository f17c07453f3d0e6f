package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/streakly/internal/constants"
)

var nowFunc = time.Now

// SetNowFunc replaces the clock used for day keys and returns a function
// restoring the previous one. Intended for tests.
func SetNowFunc(fn func() time.Time) (restore func()) {
	prev := nowFunc
	nowFunc = fn
	return func() { nowFunc = prev }
}

// Now returns the current local time.
func Now() time.Time {
	return nowFunc().Local()
}

// TodayKey returns the day key (YYYY-MM-DD) of the current local calendar day.
func TodayKey() string {
	return Now().Format(constants.DateFormat)
}

// DayKey returns the day key for today minus offset days.
func DayKey(offset int) string {
	return DayKeyFrom(Now(), offset)
}

// DayKeyFrom returns the day key for the calendar day offset days before t.
// AddDate walks calendar days, so DST transitions do not skip or repeat a day.
func DayKeyFrom(t time.Time, offset int) string {
	return t.AddDate(0, 0, -offset).Format(constants.DateFormat)
}

// TrailingDayKeys returns the last n day keys ending with today, oldest first.
func TrailingDayKeys(n int) []string {
	return TrailingDayKeysFrom(Now(), n)
}

func TrailingDayKeysFrom(t time.Time, n int) []string {
	if n <= 0 {
		return []string{}
	}
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = DayKeyFrom(t, n-1-i)
	}
	return keys
}

// ParseDayKey parses a day key into local midnight of that day.
func ParseDayKey(day string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, day, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q (expected YYYY-MM-DD): %w", day, err)
	}
	return t, nil
}

// ValidateDayKey checks if the string is a well-formed day key.
func ValidateDayKey(day string) bool {
	_, err := ParseDayKey(day)
	return err == nil
}

// Weekday returns the short weekday label (Mon, Tue, ...) for a day key, or
// an empty string when the key is malformed.
func Weekday(day string) string {
	t, err := ParseDayKey(day)
	if err != nil {
		return ""
	}
	return t.Format("Mon")
}
