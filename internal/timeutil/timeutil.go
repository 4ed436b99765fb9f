// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

const (
	minutesInAnHour  = 60
	secondsInAMinute = 60
)

// DateLayout is the layout of daily stat keys.
const DateLayout = "2006-01-02"

// Round rounds a time value in seconds, minutes, or hours to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// MinsToHoursAndMins expresses a minutes value in hours and mins.
func MinsToHoursAndMins(val int) (hrs, mins int) {
	hrs = int(math.Floor(float64(val) / float64(minutesInAnHour)))
	mins = val % minutesInAnHour

	return
}

// SecsToMinsAndSecs expresses a seconds value in minutes and seconds.
func SecsToMinsAndSecs(val int) (mins, secs int) {
	if val < 0 {
		val = 0
	}

	return val / secondsInAMinute, val % secondsInAMinute
}

// FormatClock renders seconds as MM:SS.
func FormatClock(secs int) string {
	m, s := SecsToMinsAndSecs(secs)

	return fmt.Sprintf("%02d:%02d", m, s)
}

// Human renders a minutes value as "1h 5m", "2h" or "25 mins".
func Human(mins int) string {
	hrs, rest := MinsToHoursAndMins(mins)

	switch {
	case hrs > 0 && rest > 0:
		return fmt.Sprintf("%dh %dm", hrs, rest)
	case hrs > 0:
		return fmt.Sprintf("%dh", hrs)
	case rest == 1:
		return "1 min"
	default:
		return fmt.Sprintf("%d mins", rest)
	}
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// DayBounds returns local midnight of t's day and the following midnight.
func DayBounds(t time.Time) (start, end time.Time) {
	start = RoundToStart(t)
	end = start.AddDate(0, 0, 1)

	return start, end
}

// DateKey formats t's calendar day in its own location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// FromStr parses a natural language date such as "yesterday" or
// "3 days ago" relative to now.
func FromStr(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now, nil
	}

	if t, err := time.ParseInLocation(DateLayout, s, now.Location()); err == nil {
		return t, nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}

	dt, err := dateparser.Parse(cfg, s)
	if err != nil {
		return time.Time{}, err
	}

	return dt.Time.In(now.Location()), nil
}
