// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"fmt"
	"math"
	"time"
)

const (
	minutesInAnHour  = 60
	secondsInAMinute = 60
	secondsInAnHour  = 3600
)

// keyLayout is fixed width so that keys sort in time order.
const keyLayout = "2006-01-02T15:04:05.000000000Z07:00"

type Period string

const (
	PeriodAllTime   Period = "all-time"
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	Period7Days     Period = "7days"
	Period14Days    Period = "14days"
	Period30Days    Period = "30days"
	Period90Days    Period = "90days"
	Period180Days   Period = "180days"
	Period365Days   Period = "365days"
)

var Range = map[Period]int{
	PeriodAllTime:   0,
	PeriodToday:     0,
	PeriodYesterday: -1,
	Period7Days:     -6,
	Period14Days:    -13,
	Period30Days:    -29,
	Period90Days:    -89,
	Period180Days:   -179,
	Period365Days:   -364,
}

var PeriodCollection = []Period{
	PeriodAllTime,
	PeriodToday,
	PeriodYesterday,
	Period7Days,
	Period14Days,
	Period30Days,
	Period90Days,
	Period180Days,
	Period365Days,
}

// Bounds returns the start and end of period p relative to now. The all-time
// period starts at the zero time.
func (p Period) Bounds(now time.Time) (start, end time.Time, ok bool) {
	days, ok := Range[p]
	if !ok {
		return time.Time{}, time.Time{}, false
	}

	end = RoundToEnd(now)
	if p == PeriodYesterday {
		end = RoundToEnd(now.AddDate(0, 0, -1))
	}

	if p == PeriodAllTime {
		return time.Time{}, end, true
	}

	return RoundToStart(now.AddDate(0, 0, days)), end, true
}

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

// Clock formats a number of seconds as mm:ss, or h:mm:ss from an hour up.
func Clock(secs int) string {
	if secs < 0 {
		secs = 0
	}

	h := secs / secondsInAnHour
	m := secs % secondsInAnHour / secondsInAMinute
	s := secs % secondsInAMinute

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}

	return fmt.Sprintf("%02d:%02d", m, s)
}

// HumanMinutes formats a number of seconds as "1h 05m" or "25m".
func HumanMinutes(secs int) string {
	hrs, mins := MinsToHoursAndMins(secs / secondsInAMinute)
	if hrs > 0 {
		return fmt.Sprintf("%dh %02dm", hrs, mins)
	}

	return fmt.Sprintf("%dm", mins)
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

// RoundToEnd resets the given time to the end of the day.
func RoundToEnd(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		23,
		59,
		59,
		0,
		t.Location(),
	)
}

// ToKey converts a time value to a database key for Bolt.
func ToKey(t time.Time) []byte {
	return []byte(t.UTC().Format(keyLayout))
}
