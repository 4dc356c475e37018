package cli

import (
	"fmt"
	"time"
)

// dateFormat is the unambiguous day-month-year form every command accepts.
const dateFormat = "02-01-2006"

// defaultWindowDays is the window length when no end date is given.
const defaultWindowDays = 14

// timeNow is stubbed in tests.
var timeNow = time.Now

// parseDate parses a DD-MM-YYYY date in the given location.
func parseDate(text string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateFormat, text, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected DD-MM-YYYY", text)
	}
	return t, nil
}

// resolveWindow turns the optional start/end flags into a concrete date
// window. A missing start defaults to today, a missing end to start plus
// two weeks. The window must satisfy start <= end.
func resolveWindow(startFlag, endFlag string, loc *time.Location, now time.Time) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if startFlag == "" {
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	} else {
		start, err = parseDate(startFlag, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if endFlag == "" {
		end = start.AddDate(0, 0, defaultWindowDays)
	} else {
		end, err = parseDate(endFlag, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("start date %s is after end date %s",
			start.Format(dateFormat), end.Format(dateFormat))
	}
	return start, end, nil
}
