package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Textual prefixes and separators used by the agenda detail block.
const (
	detailSeparator = " - "
	groupPrefix     = "Grup "
	roomPrefix      = "Aula "
)

// ErrNoDayContext reports an event row encountered before any day-header
// row. The agenda stream always emits the day header first, so this means
// the source data is structurally broken and no safe recovery exists.
var ErrNoDayContext = errors.New("schedule: event row before first day header")

// ParseResult is the outcome of parsing a row stream.
type ParseResult struct {
	// Lectures holds the parsed lectures in input row order.
	Lectures []Lecture

	// Skipped counts event rows dropped because their detail block did
	// not match the expected format. Non-fatal; callers should surface
	// it as a warning.
	Skipped int
}

// ParseRows reconstructs lectures from the flat agenda row stream.
//
// The stream interleaves day-header rows with event rows; the most recent
// day header provides the calendar date for the event rows that follow it.
// Both window bounds are inclusive. Rows dated before start are skipped;
// the first event row dated after end terminates the parse early, since
// all remaining rows are chronologically later.
//
// Holiday rows and rows not tagged as lecture events are ignored. An event
// row with a malformed detail block is skipped and counted. An event row
// that arrives before any day header aborts with ErrNoDayContext.
func ParseRows(rows []Row, start, end time.Time) (*ParseResult, error) {
	loc := start.Location()
	startDay := truncateToDay(start)
	endDay := truncateToDay(end)

	res := &ParseResult{}
	var day time.Time
	haveDay := false

	for _, row := range rows {
		if row.HasClass(ClassDayHeader) {
			d, err := time.ParseInLocation("2006-01-02", row.HeaderDate, loc)
			if err != nil {
				return nil, fmt.Errorf("schedule: bad day header date %q: %w", row.HeaderDate, err)
			}
			day = d
			haveDay = true
			continue
		}

		if !row.HasClass(ClassEvent) {
			continue
		}
		if row.HasClass(ClassHoliday) || !row.HasClass(ClassLecture) {
			continue
		}

		if !haveDay {
			return nil, ErrNoDayContext
		}
		if day.After(endDay) {
			// All remaining rows are later still.
			return res, nil
		}
		if day.Before(startDay) {
			continue
		}

		lec, err := parseEventRow(row, day)
		if err != nil {
			res.Skipped++
			continue
		}
		res.Lectures = append(res.Lectures, lec)
	}

	return res, nil
}

// parseEventRow builds a Lecture from one event row and its day context.
// Any deviation from the expected detail format is an error; the caller
// treats it as a per-row skip.
func parseEventRow(row Row, day time.Time) (Lecture, error) {
	lines := strings.Split(row.Detail, "\n")
	if len(lines) < 3 {
		return Lecture{}, fmt.Errorf("schedule: detail block has %d lines, want 3", len(lines))
	}

	idText, courseName, ok := strings.Cut(lines[0], detailSeparator)
	if !ok {
		return Lecture{}, fmt.Errorf("schedule: course line %q has no separator", lines[0])
	}
	courseID, err := strconv.Atoi(strings.TrimSpace(idText))
	if err != nil {
		return Lecture{}, fmt.Errorf("schedule: course id: %w", err)
	}

	groupText, typeLabel, ok := strings.Cut(lines[1], detailSeparator)
	if !ok {
		return Lecture{}, fmt.Errorf("schedule: group line %q has no separator", lines[1])
	}
	groupNum, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(groupText, groupPrefix)))
	if err != nil {
		return Lecture{}, fmt.Errorf("schedule: group number: %w", err)
	}

	classroom := strings.TrimPrefix(lines[2], roomPrefix)

	startTime, endTime, err := parseTimeRange(row.TimeRange, day)
	if err != nil {
		return Lecture{}, err
	}

	return Lecture{
		CourseID:   courseID,
		CourseName: courseName,
		Classroom:  classroom,
		GroupNum:   groupNum,
		Type:       LectureTypeFromLabel(typeLabel),
		Start:      startTime,
		End:        endTime,
	}, nil
}

// parseTimeRange combines an "HH:MM - HH:MM" range with the day context to
// build full start/end timestamps in the day's location.
func parseTimeRange(text string, day time.Time) (time.Time, time.Time, error) {
	startText, endText, ok := strings.Cut(text, " - ")
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("schedule: time range %q has no separator", text)
	}

	start, err := clockOnDay(strings.TrimSpace(startText), day)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := clockOnDay(strings.TrimSpace(endText), day)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("schedule: start %s not before end %s", startText, endText)
	}
	return start, end, nil
}

func clockOnDay(clock string, day time.Time) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("schedule: clock time %q: %w", clock, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
