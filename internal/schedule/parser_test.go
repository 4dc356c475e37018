package schedule

import (
	"errors"
	"testing"
	"time"
)

func day(date string) Row {
	return Row{Classes: []string{ClassDayHeader}, HeaderDate: date}
}

func lectureRow(detail, timeRange string) Row {
	return Row{
		Classes:   []string{ClassEvent, ClassLecture},
		Detail:    detail,
		TimeRange: timeRange,
	}
}

func window(start, end string) (time.Time, time.Time) {
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		panic(err)
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil {
		panic(err)
	}
	return s, e
}

func TestParseRows(t *testing.T) {
	algoRow := lectureRow("101 - Algorithms\nGrup 1 - Teoria\nAula C1", "09:00 - 11:00")

	t.Run("single lecture", func(t *testing.T) {
		start, end := window("2025-09-20", "2025-09-29")
		res, err := ParseRows([]Row{day("2025-09-22"), algoRow}, start, end)
		if err != nil {
			t.Fatalf("ParseRows failed: %v", err)
		}
		if len(res.Lectures) != 1 {
			t.Fatalf("expected 1 lecture, got %d", len(res.Lectures))
		}

		lec := res.Lectures[0]
		if lec.CourseID != 101 {
			t.Errorf("expected course id 101, got %d", lec.CourseID)
		}
		if lec.CourseName != "Algorithms" {
			t.Errorf("expected course name Algorithms, got %q", lec.CourseName)
		}
		if lec.GroupNum != 1 {
			t.Errorf("expected group 1, got %d", lec.GroupNum)
		}
		if lec.Type != Theory {
			t.Errorf("expected Theory, got %v", lec.Type)
		}
		if lec.Classroom != "C1" {
			t.Errorf("expected classroom C1, got %q", lec.Classroom)
		}
		if got := lec.Start.Format("2006-01-02 15:04"); got != "2025-09-22 09:00" {
			t.Errorf("expected start 2025-09-22 09:00, got %s", got)
		}
		if got := lec.End.Format("2006-01-02 15:04"); got != "2025-09-22 11:00" {
			t.Errorf("expected end 2025-09-22 11:00, got %s", got)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		start, end := window("2025-09-20", "2025-09-29")
		rows := []Row{day("2025-09-22"), algoRow}

		first, err := ParseRows(rows, start, end)
		if err != nil {
			t.Fatalf("first parse failed: %v", err)
		}
		second, err := ParseRows(rows, start, end)
		if err != nil {
			t.Fatalf("second parse failed: %v", err)
		}
		if len(first.Lectures) != len(second.Lectures) {
			t.Fatalf("parses disagree: %d vs %d lectures", len(first.Lectures), len(second.Lectures))
		}
		for i := range first.Lectures {
			if first.Lectures[i] != second.Lectures[i] {
				t.Errorf("lecture %d differs between parses", i)
			}
		}
	})

	t.Run("event before day header is fatal", func(t *testing.T) {
		start, end := window("2025-09-20", "2025-09-29")
		res, err := ParseRows([]Row{algoRow, day("2025-09-22")}, start, end)
		if !errors.Is(err, ErrNoDayContext) {
			t.Fatalf("expected ErrNoDayContext, got %v", err)
		}
		if res != nil {
			t.Error("expected nil result on fatal parse error")
		}
	})

	t.Run("window bounds are inclusive", func(t *testing.T) {
		start, end := window("2025-09-22", "2025-09-24")
		rows := []Row{
			day("2025-09-21"), algoRow, // before window: skipped
			day("2025-09-22"), algoRow, // on start: included
			day("2025-09-24"), algoRow, // on end: included
		}
		res, err := ParseRows(rows, start, end)
		if err != nil {
			t.Fatalf("ParseRows failed: %v", err)
		}
		if len(res.Lectures) != 2 {
			t.Fatalf("expected 2 lectures, got %d", len(res.Lectures))
		}
		if got := res.Lectures[0].Start.Format("2006-01-02"); got != "2025-09-22" {
			t.Errorf("expected first lecture on 2025-09-22, got %s", got)
		}
		if got := res.Lectures[1].Start.Format("2006-01-02"); got != "2025-09-24" {
			t.Errorf("expected second lecture on 2025-09-24, got %s", got)
		}
	})

	t.Run("day past window end stops the parse", func(t *testing.T) {
		start, end := window("2025-09-20", "2025-09-23")
		rows := []Row{
			day("2025-09-22"), algoRow,
			day("2025-09-24"), algoRow, // past end: parse stops here
			day("2025-09-22"), algoRow, // never reached
		}
		res, err := ParseRows(rows, start, end)
		if err != nil {
			t.Fatalf("ParseRows failed: %v", err)
		}
		if len(res.Lectures) != 1 {
			t.Fatalf("expected 1 lecture, got %d", len(res.Lectures))
		}
	})

	t.Run("holiday and non-lecture rows are ignored", func(t *testing.T) {
		start, end := window("2025-09-20", "2025-09-29")
		rows := []Row{
			day("2025-09-22"),
			{Classes: []string{ClassEvent, ClassHoliday}, Detail: "Festa Major", TimeRange: "00:00 - 23:59"},
			{Classes: []string{ClassEvent}, Detail: "Tutoria", TimeRange: "10:00 - 11:00"},
			{Classes: []string{"fc-list-empty"}},
			algoRow,
		}
		res, err := ParseRows(rows, start, end)
		if err != nil {
			t.Fatalf("ParseRows failed: %v", err)
		}
		if len(res.Lectures) != 1 {
			t.Fatalf("expected 1 lecture, got %d", len(res.Lectures))
		}
		if res.Skipped != 0 {
			t.Errorf("ignored rows must not count as skipped, got %d", res.Skipped)
		}
	})

	t.Run("malformed detail block is skipped and counted", func(t *testing.T) {
		start, end := window("2025-09-20", "2025-09-29")
		rows := []Row{
			day("2025-09-22"),
			lectureRow("101 - Algorithms\nGrup 1 - Teoria", "09:00 - 11:00"),      // two lines
			lectureRow("abc - Algorithms\nGrup 1 - Teoria\nAula C1", "09:00 - 11:00"), // bad course id
			lectureRow("102 - Networks\nGrup 2 - Seminari\nAula 52.019", "12:30 - 14:30"),
		}
		res, err := ParseRows(rows, start, end)
		if err != nil {
			t.Fatalf("ParseRows failed: %v", err)
		}
		if res.Skipped != 2 {
			t.Errorf("expected 2 skipped rows, got %d", res.Skipped)
		}
		if len(res.Lectures) != 1 {
			t.Fatalf("expected 1 lecture, got %d", len(res.Lectures))
		}
		if res.Lectures[0].Type != Seminar {
			t.Errorf("expected Seminar, got %v", res.Lectures[0].Type)
		}
	})

	t.Run("later day header replaces day context", func(t *testing.T) {
		start, end := window("2025-09-20", "2025-09-29")
		rows := []Row{
			day("2025-09-22"), algoRow,
			day("2025-09-23"), algoRow,
		}
		res, err := ParseRows(rows, start, end)
		if err != nil {
			t.Fatalf("ParseRows failed: %v", err)
		}
		if len(res.Lectures) != 2 {
			t.Fatalf("expected 2 lectures, got %d", len(res.Lectures))
		}
		if res.Lectures[0].Fingerprint() == res.Lectures[1].Fingerprint() {
			t.Error("lectures on different days must have different fingerprints")
		}
	})

	t.Run("bad day header date is fatal", func(t *testing.T) {
		start, end := window("2025-09-20", "2025-09-29")
		_, err := ParseRows([]Row{day("22/09/2025"), algoRow}, start, end)
		if err == nil {
			t.Fatal("expected error for malformed day header date")
		}
	})
}

func TestLectureTypeFromLabel(t *testing.T) {
	tests := []struct {
		label    string
		expected LectureType
	}{
		{"Teoria", Theory},
		{"Pràctiques", Lab},
		{"Seminari", Seminar},
		{"Problemes", Theory}, // unrecognized: default
		{"", Theory},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := LectureTypeFromLabel(tt.label); got != tt.expected {
				t.Errorf("LectureTypeFromLabel(%q) = %v, expected %v", tt.label, got, tt.expected)
			}
		})
	}
}
