package schedule

import (
	"fmt"
	"time"
)

// LectureType classifies a lecture by its teaching format.
type LectureType int

const (
	Theory LectureType = iota
	Lab
	Seminar
)

// lectureTypeLabels maps the labels used by the university site to lecture
// types. Unrecognized labels fall back to Theory.
var lectureTypeLabels = map[string]LectureType{
	"Teoria":     Theory,
	"Pràctiques": Lab,
	"Seminari":   Seminar,
}

// LectureTypeFromLabel maps a source-site label to a LectureType.
// Unrecognized labels map to Theory.
func LectureTypeFromLabel(label string) LectureType {
	if t, ok := lectureTypeLabels[label]; ok {
		return t
	}
	return Theory
}

// Label returns the source-site label for the lecture type.
func (t LectureType) Label() string {
	switch t {
	case Lab:
		return "Pràctiques"
	case Seminar:
		return "Seminari"
	default:
		return "Teoria"
	}
}

// Lecture is a single scheduled class session. Lectures are value types:
// built once by the parser, never mutated.
type Lecture struct {
	CourseID   int
	CourseName string
	Classroom  string
	GroupNum   int
	Type       LectureType
	Start      time.Time
	End        time.Time
}

// Fingerprint returns a deterministic identity for the lecture, stable
// across runs as long as the source data is unchanged. It is stored in
// remote event metadata so later runs can match lectures to the events
// they created.
func (l Lecture) Fingerprint() string {
	return fmt.Sprintf("campsched%dg%dt%d", l.CourseID, l.GroupNum, l.Start.Unix())
}

// Summary returns the display title used for calendar events.
func (l Lecture) Summary() string {
	return fmt.Sprintf("%s - %s", l.CourseName, l.Type.Label())
}

// Description returns the descriptive body used for calendar events.
func (l Lecture) Description() string {
	return fmt.Sprintf("%s - Group %d", l.Type.Label(), l.GroupNum)
}

func (l Lecture) String() string {
	return fmt.Sprintf("%d - %s | Group %d | %s | %s | %s - %s",
		l.CourseID, l.CourseName, l.GroupNum, l.Type.Label(), l.Classroom,
		l.Start.Format("2006-01-02 15:04"), l.End.Format("15:04"))
}
