// Package export writes a lecture list to a universal .ics calendar file,
// for users who prefer importing their schedule manually over the Google
// Calendar integration.
package export

import (
	"fmt"
	"os"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/mpuigdom/campsched/internal/schedule"
)

// Calendar builds an iCalendar document with one VEVENT per lecture.
// Event UIDs reuse the lecture fingerprints, so re-importing a newer
// export updates events instead of duplicating them.
func Calendar(lectures []schedule.Lecture) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	now := time.Now().UTC()
	for _, lec := range lectures {
		evt := cal.AddEvent(lec.Fingerprint())
		evt.SetDtStampTime(now)
		evt.SetStartAt(lec.Start)
		evt.SetEndAt(lec.End)
		evt.SetSummary(fmt.Sprintf("%d - %s", lec.CourseID, lec.CourseName))
		evt.SetLocation(lec.Classroom)
		evt.SetDescription(lec.Description())
	}
	return cal
}

// WriteFile serializes the lectures to path as an .ics file.
func WriteFile(path string, lectures []schedule.Lecture) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: creating %s: %w", path, err)
	}
	defer f.Close()

	if err := Calendar(lectures).SerializeTo(f); err != nil {
		return fmt.Errorf("export: writing %s: %w", path, err)
	}
	return nil
}
