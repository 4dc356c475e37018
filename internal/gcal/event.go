package gcal

import (
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/mpuigdom/campsched/internal/schedule"
)

// Private extended property keys on campsched-owned events.
const (
	ownershipKey   = "managedBy"
	ownershipValue = "campsched"
	fingerprintKey = "scheduler_id"
)

// eventBody builds the Calendar API event payload for a lecture. The
// fingerprint and ownership marker go into private extended properties so
// later runs can list and match owned events.
func eventBody(lec schedule.Lecture, timezone string) *calendar.Event {
	return &calendar.Event{
		Summary:     lec.Summary(),
		Location:    lec.Classroom,
		Description: lec.Description(),
		Start: &calendar.EventDateTime{
			DateTime: lec.Start.Format(time.RFC3339),
			TimeZone: timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: lec.End.Format(time.RFC3339),
			TimeZone: timezone,
		},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{
				fingerprintKey: lec.Fingerprint(),
				ownershipKey:   ownershipValue,
			},
		},
	}
}

// eventFingerprint extracts the stored fingerprint from a remote event.
// Returns "" for events without one (which should not happen for events
// matched by the ownership filter).
func eventFingerprint(evt *calendar.Event) string {
	if evt.ExtendedProperties == nil || evt.ExtendedProperties.Private == nil {
		return ""
	}
	return evt.ExtendedProperties.Private[fingerprintKey]
}
