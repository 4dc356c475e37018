package schedule

// Agenda row class names emitted by the FullCalendar list view.
const (
	ClassDayHeader = "fc-list-day"
	ClassEvent     = "fc-event"
	ClassLecture   = "assig"
	ClassHoliday   = "festiu"
)

// Row is one raw row of the agenda list view, as collected by the scraper.
// Rows arrive in the chronological order produced by week-by-week
// pagination; the parser relies on that ordering.
type Row struct {
	// Classes is the row's CSS class list, used to tag the row as a day
	// header, an event, a holiday, or filler.
	Classes []string

	// Detail is the newline-delimited detail block of an event row:
	// course line, group/type line, room line.
	Detail string

	// TimeRange is the "HH:MM - HH:MM" text of an event row.
	TimeRange string

	// HeaderDate is the ISO date of a day-header row, empty otherwise.
	HeaderDate string
}

// HasClass reports whether the row carries the given class name.
func (r Row) HasClass(name string) bool {
	for _, c := range r.Classes {
		if c == name {
			return true
		}
	}
	return false
}
