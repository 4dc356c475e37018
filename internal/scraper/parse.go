package scraper

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/mpuigdom/campsched/internal/schedule"
)

// Selectors inside the agenda list table.
const (
	rowSelector    = "tbody tr"
	titleSelector  = ".fc-event-title"
	timeSelector   = ".fc-list-event-time"
	dateAttr       = "data-date"
	headerDateForm = "2006-01-02"
)

// parseAgendaRows extracts raw rows from one agenda page's list-table
// HTML. It returns the rows in document order plus the latest day-header
// date seen on the page; a zero time means the page had no day rows,
// which ends pagination.
func parseAgendaRows(html string, loc *time.Location) ([]schedule.Row, time.Time, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("scraper: parsing agenda HTML: %w", err)
	}

	var rows []schedule.Row
	var maxDay time.Time

	var dateErr error
	doc.Find(rowSelector).Each(func(_ int, sel *goquery.Selection) {
		classAttr, _ := sel.Attr("class")
		row := schedule.Row{
			Classes:   strings.Fields(classAttr),
			Detail:    textWithNewlines(sel.Find(titleSelector)),
			TimeRange: strings.TrimSpace(sel.Find(timeSelector).Text()),
		}
		if row.HasClass(schedule.ClassDayHeader) {
			row.HeaderDate, _ = sel.Attr(dateAttr)
			day, err := time.ParseInLocation(headerDateForm, row.HeaderDate, loc)
			if err != nil {
				if dateErr == nil {
					dateErr = fmt.Errorf("scraper: day row with bad %s %q: %w", dateAttr, row.HeaderDate, err)
				}
				return
			}
			if day.After(maxDay) {
				maxDay = day
			}
		}
		rows = append(rows, row)
	})
	if dateErr != nil {
		return nil, time.Time{}, dateErr
	}

	return rows, maxDay, nil
}

// textWithNewlines extracts the text of a selection with <br> separators
// preserved as newlines, matching what a browser's innerText would yield
// for the event title cell.
func textWithNewlines(sel *goquery.Selection) string {
	clone := sel.Clone()
	clone.Find("br").ReplaceWithHtml("\n")
	lines := strings.Split(clone.Text(), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
