// Package scraper drives a headless Chromium session against the
// university's virtual secretary and collects the raw agenda rows of the
// schedule list view.
//
// Navigation (login, reaching the agenda, week-by-week pagination) runs
// through chromedp; the HTML of each agenda page is handed to a goquery
// parser that turns table rows into schedule.Row values. The parser side
// is pure and tested against a fixture, the navigation side owns the
// browser lifecycle.
package scraper
