package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/mpuigdom/campsched/internal/config"
	"github.com/mpuigdom/campsched/internal/gcal"
	"github.com/mpuigdom/campsched/internal/logger"
	"github.com/mpuigdom/campsched/internal/schedule"
	"github.com/mpuigdom/campsched/internal/scraper"
)

// scrapeLectures runs the scrape and parse stages over the date window.
func scrapeLectures(ctx context.Context, cfg *config.Config, start, end time.Time) ([]schedule.Lecture, error) {
	s := scraper.New(ctx, scraper.Options{
		BaseURL:     cfg.BaseURL,
		DNI:         cfg.DNI,
		Password:    cfg.Password,
		ShowBrowser: cfg.ShowBrowser,
		Location:    start.Location(),
	})
	defer s.Close()

	rows, err := s.FetchRows(start, end)
	if err != nil {
		return nil, err
	}

	res, err := schedule.ParseRows(rows, start, end)
	if err != nil {
		return nil, err
	}
	if res.Skipped > 0 {
		logger.Warn("some rows could not be parsed and were skipped", logger.Fields{
			"skipped": res.Skipped,
		})
	}
	logger.Info("schedule parsed", logger.Fields{"lectures": len(res.Lectures)})
	return res.Lectures, nil
}

// calendarClient authorizes against Google and builds the calendar client.
func calendarClient(ctx context.Context, mgr *config.Manager, cfg *config.Config) (*gcal.Client, error) {
	ts, err := gcal.TokenSource(ctx, mgr.ClientSecretPath(), mgr.TokenPath())
	if err != nil {
		return nil, err
	}
	tz := cfg.Timezone
	if tz == "" {
		tz = config.DefaultTimezone
	}
	return gcal.NewClient(ctx, ts, tz)
}

// lectureSpan returns the snapshot window spanned by the lectures: the
// earliest start and the latest end.
func lectureSpan(lectures []schedule.Lecture) (time.Time, time.Time, error) {
	if len(lectures) == 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("no lectures to span")
	}
	min, max := lectures[0].Start, lectures[0].End
	for _, lec := range lectures[1:] {
		if lec.Start.Before(min) {
			min = lec.Start
		}
		if lec.End.After(max) {
			max = lec.End
		}
	}
	return min, max, nil
}
