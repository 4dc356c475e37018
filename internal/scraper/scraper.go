package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/mpuigdom/campsched/internal/logger"
	"github.com/mpuigdom/campsched/internal/schedule"
)

const (
	// DefaultTimeout bounds the whole scrape, login included.
	DefaultTimeout = 3 * time.Minute

	// pageSettle is the pause after each pagination click, giving
	// FullCalendar time to re-render the list table.
	pageSettle = 500 * time.Millisecond
)

// Site selectors and labels. The virtual secretary is in Catalan; the
// text-based XPath selectors follow the labels the site renders.
const (
	selDNIInput      = `//input[contains(translate(@name,"DNI","dni"),"dni")]`
	selPasswordInput = `//input[@type="password"]`
	selLoginButton   = `//button[contains(.,"Entrar")] | //input[@value="Entrar"]`
	selScheduleLink  = `//a[contains(.,"Horaris de classe")]`
	selCalendarLink  = `//a[contains(.,"Veure Calendari")]`
	selWeekButton    = `//button[contains(.,"Setmana")]`
	selAgendaButton  = `//button[contains(.,"Agenda")]`
	selMonthCombo    = `#comboMesesAnyos`
	selNextButton    = `.fc-next-button`
	selListTable     = `.fc-list-table`

	emptyWeekText = "No hi ha esdeveniments per"
)

// ErrLoginFailed reports that the virtual secretary rejected the
// configured credentials.
var ErrLoginFailed = errors.New("scraper: login failed")

// Options configures a scrape session.
type Options struct {
	BaseURL  string
	DNI      string
	Password string

	// ShowBrowser disables headless mode.
	ShowBrowser bool

	// Timeout bounds the whole scrape. Zero means DefaultTimeout.
	Timeout time.Duration

	// Location is the timezone day-header dates are interpreted in.
	Location *time.Location
}

// Scraper owns one browser session against the virtual secretary.
type Scraper struct {
	opts   Options
	ctx    context.Context
	cancel []context.CancelFunc
}

// New launches a browser session. Close must be called to release it.
func New(parent context.Context, opts Options) *Scraper {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", !opts.ShowBrowser),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, allocOpts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	return &Scraper{
		opts:   opts,
		ctx:    browserCtx,
		cancel: []context.CancelFunc{cancelBrowser, cancelAlloc},
	}
}

// Close releases the browser session.
func (s *Scraper) Close() {
	for _, cancel := range s.cancel {
		cancel()
	}
}

// FetchRows logs in, navigates to the agenda view, and paginates week by
// week collecting raw rows until the page dates pass the window end. Any
// navigation failure is fatal: a partially scraped schedule is never
// returned.
func (s *Scraper) FetchRows(start, end time.Time) ([]schedule.Row, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("scraper: end date %s before start date %s",
			end.Format("02-01-2006"), start.Format("02-01-2006"))
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.opts.Timeout)
	defer cancel()

	logger.Info("logging in to virtual secretary", logger.Fields{"base_url": s.opts.BaseURL})
	if err := s.login(ctx); err != nil {
		return nil, err
	}

	logger.Info("navigating to schedule agenda", nil)
	if err := s.navigateToAgenda(ctx); err != nil {
		return nil, err
	}

	if err := s.selectMonth(ctx, start); err != nil {
		return nil, err
	}
	if err := s.skipEmptyWeeks(ctx); err != nil {
		return nil, err
	}

	return s.collectRows(ctx, start, end)
}

// login submits the credentials on the landing page.
func (s *Scraper) login(ctx context.Context) error {
	err := chromedp.Run(ctx,
		chromedp.Navigate(s.opts.BaseURL),
		chromedp.WaitVisible(selDNIInput),
		chromedp.SendKeys(selDNIInput, s.opts.DNI),
		chromedp.SendKeys(selPasswordInput, s.opts.Password),
		chromedp.Click(selLoginButton),
		chromedp.WaitVisible(selScheduleLink),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}
	return nil
}

// navigateToAgenda walks from the dashboard to the agenda list view.
func (s *Scraper) navigateToAgenda(ctx context.Context) error {
	err := chromedp.Run(ctx,
		chromedp.Click(selScheduleLink),
		chromedp.WaitVisible(selCalendarLink),
		chromedp.Click(selCalendarLink),
		chromedp.WaitVisible(selWeekButton),
		chromedp.Click(selAgendaButton),
		chromedp.WaitVisible(selListTable, chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("scraper: reaching agenda view: %w", err)
	}
	return nil
}

// selectMonth jumps the calendar to the month containing the window
// start, so pagination begins close to the window instead of today.
func (s *Scraper) selectMonth(ctx context.Context, start time.Time) error {
	// The combo uses "M/YYYY" values without a leading zero.
	value := fmt.Sprintf("%d/%d", int(start.Month()), start.Year())
	script := fmt.Sprintf(`(() => {
		const combo = document.querySelector(%q);
		if (!combo) { return false; }
		combo.value = %q;
		combo.dispatchEvent(new Event("change", { bubbles: true }));
		return true;
	})()`, selMonthCombo, value)

	var ok bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(script, &ok), chromedp.Sleep(pageSettle)); err != nil {
		return fmt.Errorf("scraper: selecting month %s: %w", value, err)
	}
	if !ok {
		return fmt.Errorf("scraper: month selector %s not found", selMonthCombo)
	}
	return nil
}

// skipEmptyWeeks advances past leading weeks with no events at all, which
// the agenda renders as an empty-state message instead of a table.
func (s *Scraper) skipEmptyWeeks(ctx context.Context) error {
	for {
		empty, err := s.weekIsEmpty(ctx)
		if err != nil {
			return err
		}
		if !empty {
			return nil
		}
		if err := s.nextWeek(ctx); err != nil {
			return err
		}
	}
}

func (s *Scraper) weekIsEmpty(ctx context.Context) (bool, error) {
	script := fmt.Sprintf(`document.body.innerText.includes(%q)`, emptyWeekText)
	var empty bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(script, &empty)); err != nil {
		return false, fmt.Errorf("scraper: checking for empty week: %w", err)
	}
	return empty, nil
}

func (s *Scraper) nextWeek(ctx context.Context) error {
	err := chromedp.Run(ctx,
		chromedp.Click(selNextButton, chromedp.ByQuery),
		chromedp.Sleep(pageSettle),
	)
	if err != nil {
		return fmt.Errorf("scraper: advancing to next week: %w", err)
	}
	return nil
}

// collectRows paginates week by week, accumulating raw rows, until a page
// has no day rows left or its latest day passes the window end.
func (s *Scraper) collectRows(ctx context.Context, start, end time.Time) ([]schedule.Row, error) {
	var all []schedule.Row
	for {
		html, err := s.listTableHTML(ctx)
		if err != nil {
			return nil, err
		}

		rows, maxDay, err := parseAgendaRows(html, s.opts.Location)
		if err != nil {
			return nil, err
		}
		all = append(all, rows...)

		if maxDay.IsZero() {
			// No day rows on this page; nothing further to paginate.
			break
		}
		logger.Debug("scraped agenda page", logger.Fields{
			"rows":    len(rows),
			"max_day": maxDay.Format("2006-01-02"),
		})
		if maxDay.After(end) {
			break
		}
		if err := s.nextWeek(ctx); err != nil {
			return nil, err
		}
	}

	logger.Info("scrape complete", logger.Fields{"rows": len(all)})
	return all, nil
}

func (s *Scraper) listTableHTML(ctx context.Context) (string, error) {
	script := fmt.Sprintf(`(() => {
		const table = document.querySelector(%q);
		return table ? table.outerHTML : "";
	})()`, selListTable)

	var html string
	if err := chromedp.Run(ctx, chromedp.Evaluate(script, &html)); err != nil {
		return "", fmt.Errorf("scraper: reading agenda table: %w", err)
	}
	return html, nil
}
