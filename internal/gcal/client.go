package gcal

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/mpuigdom/campsched/internal/logger"
	"github.com/mpuigdom/campsched/internal/schedule"
)

// Client wraps the Google Calendar API for campsched's owned events.
type Client struct {
	api      eventAPI
	timezone string
}

// CalendarInfo describes one calendar the user can write to.
type CalendarInfo struct {
	ID      string
	Summary string
	Primary bool
}

// NewClient builds a Client from an authorized token source. The timezone
// is attached to every event body written through this client.
func NewClient(ctx context.Context, ts oauth2.TokenSource, timezone string) (*Client, error) {
	svc, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("gcal: creating calendar service: %w", err)
	}
	return &Client{api: &serviceAPI{svc: svc}, timezone: timezone}, nil
}

// ListCalendars returns the calendars the user can write events to.
func (c *Client) ListCalendars(ctx context.Context) ([]CalendarInfo, error) {
	items, err := c.api.listCalendars(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcal: listing calendars: %w", WrapError(err))
	}

	calendars := make([]CalendarInfo, 0, len(items))
	for _, item := range items {
		calendars = append(calendars, CalendarInfo{
			ID:      item.Id,
			Summary: item.Summary,
			Primary: item.Primary,
		})
	}
	return calendars, nil
}

// ListOwned returns the campsched-owned events in the calendar whose start
// falls inside [from, to]. Only events carrying the ownership marker are
// returned; events of other tools and manual entries are invisible here.
func (c *Client) ListOwned(ctx context.Context, calendarID string, from, to time.Time) ([]schedule.OwnedEvent, error) {
	items, err := c.api.listEvents(ctx, calendarID, from, to)
	if err != nil {
		return nil, fmt.Errorf("gcal: listing owned events: %w", WrapError(err))
	}

	owned := make([]schedule.OwnedEvent, 0, len(items))
	for _, evt := range items {
		fp := eventFingerprint(evt)
		if fp == "" {
			// Owned but unidentifiable; reconciliation cannot match it.
			logger.Warn("owned event without fingerprint, ignoring", logger.Fields{
				"event_id": evt.Id,
				"summary":  evt.Summary,
			})
			continue
		}
		owned = append(owned, schedule.OwnedEvent{ID: evt.Id, Fingerprint: fp})
	}
	return owned, nil
}

// eventAPI is the slice of the Calendar API the client needs. The
// indirection keeps plan execution testable without a live service.
type eventAPI interface {
	listCalendars(ctx context.Context) ([]*calendar.CalendarListEntry, error)
	listEvents(ctx context.Context, calendarID string, from, to time.Time) ([]*calendar.Event, error)
	insert(ctx context.Context, calendarID string, evt *calendar.Event) (*calendar.Event, error)
	update(ctx context.Context, calendarID, eventID string, evt *calendar.Event) (*calendar.Event, error)
	delete(ctx context.Context, calendarID, eventID string) error
}

type serviceAPI struct {
	svc *calendar.Service
}

func (s *serviceAPI) listCalendars(ctx context.Context) ([]*calendar.CalendarListEntry, error) {
	var items []*calendar.CalendarListEntry
	call := s.svc.CalendarList.List().MinAccessRole("writer")
	err := call.Pages(ctx, func(page *calendar.CalendarList) error {
		items = append(items, page.Items...)
		return nil
	})
	return items, err
}

func (s *serviceAPI) listEvents(ctx context.Context, calendarID string, from, to time.Time) ([]*calendar.Event, error) {
	var items []*calendar.Event
	call := s.svc.Events.List(calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		PrivateExtendedProperty(ownershipKey + "=" + ownershipValue).
		SingleEvents(true)
	err := call.Pages(ctx, func(page *calendar.Events) error {
		items = append(items, page.Items...)
		return nil
	})
	return items, err
}

func (s *serviceAPI) insert(ctx context.Context, calendarID string, evt *calendar.Event) (*calendar.Event, error) {
	return s.svc.Events.Insert(calendarID, evt).Context(ctx).Do()
}

func (s *serviceAPI) update(ctx context.Context, calendarID, eventID string, evt *calendar.Event) (*calendar.Event, error) {
	return s.svc.Events.Update(calendarID, eventID, evt).Context(ctx).Do()
}

func (s *serviceAPI) delete(ctx context.Context, calendarID, eventID string) error {
	return s.svc.Events.Delete(calendarID, eventID).Context(ctx).Do()
}
