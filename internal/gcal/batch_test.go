package gcal

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"

	"github.com/mpuigdom/campsched/internal/schedule"
)

// fakeAPI implements eventAPI in memory and can fail selected operations.
type fakeAPI struct {
	inserted []string // fingerprints
	updated  []string // event ids
	deleted  []string // event ids

	failInsertFor map[string]error // fingerprint → error
	failDeleteFor map[string]error // event id → error

	events []*calendar.Event
}

func (f *fakeAPI) listCalendars(context.Context) ([]*calendar.CalendarListEntry, error) {
	return nil, nil
}

func (f *fakeAPI) listEvents(context.Context, string, time.Time, time.Time) ([]*calendar.Event, error) {
	return f.events, nil
}

func (f *fakeAPI) insert(_ context.Context, _ string, evt *calendar.Event) (*calendar.Event, error) {
	fp := evt.ExtendedProperties.Private[fingerprintKey]
	if err := f.failInsertFor[fp]; err != nil {
		return nil, err
	}
	f.inserted = append(f.inserted, fp)
	evt.Id = "created-" + fp
	return evt, nil
}

func (f *fakeAPI) update(_ context.Context, _ string, eventID string, _ *calendar.Event) (*calendar.Event, error) {
	f.updated = append(f.updated, eventID)
	return &calendar.Event{Id: eventID}, nil
}

func (f *fakeAPI) delete(_ context.Context, _ string, eventID string) error {
	if err := f.failDeleteFor[eventID]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, eventID)
	return nil
}

func testPlan() *schedule.Plan {
	lec := testLecture()
	other := lec
	other.CourseID = 102
	return &schedule.Plan{
		Create: []schedule.Lecture{lec},
		Update: []schedule.UpdateOp{{Fingerprint: other.Fingerprint(), EventID: "ev-2", Lecture: other}},
		Delete: []string{"ev-3"},
	}
}

func TestExecute(t *testing.T) {
	t.Run("applies every operation", func(t *testing.T) {
		api := &fakeAPI{}
		c := &Client{api: api, timezone: "Europe/Madrid"}

		results, err := c.Execute(context.Background(), "primary", testPlan())
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		if len(results) != 3 {
			t.Fatalf("expected 3 results, got %d", len(results))
		}
		for _, res := range results {
			if res.Failed() {
				t.Errorf("%s operation failed: %v", res.Kind, res.Err)
			}
		}
		if len(api.inserted) != 1 || len(api.updated) != 1 || len(api.deleted) != 1 {
			t.Errorf("expected 1/1/1 calls, got %d/%d/%d", len(api.inserted), len(api.updated), len(api.deleted))
		}
		if results[0].EventID == "" {
			t.Error("create result should carry the new event id")
		}
	})

	t.Run("failures are isolated", func(t *testing.T) {
		plan := testPlan()
		api := &fakeAPI{
			failInsertFor: map[string]error{
				plan.Create[0].Fingerprint(): &googleapi.Error{Code: http.StatusForbidden},
			},
		}
		c := &Client{api: api, timezone: "Europe/Madrid"}

		results, err := c.Execute(context.Background(), "primary", plan)
		if err != nil {
			t.Fatalf("Execute must not fail on per-operation errors: %v", err)
		}
		if len(results) != 3 {
			t.Fatalf("expected 3 results, got %d", len(results))
		}
		if !results[0].Failed() || !errors.Is(results[0].Err, ErrForbidden) {
			t.Errorf("expected wrapped forbidden error on create, got %v", results[0].Err)
		}
		// The failed create must not block the update and delete.
		if len(api.updated) != 1 || len(api.deleted) != 1 {
			t.Errorf("remaining operations did not run: %d updates, %d deletes", len(api.updated), len(api.deleted))
		}
	})

	t.Run("delete of a vanished event succeeds", func(t *testing.T) {
		plan := &schedule.Plan{Delete: []string{"gone"}}
		api := &fakeAPI{
			failDeleteFor: map[string]error{"gone": &googleapi.Error{Code: http.StatusNotFound}},
		}
		c := &Client{api: api, timezone: "Europe/Madrid"}

		results, err := c.Execute(context.Background(), "primary", plan)
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		if results[0].Failed() {
			t.Errorf("deleting an already-deleted event should succeed, got %v", results[0].Err)
		}
	})

	t.Run("cancelled context stops the batch", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		c := &Client{api: &fakeAPI{}, timezone: "Europe/Madrid"}
		results, err := c.Execute(ctx, "primary", testPlan())
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if len(results) != 0 {
			t.Errorf("expected no results after immediate cancel, got %d", len(results))
		}
	})
}

func TestListOwned(t *testing.T) {
	withFP := eventBody(testLecture(), "Europe/Madrid")
	withFP.Id = "ev-1"

	api := &fakeAPI{events: []*calendar.Event{
		withFP,
		{Id: "ev-legacy", Summary: "tagged but no fingerprint"},
	}}
	c := &Client{api: api, timezone: "Europe/Madrid"}

	owned, err := c.ListOwned(context.Background(), "primary", time.Now(), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("ListOwned failed: %v", err)
	}
	if len(owned) != 1 {
		t.Fatalf("expected 1 owned event, got %d", len(owned))
	}
	if owned[0].ID != "ev-1" {
		t.Errorf("unexpected event id %s", owned[0].ID)
	}
	if owned[0].Fingerprint != testLecture().Fingerprint() {
		t.Errorf("unexpected fingerprint %s", owned[0].Fingerprint)
	}
}
