package schedule

import "fmt"

// OwnedEvent is the reconciliation-relevant view of a remote calendar
// event previously created by campsched: its opaque remote id plus the
// fingerprint recorded in its metadata at creation time.
type OwnedEvent struct {
	ID          string
	Fingerprint string
}

// UpdateOp pairs a desired lecture with the remote event it should
// overwrite in place.
type UpdateOp struct {
	Fingerprint string
	EventID     string
	Lecture     Lecture
}

// Plan is the minimal set of operations that makes the remote calendar
// match the desired lecture list. The three sets are disjoint by
// fingerprint: every desired lecture lands in exactly one of Create or
// Update, and Delete holds every owned event no desired lecture claimed.
type Plan struct {
	Create []Lecture
	Update []UpdateOp
	Delete []string
}

// Total returns the number of operations in the plan.
func (p *Plan) Total() int {
	return len(p.Create) + len(p.Update) + len(p.Delete)
}

// Empty reports whether the plan contains no operations.
func (p *Plan) Empty() bool {
	return p.Total() == 0
}

// BuildPlan diffs the desired lectures against the owned events already in
// the calendar and returns the operations needed to reconcile them.
//
// The existing snapshot must be restricted to the same time window the
// desired lectures span (or, for delete-only runs, the explicit target
// window); the caller owns that boundary. When onlyDelete is set the
// desired list is not consulted and every snapshot event is deleted.
//
// Fingerprints identify events: a duplicate fingerprint, on either side,
// means the identity invariant is broken and no safe merge exists, so
// BuildPlan fails rather than guessing.
func BuildPlan(desired []Lecture, existing []OwnedEvent, onlyDelete bool) (*Plan, error) {
	index := make(map[string]OwnedEvent, len(existing))
	for _, evt := range existing {
		if _, dup := index[evt.Fingerprint]; dup {
			return nil, fmt.Errorf("schedule: duplicate fingerprint %s in calendar snapshot", evt.Fingerprint)
		}
		index[evt.Fingerprint] = evt
	}

	plan := &Plan{}

	if !onlyDelete {
		seen := make(map[string]bool, len(desired))
		for _, lec := range desired {
			fp := lec.Fingerprint()
			if seen[fp] {
				return nil, fmt.Errorf("schedule: duplicate fingerprint %s in desired lectures", fp)
			}
			seen[fp] = true

			if evt, ok := index[fp]; ok {
				delete(index, fp)
				plan.Update = append(plan.Update, UpdateOp{Fingerprint: fp, EventID: evt.ID, Lecture: lec})
			} else {
				plan.Create = append(plan.Create, lec)
			}
		}
	}

	// Whatever was not claimed by a desired lecture is an orphan.
	for _, evt := range index {
		plan.Delete = append(plan.Delete, evt.ID)
	}

	return plan, nil
}
