package gcal

import (
	"context"

	"github.com/mpuigdom/campsched/internal/schedule"
)

// OpKind identifies the type of a plan operation.
type OpKind string

const (
	OpCreate OpKind = "create"
	OpUpdate OpKind = "update"
	OpDelete OpKind = "delete"
)

// OpResult is the outcome of one plan operation.
type OpResult struct {
	Kind        OpKind
	Fingerprint string
	EventID     string
	Summary     string
	Err         error
}

// Failed reports whether the operation failed.
func (r OpResult) Failed() bool { return r.Err != nil }

// Execute applies a reconciliation plan to the calendar, one result per
// operation. Failures are isolated: a failed operation is recorded and
// the batch continues; nothing is retried. Only a cancelled context stops
// the batch early, and the results gathered so far are returned along
// with the context error.
func (c *Client) Execute(ctx context.Context, calendarID string, plan *schedule.Plan) ([]OpResult, error) {
	results := make([]OpResult, 0, plan.Total())

	for _, lec := range plan.Create {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		created, err := c.api.insert(ctx, calendarID, eventBody(lec, c.timezone))
		res := OpResult{
			Kind:        OpCreate,
			Fingerprint: lec.Fingerprint(),
			Summary:     lec.Summary(),
			Err:         WrapError(err),
		}
		if err == nil {
			res.EventID = created.Id
		}
		results = append(results, res)
	}

	for _, op := range plan.Update {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		_, err := c.api.update(ctx, calendarID, op.EventID, eventBody(op.Lecture, c.timezone))
		results = append(results, OpResult{
			Kind:        OpUpdate,
			Fingerprint: op.Fingerprint,
			EventID:     op.EventID,
			Summary:     op.Lecture.Summary(),
			Err:         WrapError(err),
		})
	}

	for _, eventID := range plan.Delete {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		err := c.api.delete(ctx, calendarID, eventID)
		if IsNotFound(err) {
			// Already gone; deleting it was the goal.
			err = nil
		}
		results = append(results, OpResult{
			Kind:    OpDelete,
			EventID: eventID,
			Err:     WrapError(err),
		})
	}

	return results, nil
}
