// Package schedule provides the lecture data model, the row parser that
// reconstructs lectures from the flat agenda row stream, and the
// reconciliation planner that diffs a desired lecture set against the
// owned events already present in the remote calendar.
//
// Each lecture carries a deterministic fingerprint derived from its course
// id, group number and start time. The fingerprint is stored in remote
// event metadata at creation time, which lets repeated runs match lectures
// to the events they created earlier and compute a minimal
// create/update/delete plan.
package schedule
