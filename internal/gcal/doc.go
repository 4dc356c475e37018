// Package gcal is the Google Calendar side of campsched: OAuth token
// handling, listing the events campsched owns in a calendar, and executing
// reconciliation plans against the Calendar API.
//
// Events created here are tagged with two private extended properties:
// an ownership marker (managedBy=campsched) and the lecture fingerprint
// (scheduler_id). Listing filters on the ownership marker, so campsched
// never touches events it did not create.
package gcal
