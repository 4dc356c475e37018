// Package cli wires the campsched commands: sync, export, delete,
// configure, and clean. Commands are thin wrappers that resolve a date
// window, run the scrape/parse/plan pipeline, and gate any calendar
// mutation behind an explicit confirmation prompt.
package cli
