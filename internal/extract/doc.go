// Package extract implements the heuristic event-extraction engine: an
// attendance-mode classifier, confidence-tiered meeting-link matching, and
// ordered strategy chains for date, time, location, title and description,
// orchestrated by Engine into a canonical event record.
package extract
