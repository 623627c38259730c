package ledger

import "fmt"

// ValidationError marks an event rejected before any market-data
// lookup: malformed symbol, implausible timestamp, missing fields.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid event %s: %s", e.Field, e.Reason)
}

// DuplicateEventError marks an identity that already won admission; the
// pipeline is not re-run for it.
type DuplicateEventError struct {
	EventID string
}

func (e *DuplicateEventError) Error() string {
	return "duplicate event " + e.EventID
}
