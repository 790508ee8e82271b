package domain

import "fmt"

// InvalidAssumptionsError reports a validation failure in a resolved or
// sampled assumption set. It is fatal: no simulation work happens after it.
type InvalidAssumptionsError struct {
	Field  string
	Reason string
}

func (e *InvalidAssumptionsError) Error() string {
	return fmt.Sprintf("invalid assumptions: %s %s", e.Field, e.Reason)
}

// MalformedRatePathError reports a rate series whose length does not match
// the projection horizon. It indicates an internal contract violation, not
// bad user input.
type MalformedRatePathError struct {
	Series string
	Got    int
	Want   int
}

func (e *MalformedRatePathError) Error() string {
	return fmt.Sprintf("rate path %s has length %d, want horizon %d", e.Series, e.Got, e.Want)
}
