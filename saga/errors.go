package saga

import "errors"

var (
	ErrUnknownState         = errors.New("state has no transition")
	ErrMalformedRaceOutcome = errors.New("malformed race outcome")
	ErrUnexpectedResult     = errors.New("unexpected resume value")
)
