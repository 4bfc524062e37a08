package pipeline

import (
	"errors"
	"fmt"

	"github.com/wonny/ideagen/internal/universe"
)

// ErrRegimeUnavailable fails the whole run: the benchmark could not be fetched or classified
var ErrRegimeUnavailable = errors.New("market regime unavailable")

// FetchError is a per-instrument transport/parse failure; the run continues
type FetchError struct {
	Symbol string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// SkipError marks an instrument excluded by the gate before any strategy ran
type SkipError struct {
	Symbol string
	Reason universe.Reason
}

func (e *SkipError) Error() string {
	return fmt.Sprintf("skip %s: %s", e.Symbol, e.Reason)
}
