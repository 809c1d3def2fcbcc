package app

import (
	"errors"
	"fmt"
)

// Stage names one step of the enhancement pipeline for failure attribution.
type Stage string

const (
	StageFetch      Stage = "fetch"
	StageSearch     Stage = "search"
	StageScrape     Stage = "scrape"
	StageSynthesize Stage = "synthesize"
	StagePersist    Stage = "persist"
)

// ErrInsufficientResults is returned when the search surface yields fewer
// usable results than the run needs.
var ErrInsufficientResults = errors.New("insufficient search results")

// ErrNoReferenceContent is returned when every candidate URL failed to
// scrape, leaving nothing to feed the synthesizer.
var ErrNoReferenceContent = errors.New("no reference content scraped")

// AbortError tags a run-terminating failure with the stage that produced it.
// Per-URL scrape failures are recovered and never become AbortErrors on
// their own.
type AbortError struct {
	Stage Stage
	Err   error
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *AbortError) Unwrap() error { return e.Err }

func abort(stage Stage, err error) error {
	return &AbortError{Stage: stage, Err: err}
}
