package analyses

import "errors"

var (
	// ErrRunNotFound is returned when a run is not found
	ErrRunNotFound = errors.New("run not found")

	// ErrAnalysisNotFound is returned when an analysis is not found
	ErrAnalysisNotFound = errors.New("analysis not found")

	// ErrInvalidRunID is returned when a run ID is empty
	ErrInvalidRunID = errors.New("invalid run ID")

	// ErrRunFinished is returned when completing a run that already finished
	ErrRunFinished = errors.New("run already finished")

	// ErrInvalidRetention is returned when pruning with a non-positive age
	ErrInvalidRetention = errors.New("retention age must be positive")
)
