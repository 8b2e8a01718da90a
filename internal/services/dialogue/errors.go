package dialogue

import "errors"

var (
	// ErrLineNotFound is returned when no dialogue line matches a file
	ErrLineNotFound = errors.New("dialogue line not found")

	// ErrUnrecognisedFilename is returned for files not named <character>-line-<n>.wav
	ErrUnrecognisedFilename = errors.New("unrecognised dialogue filename")

	// ErrInvalidScript is returned when a parsed script cannot be read
	ErrInvalidScript = errors.New("invalid parsed script")
)
