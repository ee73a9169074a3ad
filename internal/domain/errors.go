package domain

import "errors"

var (
	// ErrMissingStart means no direction marker was found on the grid.
	ErrMissingStart = errors.New("missing start marker")
	// ErrMalformedGrid means the input has no rows or an empty effective width.
	ErrMalformedGrid = errors.New("malformed grid")
	// ErrNoExit means the unobstructed patrol never leaves the grid, so neither
	// a visited count nor an obstruction count is defined.
	ErrNoExit = errors.New("guard never leaves the grid")
	// ErrInvalidReportID means a report id cannot name a stored file.
	ErrInvalidReportID = errors.New("invalid report id")
)
