package attachment

import "errors"

// Validation errors raised before any network I/O.
var (
	// ErrEmptySysID is returned when no attachment identifier is supplied.
	ErrEmptySysID = errors.New("attachment sys_id is required")

	// ErrEmptyFileName is returned when no usable file name is supplied.
	ErrEmptyFileName = errors.New("file name is required")

	// ErrInvalidDestination is returned when the destination directory does
	// not exist or is not a directory.
	ErrInvalidDestination = errors.New("invalid destination directory")

	// ErrFileExists is returned when the target path is already present and
	// overwriting was not requested.
	ErrFileExists = errors.New("file already exists")
)
