package main

import (
	"github.com/cockroachdb/errors"

	"github.com/matsen/quote/internal/config"
	"github.com/matsen/quote/internal/storage"
)

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, empty quote, editor failure)
	ExitConfigError = 2 // Configuration error (no editor configured)
	ExitDataError   = 3 // Data error (unreadable or corrupt store, I/O failure)
	ExitDuplicate   = 4 // Quote text already stored
)

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, config.ErrNoEditor):
		return ExitConfigError
	case errors.Is(err, storage.ErrDuplicateQuote):
		return ExitDuplicate
	case errors.Is(err, storage.ErrCorruptStore), errors.Is(err, errDataIO):
		return ExitDataError
	default:
		return ExitError
	}
}

// errDataIO marks failures reading or writing the store and index files.
var errDataIO = errors.New("data I/O error")

// dataError marks err as an I/O failure on the quote data.
func dataError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(errors.Mark(err, errDataIO), msg)
}
