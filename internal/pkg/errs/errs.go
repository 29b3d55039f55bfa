// Package errs wraps cockroachdb/errors so the rest of the codebase marks and
// wraps errors through one place.
package errs

import (
	"fmt"
	"strings"

	cockroach "github.com/cockroachdb/errors"
)

func New(msg string) error {
	return cockroach.New(msg)
}

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cockroach.Wrap(err, msg)
}

// Mark attaches markErr as a sentinel so errors.Is(err, markErr) holds without
// markErr appearing in the message chain.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cockroach.Mark(err, markErr)
}

// ExtractStackLines renders the error with its stack trace and returns at most
// maxLines lines, for structured log fields.
func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	lines := strings.Split(fmt.Sprintf("%+v", err), "\n")
	if maxLines > 0 && len(lines) > maxLines {
		return lines[:maxLines]
	}
	return lines
}
