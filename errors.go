// Copyright 2023 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package tcglog

import (
	"errors"
	"fmt"

	"github.com/canonical/go-tpm2"
)

var (
	// ErrNilInput is returned when a walk is started without a log buffer
	// or without a visitor.
	ErrNilInput = errors.New("nil log buffer or visitor")

	// ErrVisitorAborted matches any *VisitorError.
	ErrVisitorAborted = errors.New("visitor aborted traversal")
)

// TruncatedHeaderError is returned when the log ends part way through one
// of the fixed-size fields of an event.
type TruncatedHeaderError struct {
	Field     string // the structure that doesn't fit
	Offset    int    // offset of the structure from the start of the log
	Size      int    // bytes required
	Remaining int    // bytes available at Offset
}

func (e *TruncatedHeaderError) Error() string {
	return fmt.Sprintf("corrupted log: insufficient size for %s at offset %d (need %d bytes, have %d)",
		e.Field, e.Offset, e.Size, e.Remaining)
}

// TruncatedFieldError is returned when the log ends part way through a
// field whose size is determined by a length prefix or by a digest
// algorithm.
type TruncatedFieldError struct {
	Field     string
	Offset    int
	Size      uint64
	Remaining int
}

func (e *TruncatedFieldError) Error() string {
	return fmt.Sprintf("corrupted log: insufficient size for %s at offset %d (need %d bytes, have %d)",
		e.Field, e.Offset, e.Size, e.Remaining)
}

// UnrecognizedAlgorithmError is returned when a digest is encountered for
// an algorithm with no known digest size.
type UnrecognizedAlgorithmError struct {
	Algorithm tpm2.HashAlgorithmId
	Offset    int
}

func (e *UnrecognizedAlgorithmError) Error() string {
	return fmt.Sprintf("log entry at offset %d contains a digest for an unrecognized algorithm (%#04x)",
		e.Offset, uint16(e.Algorithm))
}

// VisitorError is returned when a visitor asks for a walk to stop by
// returning an error.
type VisitorError struct {
	Offset int   // offset of the record that was being visited
	Err    error // the error returned from the visitor
}

func (e *VisitorError) Error() string {
	return fmt.Sprintf("visitor aborted traversal at offset %d: %v", e.Offset, e.Err)
}

func (e *VisitorError) Unwrap() error {
	return e.Err
}

func (e *VisitorError) Is(target error) bool {
	return target == ErrVisitorAborted
}
