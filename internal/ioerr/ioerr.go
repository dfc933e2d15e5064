// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package ioerr

import (
	"io"

	"golang.org/x/xerrors"
)

// EOFIsUnexpected converts io.EOF into io.ErrUnexpectedEOF. This is useful
// when decoding the fields of a structure that aren't at its start, where
// running out of data is always an error.
//
// It can be called with a single error, or with a format string followed by
// arguments, in which case the result is xerrors.Errorf(format, args...)
// with any io.EOF argument converted first.
func EOFIsUnexpected(args ...interface{}) error {
	switch {
	case len(args) > 1:
		format, ok := args[0].(string)
		if !ok {
			panic("expected a format string")
		}
		for i, arg := range args[1:] {
			if err, isErr := arg.(error); isErr && err == io.EOF {
				args[i+1] = io.ErrUnexpectedEOF
			}
		}
		return xerrors.Errorf(format, args[1:]...)
	case len(args) == 1:
		switch err := args[0].(type) {
		case error:
			if err == io.EOF {
				return io.ErrUnexpectedEOF
			}
			return err
		case nil:
			return nil
		default:
			panic("invalid type")
		}
	default:
		panic("no arguments")
	}
}
