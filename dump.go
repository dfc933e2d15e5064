// Copyright 2023 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package tcglog

import (
	"golang.org/x/xerrors"
)

// DumpOptions allows the behaviour of Dump to be controlled.
type DumpOptions struct {
	WalkOptions

	// PCRs restricts the dump to events measured to the specified PCRs.
	// All events are dumped if this is empty.
	PCRs []PCRIndex
}

func (o *DumpOptions) selects(pcr PCRIndex) bool {
	if len(o.PCRs) == 0 {
		return true
	}
	for _, p := range o.PCRs {
		if p == pcr {
			return true
		}
	}
	return false
}

// Dump walks the log in data and passes every selected event to f. The
// whole dump fails if any part of the log is malformed, although f may
// already have been passed some events by then.
func Dump(data []byte, f Formatter, options *DumpOptions) error {
	if options == nil {
		options = new(DumpOptions)
	}

	if err := f.PrintHeader(); err != nil {
		return xerrors.Errorf("cannot print header: %w", err)
	}

	if err := WalkEvents(data, func(event EventView) error {
		if !options.selects(event.PCRIndex()) {
			return nil
		}
		return f.PrintEvent(event)
	}, &options.WalkOptions); err != nil {
		return xerrors.Errorf("cannot parse log: %w", err)
	}

	return f.Flush()
}
