// Copyright 2022 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package tcglog

// Formatter renders the events visited by Dump.
type Formatter interface {
	PrintHeader() error
	PrintEvent(event EventView) error
	Flush() error
}
