// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package flags

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bsiegert/ranges"

	"github.com/canonical/tpm2-eventlog"
)

// Format selects how the event log is rendered.
type Format string

const (
	FormatText  Format = "text"
	FormatYAML  Format = "yaml"
	FormatFiles Format = "files"
)

func (f Format) MarshalFlag() (string, error) {
	return string(f), nil
}

func (f *Format) UnmarshalFlag(value string) error {
	switch Format(value) {
	case FormatText, FormatYAML, FormatFiles:
		*f = Format(value)
	default:
		return fmt.Errorf("unrecognized format \"%s\"", value)
	}
	return nil
}

// ColorMode selects whether text output is colorized.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

func (m ColorMode) MarshalFlag() (string, error) {
	return string(m), nil
}

func (m *ColorMode) UnmarshalFlag(value string) error {
	switch ColorMode(value) {
	case ColorAuto, ColorAlways, ColorNever:
		*m = ColorMode(value)
	default:
		return fmt.Errorf("unrecognized color mode \"%s\"", value)
	}
	return nil
}

// PCRRange is a list of PCRs accumulated from one or more range
// expressions such as "0-7,14".
type PCRRange []tcglog.PCRIndex

func (r PCRRange) MarshalFlag() (string, error) {
	var s []string
	for _, p := range r {
		s = append(s, strconv.FormatUint(uint64(p), 10))
	}
	return strings.Join(s, ","), nil
}

func (r *PCRRange) UnmarshalFlag(value string) error {
	i, err := ranges.Parse(value)
	if err != nil {
		return err
	}
	for _, p := range i {
		if p < 0 {
			return fmt.Errorf("invalid PCR index %d", p)
		}
		*r = append(*r, tcglog.PCRIndex(p))
	}
	return nil
}
