// Copyright 2022 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package tcglog

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fatih/color"
)

const (
	hexDumpWidth        = 20
	digestHexDumpIndent = 6
	eventHexDumpIndent  = 4
)

// dumpBytes writes data as space separated hex bytes, width bytes per
// line, with each line indented by indent spaces.
func dumpBytes(w io.Writer, data []byte, width, indent int) {
	for len(data) > 0 {
		n := width
		if n > len(data) {
			n = len(data)
		}
		fmt.Fprintf(w, "%*s% x\n", indent, "", data[:n])
		data = data[n:]
	}
}

type textFormatter struct {
	dst     io.Writer
	verbose bool
	label   *color.Color
}

func (*textFormatter) PrintHeader() error { return nil }

func (f *textFormatter) PrintEvent(event EventView) error {
	str := new(bytes.Buffer)

	fmt.Fprintln(str, f.label.Sprintf("Event[%d]:", event.Index()))
	fmt.Fprintf(str, "  PCRIndex: %d\n", event.PCRIndex())
	fmt.Fprintf(str, "  EventType: %s (%#x)\n", event.EventType(), uint32(event.EventType()))
	fmt.Fprintf(str, "  DigestCount: %d\n", event.DigestCount())

	for i, digest := range event.Digests() {
		fmt.Fprintf(str, "  Digest[%d]:\n", i)
		fmt.Fprintf(str, "    AlgorithmId: %s (%#x)\n", AlgorithmName(digest.AlgorithmId()), uint16(digest.AlgorithmId()))
		fmt.Fprintf(str, "    Digest: %d bytes\n", len(digest.Value()))
		dumpBytes(str, digest.Value(), hexDumpWidth, digestHexDumpIndent)
	}

	fmt.Fprintf(str, "  Event: %d bytes\n", event.PayloadSize())
	dumpBytes(str, event.Payload(), hexDumpWidth, eventHexDumpIndent)

	if f.verbose && event.EventType().IsEFIVariable() {
		data, err := DecodeEFIVariableData(event.Payload())
		if err != nil {
			fmt.Fprintf(str, "  Details: invalid UEFI_VARIABLE_DATA: %v\n", err)
		} else {
			fmt.Fprintf(str, "  Details: %s\n", data)
		}
	}

	_, err := f.dst.Write(str.Bytes())
	return err
}

func (*textFormatter) Flush() error { return nil }

// NewTextFormatter returns a Formatter that writes a human readable dump
// of each event to w. If colorize is set, event labels are highlighted
// with ANSI escape sequences. If verbose is set, the payloads of EFI
// variable events are decoded.
func NewTextFormatter(w io.Writer, verbose, colorize bool) Formatter {
	label := color.New(color.FgCyan, color.Bold)
	if colorize {
		label.EnableColor()
	} else {
		label.DisableColor()
	}
	return &textFormatter{
		dst:     w,
		verbose: verbose,
		label:   label}
}
