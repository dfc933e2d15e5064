// Copyright 2023 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package tcglog

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-yaml"
	"golang.org/x/xerrors"
)

// hexString is rendered as a double-quoted hex scalar.
type hexString []byte

func (s hexString) MarshalYAML() ([]byte, error) {
	return []byte(strconv.Quote(hex.EncodeToString(s))), nil
}

type yamlFormatter struct {
	dst     io.Writer
	verbose bool
}

func (f *yamlFormatter) PrintHeader() error {
	_, err := io.WriteString(f.dst, "---\n")
	return err
}

func (f *yamlFormatter) eventBody(event EventView) yaml.MapSlice {
	digests := make([]yaml.MapSlice, 0, len(event.Digests()))
	for i, digest := range event.Digests() {
		digests = append(digests, yaml.MapSlice{{
			Key: fmt.Sprintf("Digest[%d]", i),
			Value: yaml.MapSlice{
				{Key: "AlgorithmId", Value: AlgorithmName(digest.AlgorithmId())},
				{Key: "Digest", Value: hexString(digest.Value())}}}})
	}

	body := yaml.MapSlice{
		{Key: "PCRIndex", Value: uint32(event.PCRIndex())},
		{Key: "EventType", Value: event.EventType().String()},
		{Key: "DigestCount", Value: event.DigestCount()},
		{Key: "Digests", Value: digests},
		{Key: "EventSize", Value: event.PayloadSize()}}
	if event.PayloadSize() > 0 {
		body = append(body, yaml.MapItem{Key: "Event", Value: hexString(event.Payload())})
	}

	if f.verbose && event.EventType().IsEFIVariable() {
		if data, err := DecodeEFIVariableData(event.Payload()); err == nil {
			body = append(body, yaml.MapItem{Key: "Details", Value: yaml.MapSlice{
				{Key: "VariableName", Value: data.VariableName.String()},
				{Key: "UnicodeName", Value: data.UnicodeName},
				{Key: "VariableDataSize", Value: len(data.VariableData)}}})
		}
	}

	return body
}

func (f *yamlFormatter) PrintEvent(event EventView) error {
	item := []yaml.MapSlice{{{Key: fmt.Sprintf("Event[%d]", event.Index()), Value: f.eventBody(event)}}}
	b, err := yaml.Marshal(item)
	if err != nil {
		return xerrors.Errorf("cannot encode event %d: %w", event.Index(), err)
	}
	_, err = f.dst.Write(b)
	return err
}

func (*yamlFormatter) Flush() error { return nil }

// NewYAMLFormatter returns a Formatter that writes the log to w as a YAML
// sequence with one entry per event.
func NewYAMLFormatter(w io.Writer, verbose bool) Formatter {
	return &yamlFormatter{dst: w, verbose: verbose}
}
