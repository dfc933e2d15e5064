// Copyright 2023 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package tcglog

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/xerrors"
)

type fileExporter struct {
	dir string
}

func (f *fileExporter) PrintHeader() error {
	fi, err := os.Stat(f.dir)
	if err != nil {
		return xerrors.Errorf("cannot access output directory: %w", err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s is not a directory", f.dir)
	}
	return nil
}

// PrintEvent writes the fields of event to individual files in a new
// Event_NNN directory. The PCR index and event type are written in host
// byte order, exactly as they appear in the log.
func (f *fileExporter) PrintEvent(event EventView) error {
	dir := filepath.Join(f.dir, fmt.Sprintf("Event_%03d", event.Index()))
	if err := os.Mkdir(dir, 0755); err != nil {
		return xerrors.Errorf("cannot create event directory: %w", err)
	}

	raw := event.Bytes()
	if err := os.WriteFile(filepath.Join(dir, "PCRIndex.bin"), raw[0:4], 0644); err != nil {
		return xerrors.Errorf("cannot write PCR index: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "EventType.bin"), raw[4:8], 0644); err != nil {
		return xerrors.Errorf("cannot write event type: %w", err)
	}

	for _, digest := range event.Digests() {
		name := "Digest." + AlgorithmName(digest.AlgorithmId())
		if err := os.WriteFile(filepath.Join(dir, name), digest.Value(), 0644); err != nil {
			return xerrors.Errorf("cannot write %s digest: %w", AlgorithmName(digest.AlgorithmId()), err)
		}
	}

	if event.PayloadSize() == 0 {
		return nil
	}
	if err := os.WriteFile(filepath.Join(dir, "Event.bin"), event.Payload(), 0644); err != nil {
		return xerrors.Errorf("cannot write event data: %w", err)
	}
	return nil
}

func (*fileExporter) Flush() error { return nil }

// NewFileExporter returns a Formatter that exports each event to its own
// directory beneath dir, which must already exist.
func NewFileExporter(dir string) Formatter {
	return &fileExporter{dir: dir}
}
