// Copyright 2023 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package tcglog

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/canonical/go-efilib"
	"golang.org/x/xerrors"

	"github.com/canonical/tpm2-eventlog/internal/ioerr"
)

// EFIVariableData corresponds to the UEFI_VARIABLE_DATA structure recorded
// as the payload of EV_EFI_VARIABLE_DRIVER_CONFIG, EV_EFI_VARIABLE_BOOT and
// EV_EFI_VARIABLE_AUTHORITY events.
type EFIVariableData struct {
	VariableName efi.GUID
	UnicodeName  string
	VariableData []byte
}

func (d *EFIVariableData) String() string {
	return fmt.Sprintf("%s-%s (%d bytes)", d.UnicodeName, d.VariableName, len(d.VariableData))
}

// DecodeEFIVariableData decodes a UEFI_VARIABLE_DATA structure from the
// payload of an event. The returned VariableData aliases payload.
func DecodeEFIVariableData(payload []byte) (*EFIVariableData, error) {
	r := bytes.NewReader(payload)

	name, err := efi.ReadGUID(r)
	if err != nil {
		return nil, ioerr.EOFIsUnexpected("cannot read variable name: %w", err)
	}

	var unicodeNameLength uint64
	if err := binary.Read(r, binary.LittleEndian, &unicodeNameLength); err != nil {
		return nil, ioerr.EOFIsUnexpected("cannot read unicode name length: %w", err)
	}

	var variableDataLength uint64
	if err := binary.Read(r, binary.LittleEndian, &variableDataLength); err != nil {
		return nil, ioerr.EOFIsUnexpected("cannot read variable data length: %w", err)
	}

	if unicodeNameLength > uint64(r.Len())/2 {
		return nil, xerrors.Errorf("cannot read unicode name: %w", io.ErrUnexpectedEOF)
	}
	ucs2Name := make([]uint16, unicodeNameLength)
	if err := binary.Read(r, binary.LittleEndian, &ucs2Name); err != nil {
		return nil, ioerr.EOFIsUnexpected("cannot read unicode name: %w", err)
	}

	if variableDataLength > uint64(r.Len()) {
		return nil, xerrors.Errorf("cannot read variable data: %w", io.ErrUnexpectedEOF)
	}
	start := len(payload) - r.Len()

	return &EFIVariableData{
		VariableName: name,
		UnicodeName:  efi.ConvertUTF16ToUTF8(ucs2Name),
		VariableData: payload[start : start+int(variableDataLength)]}, nil
}
