// Copyright 2023 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package tcglog

import (
	"encoding/binary"

	"github.com/canonical/go-tpm2"
)

// WalkOptions allows the behaviour of WalkDigests and WalkEvents to be
// controlled.
type WalkOptions struct {
	// PermitUnknownAlgorithms treats a digest for an algorithm with no
	// known size as having no value bytes instead of failing. This matches
	// the behaviour of older tools, but every subsequent offset in the log
	// will be wrong if the algorithm actually has a non-zero digest size.
	PermitUnknownAlgorithms bool
}

func (o *WalkOptions) permitUnknownAlgorithms() bool {
	return o != nil && o.PermitUnknownAlgorithms
}

// DigestVisitor is called once for each digest by WalkDigests. Returning an
// error stops the walk.
type DigestVisitor func(digest DigestView) error

// EventVisitor is called once for each event by WalkEvents. Returning an
// error stops the walk.
type EventVisitor func(event EventView) error

// DigestAccumulator is a DigestVisitor that tracks the number of digests
// visited and the number of bytes they occupy.
type DigestAccumulator struct {
	Count int
	Size  int
}

func (a *DigestAccumulator) Visit(digest DigestView) error {
	a.Count++
	a.Size += digest.Size()
	return nil
}

// WalkDigests calls visit for each of the count TCG_DIGEST2 structures at
// the start of data, and returns the number of bytes they occupy. The
// visitor is only called for a digest once the whole structure is known to
// fit inside data.
func WalkDigests(data []byte, count uint32, visit DigestVisitor, options *WalkOptions) (int, error) {
	if data == nil || visit == nil {
		return 0, ErrNilInput
	}
	return walkDigests(data, 0, count, visit, options)
}

// walkDigests is WalkDigests with base being the offset of data from the
// start of the log, used for error reporting.
func walkDigests(data []byte, base int, count uint32, visit DigestVisitor, options *WalkOptions) (int, error) {
	if len(data) < DigestHeaderSize {
		return 0, &TruncatedHeaderError{Field: "digest header", Offset: base, Size: DigestHeaderSize, Remaining: len(data)}
	}
	if uint64(count)*DigestHeaderSize > uint64(len(data)) {
		return 0, &TruncatedHeaderError{Field: "digest array", Offset: base, Size: int(uint64(count) * DigestHeaderSize), Remaining: len(data)}
	}

	consumed := 0
	for i := uint32(0); i < count; i++ {
		rest := data[consumed:]
		offset := base + consumed

		if len(rest) < DigestHeaderSize {
			return consumed, &TruncatedHeaderError{Field: "digest header", Offset: offset, Size: DigestHeaderSize, Remaining: len(rest)}
		}

		alg := tpm2.HashAlgorithmId(binary.NativeEndian.Uint16(rest))
		size := DigestSize(alg)
		if size == 0 && !options.permitUnknownAlgorithms() {
			return consumed, &UnrecognizedAlgorithmError{Algorithm: alg, Offset: offset}
		}
		if len(rest)-DigestHeaderSize < size {
			return consumed, &TruncatedFieldError{
				Field:     "digest",
				Offset:    offset + DigestHeaderSize,
				Size:      uint64(size),
				Remaining: len(rest) - DigestHeaderSize}
		}

		n := DigestHeaderSize + size
		digest := DigestView{data: rest[:n:n], offset: offset}
		if err := visit(digest); err != nil {
			return consumed, &VisitorError{Offset: offset, Err: err}
		}
		consumed += n
	}

	return consumed, nil
}

// WalkEvents calls visit for each TCG_PCR_EVENT2 structure in data, which
// must contain a complete crypto-agile log body and nothing else. The
// visitor is only called for an event once the whole structure is known to
// fit inside data. The walk succeeds only if the last event ends exactly at
// the end of data.
func WalkEvents(data []byte, visit EventVisitor, options *WalkOptions) error {
	if data == nil || visit == nil {
		return ErrNilInput
	}

	offset := 0
	for index := 0; len(data) > 0; index++ {
		if len(data) < EventHeaderSize {
			return &TruncatedHeaderError{Field: "event header", Offset: offset, Size: EventHeaderSize, Remaining: len(data)}
		}

		var digests []DigestView
		digestsSize, err := walkDigests(data[EventHeaderSize:], offset+EventHeaderSize, binary.NativeEndian.Uint32(data[8:]),
			func(digest DigestView) error {
				digests = append(digests, digest)
				return nil
			}, options)
		if err != nil {
			return err
		}

		size := EventHeaderSize + digestsSize
		if len(data)-size < EventSizeFieldSize {
			return &TruncatedHeaderError{Field: "event size", Offset: offset + size, Size: EventSizeFieldSize, Remaining: len(data) - size}
		}

		payloadSize := binary.NativeEndian.Uint32(data[size:])
		size += EventSizeFieldSize
		if uint64(len(data)-size) < uint64(payloadSize) {
			return &TruncatedFieldError{Field: "event data", Offset: offset + size, Size: uint64(payloadSize), Remaining: len(data) - size}
		}
		size += int(payloadSize)

		event := EventView{
			data:        data[:size:size],
			offset:      offset,
			index:       index,
			digests:     digests,
			digestsSize: digestsSize}
		if err := visit(event); err != nil {
			return &VisitorError{Offset: offset, Err: err}
		}

		data = data[size:]
		offset += size
	}

	return nil
}
