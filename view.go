// Copyright 2023 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package tcglog

import (
	"encoding/binary"

	"github.com/canonical/go-tpm2"
)

// DigestView is a view of a single TCG_DIGEST2 structure inside a log
// buffer. It is only ever created by the walkers after the whole structure
// has been shown to fit inside the buffer.
type DigestView struct {
	data   []byte // AlgorithmId followed by exactly DigestSize(AlgorithmId) bytes
	offset int
}

// AlgorithmId returns the digest algorithm.
func (d DigestView) AlgorithmId() tpm2.HashAlgorithmId {
	return tpm2.HashAlgorithmId(binary.NativeEndian.Uint16(d.data))
}

// Value returns the digest. It aliases the log buffer.
func (d DigestView) Value() Digest {
	return Digest(d.data[DigestHeaderSize:])
}

// Bytes returns the raw TCG_DIGEST2 structure.
func (d DigestView) Bytes() []byte {
	return d.data
}

// Size returns the number of bytes occupied by the TCG_DIGEST2 structure.
func (d DigestView) Size() int {
	return len(d.data)
}

// Offset returns the offset of the structure from the start of the log.
func (d DigestView) Offset() int {
	return d.offset
}

// EventView is a view of a single TCG_PCR_EVENT2 structure inside a log
// buffer. Like DigestView, it is only created by WalkEvents once every
// part of the event has been bounds checked, so none of its accessors can
// read outside of the event.
type EventView struct {
	data        []byte
	offset      int
	index       int
	digests     []DigestView
	digestsSize int
}

// Index returns the position of this event in the log, starting from 0.
func (e EventView) Index() int {
	return e.index
}

// Offset returns the offset of the event from the start of the log.
func (e EventView) Offset() int {
	return e.offset
}

// Bytes returns the raw TCG_PCR_EVENT2 structure.
func (e EventView) Bytes() []byte {
	return e.data
}

// Size returns the total number of bytes occupied by the event.
func (e EventView) Size() int {
	return len(e.data)
}

// PCRIndex returns the PCR that the event was measured to.
func (e EventView) PCRIndex() PCRIndex {
	return PCRIndex(binary.NativeEndian.Uint32(e.data[0:]))
}

// EventType returns the type of the event.
func (e EventView) EventType() EventType {
	return EventType(binary.NativeEndian.Uint32(e.data[4:]))
}

// DigestCount returns the number of digests declared in the event header.
func (e EventView) DigestCount() uint32 {
	return binary.NativeEndian.Uint32(e.data[8:])
}

// Digests returns the digests recorded with this event, in log order.
func (e EventView) Digests() []DigestView {
	return e.digests
}

// DigestsSize returns the number of bytes occupied by the digest array.
func (e EventView) DigestsSize() int {
	return e.digestsSize
}

// TrailerOffset returns the offset of the EventSize field relative to the
// start of the event.
func (e EventView) TrailerOffset() int {
	return EventHeaderSize + e.digestsSize
}

// PayloadSize returns the value of the EventSize field.
func (e EventView) PayloadSize() uint32 {
	return binary.NativeEndian.Uint32(e.data[e.TrailerOffset():])
}

// Payload returns the event data. It aliases the log buffer.
func (e EventView) Payload() []byte {
	return e.data[e.TrailerOffset()+EventSizeFieldSize:]
}
