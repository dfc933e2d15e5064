// Copyright 2023 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package tcglog_test

import (
	"errors"

	"github.com/canonical/go-tpm2"
	"golang.org/x/xerrors"

	. "gopkg.in/check.v1"

	. "github.com/canonical/tpm2-eventlog"
)

type mockFormatter struct {
	headers int
	flushes int
	events  []EventView
	err     error
}

func (f *mockFormatter) PrintHeader() error {
	f.headers++
	return nil
}

func (f *mockFormatter) PrintEvent(event EventView) error {
	f.events = append(f.events, event)
	return f.err
}

func (f *mockFormatter) Flush() error {
	f.flushes++
	return nil
}

type dumpSuite struct{}

var _ = Suite(&dumpSuite{})

func (s *dumpSuite) makeLog() []byte {
	var events []*testEvent
	for _, pcr := range []PCRIndex{0, 7, 4, 7, 0} {
		events = append(events, &testEvent{
			pcr:       pcr,
			eventType: EventTypeSeparator,
			digests:   []testDigest{{tpm2.HashAlgorithmSHA256, sequence(byte(pcr), 32)}},
			data:      []byte{0, 0, 0, 0}})
	}
	return makeLog(events...)
}

func (s *dumpSuite) TestDumpAll(c *C) {
	f := new(mockFormatter)
	c.Check(Dump(s.makeLog(), f, nil), IsNil)
	c.Check(f.headers, Equals, 1)
	c.Check(f.flushes, Equals, 1)
	c.Assert(f.events, HasLen, 5)
	for i, e := range f.events {
		c.Check(e.Index(), Equals, i)
	}
}

func (s *dumpSuite) TestDumpSelectedPCRs(c *C) {
	f := new(mockFormatter)
	c.Check(Dump(s.makeLog(), f, &DumpOptions{PCRs: []PCRIndex{7, 4}}), IsNil)
	c.Assert(f.events, HasLen, 3)
	c.Check(f.events[0].Index(), Equals, 1)
	c.Check(f.events[0].PCRIndex(), Equals, PCRIndex(7))
	c.Check(f.events[1].Index(), Equals, 2)
	c.Check(f.events[1].PCRIndex(), Equals, PCRIndex(4))
	c.Check(f.events[2].Index(), Equals, 3)
	c.Check(f.events[2].PCRIndex(), Equals, PCRIndex(7))
}

func (s *dumpSuite) TestDumpNoMatchingPCRs(c *C) {
	f := new(mockFormatter)
	c.Check(Dump(s.makeLog(), f, &DumpOptions{PCRs: []PCRIndex{23}}), IsNil)
	c.Check(f.events, HasLen, 0)
	c.Check(f.flushes, Equals, 1)
}

func (s *dumpSuite) TestDumpCorruptedLog(c *C) {
	log := s.makeLog()

	f := new(mockFormatter)
	err := Dump(log[:len(log)-1], f, nil)
	c.Check(err, ErrorMatches, `cannot parse log: corrupted log: insufficient size for event data at offset 266 \(need 4 bytes, have 3\)`)

	var e *TruncatedFieldError
	c.Check(xerrors.As(err, &e), Equals, true)
	c.Check(f.events, HasLen, 4)
	c.Check(f.flushes, Equals, 0)
}

func (s *dumpSuite) TestDumpFormatterError(c *C) {
	f := &mockFormatter{err: errors.New("write failed")}
	err := Dump(s.makeLog(), f, nil)
	c.Check(err, ErrorMatches, `cannot parse log: visitor aborted traversal at offset 0: write failed`)
	c.Check(xerrors.Is(err, ErrVisitorAborted), Equals, true)
	c.Check(f.events, HasLen, 1)
}

func (s *dumpSuite) TestDumpUnknownAlgorithm(c *C) {
	log := makeLog(&testEvent{
		pcr:       0,
		eventType: EventTypeSeparator,
		digests:   []testDigest{{tpm2.HashAlgorithmSM3_256, nil}}})

	err := Dump(log, new(mockFormatter), nil)
	var e *UnrecognizedAlgorithmError
	c.Check(xerrors.As(err, &e), Equals, true)

	f := new(mockFormatter)
	c.Check(Dump(log, f, &DumpOptions{WalkOptions: WalkOptions{PermitUnknownAlgorithms: true}}), IsNil)
	c.Assert(f.events, HasLen, 1)
	c.Check(f.events[0].Digests()[0].Value(), HasLen, 0)
}
