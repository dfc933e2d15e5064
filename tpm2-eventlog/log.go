// Copyright 2023 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/coreos/go-systemd/journal"
	"golang.org/x/sys/unix"
)

// logger writes diagnostics to stderr, or to the journal with the
// appropriate priority when stderr is connected to the journal by systemd.
type logger struct {
	w          io.Writer
	useJournal bool
	verbose    bool
}

// isJournalStream indicates whether f is the stream described by the
// "device:inode" value of the JOURNAL_STREAM environment variable.
func isJournalStream(f *os.File, journalStream string) bool {
	if journalStream == "" {
		return false
	}
	var st unix.Stat_t
	if err := unix.Fstat(int(f.Fd()), &st); err != nil {
		return false
	}
	return fmt.Sprintf("%d:%d", st.Dev, st.Ino) == journalStream
}

func newLogger(stderr *os.File) *logger {
	return &logger{
		w:          stderr,
		useJournal: isJournalStream(stderr, os.Getenv("JOURNAL_STREAM")) && journal.Enabled()}
}

func (l *logger) print(pri journal.Priority, prefix, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if l.useJournal && journal.Print(pri, "%s", msg) == nil {
		return
	}
	fmt.Fprintln(l.w, prefix+msg)
}

func (l *logger) infof(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.print(journal.PriInfo, "", format, args...)
}

func (l *logger) warningf(format string, args ...interface{}) {
	l.print(journal.PriWarning, "WARNING: ", format, args...)
}

func (l *logger) errorf(format string, args ...interface{}) {
	l.print(journal.PriErr, "ERROR: ", format, args...)
}
