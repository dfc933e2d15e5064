// Copyright 2023 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package main

import (
	"fmt"
	"io"
	"math"
	"os"
)

// loadLog reads the whole log at path into memory. The size reported by
// stat is meaningless for the securityfs log, so the limit is enforced on
// the number of bytes actually read. A maxSize of 0
// disables the limit.
func loadLog(path string, maxSize int64, log *logger) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	limited := maxSize > 0 && maxSize < math.MaxInt64
	var r io.Reader = f
	if limited {
		r = io.LimitReader(f, maxSize+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if limited && int64(len(data)) > maxSize {
		log.warningf("event log %s exceeds %d bytes", path, maxSize)
		return nil, fmt.Errorf("log is larger than the maximum size of %d bytes", maxSize)
	}
	return data, nil
}
