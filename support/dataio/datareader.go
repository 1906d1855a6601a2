// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package dataio offers small typed read helpers for little-endian wire
// framing.
package dataio

import (
	"encoding/binary"
	"io"
)

// ReadUint32LE reads a 4-byte little-endian unsigned integer from r.
//
// ReadUint32LE does not return partial values: if fewer than 4 bytes are
// available, the underlying read error is returned. A read that ends before
// the first byte returns io.EOF; one that ends mid-value returns
// io.ErrUnexpectedEOF.
func ReadUint32LE(r io.Reader) (uint32, error) {
	var d [4]byte
	if _, err := io.ReadFull(r, d[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(d[:]), nil
}

// ReadExact reads exactly n bytes from r into a fresh buffer.
func ReadExact(r io.Reader, n int) ([]byte, error) {
	d := make([]byte, n)
	if _, err := io.ReadFull(r, d); err != nil {
		return nil, err
	}
	return d, nil
}
