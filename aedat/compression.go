// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package aedat

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

// Compression is the container-level compression scheme. It is declared by
// the header, fixed for the lifetime of the source, and applied to every
// packet payload individually.
type Compression int8

const (
	// CompressionNone stores payloads uncompressed.
	CompressionNone Compression = 0
	// CompressionLZ4 stores each payload as one LZ4 frame.
	CompressionLZ4 Compression = 1
	// CompressionLZ4High is CompressionLZ4 with higher encoder effort.
	CompressionLZ4High Compression = 2
	// CompressionZstd stores each payload as one Zstandard frame.
	CompressionZstd Compression = 3
	// CompressionZstdHigh is CompressionZstd with higher encoder effort.
	CompressionZstdHigh Compression = 4
)

// compressionNames and compressionValues mirror the scheme names used by the
// container's header schema.
var compressionNames = map[Compression]string{
	CompressionNone:     "NONE",
	CompressionLZ4:      "LZ4",
	CompressionLZ4High:  "LZ4_HIGH",
	CompressionZstd:     "ZSTD",
	CompressionZstdHigh: "ZSTD_HIGH",
}

var compressionValues = map[string]Compression{
	"NONE":      CompressionNone,
	"LZ4":       CompressionLZ4,
	"LZ4_HIGH":  CompressionLZ4High,
	"ZSTD":      CompressionZstd,
	"ZSTD_HIGH": CompressionZstdHigh,
}

func (c Compression) String() string {
	if name, ok := compressionNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int8(c))
}

// decompress decodes one raw framed payload per the session's compression
// scheme.
//
// For CompressionNone the raw slice is returned directly, not copied; the
// caller assumes ownership either way.
func (d *Decoder) decompress(raw []byte) ([]byte, error) {
	switch d.compression {
	case CompressionNone:
		return raw, nil

	case CompressionLZ4, CompressionLZ4High:
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(lz4.NewReader(bytes.NewReader(raw))); err != nil {
			return nil, errors.Wrap(err, "decompressing lz4 payload")
		}
		return buf.Bytes(), nil

	case CompressionZstd, CompressionZstdHigh:
		if d.zstdDec == nil {
			dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
			if err != nil {
				return nil, errors.Wrap(err, "creating zstd decoder")
			}
			d.zstdDec = dec
		}
		buf, err := d.zstdDec.DecodeAll(raw, nil)
		if err != nil {
			return nil, errors.Wrap(err, "decompressing zstd payload")
		}
		return buf, nil

	default:
		// The header schema bounds the value, but a hostile header can still
		// carry an arbitrary byte.
		return nil, errors.Errorf("unknown compression algorithm: %s", d.compression)
	}
}
