// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package aedat decodes the AEDAT4 container format used to record
// multiplexed event-camera sensor streams.
//
// An AEDAT4 source consists of:
//
//   - A 14-byte magic preamble, "#!AER-DAT4.0\r\n" (present in files only;
//     stream sockets begin directly with the header).
//   - A length-prefixed IOHeader FlatBuffer message describing the
//     container-level compression, the byte offset where the packet section
//     ends (for seekable sources), and an XML description of the logical
//     streams it multiplexes.
//   - A sequence of packet records, each framed as a little-endian u32 stream
//     id, a little-endian u32 payload length, and the payload itself,
//     compressed per the container-level compression.
//
// The XML description declares each stream's numeric id, its 4-character
// FlatBuffer type identifier (EVTS, FRME, IMUS or TRIG), and, for
// image-shaped streams, the sensor dimensions.
//
// A Decoder owns its source for its lifetime. It parses the header once at
// construction, then yields one decompressed, identifier-validated Packet per
// ReadPacket call. ReadPacket returns io.EOF when the packet section is
// exhausted; any other error is fatal for the session.
//
// aedat supports the container's compression schemes:
//
//   - NONE passes payloads through untouched.
//   - LZ4 and LZ4_HIGH decode a single LZ4 frame per payload, using the
//     pierrec/lz4 library.
//   - ZSTD and ZSTD_HIGH decode a single Zstandard frame per payload, using
//     the klauspost/compress library.
//
// The HIGH variants differ from their base schemes only in encoder effort;
// decoding is identical.
//
// A Decoder is a strictly sequential cursor over its source. It may be handed
// off to another goroutine, but must not be used from multiple goroutines
// concurrently.
package aedat
