// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package aedat

import (
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/pkg/errors"
)

// The IOHeader FlatBuffer table has three fields:
//
//	compression:      CompressionType = NONE  (vtable slot 4)
//	fileDataPosition: int64 = -1              (vtable slot 6)
//	description:      string                  (vtable slot 8)
//
// The accessors below are maintained by hand against that schema. Unlike
// generated root accessors, they validate the buffer before dereferencing the
// root offset rather than trusting the encoder.

// ioHeaderIdentifier is the FlatBuffer file identifier of the IOHeader table.
const ioHeaderIdentifier = "IOHE"

// fileIdentifierLength is the length of a FlatBuffer file identifier.
const fileIdentifierLength = 4

// ioHeader is a read-only view over an encoded IOHeader message.
type ioHeader struct {
	tab flatbuffers.Table
}

// readIOHeaderMessage validates buf and returns a view over its root table.
func readIOHeaderMessage(buf []byte) (*ioHeader, error) {
	if len(buf) < flatbuffers.SizeUOffsetT {
		return nil, errors.Errorf("header message too short (%d bytes)", len(buf))
	}
	root := flatbuffers.GetUOffsetT(buf)
	if int(root) >= len(buf) {
		return nil, errors.Errorf("header root offset %d outside of %d-byte message", root, len(buf))
	}

	h := ioHeader{}
	h.tab.Bytes = buf
	h.tab.Pos = root
	return &h, nil
}

// Compression returns the container-level compression scheme.
func (h *ioHeader) Compression() Compression {
	if o := flatbuffers.UOffsetT(h.tab.Offset(4)); o != 0 {
		return Compression(h.tab.GetInt8(o + h.tab.Pos))
	}
	return CompressionNone
}

// FileDataPosition returns the byte offset at which the packet section ends,
// or -1 when the producer does not know it.
func (h *ioHeader) FileDataPosition() int64 {
	if o := flatbuffers.UOffsetT(h.tab.Offset(6)); o != 0 {
		return h.tab.GetInt64(o + h.tab.Pos)
	}
	return -1
}

// Description returns the XML stream description, or nil if absent.
func (h *ioHeader) Description() []byte {
	if o := flatbuffers.UOffsetT(h.tab.Offset(8)); o != 0 {
		return h.tab.ByteVector(o + h.tab.Pos)
	}
	return nil
}

// BuildIOHeader encodes an IOHeader message with the supplied fields.
//
// An empty description is encoded as an absent field. The result is the raw
// message body; the caller adds the u32 length prefix when framing it.
func BuildIOHeader(compression Compression, fileDataPosition int64, description string) []byte {
	b := flatbuffers.NewBuilder(256)

	var descOff flatbuffers.UOffsetT
	if description != "" {
		descOff = b.CreateString(description)
	}

	b.StartObject(3)
	b.PrependInt8Slot(0, int8(compression), int8(CompressionNone))
	b.PrependInt64Slot(1, fileDataPosition, -1)
	if descOff != 0 {
		b.PrependUOffsetTSlot(2, descOff, 0)
	}
	b.FinishWithFileIdentifier(b.EndObject(), []byte(ioHeaderIdentifier))
	return b.FinishedBytes()
}

// Packet payloads are size-prefixed FlatBuffers: a u32 total size, a u32 root
// offset, then the 4-character file identifier.
const payloadIdentifierStart = flatbuffers.SizeUint32 + flatbuffers.SizeUOffsetT

// HasIdentifier reports whether the size-prefixed FlatBuffer in buf carries
// the given 4-character file identifier.
//
// Buffers too short to hold an identifier never match.
func HasIdentifier(buf []byte, identifier string) bool {
	if len(identifier) != fileIdentifierLength {
		return false
	}
	if len(buf) < payloadIdentifierStart+fileIdentifierLength {
		return false
	}
	return string(buf[payloadIdentifierStart:payloadIdentifierStart+fileIdentifierLength]) == identifier
}
