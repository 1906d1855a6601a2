// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package aedat

// Packet is one decompressed, validated payload unit and the stream it
// belongs to.
//
// The Decoder does not retain a Packet after yielding it; ownership of Buffer
// passes fully to the caller.
type Packet struct {
	// StreamID identifies the stream this packet belongs to within the
	// container's stream registry.
	StreamID uint32

	// Buffer is the decompressed payload: a size-prefixed FlatBuffer carrying
	// the file identifier of the stream's content kind.
	Buffer []byte
}
