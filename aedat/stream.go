// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package aedat

import (
	"fmt"
)

// StreamContent identifies the payload kind carried by a stream.
type StreamContent int

const (
	// Events is a stream of change-detection (DVS) events.
	Events StreamContent = iota
	// Frame is a stream of image frames.
	Frame
	// Imus is a stream of inertial measurement samples.
	Imus
	// Triggers is a stream of external trigger signals.
	Triggers
)

// streamContentByIdentifier maps wire type identifiers to content kinds.
var streamContentByIdentifier = map[string]StreamContent{
	"EVTS": Events,
	"FRME": Frame,
	"IMUS": Imus,
	"TRIG": Triggers,
}

// StreamContentFromIdentifier maps a 4-character type identifier to its
// content kind.
//
// Identifiers not defined by the container format are returned as an
// UnsupportedStreamTypeError.
func StreamContentFromIdentifier(identifier string) (StreamContent, error) {
	if sc, ok := streamContentByIdentifier[identifier]; ok {
		return sc, nil
	}
	return 0, &UnsupportedStreamTypeError{Identifier: identifier}
}

// Identifier returns the 4-character FlatBuffer file identifier that payloads
// of this content kind carry.
func (sc StreamContent) Identifier() string {
	switch sc {
	case Events:
		return "EVTS"
	case Frame:
		return "FRME"
	case Imus:
		return "IMUS"
	case Triggers:
		return "TRIG"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(sc))
	}
}

func (sc StreamContent) String() string { return sc.Identifier() }

// Stream describes one logical channel multiplexed within a container.
//
// A Stream is immutable once its registry has been built from the container
// description.
type Stream struct {
	// Content is the payload kind carried by this stream.
	Content StreamContent

	// Width and Height are the sensor dimensions for image-shaped streams
	// (Events, Frame). Both are zero for Imus and Triggers streams.
	Width  uint16
	Height uint16
}
