// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package aedat

import (
	"fmt"
)

// UnsupportedStreamTypeError is returned when the container description
// declares a stream whose type identifier this package does not understand.
type UnsupportedStreamTypeError struct {
	// Identifier is the unrecognized type identifier, as written in the
	// description.
	Identifier string
}

func (e *UnsupportedStreamTypeError) Error() string {
	return fmt.Sprintf("unsupported stream type: %q", e.Identifier)
}
