// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package network contains generic stream-socket utilities.
package network

import (
	"net"

	"github.com/pkg/errors"
)

// DialUnix connects to the unix-domain stream socket at path.
//
// The returned connection has no deadlines set; timeout policy is left to the
// caller.
func DialUnix(path string) (net.Conn, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, errors.Wrapf(err, "dialing unix socket %q", path)
	}
	return conn, nil
}

// DialTCP connects to the TCP endpoint at addr, in "host:port" form.
//
// The returned connection has no deadlines set; timeout policy is left to the
// caller.
func DialTCP(addr string) (net.Conn, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "dialing TCP endpoint %q", addr)
	}
	return conn, nil
}
