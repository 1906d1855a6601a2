// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package aedat

import (
	"io"
	"os"

	"github.com/danjacques/goaedat/support/dataio"
	"github.com/danjacques/goaedat/support/logging"
	"github.com/danjacques/goaedat/support/network"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// Decoder reads an AEDAT4 container from a file or stream socket and yields
// its packets one at a time.
//
// A Decoder owns its source exclusively and closes it on Close. It is a
// strictly sequential cursor: it may be handed off to another goroutine, but
// must not be used concurrently. Reads block until data arrives or the source
// ends; the Decoder imposes no timeouts of its own.
type Decoder struct {
	// source is the owned byte stream. nil after Close.
	source io.ReadCloser

	// logger receives debug-level notes during header parsing.
	logger logging.L

	// streams is the stream registry, keyed by stream id. Populated once
	// during header parsing, read-only afterwards.
	streams map[uint32]Stream

	// compression is fixed for the whole source by its header.
	compression Compression

	// position counts the bytes consumed so far: preamble, header frame and
	// each packet's full framed size.
	position int64

	// fileDataPosition is the byte offset at which the packet section ends,
	// or -1 when the source cannot know it (stream sockets, live producers).
	fileDataPosition int64

	// zstdDec is created lazily on the first zstd packet and reused for the
	// session.
	zstdDec *zstd.Decoder

	// err latches the first fatal iteration error.
	err error
}

// Option configures a Decoder prior to header parsing.
type Option func(*Decoder)

// WithLogger directs the Decoder's logging to l.
func WithLogger(l logging.L) Option {
	return func(d *Decoder) { d.logger = logging.Must(l) }
}

func newDecoder(source io.ReadCloser, opts []Option) *Decoder {
	d := &Decoder{
		source:           source,
		logger:           logging.Nop,
		streams:          make(map[uint32]Stream),
		fileDataPosition: -1,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewFromFile opens the AEDAT4 file at path, validates its magic preamble and
// parses its header.
//
// Construction failures close the file and return no Decoder.
func NewFromFile(path string, opts ...Option) (*Decoder, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %q", path)
	}

	d := newDecoder(fd, opts)
	if err := d.readMagic(); err != nil {
		_ = fd.Close()
		return nil, err
	}
	return d.finishConstruction()
}

// NewFromUnixSocket connects to the unix-domain stream socket at path and
// reads the AEDAT4 header from it.
//
// Socket peers do not send the magic preamble; the stream begins directly
// with the length-prefixed header message. The end of the packet section is
// generally unknown for socket sources, so iteration ends when the peer
// disconnects on a packet boundary.
func NewFromUnixSocket(path string, opts ...Option) (*Decoder, error) {
	conn, err := network.DialUnix(path)
	if err != nil {
		return nil, err
	}
	return newDecoder(conn, opts).finishConstruction()
}

// NewFromTCP connects to the TCP endpoint at addr ("host:port") and reads the
// AEDAT4 header from it.
//
// See NewFromUnixSocket for streaming-source semantics.
func NewFromTCP(addr string, opts ...Option) (*Decoder, error) {
	conn, err := network.DialTCP(addr)
	if err != nil {
		return nil, err
	}
	return newDecoder(conn, opts).finishConstruction()
}

// finishConstruction parses the header. On failure the source is closed and
// the construction attempt is abandoned.
func (d *Decoder) finishConstruction() (*Decoder, error) {
	if err := d.readIOHeader(); err != nil {
		_ = d.source.Close()
		return nil, err
	}
	d.logger.Debugf("Opened AEDAT4 source: %d stream(s), %s compression.",
		len(d.streams), d.compression)
	decoderOpenGauge.Inc()
	return d, nil
}

// Close closes the underlying source. The Decoder must not be used after
// Close.
func (d *Decoder) Close() error {
	if d.source == nil {
		return nil
	}

	err := d.source.Close()
	d.source = nil
	decoderOpenGauge.Dec()
	return err
}

// Streams returns the stream registry, keyed by stream id.
//
// The returned map is the Decoder's own registry and must not be modified.
func (d *Decoder) Streams() map[uint32]Stream { return d.streams }

// Compression returns the container-level compression scheme.
func (d *Decoder) Compression() Compression { return d.compression }

// Position returns the number of bytes consumed so far, counting the
// preamble, the header frame and every packet's full framed size.
func (d *Decoder) Position() int64 { return d.position }

// FileDataPosition returns the byte offset at which the packet section ends,
// or -1 when unknown.
func (d *Decoder) FileDataPosition() int64 { return d.fileDataPosition }

// ReadPacket returns the next packet in the container.
//
// ReadPacket returns io.EOF when the packet section has been fully consumed:
// either the known end-of-data offset has been reached, or a streaming source
// ended cleanly on a packet boundary. A source that ends after a packet's
// stream id has been read is mid-record and is reported as an error instead.
//
// Any non-EOF error is fatal for the session; subsequent calls return the
// same error.
func (d *Decoder) ReadPacket() (*Packet, error) {
	if d.err != nil {
		return nil, d.err
	}

	pkt, err := d.readPacket()
	if err != nil && err != io.EOF {
		decoderErrors.Inc()
		d.err = err
	}
	return pkt, err
}

func (d *Decoder) readPacket() (*Packet, error) {
	if d.fileDataPosition > -1 && d.position == d.fileDataPosition {
		return nil, io.EOF
	}

	// Any failure here, including a clean disconnect, ends the stream without
	// error. Once the stream id has been read the record is committed, and
	// every failure after it is surfaced.
	streamID, err := dataio.ReadUint32LE(d.source)
	if err != nil {
		return nil, io.EOF
	}

	length, err := dataio.ReadUint32LE(d.source)
	if err != nil {
		return nil, errors.Wrap(err, "reading packet length")
	}
	d.position += 8 + int64(length)

	raw, err := dataio.ReadExact(d.source, int(length))
	if err != nil {
		return nil, errors.Wrap(err, "reading packet payload")
	}

	buf, err := d.decompress(raw)
	if err != nil {
		return nil, err
	}

	stream, ok := d.streams[streamID]
	if !ok {
		return nil, errors.Errorf("unknown stream id: %d", streamID)
	}
	if !HasIdentifier(buf, stream.Content.Identifier()) {
		return nil, errors.New("the stream id and the identifier do not match")
	}

	decoderPackets.Inc()
	decoderPacketBytes.Add(float64(len(buf)))
	return &Packet{StreamID: streamID, Buffer: buf}, nil
}
