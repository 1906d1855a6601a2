// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// aedat-dump opens an AEDAT4 source, prints its stream layout and walks its
// packets, reporting per-stream totals.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/danjacques/goaedat/aedat"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var (
	unixSocket = pflag.String("unix-socket", "",
		"Read from a unix-domain stream socket at this path instead of a file.")
	tcpAddr = pflag.String("tcp", "",
		"Read from a TCP endpoint (host:port) instead of a file.")
	maxPackets = pflag.Int("max-packets", 0,
		"Stop after this many packets. 0 reads until the end of data.")
	verbose = pflag.BoolP("verbose", "v", false,
		"Enable debug logging.")
)

func main() {
	pflag.Parse()
	os.Exit(mainImpl())
}

func mainImpl() int {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not create logger: %s\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()
	if !*verbose {
		logger = logger.WithOptions(zap.IncreaseLevel(zap.InfoLevel))
	}
	sugar := logger.Sugar()

	var d *aedat.Decoder
	switch {
	case *unixSocket != "":
		d, err = aedat.NewFromUnixSocket(*unixSocket, aedat.WithLogger(sugar))
	case *tcpAddr != "":
		d, err = aedat.NewFromTCP(*tcpAddr, aedat.WithLogger(sugar))
	case pflag.NArg() == 1:
		d, err = aedat.NewFromFile(pflag.Arg(0), aedat.WithLogger(sugar))
	default:
		fmt.Fprintln(os.Stderr, "usage: aedat-dump [flags] <path>")
		pflag.PrintDefaults()
		return 2
	}
	if err != nil {
		sugar.Errorf("Could not open source: %s", err)
		return 1
	}
	defer func() {
		if err := d.Close(); err != nil {
			sugar.Warnf("Error closing source: %s", err)
		}
	}()

	sugar.Infof("Compression: %s.", d.Compression())
	for _, id := range sortedStreamIDs(d.Streams()) {
		s := d.Streams()[id]
		sugar.Infof("Stream %d: %s (%dx%d).", id, s.Content, s.Width, s.Height)
	}

	type total struct {
		packets int64
		bytes   int64
	}
	totals := map[uint32]*total{}

	count := 0
	for *maxPackets == 0 || count < *maxPackets {
		pkt, err := d.ReadPacket()
		if err == io.EOF {
			break
		}
		if err != nil {
			sugar.Errorf("Could not read packet: %s", err)
			return 1
		}

		t := totals[pkt.StreamID]
		if t == nil {
			t = &total{}
			totals[pkt.StreamID] = t
		}
		t.packets++
		t.bytes += int64(len(pkt.Buffer))
		count++
	}

	for _, id := range sortedStreamIDs(d.Streams()) {
		t := totals[id]
		if t == nil {
			t = &total{}
		}
		fmt.Printf("stream %d (%s): %d packets, %d bytes\n",
			id, d.Streams()[id].Content, t.packets, t.bytes)
	}
	return 0
}

func sortedStreamIDs(streams map[uint32]aedat.Stream) []uint32 {
	ids := make([]uint32, 0, len(streams))
	for id := range streams {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
