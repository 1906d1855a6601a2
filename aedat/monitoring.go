// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package aedat

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	decoderOpenGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "aedat_decoder_open",
		Help: "Count of open decoders.",
	})

	decoderPackets = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "aedat_decoder_packets",
		Help: "Count of packets decoded.",
	})

	decoderPacketBytes = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "aedat_decoder_packet_bytes",
		Help: "Count of decompressed payload bytes yielded.",
	})

	decoderErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "aedat_decoder_error_count",
		Help: "Count of fatal decode errors encountered during iteration.",
	})
)

// RegisterMonitoring registers all of this package's monitoring metrics.
func RegisterMonitoring(reg prometheus.Registerer) {
	reg.MustRegister(
		decoderOpenGauge,
		decoderPackets,
		decoderPacketBytes,
		decoderErrors,
	)
}
