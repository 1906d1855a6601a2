// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package aedat

import (
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Header parsing", func() {
	var tdir string

	BeforeEach(func() {
		var err error
		tdir, err = os.MkdirTemp("", "aedat")
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		Expect(os.RemoveAll(tdir)).To(Succeed())
	})

	open := func(data []byte) (*Decoder, error) {
		path := filepath.Join(tdir, "in.aedat4")
		ExpectWithOffset(1, os.WriteFile(path, data, 0o644)).To(Succeed())
		return NewFromFile(path)
	}

	openDescription := func(description string) (*Decoder, error) {
		return open(buildFile(CompressionNone, description))
	}

	It("rejects a wrong magic number", func() {
		data := buildFile(CompressionNone, twoStreams)
		data[2] = '?'

		_, err := open(data)
		Expect(err).To(MatchError(ContainSubstring("wrong magic number")))
	})

	It("rejects a truncated preamble", func() {
		_, err := open([]byte("#!AER"))
		Expect(err).To(MatchError(ContainSubstring("reading magic number")))
	})

	It("rejects a truncated header message", func() {
		data := buildFile(CompressionNone, twoStreams)
		_, err := open(data[:len(magic)+6])
		Expect(err).To(MatchError(ContainSubstring("reading header message")))
	})

	It("rejects an empty description", func() {
		_, err := openDescription("")
		Expect(err).To(MatchError(ContainSubstring("the description is empty")))
	})

	It("rejects a malformed description", func() {
		_, err := openDescription("<dv><unclosed")
		Expect(err).To(MatchError(ContainSubstring("parsing description")))
	})

	It("rejects a description whose root is not dv", func() {
		_, err := openDescription(`<other><node name="outInfo"/></other>`)
		Expect(err).To(MatchError(ContainSubstring("unexpected dv node tag")))
	})

	It("rejects a description without an output node", func() {
		_, err := openDescription(`<dv><node name="inInfo"/></dv>`)
		Expect(err).To(MatchError(ContainSubstring("no output node")))
	})

	It("rejects a description with zero streams", func() {
		_, err := openDescription(`<dv><node name="outInfo"/></dv>`)
		Expect(err).To(MatchError(ContainSubstring("no stream found in the description")))
	})

	It("rejects a stream node without an id", func() {
		_, err := openDescription(`<dv><node name="outInfo">` +
			`<node><attr key="typeIdentifier">TRIG</attr></node>` +
			`</node></dv>`)
		Expect(err).To(MatchError(ContainSubstring("missing stream node id")))
	})

	It("rejects a non-numeric stream id", func() {
		_, err := openDescription(`<dv><node name="outInfo">` +
			`<node name="zero"><attr key="typeIdentifier">TRIG</attr></node>` +
			`</node></dv>`)
		Expect(err).To(MatchError(ContainSubstring(`parsing stream id "zero"`)))
	})

	It("rejects a stream without a type identifier", func() {
		_, err := openDescription(`<dv><node name="outInfo">` +
			`<node name="0"/>` +
			`</node></dv>`)
		Expect(err).To(MatchError(ContainSubstring("missing stream node type identifier")))
	})

	It("rejects a stream with an empty type identifier", func() {
		_, err := openDescription(`<dv><node name="outInfo">` +
			`<node name="0"><attr key="typeIdentifier"></attr></node>` +
			`</node></dv>`)
		Expect(err).To(MatchError(ContainSubstring("empty stream node type identifier")))
	})

	It("rejects an unsupported type identifier", func() {
		_, err := openDescription(`<dv><node name="outInfo">` +
			`<node name="0"><attr key="typeIdentifier">POLA</attr></node>` +
			`</node></dv>`)

		var ute *UnsupportedStreamTypeError
		Expect(errors.As(err, &ute)).To(BeTrue())
		Expect(ute.Identifier).To(Equal("POLA"))
	})

	It("rejects a duplicated stream id", func() {
		_, err := openDescription(`<dv><node name="outInfo">` +
			`<node name="0"><attr key="typeIdentifier">TRIG</attr></node>` +
			`<node name="0"><attr key="typeIdentifier">IMUS</attr></node>` +
			`</node></dv>`)
		Expect(err).To(MatchError(ContainSubstring("duplicated stream id")))
	})

	Context("for image-shaped streams", func() {
		It("requires an info node", func() {
			_, err := openDescription(`<dv><node name="outInfo">` +
				`<node name="0"><attr key="typeIdentifier">FRME</attr></node>` +
				`</node></dv>`)
			Expect(err).To(MatchError(ContainSubstring("missing info node")))
		})

		It("requires a sizeX attribute", func() {
			_, err := openDescription(`<dv><node name="outInfo">` +
				`<node name="0"><attr key="typeIdentifier">EVTS</attr>` +
				`<node name="info"><attr key="sizeY">480</attr></node></node>` +
				`</node></dv>`)
			Expect(err).To(MatchError(ContainSubstring("missing sizeX attribute")))
		})

		It("rejects an empty sizeY attribute", func() {
			_, err := openDescription(`<dv><node name="outInfo">` +
				`<node name="0"><attr key="typeIdentifier">EVTS</attr>` +
				`<node name="info"><attr key="sizeX">640</attr><attr key="sizeY"></attr></node></node>` +
				`</node></dv>`)
			Expect(err).To(MatchError(ContainSubstring("empty sizeY attribute")))
		})

		It("rejects an unparseable dimension", func() {
			_, err := openDescription(`<dv><node name="outInfo">` +
				`<node name="0"><attr key="typeIdentifier">EVTS</attr>` +
				`<node name="info"><attr key="sizeX">banana</attr><attr key="sizeY">480</attr></node></node>` +
				`</node></dv>`)
			Expect(err).To(MatchError(ContainSubstring("parsing sizeX attribute")))
		})
	})

	Context("for non-image streams", func() {
		It("fixes the dimensions at zero without consulting an info node", func() {
			d, err := openDescription(`<dv><node name="outInfo">` +
				`<node name="3"><attr key="typeIdentifier">IMUS</attr></node>` +
				`<node name="4"><attr key="typeIdentifier">TRIG</attr>` +
				`<node name="info"><attr key="sizeX">640</attr><attr key="sizeY">480</attr></node></node>` +
				`</node></dv>`)
			Expect(err).ToNot(HaveOccurred())
			defer d.Close()

			Expect(d.Streams()[3]).To(Equal(Stream{Content: Imus}))
			Expect(d.Streams()[4]).To(Equal(Stream{Content: Triggers}))
		})
	})

	It("records the compression scheme declared by the header", func() {
		d, err := open(buildFile(CompressionZstd, twoStreams))
		Expect(err).ToNot(HaveOccurred())
		defer d.Close()

		Expect(d.Compression()).To(Equal(CompressionZstd))
	})

	It("skips non-node children of the output node", func() {
		d, err := openDescription(`<dv><node name="outInfo">` +
			`<attr key="comment">recorded by unit test</attr>` +
			`<node name="1"><attr key="typeIdentifier">TRIG</attr></node>` +
			`</node></dv>`)
		Expect(err).ToNot(HaveOccurred())
		defer d.Close()

		Expect(d.Streams()).To(HaveLen(1))
	})
})
