// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package aedat

import (
	"fmt"
	"io"
	"strconv"

	"github.com/danjacques/goaedat/support/dataio"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

// magic is the preamble that opens every AEDAT4 file. Stream sockets do not
// send it.
const magic = "#!AER-DAT4.0\r\n"

// readMagic consumes and validates the file preamble.
func (d *Decoder) readMagic() error {
	buf := make([]byte, len(magic))
	if _, err := io.ReadFull(d.source, buf); err != nil {
		return errors.Wrap(err, "reading magic number")
	}
	if string(buf) != magic {
		return errors.New("the file does not contain AEDAT4 data (wrong magic number)")
	}
	d.position += int64(len(magic))
	return nil
}

// readIOHeader reads the length-prefixed IOHeader message and populates the
// decoder's compression mode, end-of-data offset and stream registry.
func (d *Decoder) readIOHeader() error {
	length, err := dataio.ReadUint32LE(d.source)
	if err != nil {
		return errors.Wrap(err, "reading header length")
	}
	d.position += 4 + int64(length)

	buf, err := dataio.ReadExact(d.source, int(length))
	if err != nil {
		return errors.Wrap(err, "reading header message")
	}

	header, err := readIOHeaderMessage(buf)
	if err != nil {
		return err
	}
	d.compression = header.Compression()
	d.fileDataPosition = header.FileDataPosition()

	description := header.Description()
	if len(description) == 0 {
		return errors.New("the description is empty")
	}
	return d.parseDescription(description)
}

// parseDescription walks the XML stream description and builds the stream
// registry.
//
// The relevant shape is:
//
//	<dv>
//	  <node name="outInfo">
//	    <node name="0">
//	      <attr key="typeIdentifier">EVTS</attr>
//	      <node name="info">
//	        <attr key="sizeX">640</attr>
//	        <attr key="sizeY">480</attr>
//	      </node>
//	    </node>
//	  </node>
//	</dv>
func (d *Decoder) parseDescription(description []byte) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(description); err != nil {
		return errors.Wrap(err, "parsing description")
	}

	root := doc.Root()
	if root == nil {
		return errors.New("the description has no dv node")
	}
	if root.Tag != "dv" {
		return errors.New("unexpected dv node tag")
	}

	outInfo := findChildNode(root, "outInfo")
	if outInfo == nil {
		return errors.New("the description has no output node")
	}

	for _, streamNode := range outInfo.ChildElements() {
		if streamNode.Tag != "node" {
			continue
		}
		if err := d.addStream(streamNode); err != nil {
			return err
		}
	}

	if len(d.streams) == 0 {
		return errors.New("no stream found in the description")
	}
	return nil
}

// addStream registers the stream declared by one <node> child of the output
// node.
func (d *Decoder) addStream(streamNode *etree.Element) error {
	name := streamNode.SelectAttr("name")
	if name == nil {
		return errors.New("missing stream node id")
	}
	id, err := strconv.ParseUint(name.Value, 10, 32)
	if err != nil {
		return errors.Wrapf(err, "parsing stream id %q", name.Value)
	}
	streamID := uint32(id)

	identifier, err := findAttrText(streamNode, "typeIdentifier", "stream node type identifier")
	if err != nil {
		return err
	}
	content, err := StreamContentFromIdentifier(identifier)
	if err != nil {
		return err
	}

	// Image-shaped streams must declare their sensor dimensions. Imus and
	// Triggers streams have none, and their info node is not consulted.
	var width, height uint16
	if content == Events || content == Frame {
		info := findChildNode(streamNode, "info")
		if info == nil {
			return errors.New("missing info node")
		}
		if width, err = findAttrUint16(info, "sizeX"); err != nil {
			return err
		}
		if height, err = findAttrUint16(info, "sizeY"); err != nil {
			return err
		}
	}

	if _, ok := d.streams[streamID]; ok {
		return errors.New("duplicated stream id")
	}
	d.streams[streamID] = Stream{Content: content, Width: width, Height: height}
	d.logger.Debugf("Declared stream %d: %s (%dx%d).", streamID, content, width, height)
	return nil
}

// findChildNode returns the first <node> element child of parent whose name
// attribute is name, or nil.
func findChildNode(parent *etree.Element, name string) *etree.Element {
	for _, child := range parent.ChildElements() {
		if child.Tag == "node" && child.SelectAttrValue("name", "") == name {
			return child
		}
	}
	return nil
}

// findAttrText returns the text of the <attr> child of parent with the given
// key. Missing and empty attributes are distinct errors; what names the
// attribute in them.
func findAttrText(parent *etree.Element, key, what string) (string, error) {
	for _, child := range parent.ChildElements() {
		if child.Tag == "attr" && child.SelectAttrValue("key", "") == key {
			text := child.Text()
			if text == "" {
				return "", errors.Errorf("empty %s", what)
			}
			return text, nil
		}
	}
	return "", errors.Errorf("missing %s", what)
}

// findAttrUint16 returns the named attribute of parent parsed as a u16.
func findAttrUint16(parent *etree.Element, key string) (uint16, error) {
	text, err := findAttrText(parent, key, fmt.Sprintf("%s attribute", key))
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(text, 10, 16)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing %s attribute", key)
	}
	return uint16(v), nil
}
