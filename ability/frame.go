// SPDX-License-Identifier: GPL-3.0-or-later

package ability

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Demultiplexing tags used to steer a frame towards one of two
// downstream legs in the MITM orchestrator's bridge mode (spec §5.5).
const (
	TagPrimary   byte = 0x00
	TagSecondary byte = 0xFF
)

// ErrShortFrame indicates a buffer too small to contain a complete
// frame header or the metadata/payload it declares.
var ErrShortFrame = errors.New("ability: short frame")

// Frame is the on-wire envelope the demux ability uses to tag
// payloads with which interface they arrived on or must leave on:
// one tag byte, a 16-bit big-endian metadata length, the metadata
// itself, then the raw payload (spec §7).
type Frame struct {
	Tag      byte
	Metadata []byte
	Payload  []byte
}

// MarshalBinary encodes the frame per the layout above.
func (f Frame) MarshalBinary() ([]byte, error) {
	if len(f.Metadata) > 0xFFFF {
		return nil, fmt.Errorf("ability: metadata too long: %d bytes", len(f.Metadata))
	}
	buf := make([]byte, 1+2+len(f.Metadata)+len(f.Payload))
	buf[0] = f.Tag
	binary.BigEndian.PutUint16(buf[1:3], uint16(len(f.Metadata)))
	copy(buf[3:], f.Metadata)
	copy(buf[3+len(f.Metadata):], f.Payload)
	return buf, nil
}

// UnmarshalBinary decodes a frame previously produced by
// MarshalBinary, sharing the backing array with data rather than
// copying.
func (f *Frame) UnmarshalBinary(data []byte) error {
	if len(data) < 3 {
		return ErrShortFrame
	}
	f.Tag = data[0]
	metaLen := int(binary.BigEndian.Uint16(data[1:3]))
	if len(data) < 3+metaLen {
		return ErrShortFrame
	}
	f.Metadata = data[3 : 3+metaLen]
	f.Payload = data[3+metaLen:]
	return nil
}
