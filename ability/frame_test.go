// SPDX-License-Identifier: GPL-3.0-or-later

package ability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameRoundTrip(t *testing.T) {
	f := Frame{Tag: TagSecondary, Metadata: []byte("iface0"), Payload: []byte{1, 2, 3, 4}}
	raw, err := f.MarshalBinary()
	require.NoError(t, err)

	var got Frame
	require.NoError(t, got.UnmarshalBinary(raw))
	assert.Equal(t, f.Tag, got.Tag)
	assert.Equal(t, f.Metadata, got.Metadata)
	assert.Equal(t, f.Payload, got.Payload)
}

func TestFrameEmptyMetadata(t *testing.T) {
	f := Frame{Tag: TagPrimary, Payload: []byte("hello")}
	raw, err := f.MarshalBinary()
	require.NoError(t, err)

	var got Frame
	require.NoError(t, got.UnmarshalBinary(raw))
	assert.Empty(t, got.Metadata)
	assert.Equal(t, []byte("hello"), got.Payload)
}

func TestFrameUnmarshalShort(t *testing.T) {
	var f Frame
	assert.ErrorIs(t, f.UnmarshalBinary([]byte{0x00}), ErrShortFrame)
	assert.ErrorIs(t, f.UnmarshalBinary([]byte{0x00, 0x00, 0x05, 1, 2}), ErrShortFrame)
}
