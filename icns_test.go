package iconpack

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeICNS_Layout(t *testing.T) {
	assert := assert.New(t)

	set := NewIconSet()
	assert.NoError(set.Add(Frame{Size: 16, Data: payload(4)}))
	assert.NoError(set.Add(Frame{Size: 32, Data: payload(8)}))

	var buf bytes.Buffer
	assert.NoError(EncodeICNS(&buf, set))
	out := buf.Bytes()

	// Header: magic plus big-endian total length, header included.
	assert.Equal([]byte("icns"), out[:4])
	assert.Equal(uint32(8+12+16), binary.BigEndian.Uint32(out[4:8]))
	assert.Equal(8+12+16, len(out))

	// First chunk: 16px frame under the icp4 OSType.
	assert.Equal([]byte("icp4"), out[8:12])
	assert.Equal(uint32(12), binary.BigEndian.Uint32(out[12:16]))
	assert.Equal(payload(4), out[16:20])

	// Second chunk: 32px frame under the icp5 OSType.
	assert.Equal([]byte("icp5"), out[20:24])
	assert.Equal(uint32(16), binary.BigEndian.Uint32(out[24:28]))
	assert.Equal(payload(8), out[28:36])
}

func TestEncodeICNS_ChunksAreSortedBySize(t *testing.T) {
	assert := assert.New(t)

	// Insertion order deliberately scrambled.
	set := NewIconSet()
	assert.NoError(set.Add(Frame{Size: 512, Data: payload(2)}))
	assert.NoError(set.Add(Frame{Size: 16, Data: payload(2)}))
	assert.NoError(set.Add(Frame{Size: 128, Data: payload(2)}))

	var buf bytes.Buffer
	assert.NoError(EncodeICNS(&buf, set))
	out := buf.Bytes()

	assert.Equal([]byte("icp4"), out[8:12])
	assert.Equal([]byte("ic07"), out[18:22])
	assert.Equal([]byte("ic09"), out[28:32])
}

func TestEncodeICNS_UnmappedSizeIsSkippedSilently(t *testing.T) {
	assert := assert.New(t)

	set := NewIconSet()
	assert.NoError(set.Add(Frame{Size: 33, Data: payload(100)})) // no OSType registered
	assert.NoError(set.Add(Frame{Size: 16, Data: payload(4)}))

	var buf bytes.Buffer
	assert.NoError(EncodeICNS(&buf, set))
	out := buf.Bytes()

	// Only the 16px chunk is present and the total length reflects that.
	assert.Equal(uint32(8+12), binary.BigEndian.Uint32(out[4:8]))
	assert.Equal(8+12, len(out))
	assert.Equal([]byte("icp4"), out[8:12])
	assert.NotContains(string(out), string(payload(100)))
}

func TestEncodeICNS_EmptyBodyContainerIsValid(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	assert.NoError(EncodeICNS(&buf, NewIconSet()))

	out := buf.Bytes()
	assert.Equal(8, len(out))
	assert.Equal([]byte("icns"), out[:4])
	assert.Equal(uint32(8), binary.BigEndian.Uint32(out[4:8]))

	// A set holding only unregistered sizes degrades to the same thing.
	set := NewIconSet()
	assert.NoError(set.Add(Frame{Size: 77, Data: payload(9)}))
	buf.Reset()
	assert.NoError(EncodeICNS(&buf, set))
	assert.Equal(out, buf.Bytes())
}

func TestEncodeICNS_Idempotence(t *testing.T) {
	set := buildSet(t, FormatICNS.Sizes(), 32)

	var first, second bytes.Buffer
	assert.NoError(t, EncodeICNS(&first, set))
	assert.NoError(t, EncodeICNS(&second, set))

	assert.Equal(t, first.Bytes(), second.Bytes())
}
