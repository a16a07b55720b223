package iconpack

import (
	"encoding/binary"
	"io"
	"sort"
)

// icnsMagic is the ASCII signature opening every ICNS container.
const icnsMagic = "icns"

const (
	// icnsHeaderSize covers the magic plus the 32-bit total length field.
	icnsHeaderSize = 8
	// icnsChunkHeaderSize covers a chunk's OSType plus its length field.
	icnsChunkHeaderSize = 8
)

// EncodeICNS writes the icon set to w in the Apple ICNS container
// layout: an 8-byte header (the "icns" magic and the total file
// length), followed by one chunk per frame. Each chunk is a 4-byte
// OSType code from the type-code table, a 4-byte length covering the
// chunk header and payload, and the raw payload. All integer fields
// are big-endian, unlike ICO; the asymmetry is intrinsic to the two
// formats.
//
// Frames are emitted in ascending size order regardless of insertion
// order, so output is deterministic. Frames whose size has no OSType
// registered are skipped silently; a set with no encodable frame
// still yields a valid empty-body container.
func EncodeICNS(w io.Writer, set *IconSet) error {
	var frames []Frame
	if set != nil {
		for _, f := range set.Frames() {
			if _, ok := ICNSTypeCode(f.Size); ok {
				frames = append(frames, f)
			}
		}
	}
	sort.Slice(frames, func(i, j int) bool {
		return frames[i].Size < frames[j].Size
	})

	// The header carries the whole file length, so the chunk lengths
	// are summed up front instead of buffering the body twice.
	total := icnsHeaderSize
	for _, f := range frames {
		total += icnsChunkHeaderSize + len(f.Data)
	}

	buf := make([]byte, 0, total)
	buf = append(buf, icnsMagic...)
	buf = binary.BigEndian.AppendUint32(buf, uint32(total))

	for _, f := range frames {
		code, _ := ICNSTypeCode(f.Size)
		buf = append(buf, code...)
		buf = binary.BigEndian.AppendUint32(buf, uint32(icnsChunkHeaderSize+len(f.Data)))
		buf = append(buf, f.Data...)
	}

	_, err := w.Write(buf)
	return err
}
