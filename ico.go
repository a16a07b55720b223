package iconpack

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ICO container layout constants. Reference:
// https://en.wikipedia.org/wiki/ICO_(file_format)
const (
	icoHeaderSize = 6
	icoEntrySize  = 16

	// icoTypeIcon distinguishes icons (1) from cursors (2) in the
	// container header.
	icoTypeIcon = 1

	// icoMaxFrames is capped by the 16-bit directory count field.
	icoMaxFrames = 0xFFFF
)

// EncodeICO writes the icon set to w in the Windows ICO container
// layout: a 6-byte header, one 16-byte directory entry per frame in
// insertion order, then the raw frame payloads concatenated without
// padding. All integer fields are little-endian.
//
// The set must be non-empty, hold at most 65535 frames, and every
// frame size must fit in the directory's 16-bit range. Violations are
// reported before any byte is written.
func EncodeICO(w io.Writer, set *IconSet) error {
	if set == nil || set.Len() == 0 {
		return ErrEmptyIconSet
	}
	frames := set.Frames()
	if len(frames) > icoMaxFrames {
		return fmt.Errorf("%w: %d frames exceed the 16-bit directory count", ErrSizeOutOfRange, len(frames))
	}
	for _, f := range frames {
		if f.Size < 1 || f.Size > 0xFFFF {
			return fmt.Errorf("%w: %d", ErrSizeOutOfRange, f.Size)
		}
	}

	total := icoHeaderSize + icoEntrySize*len(frames)
	for _, f := range frames {
		total += len(f.Data)
	}
	buf := make([]byte, 0, total)

	var header [icoHeaderSize]byte
	binary.LittleEndian.PutUint16(header[0:], 0) // reserved
	binary.LittleEndian.PutUint16(header[2:], icoTypeIcon)
	binary.LittleEndian.PutUint16(header[4:], uint16(len(frames)))
	buf = append(buf, header[:]...)

	// Directory entries carry absolute payload offsets, so the offsets
	// are accumulated in a single left-to-right pass before any payload
	// byte is placed: entry i depends on the lengths of entries 0..i-1.
	offset := uint32(icoHeaderSize + icoEntrySize*len(frames))
	for _, f := range frames {
		var entry [icoEntrySize]byte
		entry[0] = icoDimensionByte(f.Size) // width
		entry[1] = icoDimensionByte(f.Size) // height, square frames only
		entry[2] = 0                        // no color palette
		entry[3] = 0                        // reserved
		binary.LittleEndian.PutUint16(entry[4:], 1)  // color planes
		binary.LittleEndian.PutUint16(entry[6:], 32) // bits per pixel
		binary.LittleEndian.PutUint32(entry[8:], uint32(len(f.Data)))
		binary.LittleEndian.PutUint32(entry[12:], offset)
		buf = append(buf, entry[:]...)
		offset += uint32(len(f.Data))
	}

	for _, f := range frames {
		buf = append(buf, f.Data...)
	}

	_, err := w.Write(buf)
	return err
}

// icoDimensionByte encodes a pixel dimension into the single-byte
// directory field. The format reserves the byte value 0 to mean 256;
// plain truncation would silently corrupt 256px frames, so the case
// is spelled out.
func icoDimensionByte(size int) byte {
	if size >= 256 {
		return 0
	}
	return byte(size)
}
