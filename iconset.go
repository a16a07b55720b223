package iconpack

import (
	"errors"
	"fmt"
)

// Contract violations surfaced by the encoders. They are returned
// wrapped with the offending size or format, so test with errors.Is.
var (
	// ErrEmptyIconSet is returned when the ICO encoder is invoked
	// with no frames. The ICO directory count field cannot be zero.
	ErrEmptyIconSet = errors.New("iconpack: empty icon set")

	// ErrDuplicateSize is returned when a frame with an already
	// registered size is added to an IconSet.
	ErrDuplicateSize = errors.New("iconpack: duplicate frame size")

	// ErrSizeOutOfRange is returned for frame sizes the ICO directory
	// cannot represent. Valid sizes are 1 through 65535.
	ErrSizeOutOfRange = errors.New("iconpack: frame size out of range")
)

// Frame is a single rendered icon resolution. Data holds a fully
// encoded, self-describing image (PNG in practice); the container
// encoders treat it as opaque bytes and only read its length.
type Frame struct {
	Size int
	Data []byte
}

// IconSet is an insertion-ordered collection of frames with unique
// sizes. Order matters for deterministic ICO output; the ICNS encoder
// re-sorts by size on its own.
type IconSet struct {
	frames []Frame
	bySize map[int]int
}

// NewIconSet returns an empty icon set.
func NewIconSet() *IconSet {
	return &IconSet{bySize: make(map[int]int)}
}

// Add appends a frame to the set. Adding a second frame with the same
// size returns ErrDuplicateSize, the set is left unchanged.
func (s *IconSet) Add(f Frame) error {
	if f.Size <= 0 {
		return fmt.Errorf("%w: %d", ErrSizeOutOfRange, f.Size)
	}
	if _, ok := s.bySize[f.Size]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateSize, f.Size)
	}
	s.bySize[f.Size] = len(s.frames)
	s.frames = append(s.frames, f)
	return nil
}

// Len returns the number of frames in the set.
func (s *IconSet) Len() int {
	return len(s.frames)
}

// Frames returns the frames in insertion order. The slice is shared;
// callers must not mutate it.
func (s *IconSet) Frames() []Frame {
	return s.frames
}

// Lookup returns the frame registered for the given size.
func (s *IconSet) Lookup(size int) (Frame, bool) {
	i, ok := s.bySize[size]
	if !ok {
		return Frame{}, false
	}
	return s.frames[i], true
}
