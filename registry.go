package iconpack

import "sort"

// Format identifies one of the produced icon container formats.
type Format int

const (
	// FormatICO is the Windows multi-resolution icon container.
	FormatICO Format = iota
	// FormatICNS is the Apple multi-resolution icon container.
	FormatICNS
	// FormatPNG is the raw per-size PNG ladder used by Linux desktops.
	FormatPNG
)

// String returns the canonical file extension of the format, without the dot.
func (f Format) String() string {
	switch f {
	case FormatICO:
		return "ico"
	case FormatICNS:
		return "icns"
	case FormatPNG:
		return "png"
	}
	return "unknown"
}

// Size ladders the OS shells expect, one per container format.
// The slices are package-level constants in spirit: constructed once,
// never mutated, ladder order is the order frames are requested in.
var (
	icoSizes  = []int{16, 24, 32, 48, 64, 128, 256}
	icnsSizes = []int{16, 32, 64, 128, 256, 512, 1024}
)

// Sizes returns the pixel size ladder required by the format.
// The returned slice is a copy; callers may reorder it freely.
func (f Format) Sizes() []int {
	var ladder []int
	switch f {
	case FormatICO:
		ladder = icoSizes
	case FormatICNS:
		ladder = icnsSizes
	case FormatPNG:
		// The PNG ladder is the union of both container ladders.
		return unionSizes(icoSizes, icnsSizes)
	}
	return append([]int(nil), ladder...)
}

// unionSizes merges two ascending ladders, dropping duplicates.
func unionSizes(a, b []int) []int {
	seen := make(map[int]bool, len(a)+len(b))
	union := make([]int, 0, len(a)+len(b))
	for _, ladder := range [][]int{a, b} {
		for _, size := range ladder {
			if !seen[size] {
				seen[size] = true
				union = append(union, size)
			}
		}
	}
	sort.Ints(union)
	return union
}

// icnsTypeCodes maps a pixel size to its 4-character ICNS OSType code.
// The table is data, not logic: new canonical sizes required by future
// macOS versions are added here and nowhere else. A size missing from
// this table is silently skipped by the ICNS encoder.
var icnsTypeCodes = map[int]string{
	16:   "icp4",
	32:   "icp5",
	64:   "icp6",
	128:  "ic07",
	256:  "ic08",
	512:  "ic09",
	1024: "ic10",
}

// ICNSTypeCode returns the OSType chunk identifier for the given pixel
// size and whether the size is registered at all.
func ICNSTypeCode(size int) (string, bool) {
	code, ok := icnsTypeCodes[size]
	return code, ok
}
