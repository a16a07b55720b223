// Package imop implements the composition step that places a rendered
// source onto the fixed square canvas an icon frame requires.
// Icon containers only carry square frames; arbitrary sources are
// centered over a fully transparent backdrop instead of being
// stretched, so the source aspect ratio survives the packing.
package imop

import (
	"image"
	"image/draw"
)

// Bitmap wraps the transparent square canvas a frame is composed onto.
type Bitmap struct {
	Img *image.NRGBA
}

// NewBitmap initializes a transparent size x size canvas.
func NewBitmap(size int) *Bitmap {
	return &Bitmap{
		Img: image.NewNRGBA(image.Rect(0, 0, size, size)),
	}
}

// CenterOver draws src centered onto the canvas with source-over
// alpha composition. A source larger than the canvas is clipped at
// the canvas bounds; callers are expected to scale first.
func (b *Bitmap) CenterOver(src image.Image) {
	cw := b.Img.Bounds().Dx()
	ch := b.Img.Bounds().Dy()
	sw := src.Bounds().Dx()
	sh := src.Bounds().Dy()

	offset := image.Pt((cw-sw)/2, (ch-sh)/2)
	target := image.Rectangle{Min: offset, Max: offset.Add(image.Pt(sw, sh))}
	draw.Draw(b.Img, target.Intersect(b.Img.Bounds()), src, src.Bounds().Min, draw.Over)
}

// Square returns src centered on a transparent size x size canvas.
// A source that already fills the canvas exactly is still redrawn, so
// the result is always a fresh NRGBA the caller owns.
func Square(src image.Image, size int) *image.NRGBA {
	b := NewBitmap(size)
	b.CenterOver(src)
	return b.Img
}
