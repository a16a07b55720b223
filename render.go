package iconpack

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/halfcrow/iconpack/imop"
	"github.com/halfcrow/iconpack/utils"
)

// Renderer produces one encoded PNG frame per requested pixel size.
// Implementations must be safe for concurrent Render calls, since the
// pipeline fans out one goroutine per ladder size.
type Renderer interface {
	Render(size int) ([]byte, error)
}

// NewRenderer reads the source image and returns the renderer matching
// its content: vector sources are re-rasterized per size, raster
// sources are downscaled per size. The upscale flag permits enlarging
// a raster source beyond its native resolution; vector sources scale
// losslessly and ignore it.
func NewRenderer(r io.Reader, upscale bool) (Renderer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read the source image: %w", err)
	}

	if isSVG(data) {
		// Parse eagerly so a malformed source fails the whole run
		// before any rasterization goroutine is launched.
		if _, err := oksvg.ReadIconStream(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("could not parse the SVG source: %w", err)
		}
		return &svgRenderer{src: data}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not decode the source image: %w", err)
	}
	return &rasterRenderer{img: img, upscale: upscale}, nil
}

// isSVG sniffs the raw source bytes for an SVG document. The check is
// content-based, not extension-based, so piped sources work too.
func isSVG(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.Contains(head, []byte("<svg")) || bytes.Contains(head, []byte("<?xml"))
}

// svgRenderer rasterizes a vector source at each requested size.
// The raw bytes are re-parsed per call: oksvg icons carry mutable
// target state, and sharing one across goroutines would race.
type svgRenderer struct {
	src []byte
}

func (r *svgRenderer) Render(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("cannot render a %dpx frame: %w", size, ErrSizeOutOfRange)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(r.src))
	if err != nil {
		return nil, fmt.Errorf("could not parse the SVG source: %w", err)
	}

	w, h := icon.ViewBox.W, icon.ViewBox.H
	if w <= 0 || h <= 0 {
		w, h = float64(size), float64(size)
	}

	// Fit the viewbox into the square frame preserving aspect ratio,
	// centered over the transparent remainder.
	scale := float64(size) / utils.Max(w, h)
	outW := int(w * scale)
	outH := int(h * scale)
	icon.SetTarget(float64((size-outW)/2), float64((size-outH)/2), float64(outW), float64(outH))

	canvas := imop.NewBitmap(size)
	scanner := rasterx.NewScannerGV(size, size, canvas.Img, canvas.Img.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1.0)

	return encodeFrame(canvas.Img)
}

// rasterRenderer scales an already decoded raster source to each
// requested size. Reads of the shared decoded image are lock-free;
// the image is never mutated after construction.
type rasterRenderer struct {
	img     image.Image
	upscale bool
}

func (r *rasterRenderer) Render(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("cannot render a %dpx frame: %w", size, ErrSizeOutOfRange)
	}

	native := utils.Max(r.img.Bounds().Dx(), r.img.Bounds().Dy())
	if native < size && !r.upscale {
		return nil, fmt.Errorf("source resolution %dpx is below the requested %dpx frame (use the upscale option to permit enlarging)", native, size)
	}

	var fitted image.Image
	if native >= size {
		fitted = imaging.Fit(r.img, size, size, imaging.Lanczos)
	} else {
		// imaging.Fit never enlarges, so the upscale path resizes by
		// the larger dimension explicitly.
		fitted = imaging.Resize(r.img, scaledDim(r.img, size), 0, imaging.Lanczos)
	}

	return encodeFrame(imop.Square(fitted, size))
}

// scaledDim returns the width that scales the image's larger dimension
// up to the frame size, so imaging.Resize keeps the aspect ratio.
func scaledDim(img image.Image, size int) int {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w >= h {
		return size
	}
	return w * size / h
}

// encodeFrame encodes the composed canvas as the PNG payload the
// container encoders embed verbatim.
func encodeFrame(img *image.NRGBA) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("could not encode the frame: %w", err)
	}
	return buf.Bytes(), nil
}
