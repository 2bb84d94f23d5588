// Package variants produces the downscaled derivatives of an uploaded
// photo. Both derivatives are re-encoded to JPEG, so the object storage
// never serves an original byte stream through a public variant.
package variants

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

const (
	// PreviewMaxEdge bounds the longer dimension of the preview variant.
	PreviewMaxEdge = 1600
	// ThumbMaxEdge bounds the longer dimension of the thumb variant.
	ThumbMaxEdge = 400

	// ContentType is the content type of every generated derivative.
	ContentType = "image/jpeg"

	jpegQuality = 82
)

// Variants carries the two re-encoded derivatives of one source image.
type Variants struct {
	Preview []byte
	Thumb   []byte
}

// Generate decodes the source image once and produces both derivatives.
// A corrupt or unreadable image is a hard error; the caller's pipeline for
// that file must abort rather than store a blank substitute.
func Generate(r io.Reader) (Variants, error) {
	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return Variants{}, fmt.Errorf("failed to decode image: %w", err)
	}

	preview, err := encode(downscale(src, PreviewMaxEdge))
	if err != nil {
		return Variants{}, fmt.Errorf("failed to encode preview: %w", err)
	}

	thumb, err := encode(downscale(src, ThumbMaxEdge))
	if err != nil {
		return Variants{}, fmt.Errorf("failed to encode thumb: %w", err)
	}

	return Variants{Preview: preview, Thumb: thumb}, nil
}

// downscale bounds the longer edge at maxEdge. The scale factor is clamped
// to 1.0: images already within bounds keep their size.
func downscale(src image.Image, maxEdge int) image.Image {
	bounds := src.Bounds()
	longEdge := bounds.Dx()
	if bounds.Dy() > longEdge {
		longEdge = bounds.Dy()
	}
	if longEdge <= maxEdge {
		return src
	}
	if bounds.Dx() >= bounds.Dy() {
		return imaging.Resize(src, maxEdge, 0, imaging.Lanczos)
	}
	return imaging.Resize(src, 0, maxEdge, imaging.Lanczos)
}

func encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
