// Package ocr prepares card images and runs them through an ordered chain of
// text recognizers.
package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoding

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoding

	"sitediary/internal/domain"
)

const jpegQuality = 85

// Preprocess decodes a JPEG, PNG or WebP image, scales it down so its longer
// side is at most maxDim pixels and re-encodes it as JPEG.
// maxDim <= 0 keeps the original size.
func Preprocess(data []byte, maxDim int) ([]byte, string, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrUnsupportedFileType, err)
	}

	dst := scaleDown(src, maxDim)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, "", fmt.Errorf("ocr.Preprocess: encoding jpeg: %w", err)
	}
	return buf.Bytes(), "image/jpeg", nil
}

func scaleDown(src image.Image, maxDim int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return src
	}

	var nw, nh int
	if w >= h {
		nw, nh = maxDim, max(1, h*maxDim/w)
	} else {
		nw, nh = max(1, w*maxDim/h), maxDim
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
