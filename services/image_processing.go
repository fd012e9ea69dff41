package services

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const preparedImageQuality = 90

// ErrUndecodableImage is returned when the payload is not an image any
// registered decoder understands. An empty payload is one of those.
var ErrUndecodableImage = errors.New("image could not be decoded")

// PreparedImage is what gets sent to the vision model: an opaque three channel
// picture encoded as baseline JPEG.
type PreparedImage struct {
	Data         []byte
	MIMEType     string
	Width        int
	Height       int
	SourceFormat string
}

// PrepareImage decodes imageBytes and normalizes it to RGB.
// Transparent areas are composed over white and grayscale, paletted or CMYK
// sources are expanded to three channels. When maxDimension is positive the
// longest side is scaled down to it.
// When maxPixels is positive, images whose header declares more pixels are
// rejected before any pixel data is decoded.
func PrepareImage(imageBytes []byte, maxDimension, maxPixels int) (*PreparedImage, error) {
	if len(imageBytes) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrUndecodableImage)
	}
	header, _, err := image.DecodeConfig(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodableImage, err)
	}
	if maxPixels > 0 && int64(header.Width)*int64(header.Height) > int64(maxPixels) {
		return nil, fmt.Errorf("%w: %dx%d exceeds the %d pixel limit", ErrUndecodableImage, header.Width, header.Height, maxPixels)
	}
	img, format, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodableImage, err)
	}
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("%w: invalid image size %dx%d", ErrUndecodableImage, bounds.Dx(), bounds.Dy())
	}

	rgb := flattenToRGB(img)
	if maxDimension > 0 && (rgb.Bounds().Dx() > maxDimension || rgb.Bounds().Dy() > maxDimension) {
		rgb = imaging.Fit(rgb, maxDimension, maxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, rgb, imaging.JPEG, imaging.JPEGQuality(preparedImageQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode image to jpeg: %w", err)
	}
	return &PreparedImage{
		Data:         buf.Bytes(),
		MIMEType:     "image/jpeg",
		Width:        rgb.Bounds().Dx(),
		Height:       rgb.Bounds().Dy(),
		SourceFormat: format,
	}, nil
}

// flattenToRGB draws img over a white canvas, the result is fully opaque.
func flattenToRGB(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	canvas := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	return imaging.Overlay(canvas, img, image.Pt(0, 0), 1.0)
}
