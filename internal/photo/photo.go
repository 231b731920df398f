// Package photo turns camera JPEGs into upright, opaque images and encodes
// them for the web selector.
package photo

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"os"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// EXIF orientation values that need a pure rotation. Mirrored variants
// (2, 4, 5, 7) are left alone.
const (
	OrientationNormal    = 1
	OrientationRotate180 = 3
	OrientationRotateCW  = 6
	OrientationRotateCCW = 8
)

// Load decodes the image at path and returns it upright and opaque, ready
// for encoding. Missing or unreadable EXIF data means no rotation.
func Load(path string) (*image.NRGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	img = Orient(img, ReadOrientation(data))
	return Normalize(img), nil
}

// ReadOrientation returns the EXIF orientation tag of a JPEG, or
// OrientationNormal when the data has no usable tag.
func ReadOrientation(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return OrientationNormal
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return OrientationNormal
	}
	v, err := tag.Int(0)
	if err != nil {
		return OrientationNormal
	}
	return v
}

// Orient applies the rotation recorded by an EXIF orientation value.
func Orient(img image.Image, orientation int) image.Image {
	switch orientation {
	case OrientationRotate180:
		return imaging.Rotate180(img)
	case OrientationRotateCW:
		// imaging rotates counter-clockwise.
		return imaging.Rotate270(img)
	case OrientationRotateCCW:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// NeedsFlatten reports whether img is palette-indexed or carries
// transparency that must be removed before encoding.
func NeedsFlatten(img image.Image) bool {
	if _, ok := img.(*image.Paletted); ok {
		return true
	}
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	switch img.ColorModel() {
	case color.RGBAModel, color.RGBA64Model, color.NRGBAModel, color.NRGBA64Model,
		color.AlphaModel, color.Alpha16Model:
		return true
	}
	return false
}

// Normalize converts img to an opaque NRGBA buffer. Transparent pixels are
// composited over white; palette images are expanded to full color.
func Normalize(img image.Image) *image.NRGBA {
	if !NeedsFlatten(img) {
		return imaging.Clone(img)
	}
	b := img.Bounds()
	background := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(background, img, image.Pt(0, 0), 1.0)
}
