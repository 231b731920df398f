package photo

import (
	"fmt"
	"image"
	"io"

	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
)

// Encoder writes an image in a web delivery format.
type Encoder interface {
	Encode(w io.Writer, img image.Image) error
}

// WebPEncoder produces lossy WebP output.
type WebPEncoder struct {
	// Quality is on libwebp's 0-100 scale.
	Quality int
	// Method is libwebp's effort level: 0 is fastest, 6 gives the smallest files.
	Method int
}

// Encode writes img to w as WebP.
func (e WebPEncoder) Encode(w io.Writer, img image.Image) error {
	options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, float32(e.Quality))
	if err != nil {
		return fmt.Errorf("webp options: %w", err)
	}
	options.Method = e.Method
	if err := webp.Encode(w, img, options); err != nil {
		return fmt.Errorf("webp encode: %w", err)
	}
	return nil
}
