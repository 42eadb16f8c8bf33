package port

import (
	"image"
	"io"
)

type ImageCodec interface {
	// Decode parses encoded image bytes and returns the image together with its format name.
	Decode(data []byte) (image.Image, string, error)
	// Encode writes img to w in the given format, e.g. "png" or "jpeg".
	Encode(w io.Writer, img image.Image, format string) error
}
