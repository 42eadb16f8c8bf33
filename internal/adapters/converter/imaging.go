package converter

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"

	// registers the webp decoder with the image package
	_ "golang.org/x/image/webp"
)

const DefaultJPEGQuality = 95

// ImagingConverter decodes and encodes images with disintegration/imaging, honouring EXIF orientation on decode.
type ImagingConverter struct {
	jpegQuality int
}

func NewImagingConverter(jpegQuality int) *ImagingConverter {
	if jpegQuality <= 0 || jpegQuality > 100 {
		jpegQuality = DefaultJPEGQuality
	}
	return &ImagingConverter{jpegQuality: jpegQuality}
}

func (c *ImagingConverter) Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", errors.New("empty image data")
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("error reading image header: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("error decoding %s image: %w", format, err)
	}

	log.Debug().Str("format", format).Int("bytes", len(data)).Msg("decoded image")

	return img, format, nil
}

func (c *ImagingConverter) Encode(w io.Writer, img image.Image, format string) error {
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}

	opts := []imaging.EncodeOption{}
	if f == imaging.JPEG {
		opts = append(opts, imaging.JPEGQuality(c.jpegQuality))
	}

	if err := imaging.Encode(w, img, f, opts...); err != nil {
		return fmt.Errorf("error encoding %s image: %w", format, err)
	}

	return nil
}

// ParseFormat maps a format name or file extension to an encodable format.
func ParseFormat(format string) (imaging.Format, error) {
	name := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(format)), ".")
	if name == "" {
		return imaging.PNG, nil
	}

	f, err := imaging.FormatFromExtension(name)
	if err != nil {
		return 0, fmt.Errorf("unsupported output format %q: %w", format, err)
	}

	return f, nil
}
