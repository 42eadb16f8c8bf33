package service

import (
	"context"
	"fmt"
	"image"
	"photoedit/internal/core/domain"
	"photoedit/internal/core/port"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"
)

// PreviewRenderer owns the decoded source image and the surface the chain is painted onto. It is not safe for
// concurrent use; a session drives it from a single goroutine.
type PreviewRenderer struct {
	codec   port.ImageCodec
	fitter  *SurfaceFitter
	source  *domain.SourceImage
	surface *image.NRGBA
}

func NewPreviewRenderer(codec port.ImageCodec, fitter *SurfaceFitter) *PreviewRenderer {
	return &PreviewRenderer{codec: codec, fitter: fitter}
}

// Load decodes data, scales it into the preview bounds and paints it unmodified. Any previously loaded image is
// released first, so a failed load leaves the renderer empty.
func (p *PreviewRenderer) Load(ctx context.Context, name string, data []byte) error {
	p.Release()

	if err := ctx.Err(); err != nil {
		return err
	}

	img, format, err := p.codec.Decode(data)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDecode, err)
	}

	bounds := img.Bounds()
	width, height, err := p.fitter.Fit(bounds.Dx(), bounds.Dy())
	if err != nil {
		return err
	}

	pixels := image.NewNRGBA(image.Rect(0, 0, width, height))
	if width == bounds.Dx() && height == bounds.Dy() {
		draw.Draw(pixels, pixels.Bounds(), img, bounds.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(pixels, pixels.Bounds(), img, bounds, draw.Src, nil)
	}

	raw := make([]byte, len(data))
	copy(raw, data)

	p.source = &domain.SourceImage{
		Name:         name,
		Raw:          raw,
		Format:       format,
		Width:        bounds.Dx(),
		Height:       bounds.Dy(),
		FittedWidth:  width,
		FittedHeight: height,
		Pixels:       pixels,
	}
	p.surface = imaging.Clone(pixels)

	log.Debug().
		Str("name", name).
		Str("format", format).
		Int("width", p.source.Width).
		Int("height", p.source.Height).
		Int("fittedWidth", width).
		Int("fittedHeight", height).
		Msg("loaded source image")

	return nil
}

// ApplyChain recomposes the whole surface from the original pixels, so repeated edits never compound rounding.
func (p *PreviewRenderer) ApplyChain(chain *domain.Chain) error {
	if p.source == nil {
		return domain.ErrNoImage
	}

	rendered := Compose(p.source.Pixels, chain.Snapshot())
	copy(p.surface.Pix, rendered.Pix)

	return nil
}

// Frame returns a copy of the current surface that the caller may keep.
func (p *PreviewRenderer) Frame() (*image.NRGBA, error) {
	if p.surface == nil {
		return nil, domain.ErrNoImage
	}
	return imaging.Clone(p.surface), nil
}

// Source returns the loaded image, or nil. The returned value must be treated as read-only.
func (p *PreviewRenderer) Source() *domain.SourceImage {
	return p.source
}

func (p *PreviewRenderer) Loaded() bool {
	return p.source != nil
}

// Release drops the source and surface buffers.
func (p *PreviewRenderer) Release() {
	p.source = nil
	p.surface = nil
}
