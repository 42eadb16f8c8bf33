package service

import (
	"fmt"
	"math"
	"photoedit/internal/core/domain"
)

// Fit scales a source size into the given bounds with a single scale factor. It never upscales: a source that
// already fits is returned as is.
func Fit(srcWidth, srcHeight, maxWidth, maxHeight int) (int, int, error) {
	if srcWidth <= 0 || srcHeight <= 0 {
		return 0, 0, fmt.Errorf("%w: source is %dx%d", domain.ErrInvalidGeometry, srcWidth, srcHeight)
	}

	if maxWidth <= 0 || maxHeight <= 0 {
		return 0, 0, fmt.Errorf("%w: bounds are %dx%d", domain.ErrInvalidGeometry, maxWidth, maxHeight)
	}

	aspect := float64(srcWidth) / float64(srcHeight)
	width := float64(srcWidth)
	height := float64(srcHeight)

	if srcWidth > maxWidth {
		width = float64(maxWidth)
		height = width / aspect
	}

	if height > float64(maxHeight) {
		height = float64(maxHeight)
		width = height * aspect
	}

	return toPixels(width, maxWidth), toPixels(height, maxHeight), nil
}

func toPixels(v float64, limit int) int {
	px := int(math.Round(v))
	if px < 1 {
		return 1
	}
	if px > limit {
		return limit
	}
	return px
}

// SurfaceFitter applies Fit against fixed preview bounds.
type SurfaceFitter struct {
	bounds domain.Bounds
}

func NewSurfaceFitter(bounds domain.Bounds) *SurfaceFitter {
	return &SurfaceFitter{bounds: bounds}
}

func (f *SurfaceFitter) Bounds() domain.Bounds {
	return f.bounds
}

func (f *SurfaceFitter) Fit(srcWidth, srcHeight int) (int, int, error) {
	return Fit(srcWidth, srcHeight, f.bounds.MaxWidth, f.bounds.MaxHeight)
}
