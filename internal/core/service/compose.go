package service

import (
	"image"
	"image/color"
	"math"
	"photoedit/internal/core/domain"

	"github.com/disintegration/imaging"
)

// Compose renders the snapshot over src and returns a new buffer; src is never modified. The preview renderer and the
// render server both call it.
func Compose(src image.Image, snapshot domain.Snapshot) *image.NRGBA {
	return composeSettings(src, snapshot.Settings())
}

func composeSettings(src image.Image, settings []domain.Setting) *image.NRGBA {
	out := imaging.Clone(src)

	for _, setting := range settings {
		if setting.Value == setting.Kind.Neutral() {
			continue
		}

		pass := passFor(setting)
		if pass == nil {
			continue
		}

		out = imaging.AdjustFunc(out, pass)
	}

	return out
}

func passFor(setting domain.Setting) func(color.NRGBA) color.NRGBA {
	v := setting.Value

	switch setting.Kind {
	case domain.Brightness:
		return brightness(v)
	case domain.Contrast:
		return contrast(v)
	case domain.Saturation:
		return saturation(v)
	case domain.Exposure:
		return exposure(v)
	case domain.Hue:
		return hueRotate(v)
	case domain.Vibrancy:
		return vibrancy(v)
	default:
		return nil
	}
}

func brightness(v float64) func(color.NRGBA) color.NRGBA {
	delta := (v - 1) * 255
	return perChannel(func(c float64) float64 { return c + delta })
}

func contrast(v float64) func(color.NRGBA) color.NRGBA {
	k := (v - 1) * 255
	factor := 259 * (k + 255) / (255 * (259 - k))
	return perChannel(func(c float64) float64 { return factor*(c-128) + 128 })
}

func exposure(v float64) func(color.NRGBA) color.NRGBA {
	return perChannel(func(c float64) float64 { return c * v })
}

func saturation(v float64) func(color.NRGBA) color.NRGBA {
	adjust := 1 - v
	return func(c color.NRGBA) color.NRGBA {
		r, g, b := float64(c.R), float64(c.G), float64(c.B)
		m := math.Max(r, math.Max(g, b))
		return color.NRGBA{
			R: clampChannel(r + (m-r)*adjust),
			G: clampChannel(g + (m-g)*adjust),
			B: clampChannel(b + (m-b)*adjust),
			A: c.A,
		}
	}
}

// vibrancy pulls channels towards their max weighted by how saturated the pixel already is, so muted colours move
// less than vivid ones.
func vibrancy(v float64) func(color.NRGBA) color.NRGBA {
	adjust := 1 - v
	return func(c color.NRGBA) color.NRGBA {
		r, g, b := float64(c.R), float64(c.G), float64(c.B)
		m := math.Max(r, math.Max(g, b))
		avg := (r + g + b) / 3
		amount := (math.Abs(m-avg) * 2 / 255) * adjust
		return color.NRGBA{
			R: clampChannel(r + (m-r)*amount),
			G: clampChannel(g + (m-g)*amount),
			B: clampChannel(b + (m-b)*amount),
			A: c.A,
		}
	}
}

// hueRotate uses the feColorMatrix hueRotate matrix with the angle in degrees.
func hueRotate(degrees float64) func(color.NRGBA) color.NRGBA {
	rad := degrees * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)

	m := [3][3]float64{
		{0.213 + cos*0.787 - sin*0.213, 0.715 - cos*0.715 - sin*0.715, 0.072 - cos*0.072 + sin*0.928},
		{0.213 - cos*0.213 + sin*0.143, 0.715 + cos*0.285 + sin*0.140, 0.072 - cos*0.072 - sin*0.283},
		{0.213 - cos*0.213 - sin*0.787, 0.715 - cos*0.715 + sin*0.715, 0.072 + cos*0.928 + sin*0.072},
	}

	return func(c color.NRGBA) color.NRGBA {
		r, g, b := float64(c.R), float64(c.G), float64(c.B)
		return color.NRGBA{
			R: clampChannel(m[0][0]*r + m[0][1]*g + m[0][2]*b),
			G: clampChannel(m[1][0]*r + m[1][1]*g + m[1][2]*b),
			B: clampChannel(m[2][0]*r + m[2][1]*g + m[2][2]*b),
			A: c.A,
		}
	}
}

func perChannel(fn func(float64) float64) func(color.NRGBA) color.NRGBA {
	return func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: clampChannel(fn(float64(c.R))),
			G: clampChannel(fn(float64(c.G))),
			B: clampChannel(fn(float64(c.B))),
			A: c.A,
		}
	}
}

func clampChannel(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
