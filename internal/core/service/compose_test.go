package service

import (
	"image"
	"image/color"
	"photoedit/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func snapshotOf(t *testing.T, values map[domain.Kind]float64) domain.Snapshot {
	t.Helper()

	c := domain.NewChain()
	for kind, v := range values {
		require.NoError(t, c.Update(kind, v))
	}
	return c.Snapshot()
}

func TestComposeNeutralCopiesSource(t *testing.T) {
	src := gradient(16, 9)
	before := append([]uint8(nil), src.Pix...)

	out := Compose(src, domain.NewChain().Snapshot())

	assert.Equal(t, src.Pix, out.Pix)
	assert.Equal(t, before, src.Pix)

	out.Pix[0] ^= 0xff
	assert.Equal(t, before, src.Pix, "output must not alias the source")
}

func TestComposeZeroSnapshotIsNeutral(t *testing.T) {
	src := gradient(16, 9)

	out := Compose(src, domain.Snapshot{})

	assert.Equal(t, src.Pix, out.Pix)
}

func TestComposePasses(t *testing.T) {
	grey := color.NRGBA{R: 100, G: 100, B: 100, A: 180}
	red := color.NRGBA{R: 200, G: 100, B: 50, A: 255}

	tests := []struct {
		name   string
		src    color.NRGBA
		values map[domain.Kind]float64
		want   color.NRGBA
	}{
		{
			name:   "brightness adds",
			src:    grey,
			values: map[domain.Kind]float64{domain.Brightness: 1.5},
			want:   color.NRGBA{R: 228, G: 228, B: 228, A: 180},
		},
		{
			name:   "brightness zero is black",
			src:    grey,
			values: map[domain.Kind]float64{domain.Brightness: 0},
			want:   color.NRGBA{A: 180},
		},
		{
			name:   "exposure multiplies",
			src:    grey,
			values: map[domain.Kind]float64{domain.Exposure: 1.5},
			want:   color.NRGBA{R: 150, G: 150, B: 150, A: 180},
		},
		{
			name:   "contrast zero flattens to mid grey",
			src:    red,
			values: map[domain.Kind]float64{domain.Contrast: 0},
			want:   color.NRGBA{R: 128, G: 128, B: 128, A: 255},
		},
		{
			name:   "saturation zero pulls to max channel",
			src:    red,
			values: map[domain.Kind]float64{domain.Saturation: 0},
			want:   color.NRGBA{R: 200, G: 200, B: 200, A: 255},
		},
		{
			name:   "saturation two pushes away from max channel",
			src:    red,
			values: map[domain.Kind]float64{domain.Saturation: 2},
			want:   color.NRGBA{R: 200, G: 0, B: 0, A: 255},
		},
		{
			name:   "hue leaves grey untouched",
			src:    grey,
			values: map[domain.Kind]float64{domain.Hue: 120},
			want:   grey,
		},
		{
			name:   "vibrancy leaves grey untouched",
			src:    grey,
			values: map[domain.Kind]float64{domain.Vibrancy: 2},
			want:   grey,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := Compose(solid(tc.src), snapshotOf(t, tc.values))
			assert.Equal(t, tc.want, out.NRGBAAt(1, 1))
		})
	}
}

func TestComposeHueRotatesColour(t *testing.T) {
	red := solid(color.NRGBA{R: 200, G: 30, B: 30, A: 255})

	out := Compose(red, snapshotOf(t, map[domain.Kind]float64{domain.Hue: 120}))
	got := out.NRGBAAt(0, 0)

	assert.Greater(t, got.G, got.R, "a 120 degree rotation moves red towards green")
	assert.Equal(t, uint8(255), got.A)
}

func TestComposeVibrancyDiffersFromSaturation(t *testing.T) {
	src := gradient(32, 32)

	sat := Compose(src, snapshotOf(t, map[domain.Kind]float64{domain.Saturation: 1.8}))
	vib := Compose(src, snapshotOf(t, map[domain.Kind]float64{domain.Vibrancy: 1.8}))

	assert.NotEqual(t, sat.Pix, vib.Pix)
}

func TestComposeBrightnessAndExposureAreSeparatePasses(t *testing.T) {
	src := gradient(32, 32)

	both := Compose(src, snapshotOf(t, map[domain.Kind]float64{domain.Brightness: 1.4, domain.Exposure: 1.4}))
	doubled := Compose(src, snapshotOf(t, map[domain.Kind]float64{domain.Brightness: 1.8}))

	assert.NotEqual(t, doubled.Pix, both.Pix)
}

func TestComposeOrderMatters(t *testing.T) {
	src := solid(color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	snapshot := snapshotOf(t, map[domain.Kind]float64{domain.Brightness: 1.5, domain.Contrast: 1.5})

	declared := snapshot.Settings()
	swapped := snapshot.Settings()
	swapped[0], swapped[1] = swapped[1], swapped[0]

	inOrder := composeSettings(src, declared)
	outOfOrder := composeSettings(src, swapped)

	assert.Equal(t, Compose(src, snapshot).Pix, inOrder.Pix)
	assert.Equal(t, uint8(255), inOrder.NRGBAAt(0, 0).R)
	assert.Equal(t, uint8(173), outOfOrder.NRGBAAt(0, 0).R)
	assert.NotEqual(t, inOrder.Pix, outOfOrder.Pix)
}

func TestComposeIsDeterministic(t *testing.T) {
	src := gradient(64, 48)
	snapshot := snapshotOf(t, map[domain.Kind]float64{
		domain.Brightness: 1.1,
		domain.Contrast:   1.3,
		domain.Saturation: 0.7,
		domain.Exposure:   1.2,
		domain.Hue:        -35,
		domain.Vibrancy:   1.6,
	})

	first := Compose(src, snapshot)
	second := Compose(src, snapshot)

	assert.Equal(t, first.Pix, second.Pix)
}
