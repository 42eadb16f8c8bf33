package service

import (
	"math"
	"math/rand"
	"photoedit/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFit(t *testing.T) {
	tests := []struct {
		name       string
		srcWidth   int
		srcHeight  int
		wantWidth  int
		wantHeight int
	}{
		{
			name:       "fits already, no upscaling",
			srcWidth:   100,
			srcHeight:  50,
			wantWidth:  100,
			wantHeight: 50,
		},
		{
			name:       "width bound",
			srcWidth:   1600,
			srcHeight:  800,
			wantWidth:  800,
			wantHeight: 400,
		},
		{
			name:       "height bound after width check passes",
			srcWidth:   400,
			srcHeight:  1000,
			wantWidth:  240,
			wantHeight: 600,
		},
		{
			name:       "width then height bound",
			srcWidth:   2000,
			srcHeight:  1800,
			wantWidth:  667,
			wantHeight: 600,
		},
		{
			name:       "exactly at bounds",
			srcWidth:   800,
			srcHeight:  600,
			wantWidth:  800,
			wantHeight: 600,
		},
		{
			name:       "extreme panorama keeps one pixel",
			srcWidth:   100000,
			srcHeight:  10,
			wantWidth:  800,
			wantHeight: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, h, err := Fit(tc.srcWidth, tc.srcHeight, 800, 600)
			require.NoError(t, err)
			assert.Equal(t, tc.wantWidth, w)
			assert.Equal(t, tc.wantHeight, h)
		})
	}
}

func TestFitInvalidGeometry(t *testing.T) {
	tests := []struct {
		name                string
		srcWidth, srcHeight int
		maxWidth, maxHeight int
	}{
		{name: "zero width", srcWidth: 0, srcHeight: 10, maxWidth: 800, maxHeight: 600},
		{name: "zero height", srcWidth: 10, srcHeight: 0, maxWidth: 800, maxHeight: 600},
		{name: "negative", srcWidth: -5, srcHeight: 10, maxWidth: 800, maxHeight: 600},
		{name: "zero bounds", srcWidth: 10, srcHeight: 10, maxWidth: 0, maxHeight: 600},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Fit(tc.srcWidth, tc.srcHeight, tc.maxWidth, tc.maxHeight)
			require.ErrorIs(t, err, domain.ErrInvalidGeometry)
		})
	}
}

func TestFitProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 5000; i++ {
		srcW, srcH := 1+rng.Intn(8000), 1+rng.Intn(8000)
		maxW, maxH := 1+rng.Intn(2000), 1+rng.Intn(2000)

		w, h, err := Fit(srcW, srcH, maxW, maxH)
		require.NoError(t, err)

		assert.LessOrEqual(t, w, maxW)
		assert.LessOrEqual(t, h, maxH)
		assert.LessOrEqual(t, w, srcW, "never upscales")
		assert.LessOrEqual(t, h, srcH, "never upscales")

		// one rounding unit on either axis; dimensions pinned to 1 are exempt
		if w > 1 && h > 1 {
			aspect := float64(srcW) / float64(srcH)
			widthErr := math.Abs(float64(w) - float64(h)*aspect)
			heightErr := math.Abs(float64(h) - float64(w)/aspect)
			assert.True(t, widthErr <= 1 || heightErr <= 1,
				"aspect drift for %dx%d in %dx%d: got %dx%d", srcW, srcH, maxW, maxH, w, h)
		}
	}
}

func TestSurfaceFitter(t *testing.T) {
	f := NewSurfaceFitter(domain.Bounds{MaxWidth: 800, MaxHeight: 600})
	assert.Equal(t, domain.Bounds{MaxWidth: 800, MaxHeight: 600}, f.Bounds())

	w, h, err := f.Fit(1600, 800)
	require.NoError(t, err)
	assert.Equal(t, 800, w)
	assert.Equal(t, 400, h)
}
