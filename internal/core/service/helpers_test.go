package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"photoedit/internal/core/domain"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type mockCodec struct {
	img image.Image
	err error
}

func (m *mockCodec) Decode(data []byte) (image.Image, string, error) {
	if m.err != nil {
		return nil, "", m.err
	}
	if m.img != nil {
		return m.img, "mock", nil
	}
	return image.Decode(bytes.NewReader(data))
}

func (m *mockCodec) Encode(w io.Writer, img image.Image, _ string) error {
	return png.Encode(w, img)
}

type memStore struct {
	mu    sync.Mutex
	files map[string][]byte
	err   error
}

func (m *memStore) Save(name string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return "", m.err
	}
	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	m.files[name] = append([]byte(nil), data...)
	return "/mem/" + name, nil
}

type renderCall struct {
	result *domain.ExportResult
	err    error
	// gate blocks the call until closed, ignoring cancellation
	gate chan struct{}
	// untilCancelled blocks the call until its context is cancelled
	untilCancelled bool
}

// mockRenderService answers each call with the renderCall registered under the request's filename.
type mockRenderService struct {
	mu       sync.Mutex
	calls    map[string]*renderCall
	requests []domain.ExportRequest
}

func (m *mockRenderService) Render(ctx context.Context, request domain.ExportRequest) (*domain.ExportResult, error) {
	m.mu.Lock()
	call, ok := m.calls[request.Filename()]
	m.requests = append(m.requests, request)
	m.mu.Unlock()

	if !ok {
		return nil, errors.New("unexpected render call")
	}

	if call.gate != nil {
		<-call.gate
	}
	if call.untilCancelled {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return call.result, call.err
}

func (m *mockRenderService) Requests() []domain.ExportRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ExportRequest(nil), m.requests...)
}

// gradient builds a deterministic test image with varied colours and partial alpha.
func gradient(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8((x * 255) / max(width-1, 1)),
				G: uint8((y * 255) / max(height-1, 1)),
				B: uint8(((x + y) * 7) % 256),
				A: uint8(200 + (x % 56)),
			})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestRenderer(maxWidth, maxHeight int) *PreviewRenderer {
	return NewPreviewRenderer(&mockCodec{}, NewSurfaceFitter(domain.Bounds{MaxWidth: maxWidth, MaxHeight: maxHeight}))
}
