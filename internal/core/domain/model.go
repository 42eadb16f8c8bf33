package domain

import "image"

// State is the lifecycle position of an editing session.
type State int

const (
	Empty State = iota
	Loaded
	Editing
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Loaded:
		return "loaded"
	case Editing:
		return "editing"
	default:
		return "unknown"
	}
}

// Bounds limit the size of the preview surface.
type Bounds struct {
	MaxWidth  int
	MaxHeight int
}

// SourceImage is a decoded image together with the bytes it was decoded from.
type SourceImage struct {
	Name         string
	Raw          []byte
	Format       string
	Width        int
	Height       int
	FittedWidth  int
	FittedHeight int
	Pixels       *image.NRGBA
}

// ImageInfo describes the loaded image without exposing its buffers.
type ImageInfo struct {
	Name         string
	Format       string
	Width        int
	Height       int
	FittedWidth  int
	FittedHeight int
}

func (s *SourceImage) Info() ImageInfo {
	return ImageInfo{
		Name:         s.Name,
		Format:       s.Format,
		Width:        s.Width,
		Height:       s.Height,
		FittedWidth:  s.FittedWidth,
		FittedHeight: s.FittedHeight,
	}
}

// ExportRequest is the payload of a single call to the render service.
type ExportRequest struct {
	filename string
	source   []byte
	snapshot Snapshot
}

// NewExportRequest copies source so later changes to the caller's buffer cannot leak into an in-flight request.
func NewExportRequest(filename string, source []byte, snapshot Snapshot) ExportRequest {
	buf := make([]byte, len(source))
	copy(buf, source)

	if filename == "" {
		filename = "image"
	}

	return ExportRequest{filename: filename, source: buf, snapshot: snapshot}
}

func (r ExportRequest) Filename() string {
	return r.filename
}

// Source returns the encoded source image. Callers must not modify it.
func (r ExportRequest) Source() []byte {
	return r.source
}

func (r ExportRequest) Snapshot() Snapshot {
	return r.snapshot
}

// ExportResult holds the rendered image exactly as the render service returned it.
type ExportResult struct {
	Data   []byte
	Format string
	Width  int
	Height int
}

// Message is a single line of input addressed to a session command.
type Message struct {
	ID   int
	Text string
}
