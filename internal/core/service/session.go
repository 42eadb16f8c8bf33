package service

import (
	"context"
	"image"
	"photoedit/internal/core/domain"

	"github.com/rs/zerolog/log"
)

// Editor is the set of operations the UI layer drives an editing session with.
type Editor interface {
	Load(ctx context.Context, name string, data []byte) error
	Update(kind domain.Kind, value float64) error
	Reset() error
	Submit(ctx context.Context) (<-chan error, error)
	Download(filename string) (string, error)
	Frame() (image.Image, error)
	State() domain.State
	Chain() domain.Snapshot
	Info() (domain.ImageInfo, error)
}

// Session ties a chain, its preview renderer and the export coordinator together and tracks the session state.
type Session struct {
	chain    *domain.Chain
	renderer *PreviewRenderer
	exporter *ExportCoordinator
	resetter ResetController
	state    domain.State
}

func NewSession(renderer *PreviewRenderer, exporter *ExportCoordinator) *Session {
	return &Session{
		chain:    domain.NewChain(),
		renderer: renderer,
		exporter: exporter,
		state:    domain.Empty,
	}
}

// Load replaces the current image. The chain starts over at neutral and any previous export is discarded.
func (s *Session) Load(ctx context.Context, name string, data []byte) error {
	s.exporter.Discard()
	s.chain = domain.NewChain()
	s.state = domain.Empty

	if err := s.renderer.Load(ctx, name, data); err != nil {
		log.Warn().Err(err).Str("name", name).Msg("failed to load image")
		return err
	}

	s.state = domain.Loaded
	return nil
}

func (s *Session) Update(kind domain.Kind, value float64) error {
	if s.state == domain.Empty {
		return domain.ErrNoImage
	}

	if err := s.chain.Update(kind, value); err != nil {
		return err
	}

	if err := s.renderer.ApplyChain(s.chain); err != nil {
		return err
	}

	s.state = domain.Editing
	return nil
}

func (s *Session) Reset() error {
	if s.state == domain.Empty {
		return domain.ErrNoImage
	}

	if err := s.resetter.Reset(s.chain, s.renderer); err != nil {
		return err
	}

	s.state = domain.Loaded
	return nil
}

// Submit starts an export of the original source bytes with the current chain. It does not block on the render
// service; the returned channel delivers the outcome.
func (s *Session) Submit(ctx context.Context) (<-chan error, error) {
	source := s.renderer.Source()
	if s.state == domain.Empty || source == nil {
		return nil, domain.ErrNoImage
	}

	request := domain.NewExportRequest(source.Name, source.Raw, s.chain.Snapshot())
	return s.exporter.Submit(ctx, request), nil
}

func (s *Session) Download(filename string) (string, error) {
	if s.state == domain.Empty {
		return "", domain.ErrNoImage
	}

	return s.exporter.Download(filename)
}

func (s *Session) Frame() (image.Image, error) {
	frame, err := s.renderer.Frame()
	if err != nil {
		return nil, err
	}
	return frame, nil
}

func (s *Session) State() domain.State {
	return s.state
}

func (s *Session) Chain() domain.Snapshot {
	return s.chain.Snapshot()
}

func (s *Session) Info() (domain.ImageInfo, error) {
	source := s.renderer.Source()
	if source == nil {
		return domain.ImageInfo{}, domain.ErrNoImage
	}
	return source.Info(), nil
}

// Close releases the image buffers and cancels any pending export.
func (s *Session) Close() {
	s.exporter.Discard()
	s.renderer.Release()
	s.state = domain.Empty
}
