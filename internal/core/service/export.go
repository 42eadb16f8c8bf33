package service

import (
	"context"
	"errors"
	"photoedit/internal/core/domain"
	"photoedit/internal/core/port"
	"sync"

	"github.com/rs/zerolog/log"
)

// ExportCoordinator issues render requests to the remote service. Only the most recent submission may publish its
// result: an older call still in flight is cancelled and its response discarded.
type ExportCoordinator struct {
	service port.RenderService
	store   port.FileStore

	mu       sync.Mutex
	seq      uint64
	inFlight int
	cancel   context.CancelFunc
	result   *domain.ExportResult
}

func NewExportCoordinator(service port.RenderService, store port.FileStore) *ExportCoordinator {
	return &ExportCoordinator{service: service, store: store}
}

// Submit starts a render in the background. The returned channel yields exactly one value: nil on success,
// domain.ErrSuperseded if a newer submission replaced this one, or the render error.
func (e *ExportCoordinator) Submit(ctx context.Context, request domain.ExportRequest) <-chan error {
	done := make(chan error, 1)

	e.mu.Lock()
	e.seq++
	seq := e.seq
	if e.cancel != nil {
		e.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.inFlight++
	e.mu.Unlock()

	l := log.With().Uint64("exportSeq", seq).Str("filename", request.Filename()).Logger()
	l.Debug().Msg("submitting export")

	go func() {
		defer close(done)
		defer cancel()

		result, err := e.service.Render(ctx, request)

		e.mu.Lock()
		defer e.mu.Unlock()
		e.inFlight--

		if seq != e.seq {
			l.Debug().Err(err).Msg("discarding superseded export response")
			done <- domain.ErrSuperseded
			return
		}

		e.cancel = nil

		if err != nil {
			var rsErr *domain.RenderServiceError
			if !errors.As(err, &rsErr) {
				err = &domain.RenderServiceError{Err: err}
			}
			l.Error().Err(err).Msg("export failed")
			done <- err
			return
		}

		e.result = result
		l.Info().Int("bytes", len(result.Data)).Str("format", result.Format).Msg("export finished")
		done <- nil
	}()

	return done
}

// Result returns the latest successful export, or nil.
func (e *ExportCoordinator) Result() *domain.ExportResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.result
}

// InFlight reports whether any render call is still outstanding.
func (e *ExportCoordinator) InFlight() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inFlight > 0
}

// Download writes the exported bytes verbatim under filename and returns the written path.
func (e *ExportCoordinator) Download(filename string) (string, error) {
	result := e.Result()
	if result == nil {
		return "", domain.ErrNoExportResult
	}

	path, err := e.store.Save(filename, result.Data)
	if err != nil {
		return "", err
	}

	log.Info().Str("path", path).Int("bytes", len(result.Data)).Msg("downloaded export")

	return path, nil
}

// Discard drops the stored result and cancels any call in flight.
func (e *ExportCoordinator) Discard() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.seq++
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.result = nil
}
