package port

import (
	"context"
	"photoedit/internal/core/domain"
)

type RenderService interface {
	// Render sends the source image and chain snapshot to the authoritative renderer and returns its output. Any
	// failure is reported as a *domain.RenderServiceError.
	Render(ctx context.Context, request domain.ExportRequest) (*domain.ExportResult, error)
}
