package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDecode          = errors.New("could not decode image")
	ErrInvalidGeometry = errors.New("invalid image geometry")
	ErrUnknownKind     = errors.New("unknown adjustment kind")
	ErrNoImage         = errors.New("no image loaded")
	ErrNoExportResult  = errors.New("no export result available")
	ErrSuperseded      = errors.New("export superseded by a newer request")
)

// RenderServiceError is returned for any failed call to the remote render service, be it a transport failure, a
// non-2xx status or a body that does not follow the response contract.
type RenderServiceError struct {
	Status  int
	Message string
	Err     error
}

func (e *RenderServiceError) Error() string {
	if e.Err != nil && e.Message == "" {
		return fmt.Sprintf("render service error: %v", e.Err)
	}
	return "render service error: " + e.Message
}

func (e *RenderServiceError) Unwrap() error {
	return e.Err
}
