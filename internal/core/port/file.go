package port

import "context"

type ImageSource interface {
	// Fetch returns the bytes found at a local path or an http(s) URL.
	Fetch(ctx context.Context, location string) ([]byte, error)
}

type FileStore interface {
	// Save writes data verbatim under name and returns the resulting path.
	Save(name string, data []byte) (string, error)
}
