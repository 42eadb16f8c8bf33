package command

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"photoedit/internal/core/domain"
	"sync"
)

type MockTextSender struct {
	mu       sync.Mutex
	Message  string
	Errors   []error
	Replies  []string
	received chan string
}

func newMockTextSender() *MockTextSender {
	return &MockTextSender{received: make(chan string, 16)}
}

func (m *MockTextSender) SendMessageReply(_ context.Context, _ *domain.Message, text string) error {
	m.mu.Lock()
	m.Replies = append(m.Replies, text)
	m.mu.Unlock()

	if m.received != nil {
		m.received <- text
	}
	return nil
}

func (m *MockTextSender) NotifyAndReturnError(_ context.Context, err error, _ *domain.Message) error {
	m.mu.Lock()
	m.Message = err.Error()
	m.Errors = append(m.Errors, err)
	m.mu.Unlock()

	if m.received != nil {
		m.received <- err.Error()
	}
	return err
}

func (m *MockTextSender) LastReply() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.Replies) == 0 {
		return ""
	}
	return m.Replies[len(m.Replies)-1]
}

type MockEditor struct {
	state    domain.State
	chain    *domain.Chain
	info     domain.ImageInfo
	frame    image.Image
	loadErr  error
	loaded   []byte
	updErr   error
	done     chan error
	subErr   error
	download string
	dlErr    error
	dlName   string
}

func newMockEditor() *MockEditor {
	return &MockEditor{chain: domain.NewChain()}
}

func (m *MockEditor) Load(_ context.Context, name string, data []byte) error {
	if m.loadErr != nil {
		m.state = domain.Empty
		return m.loadErr
	}
	m.loaded = data
	m.state = domain.Loaded
	m.info = domain.ImageInfo{Name: name, Format: "png", Width: 1600, Height: 1200, FittedWidth: 800,
		FittedHeight: 600}
	return nil
}

func (m *MockEditor) Update(kind domain.Kind, value float64) error {
	if m.updErr != nil {
		return m.updErr
	}
	if m.state == domain.Empty {
		return domain.ErrNoImage
	}
	m.state = domain.Editing
	return m.chain.Update(kind, value)
}

func (m *MockEditor) Reset() error {
	if m.state == domain.Empty {
		return domain.ErrNoImage
	}
	m.chain.Reset()
	m.state = domain.Loaded
	return nil
}

func (m *MockEditor) Submit(_ context.Context) (<-chan error, error) {
	if m.subErr != nil {
		return nil, m.subErr
	}
	return m.done, nil
}

func (m *MockEditor) Download(filename string) (string, error) {
	m.dlName = filename
	return m.download, m.dlErr
}

func (m *MockEditor) Frame() (image.Image, error) {
	if m.frame == nil {
		return nil, domain.ErrNoImage
	}
	return m.frame, nil
}

func (m *MockEditor) State() domain.State {
	return m.state
}

func (m *MockEditor) Chain() domain.Snapshot {
	return m.chain.Snapshot()
}

func (m *MockEditor) Info() (domain.ImageInfo, error) {
	if m.state == domain.Empty {
		return domain.ImageInfo{}, domain.ErrNoImage
	}
	return m.info, nil
}

type MockImageSource struct {
	data     []byte
	err      error
	location string
}

func (m *MockImageSource) Fetch(_ context.Context, location string) ([]byte, error) {
	m.location = location
	return m.data, m.err
}

type MockFileStore struct {
	name string
	data []byte
	err  error
}

func (m *MockFileStore) Save(name string, data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.name = name
	m.data = data
	return "/out/" + name, nil
}

type MockCodec struct {
	format string
	err    error
}

func (m *MockCodec) Decode(_ []byte) (image.Image, string, error) {
	return nil, "", errors.New("not implemented")
}

func (m *MockCodec) Encode(w io.Writer, img image.Image, format string) error {
	m.format = format
	if m.err != nil {
		return m.err
	}
	return png.Encode(w, img)
}

func encodedPNG(img image.Image) []byte {
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
