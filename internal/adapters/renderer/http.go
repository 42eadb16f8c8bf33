package renderer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"photoedit/internal/core/domain"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	// decoders for validating returned images
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// maxResponseBytes bounds the JSON body read from the render service.
const maxResponseBytes = 128 << 20

// HTTPRenderer talks to a remote render service over multipart/form-data.
type HTTPRenderer struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewHTTPRenderer(endpoint, apiKey string, timeout time.Duration) *HTTPRenderer {
	return &HTTPRenderer{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

type renderResponse struct {
	Image string `json:"image"`
	Error string `json:"error"`
}

func (r *HTTPRenderer) Render(ctx context.Context, request domain.ExportRequest) (*domain.ExportResult, error) {
	body, contentType, err := encodeRequest(request)
	if err != nil {
		return nil, &domain.RenderServiceError{Message: "error encoding render request", Err: err}
	}

	status, payload, err := r.postRenderRequest(ctx, body, contentType)
	if err != nil {
		return nil, &domain.RenderServiceError{Err: err}
	}

	log.Debug().Int("status", status).Int("bytes", len(payload)).Msg("render service response")

	var result renderResponse
	jsonErr := json.Unmarshal(payload, &result)

	if status < 200 || status > 299 {
		message := http.StatusText(status)
		if jsonErr == nil && result.Error != "" {
			message = result.Error
		}
		return nil, &domain.RenderServiceError{Status: status, Message: message}
	}

	if jsonErr != nil {
		return nil, &domain.RenderServiceError{Status: status, Message: "malformed render response", Err: jsonErr}
	}

	if result.Error != "" {
		return nil, &domain.RenderServiceError{Status: status, Message: result.Error}
	}

	if result.Image == "" {
		return nil, &domain.RenderServiceError{Status: status, Message: "no image in render response"}
	}

	data, err := decodeImagePayload(result.Image)
	if err != nil {
		return nil, &domain.RenderServiceError{Status: status, Message: "invalid base64 image", Err: err}
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &domain.RenderServiceError{Status: status, Message: "undecodable image in render response", Err: err}
	}

	return &domain.ExportResult{Data: data, Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// encodeRequest writes the image part followed by one field per adjustment, in application order.
func encodeRequest(request domain.ExportRequest) (*bytes.Buffer, string, error) {
	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)

	part, err := w.CreateFormFile("image", request.Filename())
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(request.Source()); err != nil {
		return nil, "", err
	}

	for _, setting := range request.Snapshot().Settings() {
		value := strconv.FormatFloat(setting.Value, 'f', -1, 64)
		if err := w.WriteField(setting.Kind.String(), value); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return buf, w.FormDataContentType(), nil
}

// decodeImagePayload accepts plain base64 as well as a data URL.
func decodeImagePayload(encoded string) ([]byte, error) {
	if strings.HasPrefix(encoded, "data:") {
		idx := strings.Index(encoded, ",")
		if idx < 0 {
			return nil, fmt.Errorf("malformed data url")
		}
		encoded = encoded[idx+1:]
	}

	return base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
}

func (r *HTTPRenderer) postRenderRequest(ctx context.Context, body io.Reader, contentType string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, body)
	if err != nil {
		log.Error().Err(err).Msg("error creating POST request for render service")
		return 0, nil, err
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Key "+r.apiKey)
	}

	res, err := r.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("error executing render request: %w", err)
	}

	defer res.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return res.StatusCode, nil, fmt.Errorf("error reading render response: %w", err)
	}

	return res.StatusCode, payload, nil
}
