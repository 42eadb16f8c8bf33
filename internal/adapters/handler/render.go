package handler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"photoedit/internal/core/domain"
	"photoedit/internal/core/port"
	"photoedit/internal/core/service"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

const DefaultMaxUploadMB = 32

// RenderServer renders uploaded images at full resolution with the same compositor the preview uses.
type RenderServer struct {
	codec     port.ImageCodec
	maxUpload int64
}

func NewRenderServer(codec port.ImageCodec, maxUploadMB int64) *RenderServer {
	if maxUploadMB <= 0 {
		maxUploadMB = DefaultMaxUploadMB
	}
	return &RenderServer{codec: codec, maxUpload: maxUploadMB << 20}
}

func (s *RenderServer) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/upload_and_edit", s.handleUploadAndEdit)

	return r
}

func (s *RenderServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *RenderServer) handleUploadAndEdit(w http.ResponseWriter, r *http.Request) {
	renderID, err := uuid.NewV4()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not allocate render id")
		return
	}

	logger := log.With().
		Str("render_id", renderID.String()).
		Str("request_id", middleware.GetReqID(r.Context())).
		Logger()

	w.Header().Set("X-Render-ID", renderID.String())

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		logger.Warn().Err(err).Msg("rejected upload")
		writeError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Error().Err(err).Msg("failed to read upload")
		writeError(w, http.StatusInternalServerError, "failed to read upload")
		return
	}

	chain, err := chainFromForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	img, format, err := s.codec.Decode(data)
	if err != nil {
		logger.Warn().Err(err).Str("filename", header.Filename).Msg("undecodable upload")
		writeError(w, http.StatusBadRequest, "bad image")
		return
	}

	if img.Bounds().Empty() {
		writeError(w, http.StatusBadRequest, domain.ErrInvalidGeometry.Error())
		return
	}

	out := service.Compose(img, chain.Snapshot())

	var buf bytes.Buffer
	if err := s.codec.Encode(&buf, out, "png"); err != nil {
		logger.Error().Err(err).Msg("failed to encode render")
		writeError(w, http.StatusInternalServerError, "failed to encode image")
		return
	}

	logger.Info().
		Str("filename", header.Filename).
		Str("format", format).
		Int("width", out.Bounds().Dx()).
		Int("height", out.Bounds().Dy()).
		Bool("neutral", chain.IsNeutral()).
		Msg("rendered image")

	writeJSON(w, http.StatusOK, map[string]string{"image": base64.StdEncoding.EncodeToString(buf.Bytes())})
}

// chainFromForm reads one field per kind. Missing or empty fields stay neutral and out of range values are clamped.
func chainFromForm(r *http.Request) (*domain.Chain, error) {
	var settings []domain.Setting

	for _, kind := range domain.ApplicationOrder {
		raw := strings.TrimSpace(r.FormValue(kind.String()))
		if raw == "" {
			continue
		}

		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s", kind)
		}

		settings = append(settings, domain.Setting{Kind: kind, Value: value})
	}

	return domain.ChainFromSnapshot(domain.NewSnapshot(settings...)), nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
