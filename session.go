package main

import (
	"photoedit/internal/adapters/converter"
	"photoedit/internal/adapters/renderer"
	"photoedit/internal/core/domain"
	"photoedit/internal/core/port"
	"photoedit/internal/core/service"

	"github.com/spf13/viper"
)

// newSession wires a session against the configured render service. Downloads go to store.
func newSession(codec port.ImageCodec, store port.FileStore) (*service.Session, error) {
	timeout, err := durationSetting("render.timeout")
	if err != nil {
		return nil, err
	}

	fitter := service.NewSurfaceFitter(domain.Bounds{
		MaxWidth:  viper.GetInt("preview.max_width"),
		MaxHeight: viper.GetInt("preview.max_height"),
	})

	renderService := renderer.NewHTTPRenderer(
		viper.GetString("render.service_url"),
		viper.GetString("render.api_key"),
		timeout)

	return service.NewSession(
		service.NewPreviewRenderer(codec, fitter),
		service.NewExportCoordinator(renderService, store),
	), nil
}

func newCodec() *converter.ImagingConverter {
	return converter.NewImagingConverter(viper.GetInt("export.jpeg_quality"))
}
