package main

import (
	"context"
	"errors"
	"net/http"
	"photoedit/internal/adapters/handler"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the render service",
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen == "" {
				listen = viper.GetString("server.listen")
			}

			server := handler.NewRenderServer(newCodec(), viper.GetInt64("server.max_upload_mb"))

			srv := &http.Server{
				Addr:              listen,
				Handler:           server.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			return runServer(cmd.Context(), srv)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address, overrides server.listen")

	return cmd
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("render service listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down render service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
