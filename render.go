package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"photoedit/internal/adapters/file"
	"photoedit/internal/core/domain"
	"photoedit/internal/core/port"
	"photoedit/internal/core/service"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type renderOptions struct {
	in      string
	preview string
	export  string
	values  map[domain.Kind]*float64
}

func newRenderCommand() *cobra.Command {
	opts := renderOptions{values: make(map[domain.Kind]*float64)}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Apply adjustments to one image without an interactive session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.in, "in", "", "Input image path or URL")
	cmd.Flags().StringVar(&opts.preview, "preview", "", "Write the preview frame here, a temp file if empty")
	cmd.Flags().StringVar(&opts.export, "export", "", "Render at full resolution on the render service and write here")

	for _, kind := range domain.ApplicationOrder {
		r := kind.Range()
		opts.values[kind] = cmd.Flags().Float64(kind.String(), kind.Neutral(),
			fmt.Sprintf("%s, %g to %g", kind, r.Min, r.Max))
	}

	_ = cmd.MarkFlagRequired("in")

	return cmd
}

func runRender(cmd *cobra.Command, opts renderOptions) error {
	ctx := cmd.Context()
	codec := newCodec()

	exportDir := viper.GetString("export.dir")
	if opts.export != "" {
		exportDir = filepath.Dir(opts.export)
	}

	store := file.NewStore(exportDir)

	session, err := newSession(codec, store)
	if err != nil {
		return err
	}
	defer session.Close()

	data, err := store.Fetch(ctx, opts.in)
	if err != nil {
		return err
	}

	if err := session.Load(ctx, filepath.Base(opts.in), data); err != nil {
		return err
	}

	if err := applyFlags(cmd.Flags(), session, opts.values); err != nil {
		return err
	}

	previewPath, err := writePreview(session, codec, opts.preview)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "preview:", previewPath)

	if opts.export == "" {
		return nil
	}

	done, err := session.Submit(ctx)
	if err != nil {
		return err
	}

	if err := <-done; err != nil {
		return err
	}

	written, err := session.Download(filepath.Base(opts.export))
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "export:", written)
	return nil
}

// applyFlags updates only the kinds given on the command line, so an untouched chain keeps the session Loaded.
func applyFlags(flags *pflag.FlagSet, editor service.Editor, values map[domain.Kind]*float64) error {
	for _, kind := range domain.ApplicationOrder {
		if !flags.Changed(kind.String()) {
			continue
		}

		if err := editor.Update(kind, *values[kind]); err != nil {
			return fmt.Errorf("failed to apply %s: %w", kind, err)
		}

		log.Debug().Str("kind", kind.String()).Float64("value", editor.Chain().Value(kind)).Msg("applied flag")
	}

	return nil
}

func writePreview(editor service.Editor, codec port.ImageCodec, path string) (string, error) {
	frame, err := editor.Frame()
	if err != nil {
		return "", err
	}

	format := strings.TrimPrefix(filepath.Ext(path), ".")

	var buf bytes.Buffer
	if err := codec.Encode(&buf, frame, format); err != nil {
		return "", err
	}

	if path == "" {
		return file.SaveTempFile(buf.Bytes(), "png")
	}

	return file.NewStore(filepath.Dir(path)).Save(filepath.Base(path), buf.Bytes())
}
