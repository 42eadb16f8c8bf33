package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	rootCmd := &cobra.Command{
		Use:           "photoedit",
		Short:         "Image adjustment editor with a remote render service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(configFlag); err != nil {
				return err
			}
			setupLogging(viper.GetString("app.log_level"))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newEditCommand())
	rootCmd.AddCommand(newRenderCommand())

	return rootCmd
}

func setDefaults() {
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.command_timeout", "30s")
	viper.SetDefault("preview.max_width", 800)
	viper.SetDefault("preview.max_height", 600)
	viper.SetDefault("render.service_url", "http://localhost:5000/upload_and_edit")
	viper.SetDefault("render.api_key", "")
	viper.SetDefault("render.timeout", "30s")
	viper.SetDefault("server.listen", ":5000")
	viper.SetDefault("server.max_upload_mb", 32)
	viper.SetDefault("export.dir", ".")
	viper.SetDefault("export.filename", "edited-image.png")
	viper.SetDefault("export.jpeg_quality", 95)
}

// loadConfig reads config.toml from the working directory, or the given file. A missing default file is not an
// error; the built-in defaults apply.
func loadConfig(path string) error {
	setDefaults()

	viper.SetEnvPrefix("photoedit")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	err := viper.ReadInConfig()
	if err == nil {
		log.Debug().Str("file", viper.ConfigFileUsed()).Msg("read config file")
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if path == "" && errors.As(err, &notFound) {
		log.Debug().Msg("no config file found, using defaults")
		return nil
	}

	return fmt.Errorf("could not read config file: %w", err)
}

func setupLogging(level string) {
	logLevel, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || logLevel == zerolog.NoLevel {
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}

func durationSetting(key string) (time.Duration, error) {
	d, err := time.ParseDuration(viper.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s in config: %w", key, err)
	}
	return d, nil
}
