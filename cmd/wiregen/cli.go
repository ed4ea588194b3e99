package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"wiregen/internal/common/fsutil"
	"wiregen/internal/config"
	"wiregen/internal/logging"
	"wiregen/pkg/types"
)

// rootFlags holds command-line overrides. Only flags set explicitly win over
// the config file and the environment.
type rootFlags struct {
	configPath   string
	port         int
	provider     string
	defaultModel string
	models       string
	logLevel     string
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	root := &cobra.Command{
		Use:           "wiregen",
		Short:         "Turn wireframe images into HTML with a hosted generative model",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd, f)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, log)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "Config file (.yaml, .yml, .json or .toml)")
	pf.StringVar(&f.provider, "provider", "", "Model provider: vertex|gemini|openai|stub (defaults WIREGEN_PROVIDER or vertex)")
	pf.StringVar(&f.defaultModel, "default-model", "", "Model used when a request leaves it empty")
	pf.StringVar(&f.models, "models", "", "Comma separated model ids offered on the home page")
	pf.StringVar(&f.logLevel, "log-level", "", "Log level: debug|info|warn|error (defaults WIREGEN_LOG_LEVEL or info)")
	root.Flags().IntVar(&f.port, "port", 0, "HTTP port (defaults PORT or 8080); host is always "+config.Host)

	root.AddCommand(newGenerateCmd(f), newModelsCmd(f))
	return root
}

func newGenerateCmd(f *rootFlags) *cobra.Command {
	var imagePath, prompt, model string
	cmd := &cobra.Command{
		Use:     "generate",
		Short:   "Convert one wireframe image and print the HTML",
		Example: "  wiregen generate --image sketch.png --prompt \"Make it responsive\"",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd, f)
			if err != nil {
				return err
			}
			path, err := fsutil.ExpandHome(imagePath)
			if err != nil {
				return err
			}
			image, err := fsutil.ReadFile(path, cfg.MaxUploadBytes)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}
			svc, err := buildService(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			html, err := svc.Generate(cmd.Context(), types.GenerateRequest{Model: model, Prompt: prompt, Image: image})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), html)
			return err
		},
	}
	cmd.Flags().StringVar(&imagePath, "image", "", "Path to the wireframe image")
	cmd.Flags().StringVar(&prompt, "prompt", "", "Instructions sent with the image")
	cmd.Flags().StringVar(&model, "model", "", "Model id (defaults to the default model)")
	_ = cmd.MarkFlagRequired("image")
	_ = cmd.MarkFlagRequired("prompt")
	return cmd
}

func newModelsCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "Print the model catalog as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup(cmd, f)
			if err != nil {
				return err
			}
			models, err := buildCatalog(cfg)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(types.ModelsResponse{Models: models})
		},
	}
}

// setup layers configuration (defaults, file, environment, flags), validates
// it and builds the logger.
func setup(cmd *cobra.Command, f *rootFlags) (config.Config, zerolog.Logger, error) {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return cfg, zerolog.Nop(), err
	}
	return cfg, logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr), nil
}

func loadConfig(cmd *cobra.Command, f *rootFlags) (config.Config, error) {
	cfg := config.Defaults()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return cfg, err
		}
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Port = f.port
	}
	if flags.Changed("provider") {
		cfg.Provider = f.provider
	}
	if flags.Changed("default-model") {
		cfg.DefaultModel = f.defaultModel
	}
	if flags.Changed("models") {
		cfg.Models = splitCSV(f.models)
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	return cfg, config.Validate(cfg)
}

// splitCSV splits a comma separated list, dropping blanks.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
