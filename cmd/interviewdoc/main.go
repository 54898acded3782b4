package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/consultpro/interviewdoc/internal/common"
	"github.com/consultpro/interviewdoc/internal/extract/gemini"
	"github.com/consultpro/interviewdoc/internal/pipeline"
	"github.com/consultpro/interviewdoc/internal/report"
)

var rootCmd = &cobra.Command{
	Use:           "interviewdoc",
	Short:         "Turn recorded interviews and meetings into structured Word reports",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	rootCmd.AddCommand(generateCmd, serveCmd)
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// buildProcessor wires config → extraction client → assembler. The logo is
// optional: a missing file is logged and the report header is left empty.
func buildProcessor(cfg *common.Config, logoPath string, logger *slog.Logger) (*pipeline.Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if logoPath == "" {
		logoPath = cfg.Report.LogoPath
	}
	var logo []byte
	if logoPath != "" {
		b, err := os.ReadFile(logoPath)
		if err != nil {
			logger.Warn("logo not loaded, header image disabled", "path", logoPath, "error", err)
		} else {
			logo = b
		}
	}

	client := gemini.NewClient(gemini.Config{
		APIKey:       cfg.Extract.APIKey,
		Model:        cfg.Extract.Model,
		BaseURL:      cfg.Extract.BaseURL,
		Temperature:  cfg.Extract.Temperature,
		Timeout:      cfg.Extract.Timeout,
		PollInterval: cfg.Extract.PollInterval,
	}, logger)

	return pipeline.NewProcessor(logger, client, report.NewAssembler(logo, logger)), nil
}
