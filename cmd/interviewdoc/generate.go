package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/consultpro/interviewdoc/internal/common"
	"github.com/consultpro/interviewdoc/internal/report"
)

var generateFlags struct {
	audio   string
	mode    string
	company string
	product string
	topic   string
	date    string
	outDir  string
	logo    string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one report from an audio recording",
	RunE:  runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&generateFlags.audio, "audio", "", "path to the recording (mp3/wav/m4a)")
	f.StringVar(&generateFlags.mode, "mode", "trade", "report mode: trade, clinical or meeting")
	f.StringVar(&generateFlags.company, "company", "", "company name (trade/clinical)")
	f.StringVar(&generateFlags.product, "product", "", "product or field (trade/clinical)")
	f.StringVar(&generateFlags.topic, "topic", "", "meeting topic (meeting mode)")
	f.StringVar(&generateFlags.date, "date", "", "interview/meeting date, YYYY-MM-DD (default today)")
	f.StringVar(&generateFlags.outDir, "out", "", "output directory (default $OUTPUT_DIR or .)")
	f.StringVar(&generateFlags.logo, "logo", "", "header logo image (default $REPORT_LOGO_PATH)")
	_ = generateCmd.MarkFlagRequired("audio")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger := slog.Default()
	cfg := common.LoadConfig()

	mode, err := report.ParseMode(generateFlags.mode)
	if err != nil {
		return err
	}
	meta := report.Metadata{
		Mode:    mode,
		Company: generateFlags.company,
		Product: generateFlags.product,
		Topic:   generateFlags.topic,
		Date:    time.Now(),
	}
	if generateFlags.date != "" {
		d, err := time.Parse("2006-01-02", generateFlags.date)
		if err != nil {
			return fmt.Errorf("date must be YYYY-MM-DD: %w", common.ErrInvalidInput)
		}
		meta.Date = d
	}
	if !mode.IsMeeting() && (meta.Company == "" || meta.Product == "") {
		return fmt.Errorf("company and product are required for %s mode: %w", mode, common.ErrInvalidInput)
	}
	if _, err := os.Stat(generateFlags.audio); err != nil {
		return fmt.Errorf("audio file: %w", err)
	}

	proc, err := buildProcessor(cfg, generateFlags.logo, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := proc.Generate(ctx, generateFlags.audio, meta)
	if err != nil {
		return err
	}

	outDir := generateFlags.outDir
	if outDir == "" {
		outDir = cfg.Report.OutputDir
	}
	outPath := filepath.Join(outDir, res.Filename)
	if err := os.WriteFile(outPath, res.Document, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	logger.Info("generate.ok", "path", outPath, "bytes", len(res.Document))
	fmt.Println(outPath)
	return nil
}
