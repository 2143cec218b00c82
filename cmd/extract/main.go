package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Kshitij9438/OCR-DATA-PARSER/internal/config"
	"github.com/Kshitij9438/OCR-DATA-PARSER/internal/llm"
	"github.com/Kshitij9438/OCR-DATA-PARSER/internal/logger"
	"github.com/Kshitij9438/OCR-DATA-PARSER/internal/ocr"
	"github.com/Kshitij9438/OCR-DATA-PARSER/internal/pipeline"
)

func main() {
	var (
		filePath string
		timeout  time.Duration
	)

	flag.StringVar(&filePath, "file", "", "Path to a local receipt image (required)")
	flag.DurationVar(&timeout, "timeout", 2*time.Minute, "Overall processing timeout")
	flag.Parse()

	// Initialize structured logger
	log := logger.New(false)

	if filePath == "" {
		log.Fatal().Msg("Usage: extract -file /path/to/receipt.jpg [-timeout 2m]")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if cfg.Debug {
		log = logger.New(true)
	}

	image, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatal().Err(err).Str("file", filePath).Msg("Failed to read receipt image")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log.Info().Str("file", filePath).Str("model", cfg.Model).Msg("Processing receipt")

	extractor := ocr.NewExtractor(cfg, log)
	agent := llm.NewStructuringAgent(cfg, log)
	receiptPipeline := pipeline.NewReceiptPipeline(extractor, agent)

	record, err := receiptPipeline.ProcessReceipt(ctx, image)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoTextFound) {
			log.Fatal().Str("file", filePath).Msg("No text could be found in the image")
		}
		log.Fatal().Err(err).Msg("Processing failed")
	}

	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode expense record")
	}
	fmt.Println(string(out))
}
