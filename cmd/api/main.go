package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Kshitij9438/OCR-DATA-PARSER/internal/api/handlers"
	"github.com/Kshitij9438/OCR-DATA-PARSER/internal/api/middleware"
	"github.com/Kshitij9438/OCR-DATA-PARSER/internal/config"
	"github.com/Kshitij9438/OCR-DATA-PARSER/internal/llm"
	"github.com/Kshitij9438/OCR-DATA-PARSER/internal/logger"
	"github.com/Kshitij9438/OCR-DATA-PARSER/internal/ocr"
	"github.com/Kshitij9438/OCR-DATA-PARSER/internal/pipeline"
)

func main() {
	// Parse command-line flags
	var (
		port = flag.Int("port", 0, "HTTP server port (overrides PORT env)")
	)
	flag.Parse()

	// Initialize logger
	log := logger.New(false)

	// Load configuration from the environment (and .env if present)
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if cfg.Debug {
		log = logger.New(true)
	}
	if *port != 0 {
		cfg.Port = *port
	}

	if _, err := ocr.ResolveCredential(cfg); err != nil {
		log.Warn().Msg("No valid Google Cloud credentials configured - OCR will fail until they are set")
	}

	// Wire the receipt processing pipeline
	extractor := ocr.NewExtractor(cfg, log)
	agent := llm.NewStructuringAgent(cfg, log)
	receiptPipeline := pipeline.NewReceiptPipeline(extractor, agent)

	// Initialize handlers
	receiptsHandler := handlers.NewReceiptsHandler(receiptPipeline, os.TempDir(), log)
	healthHandler := handlers.NewHealthHandler(cfg)

	// Create router
	mux := http.NewServeMux()

	// Health check endpoints
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			middleware.WriteError(w, http.StatusNotFound, "Not found")
			return
		}
		if r.Method == http.MethodGet {
			healthHandler.Root(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			healthHandler.Health(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/debug-env", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			healthHandler.DebugEnv(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Receipt processing endpoint (with and without trailing slash)
	processReceipt := func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			receiptsHandler.ProcessReceipt(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
	mux.HandleFunc("/process-receipt", processReceipt)
	mux.HandleFunc("/process-receipt/", processReceipt)

	// Apply middleware. RequestID wraps Logger so the access log and the
	// request-scoped logger both carry the id.
	handler := middleware.Recovery(log)(
		middleware.RequestID(
			middleware.Logger(log)(
				middleware.CORS(mux),
			),
		),
	)

	// Create HTTP server. Receipt processing holds the request through two
	// upstream API calls, so the write timeout is generous.
	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Int("port", cfg.Port).Str("model", cfg.Model).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
