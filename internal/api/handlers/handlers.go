package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Kshitij9438/OCR-DATA-PARSER/internal/api/middleware"
	"github.com/Kshitij9438/OCR-DATA-PARSER/internal/config"
	"github.com/Kshitij9438/OCR-DATA-PARSER/internal/expense"
	"github.com/Kshitij9438/OCR-DATA-PARSER/internal/logger"
	"github.com/Kshitij9438/OCR-DATA-PARSER/internal/ocr"
	"github.com/Kshitij9438/OCR-DATA-PARSER/internal/pipeline"
)

// Version is reported by the health endpoints.
const Version = "1.0.0"

// noTextMessage is the client-facing message for images without readable text.
const noTextMessage = "No text could be found in the image."

// ReceiptProcessor runs the OCR and structuring pipeline over image bytes.
// This interface enables mocking the pipeline in handler tests.
type ReceiptProcessor interface {
	ProcessReceipt(ctx context.Context, image []byte) (*expense.Record, error)
}

// ReceiptsHandler handles receipt processing endpoints.
type ReceiptsHandler struct {
	processor ReceiptProcessor
	tempDir   string
	log       zerolog.Logger
}

// NewReceiptsHandler creates a new receipts handler. Uploads are staged
// under tempDir while they are processed.
func NewReceiptsHandler(processor ReceiptProcessor, tempDir string, log zerolog.Logger) *ReceiptsHandler {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &ReceiptsHandler{
		processor: processor,
		tempDir:   tempDir,
		log:       log,
	}
}

// ProcessReceipt handles POST /process-receipt
func (h *ReceiptsHandler) ProcessReceipt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	// Prefer the request-scoped logger installed by the middleware; the
	// handler's own logger covers direct use without the chain.
	log := logger.FromContextOr(ctx, h.log)

	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "A receipt image file is required")
		return
	}
	defer file.Close()

	tempPath, err := h.stageUpload(file, header.Filename)
	if err != nil {
		log.Error().Err(err).Msg("Failed to stage uploaded receipt")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to store the uploaded file")
		return
	}
	defer func() {
		if err := os.Remove(tempPath); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", tempPath).Msg("Failed to remove staged receipt")
		}
	}()

	image, err := os.ReadFile(tempPath)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read staged receipt")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to read the uploaded file")
		return
	}

	record, err := h.processor.ProcessReceipt(ctx, image)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoTextFound) {
			log.Info().Str("filename", header.Filename).Msg("No text found in uploaded image")
			middleware.WriteError(w, http.StatusBadRequest, noTextMessage)
			return
		}
		log.Error().Err(err).Str("filename", header.Filename).Msg("Failed to process receipt")
		middleware.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Info().
		Str("filename", header.Filename).
		Float64("amount", record.Amount).
		Str("category", record.Category).
		Msg("Receipt processed")

	middleware.WriteJSON(w, http.StatusOK, record)
}

// stageUpload writes the uploaded file to a uniquely named path in the
// staging directory and returns that path.
func (h *ReceiptsHandler) stageUpload(file io.Reader, filename string) (string, error) {
	tempPath := filepath.Join(h.tempDir, "temp_"+uuid.New().String()+filepath.Ext(filename))

	staged, err := os.Create(tempPath)
	if err != nil {
		return "", fmt.Errorf("create staging file: %w", err)
	}
	if _, err := io.Copy(staged, file); err != nil {
		staged.Close()
		os.Remove(tempPath)
		return "", fmt.Errorf("write staging file: %w", err)
	}
	if err := staged.Close(); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("close staging file: %w", err)
	}
	return tempPath, nil
}

// HealthHandler handles liveness and diagnostics endpoints.
type HealthHandler struct {
	cfg *config.Config
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// Root handles GET /
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Receipt Processing API is running.",
		"status":    "healthy",
		"version":   Version,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	visionStatus := "not_configured"
	if _, err := ocr.ResolveCredential(h.cfg); err == nil {
		visionStatus = "operational"
	}

	aiStatus := "not_configured"
	if h.cfg.GoogleAPIKey != "" {
		aiStatus = "operational"
	}

	credentialsFileExists := false
	if h.cfg.CredentialsFile != "" {
		if _, err := os.Stat(h.cfg.CredentialsFile); err == nil {
			credentialsFileExists = true
		}
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   Version,
		"services": map[string]string{
			"api":           "operational",
			"google_vision": visionStatus,
			"google_ai":     aiStatus,
		},
		"debug": map[string]bool{
			"has_project_id":       h.cfg.ProjectID != "",
			"has_private_key":      h.cfg.PrivateKey != "",
			"has_client_email":     h.cfg.ClientEmail != "",
			"has_credentials_file": credentialsFileExists,
		},
	})
}

// DebugEnv handles GET /debug-env
// Secret values are reported as SET or NOT_SET, never echoed back.
func (h *HealthHandler) DebugEnv(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"GOOGLE_CLOUD_PROJECT_ID":   valueOrNotSet(h.cfg.ProjectID),
		"GOOGLE_CLOUD_PRIVATE_KEY":  setOrNotSet(h.cfg.PrivateKey),
		"GOOGLE_CLOUD_CLIENT_EMAIL": valueOrNotSet(h.cfg.ClientEmail),
		"GOOGLE_CLOUD_CLIENT_ID":    valueOrNotSet(h.cfg.ClientID),
		"GOOGLE_API_KEY":            setOrNotSet(h.cfg.GoogleAPIKey),
	})
}

func valueOrNotSet(v string) string {
	if v == "" {
		return "NOT_SET"
	}
	return v
}

func setOrNotSet(v string) string {
	if v == "" {
		return "NOT_SET"
	}
	return "SET"
}
