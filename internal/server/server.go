// Package server exposes the calculator over HTTP.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/internal/config"
	"github.com/iwvelando/finance-calculators/internal/telemetry"
	"github.com/iwvelando/finance-calculators/pkg/calcerr"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/output"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Options configures the handler returned by NewHandler.
type Options struct {
	MaxRequestSize int64
	Version        string
	Metrics        *telemetry.Metrics
}

type handler struct {
	logger         *zap.Logger
	tracer         trace.Tracer
	metrics        *telemetry.Metrics
	maxRequestSize int64
	version        string
}

// NewHandler constructs the HTTP handler that serves the calculation API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	maxRequestSize := opts.MaxRequestSize
	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxRequestSizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:         logger,
		tracer:         otel.Tracer("github.com/iwvelando/finance-calculators/internal/server"),
		metrics:        opts.Metrics,
		maxRequestSize: maxRequestSize,
		version:        trimmedVersion,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/calculate", h.handleCalculate)
	mux.HandleFunc("GET /api/version", h.handleVersion)
	mux.HandleFunc("GET /healthz", h.handleHealth)
	if h.metrics != nil {
		mux.Handle("GET /metrics", h.metrics.Handler())
	}

	return correlationIDMiddleware(loggingMiddleware(logger, h.metrics)(recoveryMiddleware(logger)(mux)))
}

type calculateResponse struct {
	Reports  []calculator.Report `json:"reports"`
	Warnings []string            `json:"warnings,omitempty"`
	CSV      string              `json:"csv"`
	Duration string              `json:"duration"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	start := time.Now()

	ctx, span := h.tracer.Start(r.Context(), "calculate")
	defer span.End()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to read request: %v", err), op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(body), requestFormat(r.Header.Get("Content-Type"), body))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	warnings := cfg.ValidateConfiguration()

	includeSchedules := cfg.Output.Schedule
	if raw := r.URL.Query().Get("schedule"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			includeSchedules = parsed
		}
	}

	opts := []calculator.Option{calculator.WithSchedules(includeSchedules)}
	if h.metrics != nil {
		opts = append(opts, calculator.WithObserver(h.metrics))
	}
	reports, err := calculator.NewRunner(h.logger, opts...).Run(ctx, *cfg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
		return
	}

	elapsed := time.Since(start)
	span.SetAttributes(attribute.Int("calculations", len(reports)))

	h.logger.Info("calculations computed",
		zap.String("op", op),
		zap.Int("reports", len(reports)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, calculateResponse{
		Reports:  reports,
		Warnings: warnings,
		CSV:      output.CsvString(reports),
		Duration: elapsed.String(),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requestFormat picks the configuration type for a request body. JSON is
// used when declared or when the body starts with an object.
func requestFormat(contentType string, body []byte) string {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		switch {
		case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
			return "json"
		case strings.Contains(mediaType, "yaml"):
			return "yaml"
		}
	}
	if bytes.HasPrefix(bytes.TrimSpace(body), []byte("{")) {
		return "json"
	}
	return "yaml"
}

func statusFor(err error) int {
	switch calcerr.Kind(err) {
	case "invalid_input", "non_convergence":
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondErrorWithOp logs client errors at warn and server errors at error.
func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("calculation request failed", fields...)
	} else {
		h.logger.Warn("calculation request failed", fields...)
	}

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
