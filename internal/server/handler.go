// Package server exposes the assessment service over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/spacesedan/echomind/internal/models"
	"github.com/spacesedan/echomind/internal/monitoring"
	"github.com/spacesedan/echomind/internal/transcription"
)

// Assessor is the subset of assessment.Service the handlers call.
type Assessor interface {
	SubmitText(ctx context.Context, text string) (models.Assessment, error)
	SubmitAudio(ctx context.Context, path string) (models.Assessment, error)
	History(ctx context.Context) ([]models.LogEntry, error)
}

type Renderer interface {
	Render(w io.Writer, entries []models.LogEntry) error
}

type TextRequest struct {
	Text string `json:"text"`
}

type AssessmentResponse struct {
	models.Assessment
	Celebrate bool `json:"celebrate"`
}

// AssessmentHandler handles HTTP requests for assessments.
type AssessmentHandler struct {
	svc      Assessor
	trend    Renderer
	backends []*monitoring.Backend
}

func NewAssessmentHandler(svc Assessor, trend Renderer, backends ...*monitoring.Backend) *AssessmentHandler {
	return &AssessmentHandler{svc: svc, trend: trend, backends: backends}
}

// RegisterRoutes registers the assessment routes to the Echo group.
func (h *AssessmentHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.SubmitText)
	g.POST("/audio", h.SubmitAudio)
	g.GET("", h.History)
}

func (h *AssessmentHandler) SubmitText(c echo.Context) error {
	var req TextRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	a, err := h.svc.SubmitText(c.Request().Context(), req.Text)
	return h.respond(c, a, err)
}

// SubmitAudio stores the uploaded "file" field in its own temp file for the
// duration of the request, so concurrent uploads never share a path.
func (h *AssessmentHandler) SubmitAudio(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing audio file"})
	}
	if !transcription.SupportedExtension(fh.Filename) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Upload an .mp3 or .wav file"})
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Unreadable audio file"})
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	tmp, err := os.CreateTemp("", "echomind-upload-*"+ext)
	if err != nil {
		slog.Error("[HTTP] Failed to create temp file", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to store upload"})
	}
	defer os.Remove(tmp.Name())

	_, copyErr := io.Copy(tmp, src)
	closeErr := tmp.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		slog.Error("[HTTP] Failed to write upload", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to store upload"})
	}

	a, err := h.svc.SubmitAudio(c.Request().Context(), tmp.Name())
	return h.respond(c, a, err)
}

func (h *AssessmentHandler) History(c echo.Context) error {
	entries, err := h.svc.History(c.Request().Context())
	if err != nil {
		return c.JSON(statusFor(err), echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *AssessmentHandler) Trend(c echo.Context) error {
	entries, err := h.svc.History(c.Request().Context())
	if err != nil {
		return c.JSON(statusFor(err), echo.Map{"error": err.Error()})
	}

	var buf bytes.Buffer
	if err := h.trend.Render(&buf, entries); err != nil {
		slog.Error("[HTTP] Failed to render trend", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to render trend"})
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (h *AssessmentHandler) Health(c echo.Context) error {
	status := http.StatusOK
	backends := make(map[string]bool, len(h.backends))
	for _, b := range h.backends {
		backends[b.Name] = b.Healthy()
		if !b.Healthy() {
			status = http.StatusServiceUnavailable
		}
	}
	return c.JSON(status, echo.Map{"status": http.StatusText(status), "backends": backends})
}

// respond writes the assessment. When only logging failed the assessment is
// still returned next to the error.
func (h *AssessmentHandler) respond(c echo.Context, a models.Assessment, err error) error {
	if err != nil {
		body := echo.Map{"error": err.Error()}
		if !a.Timestamp.IsZero() {
			body["assessment"] = AssessmentResponse{Assessment: a, Celebrate: a.Celebrate()}
		}
		return c.JSON(statusFor(err), body)
	}
	return c.JSON(http.StatusOK, AssessmentResponse{Assessment: a, Celebrate: a.Celebrate()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInput):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
