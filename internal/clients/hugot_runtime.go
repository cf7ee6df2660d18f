package clients

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/options"
)

// HugotRuntime owns the ONNX Runtime session shared by every local pipeline
// and the directory models are downloaded into.
type HugotRuntime struct {
	Session  *hugot.Session
	modelDir string
}

func NewHugotRuntime(modelDir, onnxLibraryPath string) (*HugotRuntime, error) {
	if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("[HugotRuntime] failed to create model directory: %w", err)
	}

	var opts []options.WithOption
	if onnxLibraryPath != "" {
		opts = append(opts, options.WithOnnxLibraryPath(onnxLibraryPath))
	}

	session, err := hugot.NewORTSession(opts...)
	if err != nil {
		return nil, fmt.Errorf("[HugotRuntime] failed to initialize session: %w", err)
	}

	slog.Info("[HugotRuntime] Session initialized", slog.String("model_dir", modelDir))
	return &HugotRuntime{Session: session, modelDir: modelDir}, nil
}

// EnsureModel returns the local path of a Hugging Face model, downloading it
// on first use.
func (r *HugotRuntime) EnsureModel(name string) (string, error) {
	modelPath := filepath.Join(r.modelDir, strings.ReplaceAll(name, "/", "_"))
	if _, err := os.Stat(modelPath); err == nil {
		slog.Info("[HugotRuntime] Using existing model", slog.String("path", modelPath))
		return modelPath, nil
	}

	slog.Info("[HugotRuntime] Model not found, downloading...", slog.String("model", name))
	downloaded, err := hugot.DownloadModel(name, r.modelDir, hugot.NewDownloadOptions())
	if err != nil {
		return "", fmt.Errorf("[HugotRuntime] failed to download %s: %w", name, err)
	}
	slog.Info("[HugotRuntime] Model downloaded successfully", slog.String("path", downloaded))
	return downloaded, nil
}

func (r *HugotRuntime) Destroy() {
	if r.Session != nil {
		if err := r.Session.Destroy(); err != nil {
			slog.Warn("[HugotRuntime] Failed to destroy session", slog.String("error", err.Error()))
		}
	}
}
