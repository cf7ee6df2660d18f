// Package transcription converts uploaded audio files into text.
package transcription

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spacesedan/echomind/internal/models"
)

// Transcriber turns the audio file at path into plain text. The call blocks
// for the whole recording; callers bound it with the context.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

var supportedExtensions = map[string]bool{
	".mp3": true,
	".wav": true,
}

// SupportedExtension reports whether the file name has an accepted audio type.
func SupportedExtension(name string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(name))]
}

// checkAudio fails with models.ErrNotFound when path does not exist and with
// models.ErrInput when it is a directory or an unsupported type.
func checkAudio(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("audio file %s: %w", path, models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("audio file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("audio path %s is a directory: %w", path, models.ErrInput)
	}
	if !SupportedExtension(path) {
		return fmt.Errorf("audio file %s must be .mp3 or .wav: %w", path, models.ErrInput)
	}
	return nil
}
