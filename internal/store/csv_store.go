// Package store persists assessment log entries.
package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/spacesedan/echomind/internal/models"
)

// Columns is the header of the assessment log, in order.
var Columns = []string{"timestamp", "text", "sentiment_label", "sentiment_score"}

// CSVStore keeps the assessment log as a CSV file. Each Append writes one
// record in append mode while holding an exclusive lock on "<path>.lock", so
// concurrent writers in this or other processes cannot drop rows. Readers take
// a shared lock. Existing rows are never rewritten.
type CSVStore struct {
	path     string
	lockPath string
	mu       sync.Mutex
}

func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path, lockPath: path + ".lock"}
}

func (s *CSVStore) Path() string {
	return s.path
}

// Append adds one entry, creating the file with its header if needed.
func (s *CSVStore) Append(_ context.Context, entry models.LogEntry) error {
	if !entry.SentimentLabel.Valid() {
		return fmt.Errorf("invalid label %q: %w", entry.SentimentLabel, models.ErrPersistence)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create log directory for %s: %v: %w", s.path, err, models.ErrPersistence)
	}

	lock := flock.New(s.lockPath)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %v: %w", s.path, err, models.ErrPersistence)
	}
	defer lock.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %v: %w", s.path, err, models.ErrPersistence)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %v: %w", s.path, err, models.ErrPersistence)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(Columns); err != nil {
			return fmt.Errorf("write header: %v: %w", err, models.ErrPersistence)
		}
	}
	if err := w.Write(encodeRow(entry)); err != nil {
		return fmt.Errorf("write row: %v: %w", err, models.ErrPersistence)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %v: %w", s.path, err, models.ErrPersistence)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync %s: %v: %w", s.path, err, models.ErrPersistence)
	}

	slog.Debug("[CSVStore] Appended assessment",
		slog.String("path", s.path),
		slog.String("label", string(entry.SentimentLabel)))
	return nil
}

// LoadAll reads every entry in file order. A missing or empty file is an
// empty history. Rows that cannot be decoded are skipped with a warning; a
// wrong header or an unreadable file fails with models.ErrPersistence.
func (s *CSVStore) LoadAll(ctx context.Context) ([]models.LogEntry, error) {
	entries := []models.LogEntry{}
	err := s.Stream(ctx, func(entry models.LogEntry) error {
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Stream calls fn for each decodable entry in file order without holding the
// whole log in memory.
func (s *CSVStore) Stream(ctx context.Context, fn func(models.LogEntry) error) error {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	lock := flock.New(s.lockPath)
	if err := lock.RLock(); err != nil {
		return fmt.Errorf("lock %s: %v: %w", s.path, err, models.ErrPersistence)
	}
	defer lock.Unlock()

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open %s: %v: %w", s.path, err, models.ErrPersistence)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read header of %s: %v: %w", s.path, err, models.ErrPersistence)
	}
	if !slices.Equal(header, Columns) {
		return fmt.Errorf("unexpected header %v in %s: %w", header, s.path, models.ErrPersistence)
	}

	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %v: %w", s.path, err, models.ErrPersistence)
		}

		entry, err := decodeRow(record)
		if err != nil {
			slog.Warn("[CSVStore] Skipping malformed row",
				slog.String("path", s.path),
				slog.Int("line", line),
				slog.String("error", err.Error()))
			continue
		}
		if err := fn(entry); err != nil {
			return err
		}
	}
}

func encodeRow(entry models.LogEntry) []string {
	return []string{
		entry.Timestamp.Format(models.TimestampLayout),
		entry.Text,
		string(entry.SentimentLabel),
		strconv.FormatFloat(models.RoundTo(entry.SentimentScore, 2), 'f', 2, 64),
	}
}

func decodeRow(record []string) (models.LogEntry, error) {
	if len(record) != len(Columns) {
		return models.LogEntry{}, fmt.Errorf("expected %d columns, got %d", len(Columns), len(record))
	}

	ts, err := time.ParseInLocation(models.TimestampLayout, record[0], time.Local)
	if err != nil {
		return models.LogEntry{}, fmt.Errorf("timestamp: %w", err)
	}
	label, err := models.ParseLabel(record[2])
	if err != nil {
		return models.LogEntry{}, err
	}
	score, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return models.LogEntry{}, fmt.Errorf("score: %w", err)
	}
	if score < 0 || score > 100 {
		return models.LogEntry{}, fmt.Errorf("score %v out of range", score)
	}

	return models.LogEntry{
		Timestamp:      ts,
		Text:           record[1],
		SentimentLabel: label,
		SentimentScore: score,
	}, nil
}
