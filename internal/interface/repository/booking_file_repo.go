package repository

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"flightreport/internal/domain/entity"
	"flightreport/internal/domain/repository"
	"flightreport/pkg/logger"
	"flightreport/pkg/metrics"
)

// FileBookingRepository reads booking events from JSON Lines files
type FileBookingRepository struct {
	path    string
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewFileBookingRepository creates a repository over a file or a directory of files
func NewFileBookingRepository(path string, log logger.Logger, m *metrics.Metrics) repository.BookingEventRepository {
	return &FileBookingRepository{
		path:    path,
		logger:  log.With("source", "bookings_file", "path", path),
		metrics: m,
	}
}

// FindAll decodes every event under the configured path
func (r *FileBookingRepository) FindAll(ctx context.Context) (*entity.EventBatch, error) {
	files, err := bookingFiles(r.path)
	if err != nil {
		return nil, err
	}

	batch := &entity.EventBatch{}
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.readFile(ctx, name, batch); err != nil {
			return nil, err
		}
	}

	r.metrics.Loaded("bookings_file", len(batch.Events))
	r.metrics.Dropped(metrics.ReasonMalformed, batch.Malformed)

	r.logger.Info("Loaded booking events",
		"files", len(files),
		"events", len(batch.Events),
		"malformed", batch.Malformed)

	return batch, nil
}

func (r *FileBookingRepository) readFile(ctx context.Context, name string, batch *entity.EventBatch) error {
	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("open bookings file: %w", err)
	}
	defer f.Close()

	var src io.Reader = f
	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("open gzip %s: %w", name, err)
		}
		defer gz.Close()
		src = gz
	}

	return DecodeEvents(ctx, src, batch, r.logger.With("file", filepath.Base(name)))
}

// DecodeEvents reads JSON Lines from rdr into batch. A line holding an array adds one
// event per element. Lines that do not decode are counted and skipped.
func DecodeEvents(ctx context.Context, rdr io.Reader, batch *entity.EventBatch, log logger.Logger) error {
	br := bufio.NewReaderSize(rdr, 1<<20)
	line := 0
	for {
		raw, readErr := br.ReadBytes('\n')
		if readErr != nil && readErr != io.EOF {
			return fmt.Errorf("read bookings: %w", readErr)
		}

		if raw = bytes.TrimSpace(raw); len(raw) > 0 {
			line++
			decodeLine(raw, line, batch, log)
		}

		if readErr == io.EOF {
			return nil
		}
		if line%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
	}
}

func decodeLine(raw []byte, line int, batch *entity.EventBatch, log logger.Logger) {
	if raw[0] != '[' {
		var event entity.BookingEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			log.Debug("Skipping malformed booking", "line", line, "error", err)
			batch.Malformed++
			return
		}
		batch.Events = append(batch.Events, event)
		return
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Debug("Skipping malformed booking array", "line", line, "error", err)
		batch.Malformed++
		return
	}
	for i, item := range items {
		var event entity.BookingEvent
		if err := json.Unmarshal(item, &event); err != nil {
			log.Debug("Skipping malformed booking", "line", line, "index", i, "error", err)
			batch.Malformed++
			continue
		}
		batch.Events = append(batch.Events, event)
	}
}

// bookingFiles expands a directory into its regular, non-hidden files in name order
func bookingFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat bookings path: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("list bookings dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if !e.Type().IsRegular() || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}
		files = append(files, filepath.Join(path, name))
	}
	return files, nil
}
