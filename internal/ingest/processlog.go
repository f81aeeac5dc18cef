package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ProcessLog appends timestamped per-PDF statistics lines to a plain-text
// log file, one line per processed document.
type ProcessLog struct {
	mu   sync.Mutex
	file *os.File
}

// OpenProcessLog opens (or creates) the processing log at path in append mode.
func OpenProcessLog(path string) (*ProcessLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open processing log: %w", err)
	}
	return &ProcessLog{file: f}, nil
}

// Record writes one statistics line for a processed PDF.
func (l *ProcessLog) Record(pdfName string, pages, ocrPages, tables int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	line := fmt.Sprintf("%s - Processed %s: %d pages, %d OCR, %d tables\n",
		time.Now().Format("2006-01-02 15:04:05"), pdfName, pages, ocrPages, tables)
	if _, err := l.file.WriteString(line); err != nil {
		return fmt.Errorf("failed to write processing log: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (l *ProcessLog) Close() error {
	return l.file.Close()
}
