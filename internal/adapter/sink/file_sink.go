package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/iho/amlguard/internal/domain"
)

// FileSink appends alerts to a file as JSON lines. Writes are serialized
// so concurrent lanes never interleave partial lines.
type FileSink struct {
	mu   sync.Mutex
	file *os.File
	enc  *json.Encoder
}

// NewFileSink opens (or creates) the alert file in append mode.
func NewFileSink(path string) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open alert file: %w", err)
	}

	return &FileSink{
		file: f,
		enc:  json.NewEncoder(f),
	}, nil
}

// Emit appends one alert as a JSON line.
func (s *FileSink) Emit(_ context.Context, alert *domain.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enc.Encode(alert); err != nil {
		return fmt.Errorf("failed to write alert: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}
