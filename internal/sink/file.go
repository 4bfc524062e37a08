package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/pretty"

	"github.com/wonny/ideagen/internal/contracts"
	"github.com/wonny/ideagen/pkg/logger"
)

// Artifact layout under the output directory
const (
	PayloadFile = "data/today.json"
	OHLCDir     = "ohlc"
)

// FileSink writes run artifacts as static JSON files
// ⭐ SSOT: 정적 파일 출력은 여기서만
type FileSink struct {
	root   string
	logger *logger.Logger
}

var _ contracts.Sink = (*FileSink)(nil)

// NewFileSink creates the output directories and returns the sink
func NewFileSink(root string, log *logger.Logger) (*FileSink, error) {
	for _, dir := range []string{filepath.Dir(PayloadFile), OHLCDir} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	return &FileSink{root: root, logger: log.WithStage(contracts.StageEmit)}, nil
}

// PayloadPath returns the absolute location of the aggregate payload
func (s *FileSink) PayloadPath() string {
	return filepath.Join(s.root, PayloadFile)
}

// OHLCPath returns the chart artifact location of a symbol
func (s *FileSink) OHLCPath(symbol string) string {
	return filepath.Join(s.root, OHLCDir, strings.ToLower(symbol)+".json")
}

// WriteOHLC writes ohlc/<symbol>.json
func (s *FileSink) WriteOHLC(_ context.Context, symbol string, points []contracts.OHLCPoint) error {
	data, err := json.Marshal(points)
	if err != nil {
		return fmt.Errorf("marshal ohlc %s: %w", symbol, err)
	}
	return writeFile(s.OHLCPath(symbol), data)
}

// WritePayload writes data/today.json as indented JSON
func (s *FileSink) WritePayload(_ context.Context, payload *contracts.Payload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	path := s.PayloadPath()
	if err := writeFile(path, pretty.Pretty(data)); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"path":  path,
		"ideas": len(payload.Ideas),
	}).Info("Payload written")
	return nil
}

// writeFile replaces path atomically via a temp file in the same directory
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
