package printer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/rl1809/warung-pos/internal/core/receipt"
)

// FileSink drops rendered receipts into a directory, standing in for the
// register's save/print primitive. Delivery is fire-and-forget: once the
// file is on disk nothing reports back.
type FileSink struct {
	dir    string
	logger *zap.Logger
}

func NewFileSink(dir string, logger *zap.Logger) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create receipt dir: %w", err)
	}
	return &FileSink{dir: dir, logger: logger}, nil
}

func (s *FileSink) Deliver(ctx context.Context, doc *receipt.Document) error {
	path := filepath.Join(s.dir, doc.Filename)
	if err := os.WriteFile(path, doc.Data, 0o644); err != nil {
		return fmt.Errorf("write receipt: %w", err)
	}

	s.logger.Info("receipt delivered", zap.String("path", path), zap.Int("bytes", len(doc.Data)))
	return nil
}
