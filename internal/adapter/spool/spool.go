// Package spool picks sum files up from a watched directory. Cruise data
// arrives as files dropped into the spool (by an upload service or a plain
// scp); committed files move to the archive directory so processing is
// effectively at-least-once across restarts.
package spool

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tidewrack/sumfile-etl/internal/config"
	"github.com/tidewrack/sumfile-etl/internal/domain"
)

// Scanner extracts sum files from the spool directory.
// It implements pipeline.BatchExtractor.
type Scanner struct {
	spoolDir   string
	archiveDir string
	interval   time.Duration
	logger     *slog.Logger
}

// NewScanner creates a Scanner for the configured spool and archive
// directories.
func NewScanner(cfg *config.Config, logger *slog.Logger) *Scanner {
	return &Scanner{
		spoolDir:   cfg.SpoolDir,
		archiveDir: cfg.ArchiveDir,
		interval:   cfg.ScanInterval,
		logger:     logger,
	}
}

// isSumFile reports whether a file name looks like a sum file. Real archives
// use both the ".sum" extension and the older "su.txt" suffix.
func isSumFile(name string) bool {
	return strings.HasSuffix(name, ".sum") || strings.HasSuffix(name, "su.txt")
}

// ExtractBatch walks the spool directory and reads up to batchSize sum
// files, oldest path first. Each file's Commit moves it into the archive
// directory. When the spool is empty, ExtractBatch waits one scan interval
// before returning an empty batch so the pipeline loop does not spin.
func (s *Scanner) ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawFile, error) {
	paths, err := s.scan(batchSize)
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.interval):
			return nil, nil
		}
	}

	files := make([]domain.RawFile, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			// The file may have been moved between scan and read; skip it
			// and let the next scan sort things out.
			s.logger.Warn("read spool file failed", "error", err, "path", path)
			continue
		}
		files = append(files, domain.RawFile{
			Path:   path,
			Data:   data,
			Commit: s.commit(path),
		})
	}
	return files, nil
}

// scan collects up to limit sum file paths under the spool directory,
// skipping the archive directory if it nests inside the spool.
func (s *Scanner) scan(limit int) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(s.spoolDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != s.spoolDir && samePath(path, s.archiveDir) {
				return filepath.SkipDir
			}
			return nil
		}
		if isSumFile(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan spool %s: %w", s.spoolDir, err)
	}

	sort.Strings(paths)
	if len(paths) > limit {
		paths = paths[:limit]
	}
	return paths, nil
}

// commit returns the acknowledgement for a spool file: move it into the
// archive directory, creating the directory on first use.
func (s *Scanner) commit(path string) func(ctx context.Context) error {
	return func(_ context.Context) error {
		if err := os.MkdirAll(s.archiveDir, 0o755); err != nil {
			return fmt.Errorf("create archive dir: %w", err)
		}
		dst := filepath.Join(s.archiveDir, filepath.Base(path))
		if err := os.Rename(path, dst); err != nil {
			return fmt.Errorf("archive %s: %w", path, err)
		}
		s.logger.Debug("archived sum file", "path", path, "archive", dst)
		return nil
	}
}

func samePath(a, b string) bool {
	ca, err := filepath.Abs(a)
	if err != nil {
		return a == b
	}
	cb, err := filepath.Abs(b)
	if err != nil {
		return a == b
	}
	return ca == cb
}
