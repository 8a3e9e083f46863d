package sitecontent

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
)

// Store holds the current document. An empty directory serves the embedded default.
type Store struct {
	dir     string
	logger  *zap.Logger
	current atomic.Pointer[Site]
}

// NewStore loads the document from dir/site.yaml, or the embedded default when dir is empty.
func NewStore(dir string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{dir: strings.TrimSpace(dir), logger: logger}
	site, err := s.load()
	if err != nil {
		return nil, err
	}
	s.current.Store(site)
	return s, nil
}

// Dir returns the override directory, empty when serving the embedded default.
func (s *Store) Dir() string {
	return s.dir
}

// Current returns the most recently loaded document.
func (s *Store) Current() *Site {
	return s.current.Load()
}

// Reload re-reads the document. On failure the previous document stays in place.
func (s *Store) Reload() error {
	site, err := s.load()
	if err != nil {
		s.logger.Warn("site content reload failed", zap.String("dir", s.dir), zap.Error(err))
		return err
	}
	s.current.Store(site)
	s.logger.Info("site content reloaded", zap.String("dir", s.dir), zap.Int("timeline", len(site.Timeline)))
	return nil
}

func (s *Store) load() (*Site, error) {
	if s.dir == "" {
		return Default()
	}
	path := filepath.Join(s.dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sitecontent: read %s: %w", path, err)
	}
	return Parse(data)
}
