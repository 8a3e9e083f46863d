package content

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Options selects and tunes the backend used by a binary.
type Options struct {
	// BaseURL of the REST backend. Empty selects the seeded in-memory backend.
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
	Logger   *zap.Logger
}

// Open builds the Service described by opts, wrapped in the query cache.
func Open(opts Options) (Service, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var backend Service
	if strings.TrimSpace(opts.BaseURL) == "" {
		logger.Info("content backend: using in-memory seed data")
		backend = NewStaticService()
	} else {
		svc, err := NewHTTPService(opts.BaseURL, &http.Client{Timeout: opts.Timeout})
		if err != nil {
			return nil, err
		}
		logger.Info("content backend: REST", zap.String("base_url", opts.BaseURL))
		backend = svc
	}
	return NewCachedService(backend, opts.CacheTTL), nil
}
