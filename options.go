package curricula

import (
	"log/slog"

	"github.com/go-logr/logr"
)

// Option is a function that configures a Service.
type Option func(*Service)

// WithLogger sets the logger for the service.
var WithLogger = func(log *slog.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

// WithLogr sets the logger from a logr.Logger.
var WithLogr = func(log logr.Logger) Option {
	return func(s *Service) {
		s.log = slog.New(logr.ToSlogHandler(log))
	}
}

// WithSnapshotCache enables graph snapshot reuse across requests. It
// only takes effect when the store implements VersionedStore; snapshots
// are invalidated by curriculum version bumps.
var WithSnapshotCache = func() Option {
	return func(s *Service) {
		s.cache = &snapshotCache{}
	}
}

// NullWriter is a writer that discards all data
type NullWriter struct{}

func (NullWriter) Write([]byte) (int, error) { return 0, nil }

// NullLogger creates a logger that discards all output
func NullLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(NullWriter{}, nil))
}
