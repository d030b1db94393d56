package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmynk/gearcheck/internal/metrics"
	"github.com/mmynk/gearcheck/internal/models"
)

// LoadResult is a loaded table plus where it came from.
type LoadResult struct {
	Table *models.Table

	// Source is the Name of the backend that served the table.
	Source string

	// Remote is true when the remote spreadsheet served the table.
	Remote bool

	// Warnings lists backends that were tried and failed first.
	Warnings []string
}

// TableStore loads and saves the table over a remote backend with a local
// file fallback. Either backend may be nil, but not both.
type TableStore struct {
	remote  Backend
	local   Backend
	schema  models.Schema
	metrics *metrics.Metrics

	mu     sync.Mutex
	active Backend
}

// NewTableStore creates a TableStore. remote may be nil when no credentials
// are configured.
func NewTableStore(remote, local Backend, schema models.Schema, m *metrics.Metrics) *TableStore {
	return &TableStore{
		remote:  remote,
		local:   local,
		schema:  schema,
		metrics: m,
	}
}

// Schema returns the schema the store validates against.
func (s *TableStore) Schema() models.Schema {
	return s.schema
}

func (s *TableStore) backends() []Backend {
	var bs []Backend
	if s.remote != nil {
		bs = append(bs, s.remote)
	}
	if s.local != nil {
		bs = append(bs, s.local)
	}
	return bs
}

// Active returns the backend that served the last load or write.
// Before any load it is the first configured backend.
func (s *TableStore) Active() Backend {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		return s.active
	}
	if bs := s.backends(); len(bs) > 0 {
		return bs[0]
	}
	return nil
}

func (s *TableStore) setActive(b Backend) {
	s.mu.Lock()
	s.active = b
	s.mu.Unlock()
}

// Load reads the table, trying the remote backend first.
func (s *TableStore) Load(ctx context.Context) (*LoadResult, error) {
	backends := s.backends()
	if len(backends) == 0 {
		return nil, fmt.Errorf("%w: no backend configured", ErrLoadFailed)
	}

	res := &LoadResult{}
	var errs []error
	for _, b := range backends {
		t, err := b.Load(ctx)
		if err == nil {
			err = s.schema.Validate(t)
		}
		s.metrics.ObserveLoad(b.Name(), err)
		if err != nil {
			slog.Warn("Table load failed", "backend", b.Name(), "error", err)
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s unavailable: %v", b.Name(), err))
			errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
			continue
		}

		if b != backends[0] {
			s.metrics.Fallback()
		}
		t.Revision = t.Fingerprint()
		s.setActive(b)

		res.Table = t
		res.Source = b.Name()
		res.Remote = b == s.remote
		slog.Debug("Table loaded", "backend", b.Name(), "rows", len(t.Rows), "columns", len(t.Header))
		return res, nil
	}

	return nil, fmt.Errorf("%w: %w", ErrLoadFailed, errors.Join(errs...))
}

// Save writes t after checking that person has a row in it.
func (s *TableStore) Save(ctx context.Context, t *models.Table, person string) (string, error) {
	if t.FindRow(s.schema.NameColumn, person) < 0 {
		return "", fmt.Errorf("%w: %q", ErrPersonNotFound, person)
	}
	return s.Write(ctx, t)
}

// Write replaces the stored table with t on the active backend. When the
// remote write fails the local file is written instead. If t carries a
// Revision and the active backend no longer matches it, ErrConflict is
// returned and nothing is written.
func (s *TableStore) Write(ctx context.Context, t *models.Table) (string, error) {
	active := s.Active()
	if active == nil {
		return "", fmt.Errorf("%w: no backend configured", ErrSaveFailed)
	}

	if t.Revision != "" {
		current, err := active.Load(ctx)
		if err != nil {
			slog.Warn("Revision check skipped, reload failed", "backend", active.Name(), "error", err)
		} else if current.Fingerprint() != t.Revision {
			return "", fmt.Errorf("%w: %w", ErrSaveFailed, ErrConflict)
		}
	}

	candidates := []Backend{active}
	if active == s.remote && s.local != nil {
		candidates = append(candidates, s.local)
	}

	var errs []error
	for i, b := range candidates {
		label, err := b.Overwrite(ctx, t)
		s.metrics.ObserveSave(b.Name(), err)
		if err != nil {
			slog.Warn("Table write failed", "backend", b.Name(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
			continue
		}
		if i > 0 {
			s.metrics.Fallback()
		}
		t.Revision = t.Fingerprint()
		s.setActive(b)
		slog.Info("Table written", "backend", b.Name(), "location", label, "rows", len(t.Rows))
		return label, nil
	}

	return "", fmt.Errorf("%w: %w", ErrSaveFailed, errors.Join(errs...))
}

// EnsureBackup creates the backup on the active backend if it is missing.
func (s *TableStore) EnsureBackup(ctx context.Context) error {
	active := s.Active()
	if active == nil {
		return fmt.Errorf("no backend configured")
	}
	return active.EnsureBackup(ctx)
}

// LoadBackup reads the backup snapshot of the active backend.
func (s *TableStore) LoadBackup(ctx context.Context) (*models.Table, error) {
	active := s.Active()
	if active == nil {
		return nil, ErrNoBackup
	}
	t, err := active.LoadBackup(ctx)
	if err != nil {
		return nil, err
	}
	t.Revision = t.Fingerprint()
	return t, nil
}
