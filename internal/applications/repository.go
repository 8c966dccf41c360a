package applications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/honeycarbs/job-browser/internal/domain"
	"github.com/honeycarbs/job-browser/internal/storage"
	"github.com/honeycarbs/job-browser/pkg/logging"
)

// StorageKey is the single key holding the submitted applications list
const StorageKey = "jobApplications"

// Repository reads and writes the full list of saved applications.
// Every operation rewrites the whole list; there are no partial updates.
// Mutations are serialized so read-before-write holds within one process.
type Repository struct {
	kv     storage.KV
	logger *logging.Logger

	mu sync.Mutex
}

func NewRepository(kv storage.KV, logger *logging.Logger) *Repository {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Repository{kv: kv, logger: logger.With("component", "applications")}
}

// Read returns the stored list. Absent, unreadable, or corrupt data reads as empty.
func (r *Repository) Read(ctx context.Context) []domain.SavedApplication {
	apps, err := r.read(ctx)
	if err != nil {
		r.logger.Warn("failed to read saved applications", "err", err)
		return []domain.SavedApplication{}
	}
	return apps
}

// read is the strict form used before a rewrite: only absent or corrupt data
// reads as empty, backend failures are returned.
func (r *Repository) read(ctx context.Context) ([]domain.SavedApplication, error) {
	raw, err := r.kv.Get(ctx, StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return []domain.SavedApplication{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("applications: read: %w", err)
	}

	var apps []domain.SavedApplication
	if err := json.Unmarshal(raw, &apps); err != nil {
		r.logger.Warn("discarding corrupt saved applications", "err", err, "bytes", len(raw))
		return []domain.SavedApplication{}, nil
	}
	if apps == nil {
		apps = []domain.SavedApplication{}
	}
	return apps, nil
}

// Write replaces the stored list
func (r *Repository) Write(ctx context.Context, apps []domain.SavedApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.write(ctx, apps)
}

func (r *Repository) write(ctx context.Context, apps []domain.SavedApplication) error {
	if apps == nil {
		apps = []domain.SavedApplication{}
	}
	raw, err := json.Marshal(apps)
	if err != nil {
		return fmt.Errorf("applications: encode: %w", err)
	}
	if err := r.kv.Set(ctx, StorageKey, raw); err != nil {
		return fmt.Errorf("applications: write: %w", err)
	}
	return nil
}

func (r *Repository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.kv.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("applications: clear: %w", err)
	}
	return nil
}

// Append adds app to the end of the stored list
func (r *Repository) Append(ctx context.Context, app domain.SavedApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	apps, err := r.read(ctx)
	if err != nil {
		return err
	}
	return r.write(ctx, append(apps, app))
}

// Delete removes the application with id. It reports whether one was removed.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	apps, err := r.read(ctx)
	if err != nil {
		return false, err
	}
	kept := make([]domain.SavedApplication, 0, len(apps))
	for _, a := range apps {
		if a.ApplicationID != id {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(apps) {
		return false, nil
	}
	return true, r.write(ctx, kept)
}
