package job

import (
	"context"

	"github.com/honeycarbs/job-browser/internal/domain"
)

// BulkFetchLimit caps the "fetch all" request; it is an upper bound, not a true all
const BulkFetchLimit = 1000

// Source represents an upstream job data source (jobs API, Adzuna, cache, ...)
type Source interface {
	// e.g. "jobsapi" or "adzuna"
	Name() string

	// FetchPage returns one server-paginated batch
	FetchPage(ctx context.Context, page, pageSize int) (domain.JobPage, error)

	// FetchAll returns up to BulkFetchLimit jobs for in-memory filtering
	FetchAll(ctx context.Context) ([]domain.Job, error)
}

// DescriptionResolver supplies a fallback description for a title. It never fails.
type DescriptionResolver interface {
	Resolve(title string) string
}
