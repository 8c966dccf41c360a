package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/honeycarbs/job-browser/internal/domain"
)

// fakeJobs serves a fixed catalog. Calls for a gated page (or the bulk fetch)
// block until the gate is closed.
type fakeJobs struct {
	mu        sync.Mutex
	catalog   []domain.Job
	pageErr   error
	allErr    error
	pageGates map[int]chan struct{}
	allGate   chan struct{}
	pageCalls []int
	allCalls  int
}

func newFakeJobs(catalog []domain.Job) *fakeJobs {
	return &fakeJobs{catalog: catalog, pageGates: make(map[int]chan struct{})}
}

func (f *fakeJobs) gatePage(page int) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	gate := make(chan struct{})
	f.pageGates[page] = gate
	return gate
}

func (f *fakeJobs) gateAll() chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.allGate = make(chan struct{})
	return f.allGate
}

func (f *fakeJobs) failPages(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pageErr = err
}

func (f *fakeJobs) Page(ctx context.Context, page, size int) (domain.JobPage, error) {
	f.mu.Lock()
	f.pageCalls = append(f.pageCalls, page)
	gate := f.pageGates[page]
	err := f.pageErr
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return domain.JobPage{}, ctx.Err()
		}
	}
	if err != nil {
		return domain.JobPage{}, err
	}

	p := domain.Pagination{CurrentPage: page, ItemsPerPage: size}
	return domain.JobPage{
		Data: p.Slice(f.catalog),
		Meta: domain.PageMeta{
			CurrentPage: page,
			PerPage:     size,
			Total:       len(f.catalog),
			LastPage:    domain.TotalPages(len(f.catalog), size),
		},
	}, nil
}

func (f *fakeJobs) All(ctx context.Context) ([]domain.Job, error) {
	f.mu.Lock()
	f.allCalls++
	gate := f.allGate
	err := f.allErr
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return append([]domain.Job(nil), f.catalog...), nil
}

func (f *fakeJobs) PageCalls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.pageCalls...)
}

func (f *fakeJobs) AllCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.allCalls
}

// failingApps rejects every write
type failingApps struct{}

var errDiskFull = errors.New("disk full")

func (failingApps) Read(context.Context) []domain.SavedApplication { return []domain.SavedApplication{} }
func (failingApps) Append(context.Context, domain.SavedApplication) error {
	return errDiskFull
}
func (failingApps) Delete(context.Context, string) (bool, error) { return false, errDiskFull }
func (failingApps) Clear(context.Context) error                 { return errDiskFull }

func catalog(n int) []domain.Job {
	jobs := make([]domain.Job, 0, n)
	for i := 1; i <= n; i++ {
		jobs = append(jobs, domain.Job{
			ID:                       fmt.Sprintf("job-%d", i),
			Title:                    fmt.Sprintf("Line Cook %d", i),
			MinimumYearsOfExperience: i % 5,
			Employer:                 domain.Employer{Alias: "Nobu Downtown"},
			Location:                 &domain.Location{CountryAndCity: "Serbia, Belgrade"},
		})
	}
	return jobs
}

func validForm() domain.ApplicationForm {
	return domain.ApplicationForm{
		Name:            "Jane Doe",
		Email:           "jane@example.com",
		Phone:           "+381 60 000 0000",
		Country:         "Serbia",
		Education:       "Culinary school",
		CurrentPosition: "Sous Chef",
		CurrentCompany:  "Nobu",
		CVFile:          &domain.FileUpload{Name: "cv.pdf", ContentType: "application/pdf", Size: 2048},
	}
}
