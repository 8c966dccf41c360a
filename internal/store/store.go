package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/segmentio/ksuid"
	"golang.org/x/sync/singleflight"

	"github.com/honeycarbs/job-browser/internal/domain"
	"github.com/honeycarbs/job-browser/internal/domain/job"
	"github.com/honeycarbs/job-browser/pkg/logging"
)

const DefaultRequestTimeout = 30 * time.Second

// Applications persists submitted applications
type Applications interface {
	Read(ctx context.Context) []domain.SavedApplication
	Append(ctx context.Context, app domain.SavedApplication) error
	Delete(ctx context.Context, id string) (bool, error)
	Clear(ctx context.Context) error
}

// Option configures Store
type Option func(*options)

type options struct {
	logger         *logging.Logger
	debounce       time.Duration
	requestTimeout time.Duration
	now            func() time.Time
	newID          func() string
}

func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithPageInputDebounce sets the quiet period for OnPageInputChanged
func WithPageInputDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = d
	}
}

// WithRequestTimeout bounds loads started by the store itself
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) {
		o.requestTimeout = d
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithIDGenerator overrides the application id source
func WithIDGenerator(newID func() string) Option {
	return func(o *options) {
		o.newID = newID
	}
}

// Store owns the job browsing state: the server-paginated page, the bulk
// collection used for filtering, and the application workflow.
//
// Network and persistence calls run without the lock. Page loads commit only if
// no newer page load started meanwhile; bulk loads commit only if the store was
// not reset meanwhile.
type Store struct {
	jobs   job.Service
	apps   Applications
	logger *logging.Logger

	now            func() time.Time
	newID          func() string
	requestTimeout time.Duration

	mu        sync.Mutex
	state     State
	pageToken uint64
	epoch     uint64
	version   uint64

	bulk  singleflight.Group
	input *pageInput

	subMu     sync.Mutex
	listeners map[int]func(State)
	nextSub   int
}

func New(jobs job.Service, apps Applications, opts ...Option) *Store {
	o := &options{
		debounce:       DefaultPageInputDebounce,
		requestTimeout: DefaultRequestTimeout,
		now:            time.Now,
		newID:          func() string { return ksuid.New().String() },
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logging.NewNop()
	}

	s := &Store{
		jobs:           jobs,
		apps:           apps,
		logger:         o.logger.With("component", "store"),
		now:            o.now,
		newID:          o.newID,
		requestTimeout: o.requestTimeout,
		state:          initialState(),
		listeners:      make(map[int]func(State)),
	}
	s.input = newPageInput(o.debounce, s.forwardPageInput)
	return s
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers fn to receive a snapshot after every committed change.
// fn runs outside the store lock and may call back into the store. Commits made
// from different goroutines can be delivered out of order; a listener that
// needs the latest state drops snapshots whose Version is not newer than the
// last one it applied.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.listeners, id)
			s.subMu.Unlock()
		})
	}
}

// commit snapshots the state, releases the lock and notifies listeners
func (s *Store) commit() {
	s.version++
	s.state.Version = s.version
	snap := s.state.clone()
	s.mu.Unlock()

	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// LoadPage fetches one server page. page and size below 1 fall back to the
// current pagination.
func (s *Store) LoadPage(ctx context.Context, page, size int) error {
	s.mu.Lock()
	if page < 1 {
		page = s.state.Pagination.CurrentPage
	}
	if size < 1 {
		size = s.state.Pagination.ItemsPerPage
	}
	s.pageToken++
	token := s.pageToken
	s.state.IsLoading = true
	s.commit()

	res, err := s.jobs.Page(ctx, page, size)

	s.mu.Lock()
	if token != s.pageToken {
		s.mu.Unlock()
		s.logger.Debug("discarding superseded page load", "page", page, "size", size)
		return ErrSuperseded
	}
	s.state.IsLoading = false
	if err != nil {
		s.state.LastError = err
		s.commit()
		s.logger.Warn("failed to load jobs page", "page", page, "size", size, "err", err)
		return err
	}

	s.state.Jobs = res.Data
	s.state.LastError = nil
	p := domain.PaginationFromMeta(res.Meta)
	s.state.OriginalPagination = p
	// the live pagination belongs to the filtered collection while filtering
	if !s.state.IsFiltering {
		s.state.Pagination = p
	}
	s.commit()

	s.logger.Debug("loaded jobs page", "page", p.CurrentPage, "count", len(res.Data), "total", p.TotalItems)
	return nil
}

// LoadAll fetches the bulk collection once per store lifetime; concurrent
// callers share a single fetch. Active filters are re-applied on completion.
func (s *Store) LoadAll(ctx context.Context) ([]domain.Job, error) {
	s.mu.Lock()
	if s.state.AllJobsLoaded {
		jobs := s.state.AllJobs
		s.mu.Unlock()
		return jobs, nil
	}
	epoch := s.epoch
	s.mu.Unlock()

	v, err, _ := s.bulk.Do(strconv.FormatUint(epoch, 10), func() (any, error) {
		return s.loadAll(ctx, epoch)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Job), nil
}

func (s *Store) loadAll(ctx context.Context, epoch uint64) ([]domain.Job, error) {
	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return nil, ErrSuperseded
	}
	// a previous flight may have finished between the caller's check and now
	if s.state.AllJobsLoaded {
		jobs := s.state.AllJobs
		s.mu.Unlock()
		return jobs, nil
	}
	s.state.IsLoadingAll = true
	s.commit()

	jobs, err := s.jobs.All(ctx)

	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return nil, ErrSuperseded
	}
	s.state.IsLoadingAll = false
	if err != nil {
		s.state.LastError = err
		s.commit()
		s.logger.Warn("failed to load all jobs", "err", err)
		return nil, err
	}

	s.state.AllJobs = jobs
	s.state.AllJobsLoaded = true
	s.state.LastError = nil
	if s.state.IsFiltering {
		s.applyFilters()
	}
	s.commit()

	s.logger.Info("loaded all jobs", "count", len(jobs))
	return jobs, nil
}

// applyFilters recomputes the filtered collection and resets to its first page.
// Caller holds s.mu.
func (s *Store) applyFilters() {
	filtered := domain.Filter(s.state.AllJobs, s.state.Filters)
	p := domain.LocalPagination(len(filtered), s.state.Pagination.ItemsPerPage)
	s.state.FilteredJobs = filtered
	s.state.Pagination = p
	s.state.PaginatedFilteredJobs = p.Slice(filtered)
}

// UpdateFilters merges u into the criteria and switches between the filtered
// and server-paginated collections as needed.
func (s *Store) UpdateFilters(ctx context.Context, u domain.FilterUpdate) error {
	s.mu.Lock()
	wasFiltering := s.state.IsFiltering
	s.state.Filters = s.state.Filters.Merge(u)
	s.state.IsFiltering = s.state.Filters.Active()

	switch {
	case s.state.IsFiltering:
		if !wasFiltering {
			p := s.state.Pagination
			s.state.PreFilterPagination = &p
		}
		if s.state.AllJobsLoaded {
			s.applyFilters()
			s.commit()
			return nil
		}
		s.commit()
		_, err := s.LoadAll(ctx)
		return err

	case wasFiltering:
		s.state.FilteredJobs = nil
		s.state.PaginatedFilteredJobs = nil
		if s.state.PreFilterPagination != nil {
			s.state.Pagination = *s.state.PreFilterPagination
			s.state.PreFilterPagination = nil
		}
		size := s.state.Pagination.ItemsPerPage
		s.commit()
		return s.LoadPage(ctx, 1, size)

	default:
		s.commit()
		return nil
	}
}

// SetPage moves to page, clamped to the available range. Filtered results are
// re-sliced locally; otherwise the page is fetched from the server.
func (s *Store) SetPage(ctx context.Context, page int) error {
	s.mu.Lock()
	target := s.state.Pagination.Clamp(page)
	if target == s.state.Pagination.CurrentPage {
		s.mu.Unlock()
		return nil
	}

	if s.state.IsFiltering {
		s.state.Pagination.CurrentPage = target
		s.state.PaginatedFilteredJobs = s.state.Pagination.Slice(s.state.FilteredJobs)
		s.commit()
		return nil
	}

	size := s.state.Pagination.ItemsPerPage
	s.mu.Unlock()
	return s.LoadPage(ctx, target, size)
}

// OnPageInputChanged accepts raw page-number text. The value is applied after
// the debounce period; non-numeric input is ignored.
func (s *Store) OnPageInputChanged(raw string) {
	s.input.Push(raw)
}

func (s *Store) forwardPageInput(page int) {
	ctx, cancel := context.WithTimeout(context.Background(), s.requestTimeout)
	defer cancel()

	if err := s.SetPage(ctx, page); err != nil && !errors.Is(err, ErrSuperseded) {
		s.logger.Warn("page input failed", "page", page, "err", err)
	}
}

// OpenJobModal shows job. Allowed while closed or already viewing another job.
func (s *Store) OpenJobModal(j domain.Job) error {
	s.mu.Lock()
	if s.state.Phase != PhaseClosed && s.state.Phase != PhaseViewing {
		phase := s.state.Phase
		s.mu.Unlock()
		return fmt.Errorf("%w: open job while %s", ErrInvalidTransition, phase)
	}
	s.state.Phase = PhaseViewing
	s.state.SelectedJob = &j
	s.state.LastSubmitted = nil
	s.resetDraft()
	s.commit()
	return nil
}

// CloseJobModal is valid from any phase
func (s *Store) CloseJobModal() {
	s.mu.Lock()
	s.state.Phase = PhaseClosed
	s.state.SelectedJob = nil
	s.state.LastSubmitted = nil
	s.resetDraft()
	s.commit()
}

func (s *Store) StartApplication() error {
	return s.transition(PhaseViewing, PhaseApplying, "start application")
}

func (s *Store) CancelApplication() error {
	return s.transition(PhaseApplying, PhaseViewing, "cancel application")
}

func (s *Store) transition(from, to Phase, op string) error {
	s.mu.Lock()
	if s.state.Phase != from {
		phase := s.state.Phase
		s.mu.Unlock()
		return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, op, phase)
	}
	if s.state.IsSubmitting {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s while submitting", ErrInvalidTransition, op)
	}
	s.state.Phase = to
	s.resetDraft()
	s.commit()
	return nil
}

// resetDraft clears the form and its validation errors. Caller holds s.mu.
func (s *Store) resetDraft() {
	s.state.Form = domain.ApplicationForm{}
	s.state.ValidationErrors = nil
}

// EditApplication applies edit to the draft form
func (s *Store) EditApplication(edit func(*domain.ApplicationForm)) error {
	s.mu.Lock()
	if s.state.Phase != PhaseApplying {
		phase := s.state.Phase
		s.mu.Unlock()
		return fmt.Errorf("%w: edit application while %s", ErrInvalidTransition, phase)
	}
	edit(&s.state.Form)
	s.commit()
	return nil
}

// ValidateApplication checks the draft and records the per-field messages.
// It never changes the phase.
func (s *Store) ValidateApplication() (bool, domain.ValidationErrors) {
	s.mu.Lock()
	errs := s.state.Form.Validate()
	s.state.ValidationErrors = errs
	s.commit()
	return errs == nil, errs
}

// SubmitJobApplication validates form and appends it to the saved applications.
// On success the workflow moves to Submitted and the draft is cleared; on a
// persistence failure the draft is kept for a retry.
func (s *Store) SubmitJobApplication(ctx context.Context, form domain.ApplicationForm) (domain.SavedApplication, error) {
	s.mu.Lock()
	if s.state.SelectedJob == nil {
		s.mu.Unlock()
		return domain.SavedApplication{}, ErrNoJobSelected
	}
	if s.state.Phase != PhaseApplying || s.state.IsSubmitting {
		phase := s.state.Phase
		s.mu.Unlock()
		return domain.SavedApplication{}, fmt.Errorf("%w: submit while %s", ErrInvalidTransition, phase)
	}

	s.state.Form = form
	if errs := form.Validate(); errs != nil {
		s.state.ValidationErrors = errs
		s.commit()
		return domain.SavedApplication{}, errs
	}
	s.state.ValidationErrors = nil
	s.state.IsSubmitting = true
	app := domain.NewSavedApplication(s.newID(), *s.state.SelectedJob, form, s.now())
	s.commit()

	err := s.apps.Append(ctx, app)

	s.mu.Lock()
	s.state.IsSubmitting = false
	if err != nil {
		s.state.LastError = err
		s.commit()
		s.logger.Error("failed to save application", "job_id", app.JobID, "err", err)
		return domain.SavedApplication{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	// the modal may have been closed while the write was in flight
	if s.state.Phase == PhaseApplying {
		s.state.Phase = PhaseSubmitted
		s.resetDraft()
		s.state.LastSubmitted = &app
	}
	s.commit()

	s.logger.Info("application submitted", "application_id", app.ApplicationID, "job_id", app.JobID)
	return app, nil
}

func (s *Store) ListSavedApplications(ctx context.Context) []domain.SavedApplication {
	return s.apps.Read(ctx)
}

// DeleteSavedApplication reports whether an application with id existed
func (s *Store) DeleteSavedApplication(ctx context.Context, id string) (bool, error) {
	removed, err := s.apps.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return removed, nil
}

func (s *Store) ClearSavedApplications(ctx context.Context) error {
	if err := s.apps.Clear(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// Reset returns the store to its initial state, drops the bulk collection and
// makes every in-flight load complete as superseded.
func (s *Store) Reset() {
	s.mu.Lock()
	s.pageToken++
	s.epoch++
	s.state = initialState()
	s.commit()
}

// Close stops the page input debouncer
func (s *Store) Close() {
	s.input.Close()
}
