package store

import (
	"fmt"

	"github.com/honeycarbs/job-browser/internal/domain"
)

// Phase is the job detail / application workflow state
type Phase int

const (
	PhaseClosed Phase = iota
	PhaseViewing
	PhaseApplying
	PhaseSubmitted
)

func (p Phase) String() string {
	switch p {
	case PhaseClosed:
		return "closed"
	case PhaseViewing:
		return "viewing"
	case PhaseApplying:
		return "applying"
	case PhaseSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// State is a point-in-time copy of everything the store owns.
// Job collections are shared with the store and must be treated as read-only.
type State struct {
	// Version increases with every committed change, across Reset
	Version uint64

	Jobs                  []domain.Job
	AllJobs               []domain.Job
	AllJobsLoaded         bool
	FilteredJobs          []domain.Job
	PaginatedFilteredJobs []domain.Job

	Filters     domain.FilterCriteria
	IsFiltering bool

	// Pagination is the live pagination for whichever collection is displayed.
	// OriginalPagination is the last one reported by the server.
	Pagination          domain.Pagination
	OriginalPagination  domain.Pagination
	PreFilterPagination *domain.Pagination

	IsLoading    bool
	IsLoadingAll bool
	LastError    error

	Phase            Phase
	SelectedJob      *domain.Job
	Form             domain.ApplicationForm
	ValidationErrors domain.ValidationErrors
	IsSubmitting     bool
	LastSubmitted    *domain.SavedApplication
}

// IsModalOpen is true whenever a job is being viewed or applied to
func (s State) IsModalOpen() bool {
	return s.Phase != PhaseClosed
}

func initialState() State {
	return State{
		Pagination:         domain.DefaultPagination(),
		OriginalPagination: domain.DefaultPagination(),
		Phase:              PhaseClosed,
	}
}

// clone copies the pointer-held parts so callers cannot reach into the store
func (s State) clone() State {
	out := s
	if s.PreFilterPagination != nil {
		p := *s.PreFilterPagination
		out.PreFilterPagination = &p
	}
	if s.SelectedJob != nil {
		j := *s.SelectedJob
		out.SelectedJob = &j
	}
	if s.Form.CVFile != nil {
		f := *s.Form.CVFile
		out.Form.CVFile = &f
	}
	if s.ValidationErrors != nil {
		errs := make(domain.ValidationErrors, len(s.ValidationErrors))
		for k, v := range s.ValidationErrors {
			errs[k] = v
		}
		out.ValidationErrors = errs
	}
	if s.LastSubmitted != nil {
		a := *s.LastSubmitted
		out.LastSubmitted = &a
	}
	return out
}
