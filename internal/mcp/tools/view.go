package tools

import (
	"github.com/honeycarbs/job-browser/internal/domain"
	"github.com/honeycarbs/job-browser/internal/store"
)

// BrowserView is the rendered job list state
type BrowserView struct {
	Jobs        []domain.JobSummary   `json:"jobs"`
	Pagination  domain.Pagination     `json:"pagination"`
	Window      store.PageWindow      `json:"window"`
	Counts      store.JobCounts       `json:"counts"`
	Pages       []int                 `json:"pages"`
	Filters     domain.FilterCriteria `json:"filters"`
	IsFiltering bool                  `json:"is_filtering"`
	IsLoading   bool                  `json:"is_loading"`
	LastError   string                `json:"last_error,omitempty"`
}

func browserView(s store.State) BrowserView {
	jobs := store.DisplayedJobs(s)
	summaries := make([]domain.JobSummary, 0, len(jobs))
	for _, j := range jobs {
		summaries = append(summaries, j.Summary())
	}

	v := BrowserView{
		Jobs:        summaries,
		Pagination:  s.Pagination,
		Window:      store.Window(s),
		Counts:      store.Counts(s),
		Pages:       store.PageNumbers(s),
		Filters:     s.Filters,
		IsFiltering: s.IsFiltering,
		IsLoading:   s.IsLoading || s.IsLoadingAll,
	}
	if s.LastError != nil {
		v.LastError = s.LastError.Error()
	}
	return v
}

// WorkflowView is the rendered modal / application state
type WorkflowView struct {
	Phase            store.Phase              `json:"phase"`
	SelectedJob      *domain.JobSummary       `json:"selected_job,omitempty"`
	ValidationErrors domain.ValidationErrors  `json:"validation_errors,omitempty"`
	IsSubmitting     bool                     `json:"is_submitting"`
	LastSubmitted    *domain.SavedApplication `json:"last_submitted,omitempty"`
}

func workflowView(s store.State) WorkflowView {
	v := WorkflowView{
		Phase:            s.Phase,
		ValidationErrors: s.ValidationErrors,
		IsSubmitting:     s.IsSubmitting,
		LastSubmitted:    s.LastSubmitted,
	}
	if s.SelectedJob != nil {
		sum := s.SelectedJob.Summary()
		v.SelectedJob = &sum
	}
	return v
}

// findJob looks the id up in every collection the store holds
func findJob(s store.State, id string) (domain.Job, bool) {
	for _, jobs := range [][]domain.Job{store.DisplayedJobs(s), s.Jobs, s.AllJobs} {
		for _, j := range jobs {
			if j.ID == id {
				return j, true
			}
		}
	}
	return domain.Job{}, false
}
