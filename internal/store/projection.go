package store

import "github.com/honeycarbs/job-browser/internal/domain"

// DisplayedJobs is the collection currently shown: the filtered page while
// filtering, otherwise the server page
func DisplayedJobs(s State) []domain.Job {
	if s.IsFiltering {
		return s.PaginatedFilteredJobs
	}
	return s.Jobs
}

// PageWindow holds the 1-based positions of the first and last shown job
type PageWindow struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Window is {0, 0} when there is nothing to show
func Window(s State) PageWindow {
	p := s.Pagination
	if p.TotalItems <= 0 || p.ItemsPerPage < 1 || p.CurrentPage < 1 {
		return PageWindow{}
	}
	start := (p.CurrentPage-1)*p.ItemsPerPage + 1
	if start > p.TotalItems {
		return PageWindow{}
	}
	return PageWindow{Start: start, End: min(p.CurrentPage*p.ItemsPerPage, p.TotalItems)}
}

type JobCounts struct {
	Filtered   int `json:"filtered"`
	Unfiltered int `json:"unfiltered"`
}

// Counts reports the filtered and unfiltered totals. Without a filter both are
// the server total.
func Counts(s State) JobCounts {
	unfiltered := s.OriginalPagination.TotalItems
	if unfiltered == 0 && s.AllJobsLoaded {
		unfiltered = len(s.AllJobs)
	}
	if !s.IsFiltering {
		return JobCounts{Filtered: unfiltered, Unfiltered: unfiltered}
	}
	return JobCounts{Filtered: len(s.FilteredJobs), Unfiltered: unfiltered}
}

// PageNumbers lists 1..TotalPages
func PageNumbers(s State) []int {
	n := s.Pagination.TotalPages
	pages := make([]int, 0, max(n, 0))
	for i := 1; i <= n; i++ {
		pages = append(pages, i)
	}
	return pages
}
