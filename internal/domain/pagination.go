package domain

const DefaultItemsPerPage = 11

// Pagination describes the visible page of a job collection
type Pagination struct {
	CurrentPage  int `json:"current_page"`
	ItemsPerPage int `json:"items_per_page"`
	TotalItems   int `json:"total_items"`
	TotalPages   int `json:"total_pages"`
}

func DefaultPagination() Pagination {
	return Pagination{CurrentPage: 1, ItemsPerPage: DefaultItemsPerPage}
}

// PaginationFromMeta takes the server-reported values as-is
func PaginationFromMeta(m PageMeta) Pagination {
	p := Pagination{
		CurrentPage:  m.CurrentPage,
		ItemsPerPage: m.PerPage,
		TotalItems:   m.Total,
		TotalPages:   m.LastPage,
	}
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
	if p.ItemsPerPage < 1 {
		p.ItemsPerPage = DefaultItemsPerPage
	}
	return p
}

// LocalPagination computes totals for an in-memory collection, starting at page 1
func LocalPagination(totalItems, itemsPerPage int) Pagination {
	if itemsPerPage < 1 {
		itemsPerPage = DefaultItemsPerPage
	}
	return Pagination{
		CurrentPage:  1,
		ItemsPerPage: itemsPerPage,
		TotalItems:   totalItems,
		TotalPages:   TotalPages(totalItems, itemsPerPage),
	}
}

// TotalPages is ceil(totalItems / itemsPerPage)
func TotalPages(totalItems, itemsPerPage int) int {
	if itemsPerPage < 1 || totalItems <= 0 {
		return 0
	}
	return (totalItems + itemsPerPage - 1) / itemsPerPage
}

// Clamp restricts page to [1, TotalPages]; an empty collection clamps to 1
func (p Pagination) Clamp(page int) int {
	upper := p.TotalPages
	if upper < 1 {
		upper = 1
	}
	if page < 1 {
		return 1
	}
	if page > upper {
		return upper
	}
	return page
}

// Slice returns the current page's window of jobs
func (p Pagination) Slice(jobs []Job) []Job {
	if p.ItemsPerPage < 1 || p.CurrentPage < 1 {
		return nil
	}
	start := (p.CurrentPage - 1) * p.ItemsPerPage
	if start >= len(jobs) {
		return []Job{}
	}
	end := start + p.ItemsPerPage
	if end > len(jobs) {
		end = len(jobs)
	}
	out := make([]Job, end-start)
	copy(out, jobs[start:end])
	return out
}
