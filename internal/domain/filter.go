package domain

import "strings"

// FilterCriteria narrows the visible jobs. Empty fields impose no constraint.
type FilterCriteria struct {
	Title           string `json:"title"`
	Location        string `json:"location"`
	ExperienceLevel string `json:"experience_level"`
	Company         string `json:"company"`
}

// FilterUpdate is a partial FilterCriteria; nil fields keep their prior value
type FilterUpdate struct {
	Title           *string `json:"title,omitempty"`
	Location        *string `json:"location,omitempty"`
	ExperienceLevel *string `json:"experience_level,omitempty"`
	Company         *string `json:"company,omitempty"`
}

// Merge applies u on top of c
func (c FilterCriteria) Merge(u FilterUpdate) FilterCriteria {
	if u.Title != nil {
		c.Title = *u.Title
	}
	if u.Location != nil {
		c.Location = *u.Location
	}
	if u.ExperienceLevel != nil {
		c.ExperienceLevel = *u.ExperienceLevel
	}
	if u.Company != nil {
		c.Company = *u.Company
	}
	return c
}

// Active is true iff at least one criterion is set
func (c FilterCriteria) Active() bool {
	return c.Title != "" || c.Location != "" || c.ExperienceLevel != "" || c.Company != ""
}

// Matches reports whether job satisfies every non-empty criterion
func (c FilterCriteria) Matches(job Job) bool {
	if c.Title != "" && !containsFold(job.Title, c.Title) {
		return false
	}

	if c.Location != "" {
		loc, ok := job.CountryAndCity()
		if !ok || !containsFold(loc, c.Location) {
			return false
		}
	}

	if c.ExperienceLevel != "" && string(job.ExperienceLevel()) != c.ExperienceLevel {
		return false
	}

	if c.Company != "" {
		name := job.CompanyName()
		if name == "" || !containsFold(name, c.Company) {
			return false
		}
	}

	return true
}

// Filter returns the jobs matching c, preserving order. The input is not modified.
func Filter(jobs []Job, c FilterCriteria) []Job {
	out := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		if c.Matches(j) {
			out = append(out, j)
		}
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
