package domain

// ExperienceLevel is the bucket derived from minimum years of experience
type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "entry"
	ExperienceMid       ExperienceLevel = "mid"
	ExperienceSenior    ExperienceLevel = "senior"
	ExperienceExecutive ExperienceLevel = "executive"
)

// ExperienceLevelFor maps years to a bucket: 0 entry, 1 mid, 2-3 senior, else executive.
// Negative years are treated as 0.
func ExperienceLevelFor(years int) ExperienceLevel {
	switch {
	case years <= 0:
		return ExperienceEntry
	case years == 1:
		return ExperienceMid
	case years == 2 || years == 3:
		return ExperienceSenior
	default:
		return ExperienceExecutive
	}
}

// ExperienceLabel is the display text for a years-of-experience value
func ExperienceLabel(years int) string {
	switch ExperienceLevelFor(years) {
	case ExperienceEntry:
		return "Entry Level"
	case ExperienceMid:
		return "Mid Level"
	case ExperienceSenior:
		return "Senior Level"
	default:
		return "Executive"
	}
}

// Valid reports whether l is one of the known buckets
func (l ExperienceLevel) Valid() bool {
	switch l {
	case ExperienceEntry, ExperienceMid, ExperienceSenior, ExperienceExecutive:
		return true
	}
	return false
}
