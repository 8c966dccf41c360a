package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// MaxCVFileSize is the upper bound for an uploaded CV (3 MiB)
const MaxCVFileSize int64 = 3 * 1024 * 1024

// FileUpload is a file picked by the applicant
type FileUpload struct {
	Name        string
	ContentType string
	Size        int64
	Content     []byte
}

// FileMeta is what gets persisted for an upload; content never is
type FileMeta struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

func (f *FileUpload) Meta() *FileMeta {
	if f == nil {
		return nil
	}
	size := f.Size
	if size == 0 && len(f.Content) > 0 {
		size = int64(len(f.Content))
	}
	return &FileMeta{Name: f.Name, Type: f.ContentType, Size: size}
}

// ApplicationForm is the draft of a pending application
type ApplicationForm struct {
	Name            string
	Email           string
	Phone           string
	Country         string
	Education       string
	CurrentPosition string
	CurrentCompany  string
	CVFile          *FileUpload
	CoverLetter     string
}

// SavedApplication is a submitted application as persisted locally
type SavedApplication struct {
	ApplicationID   string    `json:"applicationId"`
	JobID           string    `json:"jobId,omitempty"`
	JobTitle        string    `json:"jobTitle"`
	Company         string    `json:"company"`
	AppliedDate     time.Time `json:"appliedDate"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Country         string    `json:"country"`
	Education       string    `json:"education"`
	CurrentPosition string    `json:"currentPosition"`
	CurrentCompany  string    `json:"currentCompany"`
	CVFile          *FileMeta `json:"cvFile,omitempty"`
	CoverLetter     string    `json:"coverLetter,omitempty"`
}

// NewSavedApplication normalizes form for persistence against job
func NewSavedApplication(id string, job Job, form ApplicationForm, appliedAt time.Time) SavedApplication {
	return SavedApplication{
		ApplicationID:   id,
		JobID:           job.ID,
		JobTitle:        job.Title,
		Company:         job.CompanyName(),
		AppliedDate:     appliedAt.UTC(),
		Name:            strings.TrimSpace(form.Name),
		Email:           strings.TrimSpace(form.Email),
		Phone:           strings.TrimSpace(form.Phone),
		Country:         strings.TrimSpace(form.Country),
		Education:       strings.TrimSpace(form.Education),
		CurrentPosition: strings.TrimSpace(form.CurrentPosition),
		CurrentCompany:  strings.TrimSpace(form.CurrentCompany),
		CVFile:          form.CVFile.Meta(),
		CoverLetter:     form.CoverLetter,
	}
}

// ValidationErrors maps a form field to its message
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, v[f]))
	}
	return "invalid application: " + strings.Join(parts, "; ")
}

const (
	msgRequired     = "This field is required"
	msgInvalidEmail = "Please enter a valid email"
	msgFileTooLarge = "File size must be less than 3MB"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks the draft against the required-field rules
func (f ApplicationForm) Validate() ValidationErrors {
	errs := ValidationErrors{}

	required := []struct {
		field, value string
	}{
		{"name", f.Name},
		{"email", f.Email},
		{"phone", f.Phone},
		{"country", f.Country},
		{"education", f.Education},
		{"currentPosition", f.CurrentPosition},
		{"currentCompany", f.CurrentCompany},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs[r.field] = msgRequired
		}
	}

	if _, missing := errs["email"]; !missing && !emailPattern.MatchString(strings.TrimSpace(f.Email)) {
		errs["email"] = msgInvalidEmail
	}

	switch meta := f.CVFile.Meta(); {
	case meta == nil:
		errs["cvFile"] = msgRequired
	case meta.Size > MaxCVFileSize:
		errs["cvFile"] = msgFileTooLarge
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
