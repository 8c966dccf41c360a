package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() ApplicationForm {
	return ApplicationForm{
		Name:            "Jane Doe",
		Email:           "jane@example.com",
		Phone:           "+971500000000",
		Country:         "UAE",
		Education:       "BSc",
		CurrentPosition: "Line Cook",
		CurrentCompany:  "Nobu",
		CVFile:          &FileUpload{Name: "cv.pdf", ContentType: "application/pdf", Size: MaxCVFileSize},
	}
}

func TestValidate_AcceptsCompleteFormAtSizeLimit(t *testing.T) {
	assert.Nil(t, validForm().Validate())
}

func TestValidate_RejectsOversizedCVAndBadEmail(t *testing.T) {
	f := validForm()
	f.Email = "jane.example.com"
	f.CVFile.Size = MaxCVFileSize + 1

	errs := f.Validate()
	require.Len(t, errs, 2)
	assert.Equal(t, msgInvalidEmail, errs["email"])
	assert.Equal(t, msgFileTooLarge, errs["cvFile"])
	assert.Contains(t, errs.Error(), "cvFile")
}

func TestValidate_RequiredFields(t *testing.T) {
	errs := ApplicationForm{CoverLetter: "optional"}.Validate()
	for _, field := range []string{"name", "email", "phone", "country", "education", "currentPosition", "currentCompany", "cvFile"} {
		assert.Equal(t, msgRequired, errs[field], field)
	}
	assert.NotContains(t, errs, "coverLetter")
}

func TestFileMetaDerivesSizeFromContent(t *testing.T) {
	f := &FileUpload{Name: "cv.txt", ContentType: "text/plain", Content: []byte("hello")}
	assert.Equal(t, &FileMeta{Name: "cv.txt", Type: "text/plain", Size: 5}, f.Meta())

	var none *FileUpload
	assert.Nil(t, none.Meta())
}

func TestNewSavedApplicationDropsFileContent(t *testing.T) {
	form := validForm()
	form.CVFile.Content = []byte(strings.Repeat("x", 10))
	job := Job{ID: "j1", Title: "Sushi Chef", Employer: Employer{Alias: "Nobu Restaurants"}}
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("x", 3600))

	app := NewSavedApplication("app-1", job, form, at)
	assert.Equal(t, "Sushi Chef", app.JobTitle)
	assert.Equal(t, "Nobu", app.Company)
	assert.Equal(t, time.UTC, app.AppliedDate.Location())
	require.NotNil(t, app.CVFile)
	assert.Equal(t, FileMeta{Name: "cv.pdf", Type: "application/pdf", Size: MaxCVFileSize}, *app.CVFile)
}

func TestExperienceLevelMapping(t *testing.T) {
	assert.Equal(t, ExperienceEntry, ExperienceLevelFor(0))
	assert.Equal(t, ExperienceMid, ExperienceLevelFor(1))
	assert.Equal(t, ExperienceSenior, ExperienceLevelFor(2))
	assert.Equal(t, ExperienceSenior, ExperienceLevelFor(3))
	assert.Equal(t, ExperienceExecutive, ExperienceLevelFor(4))
	assert.Equal(t, "Entry Level", ExperienceLabel(0))
	assert.Equal(t, "Executive", ExperienceLabel(12))
	assert.True(t, ExperienceSenior.Valid())
	assert.False(t, ExperienceLevel("junior").Valid())
}

func TestJobDisplayFields(t *testing.T) {
	j := Job{SalaryFrom: 1200, SalaryTo: 2500, Employer: Employer{Alias: "  Nobu  Restaurants"}}
	assert.Equal(t, "1,200 - 2,500", j.SalaryRange())
	assert.Equal(t, "Nobu", j.CompanyName())
	assert.Equal(t, "", Job{}.SalaryRange())
	assert.Equal(t, "", Job{}.PublishedAgo())
}
