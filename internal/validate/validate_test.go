package validate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimocks-netizen/docproc-client/internal/validate"
)

// now anchors every age computation so the tests stay deterministic.
var now = time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

func validForm() validate.UploadForm {
	return validate.UploadForm{
		FirstName:        "Al",
		LastName:         "Lee",
		DOB:              "2008-06-15", // age 18
		ProcessingMethod: "standard",
		FileName:         "scan.pdf",
		FileSize:         2 * 1024, // 2KB
	}
}

func TestCheck_ValidForm(t *testing.T) {
	errs := validate.Check(validForm(), now)
	assert.Empty(t, errs)
}

func TestCheck_MinorIsAccepted(t *testing.T) {
	form := validForm()
	form.DOB = "2009-06-15" // age 17

	errs := validate.Check(form, now)
	assert.Empty(t, errs)
}

func TestCheck_Names(t *testing.T) {
	tests := []struct {
		name      string
		firstName string
		wantErr   bool
	}{
		{"two letters is enough", "Al", false},
		{"letters and spaces", "Mary Jane", false},
		{"empty", "", true},
		{"single letter", "A", true},
		{"digits rejected", "Al3x", true},
		{"hyphen rejected", "Jean-Luc", true},
		{"punctuation rejected", "O'Brien", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			form.FirstName = tt.firstName

			errs := validate.Check(form, now)
			if tt.wantErr {
				assert.Contains(t, errs, "firstName")
			} else {
				assert.NotContains(t, errs, "firstName")
			}
		})
	}
}

func TestCheck_DOB(t *testing.T) {
	tests := []struct {
		name    string
		dob     string
		wantErr string
	}{
		{"valid adult", "1990-01-01", ""},
		{"born today", "2026-08-31", ""},
		{"exactly 120 years old", "1906-08-31", ""},
		{"missing", "", "required"},
		{"malformed", "31/08/1990", "YYYY-MM-DD"},
		{"future date", "2027-01-01", "future"},
		{"tomorrow", "2026-09-01", "future"},
		{"over 120 years", "1905-01-01", "120"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			form.DOB = tt.dob

			errs := validate.Check(form, now)
			if tt.wantErr == "" {
				assert.NotContains(t, errs, "dob")
			} else {
				require.Contains(t, errs, "dob")
				assert.Contains(t, errs["dob"], tt.wantErr)
			}
		})
	}
}

func TestCheck_File(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		size     int64
		wantErr  bool
	}{
		{"pdf accepted", "doc.pdf", 1024, false},
		{"jpg accepted", "photo.jpg", 1024, false},
		{"jpeg accepted", "photo.jpeg", 1024, false},
		{"png accepted", "photo.png", 1024, false},
		{"uppercase extension accepted", "DOC.PDF", 1024, false},
		{"exactly 10MiB accepted", "doc.pdf", validate.MaxFileSize, false},
		{"missing", "", 0, true},
		{"over 10MiB", "doc.pdf", validate.MaxFileSize + 1, true},
		{"gif rejected", "anim.gif", 1024, true},
		{"no extension", "document", 1024, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			form.FileName = tt.fileName
			form.FileSize = tt.size

			errs := validate.Check(form, now)
			if tt.wantErr {
				assert.Contains(t, errs, "file")
			} else {
				assert.NotContains(t, errs, "file")
			}
		})
	}
}

func TestCheck_Method(t *testing.T) {
	form := validForm()
	form.ProcessingMethod = "turbo"
	errs := validate.Check(form, now)
	assert.Contains(t, errs, "processingMethod")

	form.ProcessingMethod = "ai"
	errs = validate.Check(form, now)
	assert.NotContains(t, errs, "processingMethod")
}

func TestAge(t *testing.T) {
	tests := []struct {
		name string
		born time.Time
		want int
	}{
		{"birthday already passed this year", time.Date(2008, time.June, 15, 0, 0, 0, 0, time.UTC), 18},
		{"birthday later this year", time.Date(2008, time.December, 1, 0, 0, 0, 0, time.UTC), 17},
		{"birthday today", time.Date(2008, time.August, 31, 0, 0, 0, 0, time.UTC), 18},
		{"born tomorrow", time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validate.Age(tt.born, now))
		})
	}
}
