// Package validate implements the field-level validation rules for the
// document upload form. All rules run locally; a form that fails validation
// never reaches the network.
package validate

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/kimocks-netizen/docproc-client/pkg/models"
)

// MaxFileSize is the upload size cap in bytes.
const MaxFileSize = 10 << 20 // 10 MiB

// MaxAge is the oldest plausible age for a date of birth.
const MaxAge = 120

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// UploadForm holds the raw form fields prior to validation.
type UploadForm struct {
	FirstName        string
	LastName         string
	DOB              string
	ProcessingMethod string
	FileName         string
	FileSize         int64
}

// FieldErrors maps field name to validation message. An empty map means the
// form is valid.
type FieldErrors map[string]string

// Check validates every field of the form against the upload rules and
// returns the per-field errors. now anchors the age computation.
func Check(form UploadForm, now time.Time) FieldErrors {
	errs := FieldErrors{}

	if msg := checkName(form.FirstName); msg != "" {
		errs["firstName"] = msg
	}
	if msg := checkName(form.LastName); msg != "" {
		errs["lastName"] = msg
	}
	if msg := checkDOB(form.DOB, now); msg != "" {
		errs["dob"] = msg
	}
	if msg := checkFile(form.FileName, form.FileSize); msg != "" {
		errs["file"] = msg
	}
	if msg := checkMethod(form.ProcessingMethod); msg != "" {
		errs["processingMethod"] = msg
	}

	return errs
}

func checkName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "is required"
	}
	if len(trimmed) < 2 {
		return "must be at least 2 characters"
	}
	for _, r := range trimmed {
		if !isLetter(r) && r != ' ' {
			return "may only contain letters and spaces"
		}
	}
	return ""
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func checkDOB(dob string, now time.Time) string {
	if dob == "" {
		return "is required"
	}
	born, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return "must be a valid date in YYYY-MM-DD format"
	}
	age := Age(born, now)
	if age < 0 {
		return "cannot be in the future"
	}
	if age > MaxAge {
		return fmt.Sprintf("implies an age over %d years", MaxAge)
	}
	return ""
}

func checkFile(fileName string, size int64) string {
	if fileName == "" {
		return "is required"
	}
	if size > MaxFileSize {
		return "must be 10MB or smaller"
	}
	// Extension check only; content is not sniffed.
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedExtensions[ext] {
		return "must be a PDF, JPG, JPEG or PNG file"
	}
	return ""
}

func checkMethod(method string) string {
	if method == "" {
		return "" // defaulted to standard by the caller
	}
	if method != models.MethodStandard && method != models.MethodAI {
		return "must be standard or ai"
	}
	return ""
}

// Age computes whole years between born and now, accounting for whether the
// birthday has occurred yet this year. A future date yields a negative age.
func Age(born, now time.Time) int {
	age := now.Year() - born.Year()
	if now.Month() < born.Month() ||
		(now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	return age
}
