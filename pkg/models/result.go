package models

import "encoding/json"

// ProcessingResult is the single-job detail returned by GET /api/results/{jobId}.
// It is fetched fresh on every poll tick and never mutated locally, except for
// Progress, which the client synthesizes from Status for display purposes.
type ProcessingResult struct {
	JobID            string           `json:"jobId"`
	Status           string           `json:"status"`
	FullName         string           `json:"fullName"`
	Age              int              `json:"age"`
	RawText          string           `json:"rawText"`
	ProcessingMethod string           `json:"processingMethod"`
	AIExtractedData  *AIExtractedData `json:"aiExtractedData,omitempty"`
	Progress         int              `json:"progress,omitempty"`
}

// AIExtractedData holds the structured fields produced by AI extraction.
// Every field is optional; absence means "not extracted", not an error.
type AIExtractedData struct {
	PersonalInfo          *PersonalInfo `json:"personalInfo,omitempty"`
	ContactInfo           *ContactInfo  `json:"contactInfo,omitempty"`
	Addresses             []string      `json:"addresses,omitempty"`
	IdentificationNumbers []string      `json:"identificationNumbers,omitempty"`
	KeyDates              []string      `json:"keyDates,omitempty"`
	Summary               string        `json:"summary,omitempty"`
}

type PersonalInfo struct {
	FullName    string `json:"fullName,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Age         int    `json:"age,omitempty"`
}

type ContactInfo struct {
	Emails       []string `json:"emails,omitempty"`
	PhoneNumbers []string `json:"phoneNumbers,omitempty"`
}

// UnmarshalJSON accepts both the canonical "personalInfo" key and the legacy
// "importantInfo" key that older backend responses used for the same field.
// The canonical key wins when both are present; only "personalInfo" is ever
// emitted on encode.
func (d *AIExtractedData) UnmarshalJSON(data []byte) error {
	type alias AIExtractedData
	aux := struct {
		*alias
		ImportantInfo *PersonalInfo `json:"importantInfo,omitempty"`
	}{alias: (*alias)(d)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if d.PersonalInfo == nil && aux.ImportantInfo != nil {
		d.PersonalInfo = aux.ImportantInfo
	}
	return nil
}

// IsEmpty reports whether no AI field carries data. Views use it to decide
// between the structured breakdown and the raw-text-only rendering.
func (d *AIExtractedData) IsEmpty() bool {
	if d == nil {
		return true
	}
	return d.PersonalInfo == nil &&
		(d.ContactInfo == nil || (len(d.ContactInfo.Emails) == 0 && len(d.ContactInfo.PhoneNumbers) == 0)) &&
		len(d.Addresses) == 0 &&
		len(d.IdentificationNumbers) == 0 &&
		len(d.KeyDates) == 0 &&
		d.Summary == ""
}
