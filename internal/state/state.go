// Package state holds the client's in-memory application state as an
// explicit, injected container. State only changes through pure reducer
// functions applied by Store.Dispatch; there are no package-level singletons.
package state

import (
	"github.com/kimocks-netizen/docproc-client/pkg/models"
)

// AppState is the full client-side state tree. Nothing in it persists beyond
// the process except the dark-mode flag, which surfaces persist separately.
type AppState struct {
	Upload  UploadState
	Job     JobState
	Results ResultsState
	Theme   ThemeState
}

// UploadState mirrors the upload form between renders.
type UploadState struct {
	FirstName        string
	LastName         string
	DOB              string
	ProcessingMethod string
	FileName         string
	IsUploading      bool
	Error            string
}

// JobState tracks the job currently being watched.
type JobState struct {
	JobID    string
	Status   string
	Progress int
}

// ResultsState holds the last-fetched job collection and single-job detail.
type ResultsState struct {
	Jobs    []models.ProcessingJob
	Current *models.ProcessingResult
	Error   string
}

type ThemeState struct {
	DarkMode bool
}

// NewState returns the initial state tree.
func NewState() AppState {
	return AppState{
		Upload: UploadState{ProcessingMethod: models.MethodStandard},
		Job:    JobState{Status: "idle"},
	}
}

// Action is a request to change state. Reducers are pure: they return a new
// state and never mutate their input.
type Action interface {
	reduce(AppState) AppState
}

type SetUploadForm struct {
	FirstName, LastName, DOB, ProcessingMethod, FileName string
}

func (a SetUploadForm) reduce(s AppState) AppState {
	s.Upload.FirstName = a.FirstName
	s.Upload.LastName = a.LastName
	s.Upload.DOB = a.DOB
	s.Upload.ProcessingMethod = a.ProcessingMethod
	s.Upload.FileName = a.FileName
	return s
}

type SetUploading struct{ Uploading bool }

func (a SetUploading) reduce(s AppState) AppState {
	s.Upload.IsUploading = a.Uploading
	return s
}

type SetUploadError struct{ Message string }

func (a SetUploadError) reduce(s AppState) AppState {
	s.Upload.Error = a.Message
	return s
}

type ResetUpload struct{}

func (ResetUpload) reduce(s AppState) AppState {
	s.Upload = UploadState{ProcessingMethod: models.MethodStandard}
	return s
}

type SetJob struct{ JobID string }

func (a SetJob) reduce(s AppState) AppState {
	s.Job = JobState{JobID: a.JobID, Status: models.StatusProcessing}
	s.Job.Progress = models.SynthesizeProgress(s.Job.Status)
	return s
}

type SetJobStatus struct{ Status string }

func (a SetJobStatus) reduce(s AppState) AppState {
	s.Job.Status = a.Status
	s.Job.Progress = models.SynthesizeProgress(a.Status)
	return s
}

type ResetJob struct{}

func (ResetJob) reduce(s AppState) AppState {
	s.Job = JobState{Status: "idle"}
	return s
}

type SetJobs struct{ Jobs []models.ProcessingJob }

func (a SetJobs) reduce(s AppState) AppState {
	s.Results.Jobs = a.Jobs
	s.Results.Error = ""
	return s
}

// RemoveJob drops exactly one job from the in-memory list. Dispatched after a
// successful delete; the collection is not refetched.
type RemoveJob struct{ JobID string }

func (a RemoveJob) reduce(s AppState) AppState {
	kept := make([]models.ProcessingJob, 0, len(s.Results.Jobs))
	for _, job := range s.Results.Jobs {
		if job.JobID != a.JobID {
			kept = append(kept, job)
		}
	}
	s.Results.Jobs = kept
	return s
}

type SetResult struct{ Result *models.ProcessingResult }

func (a SetResult) reduce(s AppState) AppState {
	s.Results.Current = a.Result
	s.Results.Error = ""
	return s
}

type SetResultsError struct{ Message string }

func (a SetResultsError) reduce(s AppState) AppState {
	s.Results.Error = a.Message
	return s
}

type SetDarkMode struct{ DarkMode bool }

func (a SetDarkMode) reduce(s AppState) AppState {
	s.Theme.DarkMode = a.DarkMode
	return s
}
