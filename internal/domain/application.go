package domain

import (
	"context"
	"errors"
	"time"
)

// Application status values. The set is closed: anything else is rejected
// at the boundary before it reaches storage.
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

// ErrDuplicateApplication is returned by ApplicationRepository.Create when
// the unique constraint on (job_id, applicant_id) rejects the insert.
var ErrDuplicateApplication = errors.New("application already exists")

// ValidApplicationStatus reports whether s (already lowercased) is one of
// the accepted status values.
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

// Application is the primary record of a candidate applying to a job.
// At most one application exists per (job, applicant) pair; the storage
// layer enforces this with a compound unique index.
type Application struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"job_id"`
	ApplicantID string    `json:"applicant_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Joined data for list responses
	Job       *JobWithCompany `json:"job,omitempty"`
	Applicant *User           `json:"applicant,omitempty"`
}

// JobApplicants is a job together with its applications, newest first.
type JobApplicants struct {
	Job          Job           `json:"job"`
	Applications []Application `json:"applications"`
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	GetByJobID(ctx context.Context, jobID int64) ([]Application, error)
	GetByApplicantID(ctx context.Context, applicantID string) ([]Application, error)
	CheckExists(ctx context.Context, jobID int64, applicantID string) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type ApplicationUsecase interface {
	// Candidate operations
	Apply(ctx context.Context, userID string, jobID int64) (*Application, error)
	ListAppliedJobs(ctx context.Context, userID string) ([]Application, error)

	// Recruiter operations
	ListApplicants(ctx context.Context, callerID string, jobID int64) (*JobApplicants, error)
	ExportApplicants(ctx context.Context, callerID string, jobID int64) ([]byte, string, error)
	UpdateStatus(ctx context.Context, callerID string, applicationID int64, status string) error
}
