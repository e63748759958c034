package usecase

import (
	"context"
	"errors"
	"fmt"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/metrics"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	metrics         *metrics.Collector
}

// NewApplicationUsecase creates a new application usecase. metrics may be
// nil in tests.
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	collector *metrics.Collector,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		jobRepo:         jobRepo,
		metrics:         collector,
	}
}

// Apply submits an application for userID to jobID with status pending.
// The existence pre-check is only a fast path for a friendly error; the
// storage-level unique constraint is what actually prevents duplicates
// under concurrent submissions.
func (uc *applicationUsecase) Apply(ctx context.Context, userID string, jobID int64) (*domain.Application, error) {
	if jobID <= 0 {
		return nil, apperror.BadRequest("Job ID is required")
	}

	exists, err := uc.applicationRepo.CheckExists(ctx, jobID, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		uc.recordDuplicate()
		return nil, apperror.BadRequest("You have already applied for this job")
	}

	if _, err := uc.jobRepo.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}

	app := &domain.Application{
		JobID:       jobID,
		ApplicantID: userID,
		Status:      domain.ApplicationStatusPending,
	}

	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrDuplicateApplication) {
			// Lost the race against a concurrent submission from the same
			// user; report it exactly like the pre-check would have.
			uc.recordDuplicate()
			return nil, apperror.BadRequest("You have already applied for this job")
		}
		return nil, apperror.Internal(err)
	}

	if uc.metrics != nil {
		uc.metrics.RecordApplicationCreated()
	}
	return app, nil
}

// ListAppliedJobs returns the user's applications newest first, each
// enriched with its job and company. No applications is an empty list,
// not an error.
func (uc *applicationUsecase) ListAppliedJobs(ctx context.Context, userID string) ([]domain.Application, error) {
	applications, err := uc.applicationRepo.GetByApplicantID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if applications == nil {
		applications = []domain.Application{}
	}
	return applications, nil
}

// ListApplicants returns a job with its applications newest first. Only
// the recruiter who posted the job may see them.
func (uc *applicationUsecase) ListApplicants(ctx context.Context, callerID string, jobID int64) (*domain.JobApplicants, error) {
	job, err := uc.authorizeJobAccess(ctx, callerID, jobID)
	if err != nil {
		return nil, err
	}

	applications, err := uc.applicationRepo.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if applications == nil {
		applications = []domain.Application{}
	}

	return &domain.JobApplicants{Job: *job, Applications: applications}, nil
}

// ExportApplicants renders a job's applicant list as an XLSX workbook.
func (uc *applicationUsecase) ExportApplicants(ctx context.Context, callerID string, jobID int64) ([]byte, string, error) {
	result, err := uc.ListApplicants(ctx, callerID, jobID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheetName := "Applicants"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"FULL NAME", "EMAIL", "PHONE", "STATUS", "APPLIED AT"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	for row, app := range result.Applications {
		values := []interface{}{
			app.Applicant.FullName,
			app.Applicant.Email,
			app.Applicant.PhoneNumber,
			app.Status,
			app.CreatedAt.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	filename := fmt.Sprintf("applicants_job_%d_%s.xlsx", jobID, time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}

// UpdateStatus transitions an application to a new status. Input is
// normalized to lowercase and validated against the closed status set;
// anything outside it is rejected.
func (uc *applicationUsecase) UpdateStatus(ctx context.Context, callerID string, applicationID int64, status string) error {
	if status == "" {
		return apperror.BadRequest("Status is required")
	}

	status = strings.ToLower(status)
	if !domain.ValidApplicationStatus(status) {
		return apperror.BadRequest("Invalid status. Must be: pending, accepted, or rejected")
	}

	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Application not found")
		}
		return apperror.Internal(err)
	}

	if _, err := uc.authorizeJobAccess(ctx, callerID, app.JobID); err != nil {
		return err
	}

	if err := uc.applicationRepo.UpdateStatus(ctx, applicationID, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Application not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// authorizeJobAccess resolves the job and verifies the caller posted it.
// Runs after authentication, before any applicant data is touched.
func (uc *applicationUsecase) authorizeJobAccess(ctx context.Context, callerID string, jobID int64) (*domain.Job, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}

	if job.PostedBy != callerID {
		return nil, apperror.Forbidden("You do not manage this job")
	}
	return job, nil
}

func (uc *applicationUsecase) recordDuplicate() {
	if uc.metrics != nil {
		uc.metrics.RecordDuplicateApply()
	}
}
