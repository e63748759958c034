package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock Repositories
type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}

func (m *MockApplicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) GetByJobID(ctx context.Context, jobID int64) ([]domain.Application, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) GetByApplicantID(ctx context.Context, applicantID string) ([]domain.Application, error) {
	args := m.Called(ctx, applicantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) CheckExists(ctx context.Context, jobID int64, applicantID string) (bool, error) {
	args := m.Called(ctx, jobID, applicantID)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) GetByIDWithCompany(ctx context.Context, id int64) (*domain.JobWithCompany, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobWithCompany), args.Error(1)
}

func appErrCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperror.AppError
	assert.True(t, errors.As(err, &appErr), "expected *apperror.AppError, got %v", err)
	return appErr.Code
}

func TestApply(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject a second application for the same job", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, nil)

		appRepo.On("CheckExists", ctx, int64(7), "user1").Return(true, nil)

		_, err := uc.Apply(ctx, "user1", 7)
		assert.Error(t, err)
		assert.Equal(t, 400, appErrCode(t, err))
		assert.Contains(t, err.Error(), "already applied")
		appRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should fail with 404 when the job does not exist", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, nil)

		appRepo.On("CheckExists", ctx, int64(99), "user1").Return(false, nil)
		jobRepo.On("GetByID", ctx, int64(99)).Return(nil, domain.ErrNotFound)

		_, err := uc.Apply(ctx, "user1", 99)
		assert.Error(t, err)
		assert.Equal(t, 404, appErrCode(t, err))
		appRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should create a pending application", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, nil)

		appRepo.On("CheckExists", ctx, int64(7), "user1").Return(false, nil)
		jobRepo.On("GetByID", ctx, int64(7)).Return(&domain.Job{ID: 7, PostedBy: "rec1"}, nil)
		appRepo.On("Create", ctx, mock.AnythingOfType("*domain.Application")).Return(nil).Run(func(args mock.Arguments) {
			app := args.Get(1).(*domain.Application)
			assert.Equal(t, domain.ApplicationStatusPending, app.Status)
			assert.Equal(t, "user1", app.ApplicantID)
			assert.Equal(t, int64(7), app.JobID)
		})

		app, err := uc.Apply(ctx, "user1", 7)
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusPending, app.Status)
	})

	t.Run("Should report duplicate when losing the insert race", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, nil)

		// The pre-check saw nothing, but the unique constraint fired.
		appRepo.On("CheckExists", ctx, int64(7), "user1").Return(false, nil)
		jobRepo.On("GetByID", ctx, int64(7)).Return(&domain.Job{ID: 7}, nil)
		appRepo.On("Create", ctx, mock.Anything).Return(domain.ErrDuplicateApplication)

		_, err := uc.Apply(ctx, "user1", 7)
		assert.Error(t, err)
		assert.Equal(t, 400, appErrCode(t, err))
		assert.Contains(t, err.Error(), "already applied")
	})

	t.Run("Should require a job id", func(t *testing.T) {
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), new(MockJobRepo), nil)

		_, err := uc.Apply(ctx, "user1", 0)
		assert.Error(t, err)
		assert.Equal(t, 400, appErrCode(t, err))
	})
}

func TestListAppliedJobs(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return an empty list, not an error, for a user with no applications", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockJobRepo), nil)

		appRepo.On("GetByApplicantID", ctx, "user1").Return([]domain.Application(nil), nil)

		applications, err := uc.ListAppliedJobs(ctx, "user1")
		assert.NoError(t, err)
		assert.NotNil(t, applications)
		assert.Empty(t, applications)
	})
}

func TestListApplicants(t *testing.T) {
	ctx := context.Background()
	job := &domain.Job{ID: 7, PostedBy: "rec1", Title: "Backend Engineer"}

	t.Run("Should fail with 404 when the job does not exist", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), jobRepo, nil)

		jobRepo.On("GetByID", ctx, int64(7)).Return(nil, domain.ErrNotFound)

		_, err := uc.ListApplicants(ctx, "rec1", 7)
		assert.Error(t, err)
		assert.Equal(t, 404, appErrCode(t, err))
	})

	t.Run("Should refuse a caller who did not post the job", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, nil)

		jobRepo.On("GetByID", ctx, int64(7)).Return(job, nil)

		_, err := uc.ListApplicants(ctx, "someone-else", 7)
		assert.Error(t, err)
		assert.Equal(t, 403, appErrCode(t, err))
		appRepo.AssertNotCalled(t, "GetByJobID", mock.Anything, mock.Anything)
	})

	t.Run("Should return the job with its applications newest first", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, nil)

		now := time.Now()
		applications := []domain.Application{
			{ID: 3, JobID: 7, CreatedAt: now, Applicant: &domain.User{FullName: "C"}},
			{ID: 2, JobID: 7, CreatedAt: now.Add(-time.Hour), Applicant: &domain.User{FullName: "B"}},
			{ID: 1, JobID: 7, CreatedAt: now.Add(-2 * time.Hour), Applicant: &domain.User{FullName: "A"}},
		}
		jobRepo.On("GetByID", ctx, int64(7)).Return(job, nil)
		appRepo.On("GetByJobID", ctx, int64(7)).Return(applications, nil)

		result, err := uc.ListApplicants(ctx, "rec1", 7)
		assert.NoError(t, err)
		assert.Equal(t, "Backend Engineer", result.Job.Title)
		assert.Len(t, result.Applications, 3)
		assert.True(t, result.Applications[0].CreatedAt.After(result.Applications[1].CreatedAt))
		assert.NotNil(t, result.Applications[0].Applicant)
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	job := &domain.Job{ID: 7, PostedBy: "rec1"}

	t.Run("Should require a status", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockJobRepo), nil)

		err := uc.UpdateStatus(ctx, "rec1", 5, "")
		assert.Error(t, err)
		assert.Equal(t, 400, appErrCode(t, err))
		appRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should reject a status outside the closed set", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockJobRepo), nil)

		err := uc.UpdateStatus(ctx, "rec1", 5, "archived")
		assert.Error(t, err)
		assert.Equal(t, 400, appErrCode(t, err))
		assert.Contains(t, err.Error(), "Invalid status")
		appRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should normalize the status to lowercase", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, nil)

		appRepo.On("GetByID", ctx, int64(5)).Return(&domain.Application{ID: 5, JobID: 7}, nil)
		jobRepo.On("GetByID", ctx, int64(7)).Return(job, nil)
		appRepo.On("UpdateStatus", ctx, int64(5), "accepted").Return(nil)

		err := uc.UpdateStatus(ctx, "rec1", 5, "Accepted")
		assert.NoError(t, err)
		appRepo.AssertCalled(t, "UpdateStatus", ctx, int64(5), "accepted")
	})

	t.Run("Should fail with 404 when the application does not exist", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockJobRepo), nil)

		appRepo.On("GetByID", ctx, int64(5)).Return(nil, domain.ErrNotFound)

		err := uc.UpdateStatus(ctx, "rec1", 5, "rejected")
		assert.Error(t, err)
		assert.Equal(t, 404, appErrCode(t, err))
	})

	t.Run("Should refuse a caller who did not post the job", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, nil)

		appRepo.On("GetByID", ctx, int64(5)).Return(&domain.Application{ID: 5, JobID: 7}, nil)
		jobRepo.On("GetByID", ctx, int64(7)).Return(job, nil)

		err := uc.UpdateStatus(ctx, "intruder", 5, "accepted")
		assert.Error(t, err)
		assert.Equal(t, 403, appErrCode(t, err))
		appRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}
