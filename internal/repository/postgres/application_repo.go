package postgres

import (
	"context"
	"errors"
	"go-jobboard-backend/internal/domain"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Create inserts a new application. The unique index on
// (job_id, applicant_id) is the authoritative duplicate guard; a violation
// surfaces as domain.ErrDuplicateApplication.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (job_id, applicant_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now
	if app.Status == "" {
		app.Status = domain.ApplicationStatusPending
	}

	err := r.db.QueryRow(ctx, query,
		app.JobID,
		app.ApplicantID,
		app.Status,
		app.CreatedAt,
		app.UpdatedAt,
	).Scan(&app.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.ErrDuplicateApplication
		}
		return err
	}
	return nil
}

// GetByID retrieves an application by ID
func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	query := `
		SELECT id, job_id, applicant_id, status, created_at, updated_at
		FROM applications
		WHERE id = $1`

	var app domain.Application
	err := r.db.QueryRow(ctx, query, id).Scan(
		&app.ID, &app.JobID, &app.ApplicantID, &app.Status, &app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// GetByJobID retrieves all applications for a job, newest first, each
// enriched with its applicant.
func (r *applicationRepo) GetByJobID(ctx context.Context, jobID int64) ([]domain.Application, error) {
	query := `
		SELECT
			a.id, a.job_id, a.applicant_id, a.status, a.created_at, a.updated_at,
			u.id, u.full_name, u.email, u.phone_number, u.role,
			u.bio, u.skills, u.resume_url, u.resume_original_name, u.photo_url
		FROM applications a
		JOIN users u ON a.applicant_id = u.id
		WHERE a.job_id = $1
		ORDER BY a.created_at DESC`

	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		var applicant domain.User
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.ApplicantID, &app.Status, &app.CreatedAt, &app.UpdatedAt,
			&applicant.ID, &applicant.FullName, &applicant.Email, &applicant.PhoneNumber, &applicant.Role,
			&applicant.Profile.Bio, pq.Array(&applicant.Profile.Skills),
			&applicant.Profile.ResumeURL, &applicant.Profile.ResumeOriginalName, &applicant.Profile.PhotoURL,
		); err != nil {
			return nil, err
		}
		app.Applicant = &applicant
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// GetByApplicantID retrieves all applications submitted by a user, newest
// first, each enriched with its job and the job's company.
func (r *applicationRepo) GetByApplicantID(ctx context.Context, applicantID string) ([]domain.Application, error) {
	query := `
		SELECT
			a.id, a.job_id, a.applicant_id, a.status, a.created_at, a.updated_at,
			j.id, j.company_id, j.posted_by, j.title, j.description, j.location,
			j.salary_min, j.salary_max, j.created_at, j.updated_at,
			c.id, c.name, c.description, c.website, c.location, c.created_by, c.created_at
		FROM applications a
		JOIN jobs j ON a.job_id = j.id
		JOIN companies c ON j.company_id = c.id
		WHERE a.applicant_id = $1
		ORDER BY a.created_at DESC`

	rows, err := r.db.Query(ctx, query, applicantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		var jc domain.JobWithCompany
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.ApplicantID, &app.Status, &app.CreatedAt, &app.UpdatedAt,
			&jc.ID, &jc.CompanyID, &jc.PostedBy, &jc.Title, &jc.Description, &jc.Location,
			&jc.SalaryMin, &jc.SalaryMax, &jc.CreatedAt, &jc.UpdatedAt,
			&jc.Company.ID, &jc.Company.Name, &jc.Company.Description, &jc.Company.Website,
			&jc.Company.Location, &jc.Company.CreatedBy, &jc.Company.CreatedAt,
		); err != nil {
			return nil, err
		}
		app.Job = &jc
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// CheckExists checks if an application already exists for the job/applicant pair
func (r *applicationRepo) CheckExists(ctx context.Context, jobID int64, applicantID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND applicant_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, jobID, applicantID).Scan(&exists)
	return exists, err
}

// UpdateStatus updates the status of an application and sets updated_at
func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
