package postgres

import (
	"context"
	"errors"
	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `
		SELECT id, company_id, posted_by, title, description, location,
		       salary_min, salary_max, created_at, updated_at
		FROM jobs
		WHERE id = $1`

	var job domain.Job
	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.CompanyID, &job.PostedBy, &job.Title, &job.Description,
		&job.Location, &job.SalaryMin, &job.SalaryMax, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) GetByIDWithCompany(ctx context.Context, id int64) (*domain.JobWithCompany, error) {
	query := `
		SELECT j.id, j.company_id, j.posted_by, j.title, j.description, j.location,
		       j.salary_min, j.salary_max, j.created_at, j.updated_at,
		       c.id, c.name, c.description, c.website, c.location, c.created_by, c.created_at
		FROM jobs j
		JOIN companies c ON j.company_id = c.id
		WHERE j.id = $1`

	var jc domain.JobWithCompany
	err := r.db.QueryRow(ctx, query, id).Scan(
		&jc.ID, &jc.CompanyID, &jc.PostedBy, &jc.Title, &jc.Description, &jc.Location,
		&jc.SalaryMin, &jc.SalaryMax, &jc.CreatedAt, &jc.UpdatedAt,
		&jc.Company.ID, &jc.Company.Name, &jc.Company.Description, &jc.Company.Website,
		&jc.Company.Location, &jc.Company.CreatedBy, &jc.Company.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &jc, nil
}
