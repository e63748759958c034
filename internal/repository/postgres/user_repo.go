package postgres

import (
	"context"
	"errors"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, full_name, email, phone_number, password_hash, role,
	                             bio, skills, resume_url, resume_original_name, photo_url,
	                             created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.FullName, user.Email, user.PhoneNumber, user.PasswordHash, user.Role,
		user.Profile.Bio, pq.Array(user.Profile.Skills), user.Profile.ResumeURL,
		user.Profile.ResumeOriginalName, user.Profile.PhotoURL,
		user.CreatedAt, user.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("User already exists with this email")
		}
		return apperror.Internal(err)
	}
	return nil
}

const userColumns = `id, full_name, email, phone_number, password_hash, role,
	bio, skills, resume_url, resume_original_name, photo_url, created_at, updated_at`

func (r *userRepo) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID, &user.FullName, &user.Email, &user.PhoneNumber, &user.PasswordHash, &user.Role,
		&user.Profile.Bio, pq.Array(&user.Profile.Skills), &user.Profile.ResumeURL,
		&user.Profile.ResumeOriginalName, &user.Profile.PhotoURL,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET full_name = $2, email = $3, phone_number = $4, bio = $5,
	                           skills = $6, resume_url = $7, resume_original_name = $8,
	                           photo_url = $9, updated_at = $10
	          WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		user.ID, user.FullName, user.Email, user.PhoneNumber, user.Profile.Bio,
		pq.Array(user.Profile.Skills), user.Profile.ResumeURL,
		user.Profile.ResumeOriginalName, user.Profile.PhotoURL, user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("User already exists with this email")
		}
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
