package usecase

import (
	"context"
	"errors"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/credential"
	"go-jobboard-backend/pkg/storage"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type userUsecase struct {
	userRepo domain.UserRepository
	creds    *credential.Service
	media    domain.MediaStore
	validate *validator.Validate
}

// NewUserUsecase creates the profile/auth usecase.
func NewUserUsecase(
	userRepo domain.UserRepository,
	creds *credential.Service,
	media domain.MediaStore,
	validate *validator.Validate,
) domain.UserUsecase {
	return &userUsecase{
		userRepo: userRepo,
		creds:    creds,
		media:    media,
		validate: validate,
	}
}

// Register creates a new account. The avatar is uploaded to media storage
// first (downscaled when it decodes as an image) and its URL stored on the
// profile. The created record is not returned.
func (u *userUsecase) Register(ctx context.Context, in domain.RegisterInput) error {
	if err := u.validate.Struct(in); err != nil {
		return apperror.BadRequest(err.Error())
	}
	if in.Avatar == nil {
		return apperror.BadRequest("Profile photo is required")
	}

	// Fast-path duplicate check; the unique index on users.email is the
	// real guard against a concurrent registration.
	existing, err := u.userRepo.GetByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return apperror.Internal(err)
	}
	if existing != nil {
		return apperror.BadRequest("User already exists with this email")
	}

	photoURL, err := u.uploadAvatar(ctx, in.Avatar)
	if err != nil {
		return apperror.New(500, "File upload failed", err)
	}

	hash, err := u.creds.HashPassword(in.Password)
	if err != nil {
		return apperror.Internal(err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		FullName:     in.FullName,
		Email:        in.Email,
		PhoneNumber:  in.PhoneNumber,
		PasswordHash: hash,
		Role:         in.Role,
		Profile:      domain.Profile{PhotoURL: photoURL},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperror.Internal(err)
	}
	return nil
}

// Login verifies credentials and role and issues a session token. Unknown
// email and wrong password produce the same message so accounts cannot be
// enumerated.
func (u *userUsecase) Login(ctx context.Context, email, password, role string) (*domain.User, string, error) {
	if email == "" || password == "" || role == "" {
		return nil, "", apperror.BadRequest("Email, password and role are required")
	}

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", apperror.BadRequest("Incorrect email or password")
		}
		return nil, "", apperror.Internal(err)
	}

	if !u.creds.CheckPassword(password, user.PasswordHash) {
		return nil, "", apperror.BadRequest("Incorrect email or password")
	}

	if role != user.Role {
		return nil, "", apperror.BadRequest("Account does not exist with current role")
	}

	token, err := u.creds.IssueToken(user.ID)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	user.PasswordHash = ""
	return user, token, nil
}

// UpdateProfile applies a partial profile update. The resume file is
// mandatory; text fields are only written when present in the request.
func (u *userUsecase) UpdateProfile(ctx context.Context, userID string, in domain.ProfileUpdateInput) (*domain.User, error) {
	if in.Resume == nil {
		return nil, apperror.BadRequest("No file uploaded")
	}

	data, err := readUpload(in.Resume)
	if err != nil {
		return nil, apperror.New(500, "File upload failed", err)
	}

	contentType := in.Resume.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := "resumes/" + uuid.NewString() + filepath.Ext(in.Resume.Filename)
	resumeURL, err := u.media.Upload(ctx, key, contentType, data)
	if err != nil {
		return nil, apperror.New(500, "File upload failed", err)
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}

	if in.FullName != "" {
		user.FullName = in.FullName
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.PhoneNumber != "" {
		user.PhoneNumber = in.PhoneNumber
	}
	if in.Bio != "" {
		user.Profile.Bio = in.Bio
	}
	if in.Skills != "" {
		user.Profile.Skills = splitSkills(in.Skills)
	}
	user.Profile.ResumeURL = resumeURL
	user.Profile.ResumeOriginalName = in.Resume.Filename
	user.UpdatedAt = time.Now()

	if err := u.userRepo.Update(ctx, user); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}

	user.PasswordHash = ""
	return user, nil
}

func (u *userUsecase) uploadAvatar(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	data, err := readUpload(fh)
	if err != nil {
		return "", err
	}

	contentType := fh.Header.Get("Content-Type")
	ext := filepath.Ext(fh.Filename)
	if compressed, ct, err := storage.CompressImage(data); err == nil {
		data, contentType, ext = compressed, ct, ".jpg"
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := "avatars/" + uuid.NewString() + ext
	return u.media.Upload(ctx, key, contentType, data)
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// splitSkills turns a comma-separated skill list into a trimmed set.
func splitSkills(s string) []string {
	parts := strings.Split(s, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			skills = append(skills, p)
		}
	}
	return skills
}
