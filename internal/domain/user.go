package domain

import (
	"context"
	"mime/multipart"
	"time"
)

// User roles
const (
	RoleCandidate = "candidate"
	RoleRecruiter = "recruiter"
)

type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullname"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phone_number"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Profile      Profile   `json:"profile"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile holds the mutable profile fields embedded in the user record.
type Profile struct {
	Bio                string   `json:"bio,omitempty"`
	Skills             []string `json:"skills,omitempty"`
	ResumeURL          string   `json:"resume,omitempty"`
	ResumeOriginalName string   `json:"resume_original_name,omitempty"`
	PhotoURL           string   `json:"profile_photo,omitempty"`
}

// RegisterInput carries everything needed to create an account.
type RegisterInput struct {
	FullName    string `validate:"required"`
	Email       string `validate:"required,email"`
	PhoneNumber string `validate:"required"`
	Password    string `validate:"required,min=6"`
	Role        string `validate:"required,oneof=candidate recruiter"`
	Avatar      *multipart.FileHeader
}

// ProfileUpdateInput carries partial profile changes. Empty fields are left
// untouched; Resume is mandatory for this operation.
type ProfileUpdateInput struct {
	FullName    string
	Email       string
	PhoneNumber string
	Bio         string
	Skills      string // comma-separated, split into Profile.Skills
	Resume      *multipart.FileHeader
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
}

type UserUsecase interface {
	Register(ctx context.Context, in RegisterInput) error
	Login(ctx context.Context, email, password, role string) (*User, string, error)
	UpdateProfile(ctx context.Context, userID string, in ProfileUpdateInput) (*User, error)
}
