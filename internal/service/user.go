package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourname/habitquest/internal"
	"github.com/yourname/habitquest/internal/storage"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Avatar   string `json:"avatar"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserProfile is the client-facing view of a user. The stored record carries
// the bcrypt hash; this never does.
type UserProfile struct {
	ID         string               `json:"id"`
	Username   string               `json:"username"`
	Email      string               `json:"email"`
	Avatar     string               `json:"avatar"`
	DateJoined string               `json:"dateJoined"`
	Prefs      internal.Preferences `json:"preferences"`
}

func profileOf(u *internal.User) *UserProfile {
	return &UserProfile{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Avatar:     u.Avatar,
		DateJoined: u.DateJoined,
		Prefs:      u.Prefs,
	}
}

func ValidateRegisterRequest(req *RegisterRequest) error {
	return validate.Struct(req)
}

func ValidateLoginRequest(req *LoginRequest) error {
	return validate.Struct(req)
}

// RegisterUser creates a user keyed by email. A duplicate email fails with
// internal.ErrDuplicateEmail and leaves the store untouched.
func RegisterUser(ctx context.Context, users storage.UserRepository, req *RegisterRequest) (*UserProfile, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &internal.User{
		ID:         uuid.NewString(),
		Username:   req.Username,
		Email:      req.Email,
		Password:   string(hash),
		Avatar:     req.Avatar,
		DateJoined: time.Now().Format("2006-01-02"),
		Prefs: internal.Preferences{
			Notifications: true,
			Theme:         "dark",
		},
	}
	if err := users.AddUser(ctx, u); err != nil {
		return nil, err
	}
	return profileOf(u), nil
}

// LoginUser checks credentials. Unknown email and wrong password both come
// back as internal.ErrInvalidCredentials so the response cannot be used to
// enumerate accounts.
func LoginUser(ctx context.Context, users storage.UserRepository, req *LoginRequest) (*UserProfile, error) {
	u, err := users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, internal.ErrNotFound) {
			return nil, internal.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return nil, internal.ErrInvalidCredentials
	}
	return profileOf(u), nil
}
