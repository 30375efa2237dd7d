package service

import (
	"context"
	"net/http"

	"github.com/peanutblog/blog-api/internal/core/domain"
	"github.com/peanutblog/blog-api/internal/core/ports"
	"github.com/peanutblog/blog-api/internal/token"
	"github.com/peanutblog/blog-api/internal/validate"
)

// AuthService implements end-user registration and login.
type AuthService struct {
	users  ports.UserRepository
	issuer *token.Issuer
}

func NewAuthService(users ports.UserRepository, issuer *token.Issuer) *AuthService {
	return &AuthService{users: users, issuer: issuer}
}

// Register validates the submission, rejects taken usernames/emails, hashes
// the password and stores the new user, returning a freshly issued token.
func (s *AuthService) Register(ctx context.Context, username, password, confirmPassword, email string) (string, *domain.User, error) {
	if errs := validate.Register(username, password, confirmPassword, email); !errs.Empty() {
		return "", nil, domain.NewError(http.StatusUnprocessableEntity, "User register input error", errs)
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return "", nil, domain.NewError(http.StatusUnprocessableEntity, "Username is taken",
			domain.FieldErrors{"username": "Username is taken"})
	} else if err != domain.ErrUserNotFound {
		return "", nil, err
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return "", nil, domain.NewError(http.StatusUnprocessableEntity, "Email is taken",
			domain.FieldErrors{"email": "Email is taken"})
	} else if err != domain.ErrUserNotFound {
		return "", nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", nil, err
	}

	// Timestamps are stamped by the storage layer on insert.
	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return "", nil, err
	}

	tkn, err := s.issuer.Issue(created.ID, created.Username)
	if err != nil {
		return "", nil, err
	}

	return tkn, created, nil
}

// Login verifies the credentials and issues a token. Failed lookups and
// password mismatches both come back as 422 with a field-keyed "general"
// error, matching the public API contract.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	errs := validate.Login(username, password)
	if !errs.Empty() {
		return "", nil, domain.NewError(http.StatusUnprocessableEntity, "User login input error", errs)
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err == domain.ErrUserNotFound {
		errs["general"] = "User not found"
		return "", nil, domain.NewError(http.StatusUnprocessableEntity, "User login input error", errs)
	} else if err != nil {
		return "", nil, err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		errs["general"] = "Wrong credentials"
		return "", nil, domain.NewError(http.StatusUnprocessableEntity, "User login input error", errs)
	}

	tkn, err := s.issuer.Issue(user.ID, user.Username)
	if err != nil {
		return "", nil, err
	}

	return tkn, user, nil
}

// FindByID is the principal lookup used by the user identity resolver.
func (s *AuthService) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}
