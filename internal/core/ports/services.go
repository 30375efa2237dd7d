package ports

import (
	"context"

	"github.com/peanutblog/blog-api/internal/core/domain"
)

// AuthService implements end-user registration and login.
type AuthService interface {
	Register(ctx context.Context, username, password, confirmPassword, email string) (string, *domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// AdminService implements admin login and back-office admin management.
type AdminService interface {
	Login(ctx context.Context, username, password string) (string, *domain.Admin, error)
	List(ctx context.Context) ([]domain.Admin, error)
	Create(ctx context.Context, username, password string, isAdmin bool, roleID string) (*domain.Admin, error)
	Update(ctx context.Context, id, username, password string, isAdmin bool, roleID string) (*domain.Admin, error)
	AssignRole(ctx context.Context, id, roleID string) (*domain.Admin, error)
	FindByID(ctx context.Context, id string) (*domain.Admin, error)
}

// RoleService implements role management.
type RoleService interface {
	List(ctx context.Context) ([]domain.Role, error)
	Create(ctx context.Context, name, displayName string) (*domain.Role, error)
	Update(ctx context.Context, id, name, displayName string) (*domain.Role, error)
}
