package ports

import (
	"context"

	"github.com/peanutblog/blog-api/internal/core/domain"
)

// UserRepository persists end users. Lookups return domain.ErrUserNotFound
// when no user matches; Create returns domain.ErrUsernameTaken or
// domain.ErrEmailTaken when a unique index is violated.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// AdminRepository persists admin principals.
type AdminRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Admin, error)
	FindByUsername(ctx context.Context, username string) (*domain.Admin, error)
	Find(ctx context.Context) ([]domain.Admin, error)
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
	Update(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
}

// RoleRepository persists roles.
type RoleRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Role, error)
	Find(ctx context.Context) ([]domain.Role, error)
	Create(ctx context.Context, role *domain.Role) (*domain.Role, error)
	Update(ctx context.Context, role *domain.Role) (*domain.Role, error)
}
