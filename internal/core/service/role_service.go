package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/peanutblog/blog-api/internal/core/domain"
	"github.com/peanutblog/blog-api/internal/core/ports"
)

// RoleService implements role management.
type RoleService struct {
	roles ports.RoleRepository
}

func NewRoleService(roles ports.RoleRepository) *RoleService {
	return &RoleService{roles: roles}
}

func (s *RoleService) List(ctx context.Context) ([]domain.Role, error) {
	return s.roles.Find(ctx)
}

func (s *RoleService) Create(ctx context.Context, name, displayName string) (*domain.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewError(http.StatusUnprocessableEntity, "Role input error",
			domain.FieldErrors{"name": "Name must not be empty"})
	}

	return s.roles.Create(ctx, &domain.Role{
		Name:        name,
		DisplayName: displayName,
	})
}

func (s *RoleService) Update(ctx context.Context, id, name, displayName string) (*domain.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewError(http.StatusUnprocessableEntity, "Role input error",
			domain.FieldErrors{"name": "Name must not be empty"})
	}

	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	role.Name = name
	role.DisplayName = displayName

	return s.roles.Update(ctx, role)
}
