package service

import (
	"context"
	"net/http"

	"github.com/peanutblog/blog-api/internal/core/domain"
	"github.com/peanutblog/blog-api/internal/core/ports"
	"github.com/peanutblog/blog-api/internal/token"
	"github.com/peanutblog/blog-api/internal/validate"
)

// AdminService implements admin login and back-office admin management.
// Admin tokens are signed with their own secret, so the issuer here is never
// the one handed to AuthService.
type AdminService struct {
	admins ports.AdminRepository
	roles  ports.RoleRepository
	issuer *token.Issuer
}

func NewAdminService(admins ports.AdminRepository, roles ports.RoleRepository, issuer *token.Issuer) *AdminService {
	return &AdminService{admins: admins, roles: roles, issuer: issuer}
}

func (s *AdminService) Login(ctx context.Context, username, password string) (string, *domain.Admin, error) {
	errs := validate.AdminCredentials(username, password)
	if !errs.Empty() {
		return "", nil, domain.NewError(http.StatusUnprocessableEntity, "Admin input error", errs)
	}

	admin, err := s.admins.FindByUsername(ctx, username)
	if err == domain.ErrAdminNotFound {
		errs["general"] = "Admin not found"
		return "", nil, domain.NewError(http.StatusUnprocessableEntity, "Admin input error", errs)
	} else if err != nil {
		return "", nil, err
	}

	if !VerifyPassword(password, admin.PasswordHash) {
		errs["general"] = "Wrong credentials of password"
		return "", nil, domain.NewError(http.StatusUnprocessableEntity, "Admin input error", errs)
	}

	tkn, err := s.issuer.Issue(admin.ID, admin.Username)
	if err != nil {
		return "", nil, err
	}

	return tkn, admin, nil
}

func (s *AdminService) List(ctx context.Context) ([]domain.Admin, error) {
	return s.admins.Find(ctx)
}

// Create stores a new admin. Username uniqueness is enforced by the storage
// layer's unique index; a violation surfaces as domain.ErrUsernameTaken.
func (s *AdminService) Create(ctx context.Context, username, password string, isAdmin bool, roleID string) (*domain.Admin, error) {
	if errs := validate.AdminCredentials(username, password); !errs.Empty() {
		return nil, domain.NewError(http.StatusUnprocessableEntity, "Admin input error", errs)
	}

	if roleID != "" {
		if _, err := s.roles.FindByID(ctx, roleID); err != nil {
			return nil, err
		}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	created, err := s.admins.Create(ctx, &domain.Admin{
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
		RoleID:       roleID,
	})
	if err != nil {
		return nil, err
	}
	return s.withRoleName(ctx, created)
}

func (s *AdminService) Update(ctx context.Context, id, username, password string, isAdmin bool, roleID string) (*domain.Admin, error) {
	if errs := validate.AdminCredentials(username, password); !errs.Empty() {
		return nil, domain.NewError(http.StatusUnprocessableEntity, "Admin input error", errs)
	}

	admin, err := s.admins.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	admin.Username = username
	admin.PasswordHash = hash
	admin.IsAdmin = isAdmin
	admin.RoleID = roleID

	updated, err := s.admins.Update(ctx, admin)
	if err != nil {
		return nil, err
	}
	return s.withRoleName(ctx, updated)
}

// AssignRole attaches an existing role to an existing admin.
func (s *AdminService) AssignRole(ctx context.Context, id, roleID string) (*domain.Admin, error) {
	admin, err := s.admins.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	role, err := s.roles.FindByID(ctx, roleID)
	if err != nil {
		return nil, err
	}

	admin.RoleID = role.ID

	updated, err := s.admins.Update(ctx, admin)
	if err != nil {
		return nil, err
	}
	updated.RoleName = role.Name
	return updated, nil
}

// FindByID is the principal lookup used by the admin identity resolver. The
// role name is resolved here so the permission gate never touches storage.
func (s *AdminService) FindByID(ctx context.Context, id string) (*domain.Admin, error) {
	admin, err := s.admins.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withRoleName(ctx, admin)
}

// withRoleName fills Admin.RoleName from the weak role reference. A dangling
// reference leaves the name empty rather than failing resolution.
func (s *AdminService) withRoleName(ctx context.Context, admin *domain.Admin) (*domain.Admin, error) {
	if admin.RoleID == "" {
		return admin, nil
	}
	role, err := s.roles.FindByID(ctx, admin.RoleID)
	if err == domain.ErrRoleNotFound {
		return admin, nil
	} else if err != nil {
		return nil, err
	}
	admin.RoleName = role.Name
	return admin, nil
}
