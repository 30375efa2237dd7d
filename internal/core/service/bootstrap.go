package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/peanutblog/blog-api/internal/core/domain"
	"github.com/peanutblog/blog-api/internal/core/ports"
)

// SeedAdmin describes an admin account to create at startup when missing.
type SeedAdmin struct {
	Username string
	Password string
	Super    bool
}

// SeedAdmins creates the given admin accounts unless they already exist.
// Existing accounts are left untouched, so a rotated password in the
// environment does not overwrite a live one.
func SeedAdmins(ctx context.Context, admins ports.AdminRepository, seeds []SeedAdmin, log zerolog.Logger) error {
	for _, seed := range seeds {
		if seed.Username == "" {
			continue
		}

		_, err := admins.FindByUsername(ctx, seed.Username)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrAdminNotFound) {
			return fmt.Errorf("seed admin %s: %w", seed.Username, err)
		}

		hash, err := HashPassword(seed.Password)
		if err != nil {
			return fmt.Errorf("seed admin %s: %w", seed.Username, err)
		}

		if _, err := admins.Create(ctx, &domain.Admin{
			Username:     seed.Username,
			PasswordHash: hash,
			IsAdmin:      seed.Super,
		}); err != nil {
			// A concurrent replica may have seeded this account already.
			if errors.Is(err, domain.ErrUsernameTaken) {
				continue
			}
			return fmt.Errorf("seed admin %s: %w", seed.Username, err)
		}

		log.Info().Str("username", seed.Username).Bool("super", seed.Super).Msg("seeded admin account")
	}
	return nil
}
