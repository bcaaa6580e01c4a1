package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Pavithra-p25/ecommerce-catalog/internal/core/domain"
	"github.com/Pavithra-p25/ecommerce-catalog/internal/core/port"
	"golang.org/x/crypto/bcrypt"
)

var _ port.AdminsRepository = (*AdminsRepository)(nil)

type AdminsRepository struct {
	sqldb sqldb
}

func NewAdminsRepository(sqldb sqldb) AdminsRepository {
	return AdminsRepository{sqldb}
}

func (r AdminsRepository) GetByUsername(
	ctx context.Context, username string,
) (domain.Admin, error) {
	const op = "AdminsRepository.GetByUsername"

	if err := ctx.Err(); err != nil {
		return domain.Admin{}, fmt.Errorf("%s: %w", op, err)
	}

	var a domain.Admin
	err := r.sqldb.QueryRowContext(ctx,
		`SELECT id, username, password_hash FROM admins WHERE username = $1;`,
		username,
	).Scan(&a.ID, &a.Username, &a.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Admin{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return domain.Admin{}, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

func (r AdminsRepository) Create(ctx context.Context, a domain.Admin) error {
	const op = "AdminsRepository.Create"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err := r.sqldb.ExecContext(ctx,
		`INSERT INTO admins (username, password_hash) VALUES ($1, $2)
		ON CONFLICT (username) DO NOTHING;`,
		a.Username, a.PasswordHash,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to insert: %w", op, err)
	}
	return nil
}

// EnsureDefaultAdmin seeds the initial operator account so a fresh
// deployment is reachable before any out-of-band user management.
func (r AdminsRepository) EnsureDefaultAdmin(
	ctx context.Context, username, password string,
) error {
	const op = "AdminsRepository.EnsureDefaultAdmin"
	log := slog.With("op", op)

	_, err := r.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = r.Create(ctx, domain.Admin{
		Username:     username,
		PasswordHash: string(hash),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("default admin created", "username", username)
	return nil
}
