package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Pavithra-p25/ecommerce-catalog/internal/core/domain"
	"github.com/Pavithra-p25/ecommerce-catalog/internal/core/port"
	"golang.org/x/crypto/bcrypt"
)

var _ port.Authenticator = (*AuthService)(nil)

type AuthService struct {
	admins port.AdminsRepository
	issuer port.TokenIssuer
}

func NewAuth(admins port.AdminsRepository, issuer port.TokenIssuer) AuthService {
	return AuthService{admins, issuer}
}

// Authenticate exchanges credentials for a signed token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s AuthService) Authenticate(
	ctx context.Context, username, password string,
) (domain.AuthGrant, error) {
	const op = "AuthService.Authenticate"

	if err := ctx.Err(); err != nil {
		return domain.AuthGrant{}, fmt.Errorf("%s: %w", op, err)
	}

	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.AuthGrant{}, fmt.Errorf(
				"%s: %w", op, domain.ErrInvalidCredentials,
			)
		}
		return domain.AuthGrant{}, fmt.Errorf("%s: %w", op, err)
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(admin.PasswordHash), []byte(password),
	)
	if err != nil {
		return domain.AuthGrant{}, fmt.Errorf(
			"%s: %w", op, domain.ErrInvalidCredentials,
		)
	}

	token, expiresIn, err := s.issuer.Issue(admin.Username)
	if err != nil {
		return domain.AuthGrant{}, fmt.Errorf("%s: %w", op, err)
	}

	return domain.AuthGrant{
		Token:     token,
		ExpiresIn: expiresIn,
		Username:  admin.Username,
	}, nil
}
