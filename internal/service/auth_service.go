package service

import (
	"context"
	"strings"
	"time"

	"campuscare/internal/models"
	"campuscare/internal/repository"
	"campuscare/internal/utils"
)

type AuthService struct {
	users         repository.UserRepository
	sessionSecret string
}

func NewAuthService(users repository.UserRepository, sessionSecret string) *AuthService {
	return &AuthService{users: users, sessionSecret: sessionSecret}
}

// Register creates a student account. Self-registration is only allowed for
// the Student role; duplicate emails are rejected before insert.
func (a *AuthService) Register(ctx context.Context, name, email, password, confirm string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || len(password) < 6 {
		return nil, ErrInvalidInput
	}
	if password != confirm {
		return nil, ErrPasswordMismatch
	}

	taken, err := a.users.EmailTaken(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &models.User{Name: name, Email: email, Role: models.RoleStudent}
	if err := a.users.Create(ctx, u, hash); err != nil {
		return nil, err
	}
	return u, nil
}

// Login authenticates by (email, role) so identical emails can never cross
// roles, verifies the credential, and returns a signed session token.
// A credential stored in the legacy plain-text form is verified by direct
// comparison and silently rehashed with bcrypt on success.
func (a *AuthService) Login(ctx context.Context, email, password string, role models.Role) (token string, user *models.User, err error) {
	u, stored, err := a.users.GetByEmailAndRole(ctx, strings.TrimSpace(email), role)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, ErrInvalidCredentials
	}

	if utils.IsBcryptHash(stored) {
		if !utils.CheckPassword(stored, password) {
			return "", nil, ErrInvalidCredentials
		}
	} else {
		// Legacy plain-text credential: compare directly, then upgrade.
		if stored != password {
			return "", nil, ErrInvalidCredentials
		}
		if hash, herr := utils.HashPassword(password); herr == nil {
			_ = a.users.UpdatePasswordHash(ctx, u.ID, hash)
		}
	}

	tok, err := utils.SignJWT(a.sessionSecret, u.ID, string(u.Role), 24*time.Hour)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}

// ForgotPassword resets the credential for the account matching (email, role).
func (a *AuthService) ForgotPassword(ctx context.Context, email string, role models.Role, newPassword, confirm string) error {
	email = strings.TrimSpace(email)
	if email == "" || newPassword == "" || confirm == "" {
		return ErrInvalidInput
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}

	u, _, err := a.users.GetByEmailAndRole(ctx, email, role)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrNotFound
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return a.users.UpdatePasswordHash(ctx, u.ID, hash)
}

// ResetPassword changes the acting user's own credential.
func (a *AuthService) ResetPassword(ctx context.Context, actor Actor, newPassword string) error {
	if len(newPassword) < 6 {
		return ErrInvalidInput
	}
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return a.users.UpdatePasswordHash(ctx, actor.ID, hash)
}
