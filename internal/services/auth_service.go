package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"expensetracker/internal/core"
	"expensetracker/internal/token"
)

// AuthService implements registration and login on top of the user store.
type AuthService struct {
	users      UserStore
	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
}

func NewAuthService(users UserStore, secret []byte, tokenTTL time.Duration, bcryptCost int) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = token.DefaultTTL
	}
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:      users,
		secret:     secret,
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new account. The raw password is hashed with bcrypt
// and never stored or logged; an already-registered email fails with
// core.ErrEmailTaken and leaves no partial state behind.
func (s *AuthService) Register(ctx context.Context, reg core.Registration) (core.User, error) {
	reg.Email = core.NormalizeEmail(reg.Email)
	if err := reg.Validate(); err != nil {
		return core.User{}, err
	}

	// Fast-path duplicate check. The schema constraint remains the
	// authoritative guard, so a concurrent insert between this lookup and
	// CreateUser still fails cleanly.
	_, err := s.users.GetUserByEmail(ctx, reg.Email)
	switch {
	case err == nil:
		return core.User{}, core.ErrEmailTaken
	case !errors.Is(err, core.ErrNotFound):
		return core.User{}, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.bcryptCost)
	if err != nil {
		return core.User{}, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.users.CreateUser(ctx, core.User{
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: string(hash),
		Role:         core.RoleUser,
	})
	if err != nil {
		if errors.Is(err, core.ErrEmailTaken) {
			return core.User{}, core.ErrEmailTaken
		}
		return core.User{}, fmt.Errorf("create user: %w", err)
	}

	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return core.User{}, fmt.Errorf("read created user: %w", err)
	}

	slog.InfoContext(ctx, "User registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login verifies credentials and mints a session token. An unknown email
// and a wrong password fail identically with core.ErrInvalidCredentials
// so callers cannot probe which emails exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, core.User, error) {
	email = core.NormalizeEmail(email)

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return "", core.User{}, core.ErrInvalidCredentials
		}
		return "", core.User{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", core.User{}, core.ErrInvalidCredentials
	}

	signed, err := token.New(user, s.secret, s.tokenTTL)
	if err != nil {
		return "", core.User{}, fmt.Errorf("mint token: %w", err)
	}

	user.PasswordHash = ""
	slog.InfoContext(ctx, "User logged in", "user_id", user.ID)
	return signed, user, nil
}

// Profile returns a user's public fields.
func (s *AuthService) Profile(ctx context.Context, id int64) (core.User, error) {
	return s.users.GetUserByID(ctx, id)
}

// Users lists all accounts ordered by id, without password hashes.
func (s *AuthService) Users(ctx context.Context) ([]core.User, error) {
	return s.users.ListUsers(ctx)
}

// ParseToken validates a session token minted by Login.
func (s *AuthService) ParseToken(tokenString string) (token.Claims, error) {
	return token.Parse(tokenString, s.secret)
}
