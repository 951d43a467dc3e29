package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"expensetracker/internal/core"
)

// memUsers is an in-memory UserStore. Like the real schema it enforces
// email uniqueness atomically, so the concurrent registration property
// can be exercised without a database.
type memUsers struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]core.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[int64]core.User)}
}

func (m *memUsers) CreateUser(ctx context.Context, u core.User) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return 0, core.ErrEmailTaken
		}
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	m.users[u.ID] = u
	return u.ID, nil
}

func (m *memUsers) GetUserByEmail(ctx context.Context, email string) (core.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return core.User{}, core.ErrNotFound
}

func (m *memUsers) GetUserByID(ctx context.Context, id int64) (core.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return core.User{}, core.ErrNotFound
	}
	u.PasswordHash = "" // profile reads omit the hash
	return u, nil
}

func (m *memUsers) ListUsers(ctx context.Context) ([]core.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]core.User, 0, len(m.users))
	for id := int64(1); id <= m.nextID; id++ {
		if u, ok := m.users[id]; ok {
			u.PasswordHash = ""
			users = append(users, u)
		}
	}
	return users, nil
}

func newTestAuthService(users UserStore) *AuthService {
	// bcrypt.MinCost keeps the hashing fast in tests
	return NewAuthService(users, []byte("test-secret"), time.Hour, bcrypt.MinCost)
}

func TestRegisterHashesPassword(t *testing.T) {
	users := newMemUsers()
	svc := newTestAuthService(users)
	ctx := context.Background()

	user, err := svc.Register(ctx, core.Registration{
		Username: "alice", Email: "Alice@X.com", Password: "Secret123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.PasswordHash != "" {
		t.Fatal("register must not return the hash")
	}
	if user.Email != "alice@x.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.Role != core.RoleUser {
		t.Fatalf("expected default role user, got %q", user.Role)
	}

	stored, err := users.GetUserByEmail(ctx, "alice@x.com")
	if err != nil {
		t.Fatalf("lookup stored user: %v", err)
	}
	if stored.PasswordHash == "Secret123" || stored.PasswordHash == "" {
		t.Fatal("stored hash must differ from the raw password")
	}
	if !strings.HasPrefix(stored.PasswordHash, "$2") {
		t.Fatalf("expected a bcrypt hash, got %q", stored.PasswordHash)
	}
}

func TestRegisterSamePasswordDifferentHashes(t *testing.T) {
	users := newMemUsers()
	svc := newTestAuthService(users)
	ctx := context.Background()

	for _, email := range []string{"a@x.com", "b@x.com"} {
		if _, err := svc.Register(ctx, core.Registration{Username: "u", Email: email, Password: "Secret123"}); err != nil {
			t.Fatalf("register %s: %v", email, err)
		}
	}

	a, _ := users.GetUserByEmail(ctx, "a@x.com")
	b, _ := users.GetUserByEmail(ctx, "b@x.com")
	if a.PasswordHash == b.PasswordHash {
		t.Fatal("same password must produce different salted hashes")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuthService(newMemUsers())
	ctx := context.Background()
	reg := core.Registration{Username: "alice", Email: "alice@x.com", Password: "Secret123"}

	if _, err := svc.Register(ctx, reg); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, reg); !errors.Is(err, core.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestAuthService(newMemUsers())
	ctx := context.Background()

	cases := []core.Registration{
		{Username: "", Email: "a@x.com", Password: "Secret123"},
		{Username: "a", Email: "bad", Password: "Secret123"},
		{Username: "a", Email: "a@x.com", Password: ""}, // empty password is rejected, never stored
		{Username: "a", Email: "a@x.com", Password: "short"},
	}
	for _, reg := range cases {
		if _, err := svc.Register(ctx, reg); !core.IsValidation(err) {
			t.Fatalf("%+v: expected ValidationError, got %v", reg, err)
		}
	}
}

func TestConcurrentRegisterSameEmail(t *testing.T) {
	svc := newTestAuthService(newMemUsers())
	ctx := context.Background()

	var g errgroup.Group
	results := make([]error, 8)
	for i := range results {
		i := i
		g.Go(func() error {
			_, err := svc.Register(ctx, core.Registration{
				Username: "racer", Email: "race@x.com", Password: "Secret123",
			})
			results[i] = err
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("wait: %v", err)
	}

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, core.ErrEmailTaken) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one success, got %d", succeeded)
	}
}

func TestRegisterThenLogin(t *testing.T) {
	svc := newTestAuthService(newMemUsers())
	ctx := context.Background()

	if _, err := svc.Register(ctx, core.Registration{
		Username: "alice", Email: "alice@x.com", Password: "Secret123",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	signed, user, err := svc.Login(ctx, "alice@x.com", "Secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if signed == "" {
		t.Fatal("expected a token")
	}
	if user.Email != "alice@x.com" || user.PasswordHash != "" {
		t.Fatalf("unexpected user in login response: %+v", user)
	}

	claims, err := svc.ParseToken(signed)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != core.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := newTestAuthService(newMemUsers())
	ctx := context.Background()

	if _, err := svc.Register(ctx, core.Registration{
		Username: "alice", Email: "alice@x.com", Password: "Secret123",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, wrongPassword := svc.Login(ctx, "alice@x.com", "nope")
	_, _, unknownEmail := svc.Login(ctx, "ghost@x.com", "nope")

	if !errors.Is(wrongPassword, core.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, core.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatal("failure modes must be indistinguishable")
	}
}

func TestUsersOmitHashes(t *testing.T) {
	svc := newTestAuthService(newMemUsers())
	ctx := context.Background()

	for _, email := range []string{"1@x.com", "2@x.com"} {
		if _, err := svc.Register(ctx, core.Registration{Username: "u", Email: email, Password: "Secret123"}); err != nil {
			t.Fatalf("register: %v", err)
		}
	}

	users, err := svc.Users(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	for i, u := range users {
		if u.PasswordHash != "" {
			t.Fatal("listing must omit hashes")
		}
		if i > 0 && users[i-1].ID >= u.ID {
			t.Fatal("listing must be ordered by id ascending")
		}
	}
}
