package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/peanutblog/blog-api/internal/core/domain"
	"github.com/peanutblog/blog-api/internal/token"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by username
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := r.users[username]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUsernameTaken
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = "user_" + string(rune('0'+r.nextID))
	r.users[copy.Username] = cloneUser(copy)
	return cloneUser(copy), nil
}

func fieldErrors(t *testing.T, err error, wantStatus int) domain.FieldErrors {
	t.Helper()
	var de *domain.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *domain.Error, got %v", err)
	}
	if de.Status != wantStatus {
		t.Fatalf("expected status %d, got %d", wantStatus, de.Status)
	}
	return de.Fields
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	issuer := token.NewIssuer("user-secret", time.Hour)
	svc := NewAuthService(repo, issuer)

	tkn, user, err := svc.Register(context.Background(), "alice_01", "Str0ng!Pass", "Str0ng!Pass", "a@b.com")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Username != "alice_01" || user.ID == "" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.PasswordHash == "Str0ng!Pass" {
		t.Fatalf("password stored in plaintext")
	}
	if !VerifyPassword("Str0ng!Pass", user.PasswordHash) {
		t.Fatalf("stored hash does not match password")
	}

	// The token resolves back to the created user.
	claims, err := issuer.Validate(tkn)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.ID != user.ID || claims.Username != "alice_01" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Register_InputErrors(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), token.NewIssuer("s", time.Hour))

	_, _, err := svc.Register(context.Background(), "ab", "weak", "", "bad-email")
	errs := fieldErrors(t, err, http.StatusUnprocessableEntity)
	for _, field := range []string{"username", "password", "confirmPassword", "email"} {
		if errs[field] == "" {
			t.Fatalf("expected error for %s, got %v", field, errs)
		}
	}
}

func TestAuthService_Register_StorageOwnsTimestamps(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, token.NewIssuer("s", time.Hour))

	_, _, err := svc.Register(context.Background(), "alice_01", "Str0ng!Pass", "Str0ng!Pass", "a@b.com")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// CreatedAt/UpdatedAt belong to the repository on insert; the service
	// hands over an unstamped record.
	stored := repo.users["alice_01"]
	if !stored.CreatedAt.IsZero() || !stored.UpdatedAt.IsZero() {
		t.Fatalf("service stamped timestamps: %v %v", stored.CreatedAt, stored.UpdatedAt)
	}
}

func TestAuthService_Register_OverlongPassword(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), token.NewIssuer("s", time.Hour))

	// Longer than bcrypt can hash. Must come back as a field error, never
	// as the hasher's own failure.
	long := "Aa1!" + strings.Repeat("x", 80)
	_, _, err := svc.Register(context.Background(), "alice_01", long, long, "a@b.com")
	errs := fieldErrors(t, err, http.StatusUnprocessableEntity)
	if errs["password"] != "Password must be at most 72 characters long" {
		t.Fatalf("unexpected password error: %q", errs["password"])
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	repo := newStubUserRepo()
	issuer := token.NewIssuer("user-secret", time.Hour)
	svc := NewAuthService(repo, issuer)

	firstToken, _, err := svc.Register(context.Background(), "alice_01", "Str0ng!Pass", "Str0ng!Pass", "a@b.com")
	if err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, _, err = svc.Register(context.Background(), "alice_01", "Other!Pa55", "Other!Pa55", "c@d.com")
	errs := fieldErrors(t, err, http.StatusUnprocessableEntity)
	if errs["username"] != "Username is taken" {
		t.Fatalf("expected username taken, got %v", errs)
	}

	// The first registration's token stays valid.
	if _, err := issuer.Validate(firstToken); err != nil {
		t.Fatalf("first token invalidated: %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, token.NewIssuer("s", time.Hour))

	if _, _, err := svc.Register(context.Background(), "alice_01", "Str0ng!Pass", "Str0ng!Pass", "a@b.com"); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, _, err := svc.Register(context.Background(), "bobby_02", "Str0ng!Pass", "Str0ng!Pass", "a@b.com")
	errs := fieldErrors(t, err, http.StatusUnprocessableEntity)
	if errs["email"] != "Email is taken" {
		t.Fatalf("expected email taken, got %v", errs)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	issuer := token.NewIssuer("user-secret", time.Hour)
	svc := NewAuthService(repo, issuer)

	if _, _, err := svc.Register(context.Background(), "alice_01", "Str0ng!Pass", "Str0ng!Pass", "a@b.com"); err != nil {
		t.Fatalf("register: %v", err)
	}

	tkn, user, err := svc.Login(context.Background(), "alice_01", "Str0ng!Pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Username != "alice_01" {
		t.Fatalf("unexpected user: %+v", user)
	}
	claims, err := issuer.Validate(tkn)
	if err != nil || claims.ID != user.ID {
		t.Fatalf("token does not resolve to user: %v %+v", err, claims)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), token.NewIssuer("s", time.Hour))

	_, _, err := svc.Login(context.Background(), "ghost_01", "whatever")
	errs := fieldErrors(t, err, http.StatusUnprocessableEntity)
	if errs["general"] != "User not found" {
		t.Fatalf("expected general user-not-found, got %v", errs)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, token.NewIssuer("s", time.Hour))

	if _, _, err := svc.Register(context.Background(), "alice_01", "Str0ng!Pass", "Str0ng!Pass", "a@b.com"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := svc.Login(context.Background(), "alice_01", "WrongPass!1")
	errs := fieldErrors(t, err, http.StatusUnprocessableEntity)
	if errs["general"] != "Wrong credentials" {
		t.Fatalf("expected wrong credentials, got %v", errs)
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), token.NewIssuer("s", time.Hour))

	_, _, err := svc.Login(context.Background(), "", "")
	errs := fieldErrors(t, err, http.StatusUnprocessableEntity)
	if errs["username"] == "" || errs["password"] == "" {
		t.Fatalf("expected both fields reported, got %v", errs)
	}
}
