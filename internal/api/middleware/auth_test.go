package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/peanutblog/blog-api/internal/core/domain"
	"github.com/peanutblog/blog-api/internal/token"
)

func newAuthContext(e *echo.Echo, authorization string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func domainStatus(t *testing.T, err error) (int, string) {
	t.Helper()
	var de *domain.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *domain.Error, got %v", err)
	}
	return de.Status, de.Message
}

func TestIdentity_ValidToken(t *testing.T) {
	e := echo.New()
	issuer := token.NewIssuer("secret", time.Hour)
	signed, err := issuer.Issue("user_1", "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	lookup := func(_ context.Context, id string) (*domain.User, error) {
		if id != "user_1" {
			t.Fatalf("unexpected id %q", id)
		}
		return &domain.User{ID: id, Username: "alice"}, nil
	}

	c, rec := newAuthContext(e, "Bearer "+signed)
	called := false
	handler := Identity(issuer, lookup, CtxUserKey, "user")(func(c echo.Context) error {
		called = true
		user, ok := CurrentUser(c)
		if !ok || user.Username != "alice" {
			t.Fatalf("principal not attached: %+v", user)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestIdentity_MissingHeader(t *testing.T) {
	e := echo.New()
	issuer := token.NewIssuer("secret", time.Hour)
	lookup := func(_ context.Context, id string) (*domain.User, error) {
		t.Fatalf("lookup should not run")
		return nil, nil
	}

	c, _ := newAuthContext(e, "")
	handler := Identity(issuer, lookup, CtxUserKey, "user")(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	status, msg := domainStatus(t, handler(c))
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
	if msg != "Authorization header must be provided" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestIdentity_MalformedHeader(t *testing.T) {
	e := echo.New()
	issuer := token.NewIssuer("secret", time.Hour)
	lookup := func(_ context.Context, id string) (*domain.User, error) {
		t.Fatalf("lookup should not run")
		return nil, nil
	}
	mw := Identity(issuer, lookup, CtxUserKey, "user")

	for _, header := range []string{"Token abc", "Bearer", "Bearer "} {
		c, _ := newAuthContext(e, header)
		handler := mw(func(c echo.Context) error {
			t.Fatalf("should not reach next")
			return nil
		})

		status, msg := domainStatus(t, handler(c))
		if status != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, status)
		}
		if msg != "Authorization token must be 'Bearer [token]'" {
			t.Fatalf("header %q: unexpected message %q", header, msg)
		}
	}
}

func TestIdentity_InvalidToken(t *testing.T) {
	e := echo.New()
	issuer := token.NewIssuer("secret", time.Hour)
	other := token.NewIssuer("other-secret", time.Hour)
	crossVariant, err := other.Issue("user_1", "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	lookup := func(_ context.Context, id string) (*domain.User, error) {
		t.Fatalf("lookup should not run")
		return nil, nil
	}
	mw := Identity(issuer, lookup, CtxUserKey, "user")

	for _, raw := range []string{"not-a-token", crossVariant} {
		c, _ := newAuthContext(e, "Bearer "+raw)
		handler := mw(func(c echo.Context) error {
			t.Fatalf("should not reach next")
			return nil
		})

		status, msg := domainStatus(t, handler(c))
		if status != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", status)
		}
		if msg != "Invalid/Expired token" {
			t.Fatalf("unexpected message: %q", msg)
		}
	}
}

func TestIdentity_PrincipalGone(t *testing.T) {
	e := echo.New()
	issuer := token.NewIssuer("secret", time.Hour)
	signed, err := issuer.Issue("admin_1", "root")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	lookup := func(_ context.Context, id string) (*domain.Admin, error) {
		return nil, domain.ErrAdminNotFound
	}

	c, _ := newAuthContext(e, "Bearer "+signed)
	handler := Identity(issuer, lookup, CtxAdminKey, "admin")(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	status, msg := domainStatus(t, handler(c))
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
	if msg != "No such admin" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestIdentity_StorageFailure(t *testing.T) {
	e := echo.New()
	issuer := token.NewIssuer("secret", time.Hour)
	signed, err := issuer.Issue("user_1", "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	storageErr := errors.New("connection reset")
	lookup := func(_ context.Context, id string) (*domain.User, error) {
		return nil, storageErr
	}

	c, _ := newAuthContext(e, "Bearer "+signed)
	handler := Identity(issuer, lookup, CtxUserKey, "user")(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, storageErr) {
		t.Fatalf("expected storage error to surface, got %v", err)
	}
}
