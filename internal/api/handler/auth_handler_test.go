package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/peanutblog/blog-api/internal/api/middleware"
	"github.com/peanutblog/blog-api/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, username, password, confirmPassword, email string) (string, *domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (string, *domain.User, error)
	findByIDFn func(ctx context.Context, id string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, password, confirmPassword, email string) (string, *domain.User, error) {
	return s.registerFn(ctx, username, password, confirmPassword, email)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return s.findByIDFn(ctx, id)
}

func newJSONContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true {
		t.Fatalf("expected success envelope, got %+v", resp)
	}
	data, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %+v", resp)
	}
	return data
}

func wantDomainError(t *testing.T, err error, status int) *domain.Error {
	t.Helper()
	var de *domain.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *domain.Error, got %v", err)
	}
	if de.Status != status {
		t.Fatalf("expected status %d, got %d (%s)", status, de.Status, de.Message)
	}
	return de
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password, confirmPassword, email string) (string, *domain.User, error) {
			if username != "johnsmith" || password != "Secret1!" || confirmPassword != "Secret1!" || email != "john@example.com" {
				t.Fatalf("unexpected args: %s %s %s %s", username, password, confirmPassword, email)
			}
			return "token123", &domain.User{ID: "u1", Username: username, Email: email}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newJSONContext(t, http.MethodPost, "/api/users/register",
		`{"username":"johnsmith","password":"Secret1!","confirmPassword":"Secret1!","email":"john@example.com"}`)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	data := decodeEnvelope(t, rec)
	if data["id"] != "u1" || data["username"] != "johnsmith" || data["token"] != "token123" {
		t.Fatalf("unexpected payload: %+v", data)
	}
}

func TestAuthHandler_Register_ValidationError(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password, confirmPassword, email string) (string, *domain.User, error) {
			return "", nil, domain.NewError(http.StatusUnprocessableEntity, "User input error",
				domain.FieldErrors{"username": "Username must be at least 6 characters long"})
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newJSONContext(t, http.MethodPost, "/api/users/register", `{"username":"bob"}`)

	err := handler.Register(c)
	de := wantDomainError(t, err, http.StatusUnprocessableEntity)
	if de.Fields["username"] == "" {
		t.Fatalf("expected username field error, got %+v", de.Fields)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password, confirmPassword, email string) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newJSONContext(t, http.MethodPost, "/api/users/register", "not-json")

	err := handler.Register(c)
	wantDomainError(t, err, http.StatusBadRequest)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			if username != "johnsmith" || password != "Secret1!" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "token123", &domain.User{ID: "u1", Username: "johnsmith"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newJSONContext(t, http.MethodPost, "/api/users/login",
		`{"username":"johnsmith","password":"Secret1!"}`)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	data := decodeEnvelope(t, rec)
	if data["token"] != "token123" {
		t.Fatalf("expected token, got %v", data["token"])
	}
}

func TestAuthHandler_Login_WrongCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			return "", nil, domain.NewError(http.StatusUnprocessableEntity, "User input error",
				domain.FieldErrors{"general": "Wrong credentials"})
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newJSONContext(t, http.MethodPost, "/api/users/login",
		`{"username":"johnsmith","password":"bad"}`)

	err := handler.Login(c)
	de := wantDomainError(t, err, http.StatusUnprocessableEntity)
	if de.Fields["general"] != "Wrong credentials" {
		t.Fatalf("unexpected fields: %+v", de.Fields)
	}
}

func TestAuthHandler_Me_ReturnsCurrentUser(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	c, rec := newJSONContext(t, http.MethodGet, "/api/users/me", "")
	c.Set(middleware.CtxUserKey, &domain.User{ID: "u1", Username: "johnsmith", Email: "john@example.com"})

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	data := decodeEnvelope(t, rec)
	user, ok := data["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response, got %+v", data)
	}
	if user["username"] != "johnsmith" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password hash must not be serialized")
	}
}

func TestAuthHandler_Me_MissingPrincipal(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	c, _ := newJSONContext(t, http.MethodGet, "/api/users/me", "")

	err := handler.Me(c)
	wantDomainError(t, err, http.StatusUnauthorized)
}
