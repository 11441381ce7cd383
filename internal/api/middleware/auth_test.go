package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cartloom/admin-api/internal/api/session"
	"github.com/cartloom/admin-api/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	return user, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIdentity(context.Context, domain.Identity) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByFederatedID(context.Context, string, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) SyncFederated(context.Context, *domain.User) error { return nil }

func (r *stubUserRepo) TouchLastLogin(context.Context, string, time.Time) error { return nil }

func (r *stubUserRepo) UpdateRole(context.Context, string, string) error { return nil }

func authFixture(t *testing.T) (*session.Issuer, *stubUserRepo, string) {
	t.Helper()
	issuer := session.NewIssuer("secret", "development")
	repo := &stubUserRepo{users: map[string]*domain.User{
		"user-1": {ID: "user-1", Name: "Alice", Role: domain.RoleUser},
	}}
	token, err := issuer.Issue("user-1", time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return issuer, repo, token
}

func runAuth(t *testing.T, issuer *session.Issuer, repo *stubUserRepo, decorate func(*http.Request)) (*httptest.ResponseRecorder, *domain.User, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	decorate(req)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var resolved *domain.User
	handler := Auth(issuer, repo)(func(c echo.Context) error {
		resolved = CurrentUser(c)
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	return rec, resolved, err
}

func TestAuth_CookieToken(t *testing.T) {
	issuer, repo, token := authFixture(t)

	rec, user, err := runAuth(t, issuer, repo, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if user == nil || user.ID != "user-1" {
		t.Fatalf("expected resolved user, got %+v", user)
	}
}

func TestAuth_BearerToken(t *testing.T) {
	issuer, repo, token := authFixture(t)

	_, user, err := runAuth(t, issuer, repo, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if user == nil || user.ID != "user-1" {
		t.Fatalf("expected resolved user, got %+v", user)
	}
}

func TestAuth_RawCookieHeader(t *testing.T) {
	issuer, repo, token := authFixture(t)

	// Some clients send the Cookie header without going through a cookie jar.
	_, user, err := runAuth(t, issuer, repo, func(req *http.Request) {
		req.Header.Set("Cookie", "other=1; token="+token)
	})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if user == nil || user.ID != "user-1" {
		t.Fatalf("expected resolved user, got %+v", user)
	}
}

func TestAuth_MissingToken(t *testing.T) {
	issuer, repo, _ := authFixture(t)

	_, _, err := runAuth(t, issuer, repo, func(*http.Request) {})
	assertHTTPError(t, err, http.StatusUnauthorized)
}

func TestAuth_InvalidToken(t *testing.T) {
	issuer, repo, _ := authFixture(t)

	_, _, err := runAuth(t, issuer, repo, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer not-a-token")
	})
	assertHTTPError(t, err, http.StatusUnauthorized)
}

func TestAuth_DeletedUser(t *testing.T) {
	issuer, repo, token := authFixture(t)
	delete(repo.users, "user-1")

	_, _, err := runAuth(t, issuer, repo, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	})
	assertHTTPError(t, err, http.StatusUnauthorized)
}

func TestAdminOnly(t *testing.T) {
	e := echo.New()

	run := func(user *domain.User) error {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if user != nil {
			c.Set("user", user)
		}
		return AdminOnly()(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})(c)
	}

	assertHTTPError(t, run(nil), http.StatusUnauthorized)
	assertHTTPError(t, run(&domain.User{ID: "u", Role: domain.RoleUser}), http.StatusForbidden)
	if err := run(&domain.User{ID: "u", Role: domain.RoleAdmin}); err != nil {
		t.Fatalf("admin should pass: %v", err)
	}
}

func assertHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if httpErr.Code != code {
		t.Fatalf("expected %d, got %d", code, httpErr.Code)
	}
}
