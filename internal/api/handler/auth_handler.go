package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cartloom/admin-api/internal/api/metrics"
	apimiddleware "github.com/cartloom/admin-api/internal/api/middleware"
	"github.com/cartloom/admin-api/internal/api/session"
	"github.com/cartloom/admin-api/internal/core/domain"
	"github.com/cartloom/admin-api/internal/core/ports"
)

// AuthHandler exposes the auth endpoints and owns session cookie handling:
// the service authenticates, the handler issues and clears tokens.
type AuthHandler struct {
	authService ports.AuthService
	sessions    *session.Issuer
}

func NewAuthHandler(authService ports.AuthService, sessions *session.Issuer) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type googleRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	FirebaseUID    string `json:"firebaseUid"`
	ProfilePicture string `json:"profilePicture"`
	EmailVerified  bool   `json:"emailVerified"`
	Provider       string `json:"provider"`
}

type makeAdminRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	AdminKey string `json:"adminKey"`
}

// userSummary is the user slice returned by the auth endpoints; it never
// carries the password hash.
type userSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role,omitempty"`
}

func toSummary(u *domain.User, withRole bool) userSummary {
	s := userSummary{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
	if withRole {
		s.Role = u.Role
	}
	return s
}

// Register creates a password account and opens a session.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      409   {object}  envelope
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	if err := h.openSession(c, user.ID); err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(user.Provider).Inc()
	return c.JSON(http.StatusCreated, ok(toSummary(user, false), "User registered successfully"))
}

// Login authenticates by email or phone and opens a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	user, err := h.login(c, false)
	if err != nil {
		return err
	}

	if err := h.openSession(c, user.ID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ok(toSummary(user, false), "Logged in successfully"))
}

// AdminLogin additionally enforces role=admin and issues the shorter-lived
// admin token.
//
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      403   {object}  envelope
// @Router       /auth/adminLogin [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	user, err := h.login(c, true)
	if err != nil {
		return err
	}

	token, err := h.sessions.IssueAdmin(user.ID, user.Role)
	if err != nil {
		return err
	}
	c.SetCookie(h.sessions.Cookie(token, session.AdminTokenTTL))

	return c.JSON(http.StatusOK, ok(toSummary(user, true), "Admin login successful"))
}

func (h *AuthHandler) login(c echo.Context, admin bool) (*domain.User, error) {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	identity, found := domain.NewIdentity(req.Email, req.Phone)
	if !found {
		return nil, fmt.Errorf("%w: either email or phone number is required", domain.ErrValidation)
	}

	ctx := c.Request().Context()
	var (
		user *domain.User
		err  error
	)
	if admin {
		user, err = h.authService.AdminLogin(ctx, identity, req.Password)
	} else {
		user, err = h.authService.Login(ctx, identity, req.Password)
	}
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return user, nil
}

func loginResult(err error) string {
	if errors.Is(err, domain.ErrTooManyAttempts) {
		return "throttled"
	}
	return "failure"
}

// Google upserts a federated account and opens a session.
//
// @Summary      Google federated login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      googleRequest  true  "Google profile payload"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Router       /auth/google [post]
func (h *AuthHandler) Google(c echo.Context) error {
	var req googleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, isNew, err := h.authService.GoogleLogin(c.Request().Context(), ports.GoogleInput{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		FirebaseUID:    req.FirebaseUID,
		ProfilePicture: req.ProfilePicture,
		EmailVerified:  req.EmailVerified,
		Provider:       req.Provider,
	})
	if err != nil {
		return err
	}

	if err := h.openSession(c, user.ID); err != nil {
		return err
	}

	msg := "Logged in successfully with Google"
	if isNew {
		msg = "User registered successfully with Google"
		metrics.RegistrationsTotal.WithLabelValues(domain.ProviderGoogle).Inc()
	}

	return c.JSON(http.StatusOK, envelope{
		Success: true,
		Message: msg,
		Data: map[string]any{
			"user":      user,
			"isNewUser": isNew,
		},
	})
}

// MakeAdmin is the secret-gated role promotion.
//
// @Summary      Promote a user to admin
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      makeAdminRequest  true  "Target identity and admin key"
// @Success      200   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /auth/make-admin [post]
func (h *AuthHandler) MakeAdmin(c echo.Context) error {
	var req makeAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	identity, _ := domain.NewIdentity(req.Email, req.Phone)
	user, err := h.authService.PromoteToAdmin(c.Request().Context(), identity, req.AdminKey)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ok(toSummary(user, true), "User successfully upgraded to admin"))
}

// Me returns the authenticated user.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Router       /auth/getMe [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user := apimiddleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return c.JSON(http.StatusOK, ok(user, ""))
}

// Admin returns the authenticated user when it holds the admin role; the
// AdminOnly middleware rejects everyone else with 403.
//
// @Summary      Current admin
// @Tags         auth
// @Produce      json
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Failure      403  {object}  envelope
// @Router       /auth/getAdmin [get]
func (h *AuthHandler) Admin(c echo.Context) error {
	return h.Me(c)
}

// Logout clears the session cookie. The token itself stays valid until its
// natural expiry.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  envelope
// @Router       /auth/logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.sessions.ClearCookie())
	return c.JSON(http.StatusOK, envelope{Success: true, Message: "Logged out successfully"})
}

func (h *AuthHandler) openSession(c echo.Context, userID string) error {
	token, err := h.sessions.Issue(userID, session.TokenTTL)
	if err != nil {
		return err
	}
	c.SetCookie(h.sessions.Cookie(token, session.TokenTTL))
	return nil
}
