package ports

import (
	"context"

	"github.com/cartloom/admin-api/internal/core/domain"
)

// RegisterInput carries a password registration. Email and phone are each
// optional; at least one must be present.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// GoogleInput carries a federated login payload from the client-side Google
// sign-in flow.
type GoogleInput struct {
	Name           string
	Email          string
	FirebaseUID    string
	Phone          string
	ProfilePicture string
	EmailVerified  bool
	Provider       string
}

// AuthService implements registration, login and the privileged admin
// promotion. Login and AdminLogin return the same domain.ErrInvalidCredentials
// whether the identity is unknown or the password is wrong.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, identity domain.Identity, password string) (*domain.User, error)
	AdminLogin(ctx context.Context, identity domain.Identity, password string) (*domain.User, error)
	// GoogleLogin upserts a federated account and reports whether it was
	// created by this call.
	GoogleLogin(ctx context.Context, in GoogleInput) (*domain.User, bool, error)
	PromoteToAdmin(ctx context.Context, identity domain.Identity, adminKey string) (*domain.User, error)
}
