package ports

import (
	"context"
	"time"

	"github.com/cartloom/admin-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts. Uniqueness of email,
// phone and firebase_uid is enforced by the storage layer; Create surfaces a
// constraint violation as domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByIdentity(ctx context.Context, identity domain.Identity) (*domain.User, error)
	// FindByFederatedID matches on external provider id first, then email.
	FindByFederatedID(ctx context.Context, firebaseUID, email string) (*domain.User, error)
	// SyncFederated persists the federation fields filled in by the service
	// (firebase_uid, profile picture, phone, verified flag, provider).
	SyncFederated(ctx context.Context, user *domain.User) error
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	// UpdateRole is the privileged escape hatch from the role-immutability
	// rule. Nothing else may write the role field.
	UpdateRole(ctx context.Context, id, role string) error
}
