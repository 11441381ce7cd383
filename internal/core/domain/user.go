package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Sign-up providers. A password account gets the provider matching the
// identity it registered with; federated accounts use ProviderGoogle.
const (
	ProviderEmail  = "email"
	ProviderPhone  = "phone"
	ProviderGoogle = "google"
)

// User models a registered account. Email and phone are each optional but at
// least one is always present and unique. The role is frozen after creation;
// the only write path allowed to change it is the privileged promotion via
// UserRepository.UpdateRole.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	PasswordHash   string    `json:"-"`
	Role           string    `json:"role"`
	FirebaseUID    string    `json:"firebaseUid,omitempty"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	EmailVerified  bool      `json:"emailVerified"`
	Provider       string    `json:"provider,omitempty"`
	LastLogin      time.Time `json:"lastLogin"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
