package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cartloom/admin-api/internal/core/domain"
	"github.com/cartloom/admin-api/internal/core/ports"
	"github.com/cartloom/admin-api/internal/core/validation"
)

const bcryptCost = 10

// LoginLimiter throttles repeated failed logins per identity. A nil limiter
// disables throttling.
type LoginLimiter interface {
	TooManyAttempts(ctx context.Context, identity string) (bool, error)
	RecordFailure(ctx context.Context, identity string) error
	Reset(ctx context.Context, identity string) error
}

// AuthService implements ports.AuthService on top of a UserRepository.
type AuthService struct {
	repo     ports.UserRepository
	limiter  LoginLimiter
	adminKey string
	logger   zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, limiter LoginLimiter, adminKey string, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, limiter: limiter, adminKey: adminKey, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	in.Name = validation.Sanitize(in.Name)
	in.Email = validation.Sanitize(in.Email)
	in.Phone = validation.Sanitize(in.Phone)

	res := validation.ValidateRegistration(validation.Registration{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Password: in.Password,
	})
	if !res.Valid {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, res.Message())
	}

	identity, _ := domain.NewIdentity(in.Email, in.Phone)
	if _, err := s.repo.FindByIdentity(ctx, identity); err == nil {
		return nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	provider := domain.ProviderEmail
	if in.Email == "" {
		provider = domain.ProviderPhone
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Provider:     provider,
		LastLogin:    now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// A concurrent registration with the same identity loses the race at the
	// unique index and comes back as ErrUserExists.
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("provider", provider).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, identity domain.Identity, password string) (*domain.User, error) {
	if identity.IsZero() || password == "" {
		return nil, fmt.Errorf("%w: identity and password are required", domain.ErrValidation)
	}

	if s.limiter != nil {
		blocked, err := s.limiter.TooManyAttempts(ctx, identity.Value())
		if err != nil {
			s.logger.Warn().Err(err).Msg("login limiter check failed, allowing attempt")
		} else if blocked {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByIdentity(ctx, identity)
	if err != nil {
		// Unknown identity and wrong password answer identically.
		s.recordFailure(ctx, identity)
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, identity)
		return nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, identity.Value()); err != nil {
			s.logger.Warn().Err(err).Msg("login limiter reset failed")
		}
	}
	if err := s.repo.TouchLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("last-login touch failed")
	}

	return user, nil
}

func (s *AuthService) AdminLogin(ctx context.Context, identity domain.Identity, password string) (*domain.User, error) {
	user, err := s.Login(ctx, identity, password)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

func (s *AuthService) GoogleLogin(ctx context.Context, in ports.GoogleInput) (*domain.User, bool, error) {
	in.Name = validation.Sanitize(in.Name)
	in.Email = validation.Sanitize(in.Email)
	in.Phone = validation.Sanitize(in.Phone)

	if in.Name == "" || in.Email == "" || in.FirebaseUID == "" {
		return nil, false, fmt.Errorf("%w: name, email and firebaseUid are required", domain.ErrValidation)
	}

	now := time.Now().UTC()

	user, err := s.repo.FindByFederatedID(ctx, in.FirebaseUID, in.Email)
	if err == nil {
		// Sync fills previously-absent fields only; an existing phone or
		// picture is never overwritten.
		if user.FirebaseUID == "" {
			user.FirebaseUID = in.FirebaseUID
		}
		if user.ProfilePicture == "" && in.ProfilePicture != "" {
			user.ProfilePicture = in.ProfilePicture
		}
		if user.Phone == "" && in.Phone != "" {
			user.Phone = in.Phone
		}
		user.EmailVerified = in.EmailVerified
		if user.Provider == "" {
			user.Provider = domain.ProviderGoogle
		}
		user.LastLogin = now
		user.UpdatedAt = now

		if err := s.repo.SyncFederated(ctx, user); err != nil {
			return nil, false, err
		}
		return user, false, nil
	}

	provider := in.Provider
	if provider == "" {
		provider = domain.ProviderGoogle
	}

	// Federated users never authenticate by password; store a hash of random
	// bytes so the account has no guessable credential.
	hash, err := bcrypt.GenerateFromPassword([]byte(placeholderPassword()), bcryptCost)
	if err != nil {
		return nil, false, err
	}

	user = &domain.User{
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		PasswordHash:   string(hash),
		Role:           domain.RoleUser,
		FirebaseUID:    in.FirebaseUID,
		ProfilePicture: in.ProfilePicture,
		EmailVerified:  in.EmailVerified,
		Provider:       provider,
		LastLogin:      now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, false, err
	}

	s.logger.Info().Str("user_id", created.ID).Msg("federated user created")
	return created, true, nil
}

func (s *AuthService) PromoteToAdmin(ctx context.Context, identity domain.Identity, adminKey string) (*domain.User, error) {
	// An unset server key disables promotion entirely.
	if s.adminKey == "" || subtle.ConstantTimeCompare([]byte(adminKey), []byte(s.adminKey)) != 1 {
		return nil, domain.ErrInvalidAdminKey
	}
	if identity.IsZero() {
		return nil, fmt.Errorf("%w: either email or phone is required", domain.ErrValidation)
	}

	user, err := s.repo.FindByIdentity(ctx, identity)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin() {
		return user, nil
	}

	if err := s.repo.UpdateRole(ctx, user.ID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user promoted to admin")
	return s.repo.FindByID(ctx, user.ID)
}

func (s *AuthService) recordFailure(ctx context.Context, identity domain.Identity) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, identity.Value()); err != nil {
		s.logger.Warn().Err(err).Msg("login limiter record failed")
	}
}

func placeholderPassword() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("federated-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
