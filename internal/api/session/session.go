// Package session issues and verifies the signed cookie tokens that carry a
// user's session between requests.
package session

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cartloom/admin-api/internal/core/domain"
)

const (
	// CookieName is the session cookie set on login and cleared on logout.
	CookieName = "token"

	// TokenTTL bounds standard sessions; admin sessions get a shorter window.
	TokenTTL      = 24 * time.Hour
	AdminTokenTTL = 8 * time.Hour
)

// Claims are the fields embedded in a session token.
type Claims struct {
	UserID  string
	Role    string
	IsAdmin bool
}

// Issuer signs and verifies HS256 session tokens. The environment decides the
// cookie's cross-site attributes: production cookies are Secure with
// SameSite=None, anything else stays SameSite=Strict.
type Issuer struct {
	secret     []byte
	production bool
}

func NewIssuer(secret, env string) *Issuer {
	return &Issuer{secret: []byte(secret), production: env == "production"}
}

// Issue produces a standard session token embedding the user id and expiry.
func (i *Issuer) Issue(userID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// IssueAdmin produces an admin token with the additional role/isAdmin claims
// and the shorter admin TTL.
func (i *Issuer) IssueAdmin(userID, role string) (string, error) {
	claims := jwt.MapClaims{
		"id":      userID,
		"role":    role,
		"isAdmin": true,
		"exp":     time.Now().Add(AdminTokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify checks the signature and expiry and returns the embedded claims.
// Any failure comes back as domain.ErrInvalidToken.
func (i *Issuer) Verify(token string) (*Claims, error) {
	mapClaims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, mapClaims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	userID, _ := mapClaims["id"].(string)
	if userID == "" {
		return nil, domain.ErrInvalidToken
	}

	role, _ := mapClaims["role"].(string)
	isAdmin, _ := mapClaims["isAdmin"].(bool)
	return &Claims{UserID: userID, Role: role, IsAdmin: isAdmin}, nil
}

// Cookie wraps a token in the HTTP-only session cookie.
func (i *Issuer) Cookie(token string, ttl time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	if i.production {
		c.SameSite = http.SameSiteNoneMode
		c.Secure = true
	}
	return c
}

// ClearCookie revokes the session client-side. Tokens stay valid until their
// natural expiry; there is no server-side blacklist.
func (i *Issuer) ClearCookie() *http.Cookie {
	c := i.Cookie("", 0)
	c.MaxAge = -1
	return c
}
