// Package auth validates bearer tokens on the administrative routes.
package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// Expiry is the expiry time for issued tokens.
	// For security reasons, the token should expire in a short time.
	Expiry = 5 * time.Minute

	// authorizationHeaderKey is the header carrying the bearer token.
	authorizationHeaderKey = "Authorization"

	// roleClaimKey is the claim carrying the role of the subject.
	roleClaimKey = "role"
)

// Role is the role of the token subject.
type Role string

const (
	// RoleAdmin is the admin role. Reindex submission requires it.
	RoleAdmin Role = "admin"

	// RoleUser is the user role.
	RoleUser Role = "user"
)

// Auth issues and validates HMAC signed jwt tokens.
type Auth struct {
	issuer string
	secret []byte
}

// New creates a new Auth instance with the given shared secret.
func New(issuer, secret string) *Auth {
	return &Auth{
		issuer: issuer,
		secret: []byte(secret),
	}
}

// IssueToken issues a new token with the given subject and role.
func (a *Auth) IssueToken(subject string, role Role) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"nbf": now.Unix(),
		"iat": now.Unix(),
		"exp": now.Add(Expiry).Unix(),
		"iss": a.issuer,
		"sub": subject,

		// role is the role of the subject
		roleClaimKey: string(role),
	})

	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", status.Errorf(codes.Internal, "failed to sign token: %v", err)
	}

	return signed, nil
}

// Authorize validates the request's bearer token and requires the admin
// role.
func (a *Auth) Authorize(r *http.Request) error {
	tokenString, err := extractBearerToken(r)
	if err != nil {
		return err
	}

	token, err := jwt.Parse(
		tokenString,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, status.Error(codes.Unauthenticated, "invalid signing method")
			}

			return a.secret, nil
		})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return status.Error(codes.Unauthenticated, "token is expired")
		}

		return status.Errorf(codes.Unauthenticated, "failed to parse token: %v", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return status.Error(codes.Unauthenticated, "invalid token claims")
	}

	if role, _ := claims[roleClaimKey].(string); role != string(RoleAdmin) {
		return status.Error(codes.PermissionDenied, "admin role required")
	}

	return nil
}

// extractBearerToken extracts the bearer token from the request headers.
func extractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get(authorizationHeaderKey)
	if header == "" {
		return "", status.Error(codes.Unauthenticated, "missing authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) < 2 || parts[0] != "Bearer" {
		return "", status.Error(codes.Unauthenticated, "malformed authorization header")
	}

	return parts[1], nil
}
