package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/openhaven/haven-backend/internal/authz"
)

// IdentityKey is the echo context key under which the resolved identity is stored.
const IdentityKey = "identity"

// SessionCookieName is the cookie holding the locally issued session token.
const SessionCookieName = "session"

// TokenVerifier is the slice of the Firebase auth client the middleware
// needs, kept narrow so tests can substitute a fake.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// SessionClaims are the claims carried by the locally issued session JWT.
type SessionClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// RequireIdentity resolves the caller from an Authorization: Bearer header or
// the session cookie and stores the identity in the request context. Requests
// with neither, or with an invalid token, are rejected with 401.
func RequireIdentity(verifier TokenVerifier, sessionSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := ResolveIdentity(c, verifier, sessionSecret)
			if err != nil {
				return err
			}
			c.Set(IdentityKey, identity)
			return next(c)
		}
	}
}

// ResolveIdentity checks the bearer header first and falls back to the
// session cookie.
func ResolveIdentity(c echo.Context, verifier TokenVerifier, sessionSecret string) (authz.Identity, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return authz.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "Authorization header must be in Bearer format")
		}

		token, err := verifier.VerifyIDToken(c.Request().Context(), parts[1])
		if err != nil {
			return authz.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, fmt.Sprintf("Invalid or expired ID token: %v", err))
		}

		identity := authz.Identity{ID: token.UID}
		if email, ok := token.Claims["email"].(string); ok {
			identity.Email = email
		}
		return identity, nil
	}

	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return authz.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(sessionSecret), nil
	})
	if err != nil || !token.Valid {
		return authz.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired session")
	}

	return authz.Identity{ID: claims.UserID, Email: claims.Email}, nil
}
