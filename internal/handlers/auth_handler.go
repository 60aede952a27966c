package handlers

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/openhaven/haven-backend/internal/middleware"
)

const sessionTTL = 72 * time.Hour

// AuthHandler exchanges provider ID tokens for a local session cookie.
// Credential handling itself stays with the identity provider.
type AuthHandler struct {
	verifier      middleware.TokenVerifier
	sessionSecret string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(verifier middleware.TokenVerifier, sessionSecret string) *AuthHandler {
	return &AuthHandler{verifier: verifier, sessionSecret: sessionSecret}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(public *echo.Group) {
	public.POST("/auth/session", h.CreateSession)
}

// CreateSessionRequest defines the request body for opening a session
type CreateSessionRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// CreateSession verifies a provider ID token and issues the local session
// JWT, both as a cookie and in the response body.
func (h *AuthHandler) CreateSession(c echo.Context) error {
	var req CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.verifier.VerifyIDToken(c.Request().Context(), req.IDToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired ID token")
	}

	email := ""
	if v, ok := token.Claims["email"].(string); ok {
		email = v
	}

	now := time.Now()
	claims := &middleware.SessionClaims{
		UserID: token.UID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.sessionSecret))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate session token")
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    signed,
		Path:     "/",
		Expires:  now.Add(sessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, echo.Map{"token": signed})
}
