package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/openhaven/haven-backend/internal/authz"
	"github.com/openhaven/haven-backend/internal/middleware"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// requireUUID rejects malformed identifiers before any storage access. Only
// the canonical 8-4-4-4-12 hex form is accepted, case-insensitive; the
// length check keeps uuid.Parse from letting hyphenless variants through.
func requireUUID(field, value string) error {
	if len(value) != 36 {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid %s: %q is not a valid UUID", field, value))
	}
	if _, err := uuid.Parse(value); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid %s: %q is not a valid UUID", field, value))
	}
	return nil
}

// currentIdentity returns the identity stored by the auth middleware. Routes
// calling it must be registered behind RequireIdentity.
func currentIdentity(c echo.Context) authz.Identity {
	identity, _ := c.Get(middleware.IdentityKey).(authz.Identity)
	return identity
}

// parsePagination reads limit/offset query params with defaults and clamps.
func parsePagination(c echo.Context) (limit, offset int) {
	limit = defaultListLimit
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if raw := c.QueryParam("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			offset = n
		}
	}
	return limit, offset
}
