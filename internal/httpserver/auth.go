package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zest/product-api/internal/logging"
	"github.com/zest/product-api/internal/service"
	"github.com/zest/product-api/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	payload, err := h.Svc.Register(ctx, req.FullName, req.Email, req.Password)
	if err != nil {
		return authError(err)
	}

	return respond(c, http.StatusCreated, "User registered successfully", payload)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	payload, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return authError(err)
	}

	return respond(c, http.StatusOK, "Login successful", payload)
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_refresh")

	var req transport.RefreshRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("refresh_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	payload, err := h.Svc.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return authError(err)
	}

	return respond(c, http.StatusOK, "Token refreshed successfully", payload)
}

// authError maps the auth service taxonomy onto HTTP statuses.
func authError(err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, "Email already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrInvalidRefreshToken):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid refresh token")
	case errors.Is(err, service.ErrTokenExpiredOrRevoked):
		return echo.NewHTTPError(http.StatusUnauthorized, "Refresh token is expired or revoked")
	case errors.Is(err, service.ErrAuthFailure):
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication failed")
	case errors.Is(err, service.ErrRoleNotConfigured):
		return echo.NewHTTPError(http.StatusInternalServerError, "Required role data is missing")
	default:
		return err
	}
}
