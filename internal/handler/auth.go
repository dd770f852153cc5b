package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/authgate/authgate/internal/auth"
)

// AuthHandler exposes the credential operations over HTTP. All business
// rules live in the auth service; this layer binds requests, bounds them
// with a timeout and maps the error taxonomy onto status codes.
type AuthHandler struct {
	Auth *auth.Service
}

func NewAuthHandler(s *auth.Service) *AuthHandler { return &AuthHandler{Auth: s} }

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

// Register creates an account; the response confirms without tokens.
func (h *AuthHandler) Register(c echo.Context) error {
	var req auth.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, auth.Confirmation{Message: "invalid body"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	conf, err := h.Auth.Register(ctx, &req)
	if err != nil {
		return confirmationError(c, err)
	}
	return c.JSON(http.StatusCreated, conf)
}

// Login verifies credentials and returns a token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var creds auth.Credentials
	if err := c.Bind(&creds); err != nil {
		return c.JSON(http.StatusBadRequest, auth.Session{Message: "invalid body"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	sess, err := h.Auth.SignIn(ctx, &creds)
	if err != nil {
		return sessionError(c, err)
	}
	return c.JSON(http.StatusOK, sess)
}

// Refresh rotates a refresh token and returns a new token pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, auth.Session{Message: "invalid body"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	sess, err := h.Auth.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return sessionError(c, err)
	}
	return c.JSON(http.StatusOK, sess)
}

// Me returns the claims the JWT middleware extracted for the caller.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"user_id": c.Get("user_id"),
		"name":    c.Get("name"),
		"email":   c.Get("email"),
		"role":    c.Get("role"),
	})
}

// requestCtx bounds store calls so a stuck database cannot hold the request.
func requestCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

func confirmationError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	msg := "registration failed"
	switch {
	case errors.Is(err, auth.ErrEmptyInput):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, auth.ErrAlreadyRegistered):
		status, msg = http.StatusConflict, err.Error()
	}
	return c.JSON(status, auth.Confirmation{Message: msg})
}

func sessionError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	msg := "request failed"
	switch {
	case errors.Is(err, auth.ErrEmptyInput):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, auth.ErrAccountNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, auth.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, err.Error()
	case errors.Is(err, auth.ErrRoleNotFound):
		status, msg = http.StatusForbidden, err.Error()
	case errors.Is(err, auth.ErrTokenNotFound),
		errors.Is(err, auth.ErrNotSignedIn):
		status, msg = http.StatusUnauthorized, err.Error()
	}
	return c.JSON(status, auth.Session{Message: msg})
}
