// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"codeberg.org/oliverandrich/kingcooking/internal/flash"
	"codeberg.org/oliverandrich/kingcooking/internal/i18n"
	"codeberg.org/oliverandrich/kingcooking/internal/services/auth"
	"codeberg.org/oliverandrich/kingcooking/internal/services/reset"
	"codeberg.org/oliverandrich/kingcooking/internal/services/session"
	"github.com/labstack/echo/v4"
)

// Mailer sends the password-reset email. The username doubles as the
// recipient address.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, token string) error
}

// AuthHandlers contains handlers for signup, login, logout and password
// recovery.
type AuthHandlers struct {
	base
	auth        *auth.Service
	reset       *reset.Service
	sessions    *session.Manager
	mailer      Mailer
	sendTimeout time.Duration
}

// NewAuth creates a new AuthHandlers instance. mailer may be nil when no
// transport is configured; password recovery then fails with an error flash.
func NewAuth(
	authService *auth.Service,
	resetService *reset.Service,
	sessions *session.Manager,
	flashStore *flash.Store,
	mailer Mailer,
	sendTimeout time.Duration,
) *AuthHandlers {
	return &AuthHandlers{
		base:        base{flash: flashStore},
		auth:        authService,
		reset:       resetService,
		sessions:    sessions,
		mailer:      mailer,
		sendTimeout: sendTimeout,
	}
}

// SignupPage renders the registration form.
func (h *AuthHandlers) SignupPage(c echo.Context) error {
	return h.render(c, http.StatusOK, "signup.html", "Sign up", nil)
}

// Signup registers a new user, establishes a session and redirects to the
// login page.
func (h *AuthHandlers) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")

	if username == "" || password == "" {
		h.flash.Error(c, i18n.T(ctx, "flash_missing_fields"))
		return h.render(c, http.StatusOK, "signup.html", "Sign up", nil)
	}

	user, err := h.auth.Register(ctx, username, password)
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			h.flash.Error(c, i18n.T(ctx, "flash_username_taken"))
			return h.render(c, http.StatusOK, "signup.html", "Sign up", nil)
		}
		slog.Error("signup_failed", "error", err)
		h.flash.Error(c, i18n.T(ctx, "flash_store_error"))
		return h.render(c, http.StatusOK, "signup.html", "Sign up", nil)
	}

	// A session failure must not block the registration success path.
	cookie, err := h.sessions.Create(ctx, user.ID)
	if err != nil {
		slog.Error("session_create_failed", "error", err, "user_id", user.ID)
	} else {
		c.SetCookie(cookie)
	}

	h.flash.Success(c, i18n.T(ctx, "flash_signup_success"))
	return c.Redirect(http.StatusSeeOther, "/login")
}

// LoginPage renders the login form.
func (h *AuthHandlers) LoginPage(c echo.Context) error {
	return h.render(c, http.StatusOK, "login.html", "Login", nil)
}

// Login authenticates the user and establishes a fresh session. Unknown
// usernames and wrong passwords produce the same flash message.
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")

	user, err := h.auth.Login(ctx, username, password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			slog.Error("login_failed", "error", err)
		}
		h.flash.Error(c, i18n.T(ctx, "flash_invalid_credentials"))
		return h.render(c, http.StatusOK, "login.html", "Login", nil)
	}

	cookie, err := h.sessions.Create(ctx, user.ID)
	if err != nil {
		slog.Error("session_create_failed", "error", err, "user_id", user.ID)
		h.flash.Error(c, i18n.T(ctx, "flash_store_error"))
		return h.render(c, http.StatusOK, "login.html", "Login", nil)
	}
	c.SetCookie(cookie)

	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Logout destroys the session and redirects to the landing page. A store
// failure is reported but never blocks the logout.
func (h *AuthHandlers) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	cookie, err := h.sessions.Destroy(ctx, c.Request())
	if err != nil {
		slog.Error("logout_failed", "error", err)
		h.flash.Error(c, i18n.T(ctx, "flash_logout_error"))
	} else {
		h.flash.Success(c, i18n.T(ctx, "flash_logout_success"))
	}
	c.SetCookie(cookie)

	return c.Redirect(http.StatusSeeOther, "/")
}

// ForgotPage renders the forgot-password form.
func (h *AuthHandlers) ForgotPage(c echo.Context) error {
	return h.render(c, http.StatusOK, "forgot.html", "Forgot password", nil)
}

// Forgot issues a reset token and emails the reset link. Unknown usernames
// get the same response as known ones, so account existence stays private.
func (h *AuthHandlers) Forgot(c echo.Context) error {
	ctx := c.Request().Context()
	username := strings.TrimSpace(c.FormValue("username"))

	if username == "" {
		h.flash.Error(c, i18n.T(ctx, "flash_missing_fields"))
		return h.render(c, http.StatusOK, "forgot.html", "Forgot password", nil)
	}

	token, user, err := h.reset.Issue(ctx, username)
	switch {
	case errors.Is(err, auth.ErrUserNotFound):
		h.flash.Success(c, i18n.T(ctx, "flash_forgot_sent"))
		return c.Redirect(http.StatusSeeOther, "/login")
	case err != nil:
		slog.Error("reset_issue_failed", "error", err)
		h.flash.Error(c, i18n.T(ctx, "flash_store_error"))
		return h.render(c, http.StatusOK, "forgot.html", "Forgot password", nil)
	}

	if h.mailer == nil {
		slog.Error("reset_mail_failed", "reason", "mail transport not configured", "user_id", user.ID)
		h.flash.Error(c, i18n.T(ctx, "flash_forgot_error"))
		return h.render(c, http.StatusOK, "forgot.html", "Forgot password", nil)
	}

	// The send is awaited under a timeout before responding; the token stays
	// valid if the transport fails.
	sendCtx, cancel := context.WithTimeout(ctx, h.sendTimeout)
	defer cancel()
	if err := h.mailer.SendPasswordReset(sendCtx, user.Username, token); err != nil {
		slog.Error("reset_mail_failed", "error", err, "user_id", user.ID)
		h.flash.Error(c, i18n.T(ctx, "flash_forgot_error"))
		return h.render(c, http.StatusOK, "forgot.html", "Forgot password", nil)
	}

	h.flash.Success(c, i18n.T(ctx, "flash_forgot_sent"))
	return c.Redirect(http.StatusSeeOther, "/login")
}

// ResetPage validates the token from the link and renders the reset form.
func (h *AuthHandlers) ResetPage(c echo.Context) error {
	ctx := c.Request().Context()
	token := c.Param("token")

	if err := h.reset.Validate(ctx, token); err != nil {
		if !errors.Is(err, reset.ErrTokenInvalid) {
			slog.Error("reset_validate_failed", "error", err)
		}
		h.flash.Error(c, i18n.T(ctx, "flash_token_invalid"))
		return c.Redirect(http.StatusSeeOther, "/forgot")
	}

	return h.render(c, http.StatusOK, "reset.html", "Reset password", map[string]any{
		"Token": token,
	})
}

// Reset consumes the token and sets the new password. The token is
// re-checked here; the GET-step validation is not trusted.
func (h *AuthHandlers) Reset(c echo.Context) error {
	ctx := c.Request().Context()
	token := c.Param("token")
	password := c.FormValue("password")
	confirm := c.FormValue("confirm")

	if password == "" || password != confirm {
		h.flash.Error(c, i18n.T(ctx, "flash_password_mismatch"))
		return h.render(c, http.StatusOK, "reset.html", "Reset password", map[string]any{
			"Token": token,
		})
	}

	if err := h.reset.Reset(ctx, token, password); err != nil {
		if errors.Is(err, reset.ErrTokenInvalid) {
			h.flash.Error(c, i18n.T(ctx, "flash_token_invalid"))
			return c.Redirect(http.StatusSeeOther, "/forgot")
		}
		slog.Error("reset_failed", "error", err)
		h.flash.Error(c, i18n.T(ctx, "flash_reset_error"))
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	h.flash.Success(c, i18n.T(ctx, "flash_reset_success"))
	return c.Redirect(http.StatusSeeOther, "/login")
}
