// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"codeberg.org/oliverandrich/kingcooking/internal/config"
	"codeberg.org/oliverandrich/kingcooking/internal/flash"
	"codeberg.org/oliverandrich/kingcooking/internal/i18n"
	"codeberg.org/oliverandrich/kingcooking/internal/repository"
	"codeberg.org/oliverandrich/kingcooking/internal/services/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func setupMiddleware(e *echo.Echo, cfg *config.Config, repo *repository.Repository, sessions *session.Manager) {
	secure := strings.HasPrefix(cfg.Server.BaseURL, "https://")

	// Forms tunnel PUT and DELETE through POST; the override must run
	// before routing.
	e.Pre(middleware.MethodOverrideWithConfig(middleware.MethodOverrideConfig{
		Getter: middleware.MethodFromForm("_method"),
	}))

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger())
	e.Use(middleware.Secure())
	e.Use(middleware.Gzip())
	e.Use(middleware.BodyLimit(fmt.Sprintf("%dM", cfg.Server.MaxBodySize)))
	e.Use(csrfMiddleware(secure))
	e.Use(i18nMiddleware())
	e.Use(loadUser(repo, sessions))
}

// csrfMiddleware configures CSRF protection.
func csrfMiddleware(secure bool) echo.MiddlewareFunc {
	return middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup:    "form:csrf_token,header:X-CSRF-Token",
		CookieName:     "_csrf",
		CookiePath:     "/",
		CookieSecure:   secure,
		CookieHTTPOnly: true,
		CookieSameSite: http.SameSiteLaxMode,
	})
}

// requestLogger returns middleware that logs requests using slog.
func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}

			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				slog.LogAttrs(c.Request().Context(), slog.LevelError, "request", attrs...)
			} else {
				slog.LogAttrs(c.Request().Context(), slog.LevelInfo, "request", attrs...)
			}

			return nil
		},
	})
}

// i18nMiddleware sets the locale based on the Accept-Language header.
func i18nMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			acceptLang := c.Request().Header.Get("Accept-Language")
			lang := i18n.MatchLanguage(acceptLang)
			ctx := i18n.WithLocale(c.Request().Context(), lang)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// loadUser resolves the session cookie to a user and stores the user in the
// request context. Requests without a valid session pass through untouched.
func loadUser(repo *repository.Repository, sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			sess, err := sessions.Resolve(ctx, c.Request())
			if err != nil {
				if !errors.Is(err, session.ErrNoSession) {
					slog.Error("session_resolve_failed", "error", err)
				}
				return next(c)
			}

			user, err := repo.GetUserByID(ctx, sess.UserID)
			if err != nil {
				if !errors.Is(err, repository.ErrNotFound) {
					slog.Error("session_user_load_failed", "error", err, "user_id", sess.UserID)
				}
				return next(c)
			}

			c.SetRequest(c.Request().WithContext(session.WithUser(ctx, user)))
			return next(c)
		}
	}
}

// requireAuth redirects unauthenticated requests to the login page.
func requireAuth(flashStore *flash.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if session.UserFrom(c.Request().Context()) == nil {
				flashStore.Error(c, i18n.T(c.Request().Context(), "flash_login_required"))
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			return next(c)
		}
	}
}
