// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"codeberg.org/oliverandrich/kingcooking/internal/config"
	"codeberg.org/oliverandrich/kingcooking/internal/flash"
	"codeberg.org/oliverandrich/kingcooking/internal/handlers"
	"codeberg.org/oliverandrich/kingcooking/internal/i18n"
	"codeberg.org/oliverandrich/kingcooking/internal/repository"
	"codeberg.org/oliverandrich/kingcooking/internal/services/auth"
	"codeberg.org/oliverandrich/kingcooking/internal/services/reset"
	"codeberg.org/oliverandrich/kingcooking/internal/services/session"
	"codeberg.org/oliverandrich/kingcooking/internal/testutil"
	"codeberg.org/oliverandrich/kingcooking/internal/views"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHashKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

// fakeMailer records the last password-reset mail instead of sending it.
type fakeMailer struct {
	to    string
	token string
	err   error
	calls int
}

func (m *fakeMailer) SendPasswordReset(_ context.Context, to, token string) error {
	m.calls++
	m.to = to
	m.token = token
	return m.err
}

// app is a fully wired application under test with a cookie jar, so tests
// can walk multi-request flows the way a browser would.
type app struct {
	e      *echo.Echo
	repo   *repository.Repository
	mailer *fakeMailer
	jar    map[string]*http.Cookie
}

func newTestApp(t *testing.T) *app {
	t.Helper()
	require.NoError(t, i18n.Init())

	_, repo := testutil.NewTestDB(t)

	sessionCfg := &config.SessionConfig{CookieName: "_session", MaxAge: 3600, HashKey: testHashKey}
	sessions, err := session.NewManager(sessionCfg, repo, false)
	require.NoError(t, err)
	flashStore, err := flash.NewStore(sessionCfg, false)
	require.NoError(t, err)

	mailer := &fakeMailer{}
	authService := auth.NewService(repo)
	resetService := reset.NewService(repo, authService, time.Hour)

	e := echo.New()
	renderer, err := views.New()
	require.NoError(t, err)
	e.Renderer = renderer

	e.Pre(middleware.MethodOverrideWithConfig(middleware.MethodOverrideConfig{
		Getter: middleware.MethodFromForm("_method"),
	}))
	e.Use(loadUser(repo, sessions))

	h := handlers.New(repo, flashStore)
	authH := handlers.NewAuth(authService, resetService, sessions, flashStore, mailer, time.Second)
	recipes := handlers.NewRecipes(repo, flashStore)
	favorites := handlers.NewFavorites(repo, flashStore)
	scheduleH := handlers.NewSchedule(repo, flashStore)

	e.GET("/health", h.Health)
	e.GET("/", h.Index)
	e.GET("/signup", authH.SignupPage)
	e.POST("/signup", authH.Signup)
	e.GET("/login", authH.LoginPage)
	e.POST("/login", authH.Login)
	e.GET("/logout", authH.Logout)
	e.GET("/forgot", authH.ForgotPage)
	e.POST("/forgot", authH.Forgot)
	e.GET("/reset/:token", authH.ResetPage)
	e.POST("/reset/:token", authH.Reset)

	dashboard := e.Group("/dashboard", requireAuth())
	dashboard.GET("", h.Dashboard)
	dashboard.GET("/myreceipes", recipes.List)
	dashboard.GET("/newreceipe", recipes.NewPage)
	dashboard.POST("/newreceipe", recipes.Create)
	dashboard.GET("/myreceipes/:id", recipes.Show)
	dashboard.POST("/myreceipes/:id", recipes.CreateIngredient)
	dashboard.DELETE("/myreceipes/:id", recipes.Delete)
	dashboard.GET("/myreceipes/:id/newingredient", recipes.NewIngredientPage)
	dashboard.POST("/myreceipes/:id/:ingredientID/edit", recipes.EditIngredientPage)
	dashboard.PUT("/myreceipes/:id/:ingredientID", recipes.UpdateIngredient)
	dashboard.DELETE("/myreceipes/:id/:ingredientID", recipes.DeleteIngredient)
	dashboard.GET("/favourites", favorites.List)
	dashboard.GET("/favourites/newfavourite", favorites.NewPage)
	dashboard.POST("/favourites", favorites.Create)
	dashboard.DELETE("/favourites/:id", favorites.Delete)
	dashboard.GET("/schedule", scheduleH.List)
	dashboard.GET("/schedule/newschedule", scheduleH.NewPage)
	dashboard.POST("/schedule", scheduleH.Create)
	dashboard.DELETE("/schedule/:id", scheduleH.Delete)

	return &app{e: e, repo: repo, mailer: mailer, jar: map[string]*http.Cookie{}}
}

func loadUser(repo *repository.Repository, sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			sess, err := sessions.Resolve(ctx, c.Request())
			if err != nil {
				return next(c)
			}
			user, err := repo.GetUserByID(ctx, sess.UserID)
			if err != nil {
				return next(c)
			}
			c.SetRequest(c.Request().WithContext(session.WithUser(ctx, user)))
			return next(c)
		}
	}
}

func requireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if session.UserFrom(c.Request().Context()) == nil {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			return next(c)
		}
	}
}

// do performs a request carrying the jar cookies and folds response cookies
// back into the jar.
func (a *app) do(t *testing.T, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	for _, cookie := range a.jar {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)

	res := rec.Result()
	defer res.Body.Close()
	for _, cookie := range res.Cookies() {
		if cookie.MaxAge < 0 {
			delete(a.jar, cookie.Name)
		} else {
			a.jar[cookie.Name] = cookie
		}
	}
	return rec
}

func (a *app) signup(t *testing.T, username, password string) {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/signup", url.Values{
		"username": {username},
		"password": {password},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
}

func (a *app) login(t *testing.T, username, password string) {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/login", url.Values{
		"username": {username},
		"password": {password},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))
}

func TestHealth(t *testing.T) {
	a := newTestApp(t)

	rec := a.do(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestSignupLoginDashboard(t *testing.T) {
	a := newTestApp(t)

	a.signup(t, "alice@example.com", "secret123")
	a.login(t, "alice@example.com", "secret123")

	rec := a.do(t, http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice@example.com")
}

func TestSignupDuplicateUsername(t *testing.T) {
	a := newTestApp(t)
	a.signup(t, "alice@example.com", "secret123")

	rec := a.do(t, http.MethodPost, "/signup", url.Values{
		"username": {"alice@example.com"},
		"password": {"other456"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Username already exists")
}

func TestSignupMissingFields(t *testing.T) {
	a := newTestApp(t)

	rec := a.do(t, http.MethodPost, "/signup", url.Values{"username": {"alice@example.com"}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please fill in all required fields")
}

func TestLoginFailuresShareTheSameCopy(t *testing.T) {
	a := newTestApp(t)
	a.signup(t, "alice@example.com", "secret123")

	wrongPassword := a.do(t, http.MethodPost, "/login", url.Values{
		"username": {"alice@example.com"},
		"password": {"nope"},
	})
	unknownUser := a.do(t, http.MethodPost, "/login", url.Values{
		"username": {"nobody@example.com"},
		"password": {"nope"},
	})

	assert.Equal(t, http.StatusOK, wrongPassword.Code)
	assert.Equal(t, http.StatusOK, unknownUser.Code)
	assert.Contains(t, wrongPassword.Body.String(), "Incorrect username or password")
	assert.Contains(t, unknownUser.Body.String(), "Incorrect username or password")
}

func TestDashboardRequiresLogin(t *testing.T) {
	a := newTestApp(t)

	rec := a.do(t, http.MethodGet, "/dashboard", nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func TestLogout(t *testing.T) {
	a := newTestApp(t)
	a.signup(t, "alice@example.com", "secret123")
	a.login(t, "alice@example.com", "secret123")

	rec := a.do(t, http.MethodGet, "/logout", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	rec = a.do(t, http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestForgotResetLogin(t *testing.T) {
	a := newTestApp(t)
	a.signup(t, "alice@example.com", "secret123")

	rec := a.do(t, http.MethodPost, "/forgot", url.Values{"username": {"alice@example.com"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, 1, a.mailer.calls)
	require.Equal(t, "alice@example.com", a.mailer.to)
	require.NotEmpty(t, a.mailer.token)

	rec = a.do(t, http.MethodGet, "/reset/"+a.mailer.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(t, http.MethodPost, "/reset/"+a.mailer.token, url.Values{
		"password": {"brandnew9"},
		"confirm":  {"brandnew9"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))

	a.login(t, "alice@example.com", "brandnew9")
}

func TestForgotUnknownUserLooksTheSame(t *testing.T) {
	a := newTestApp(t)

	rec := a.do(t, http.MethodPost, "/forgot", url.Values{"username": {"nobody@example.com"}})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	assert.Zero(t, a.mailer.calls)
}

func TestResetPasswordMismatch(t *testing.T) {
	a := newTestApp(t)
	a.signup(t, "alice@example.com", "secret123")
	a.do(t, http.MethodPost, "/forgot", url.Values{"username": {"alice@example.com"}})

	rec := a.do(t, http.MethodPost, "/reset/"+a.mailer.token, url.Values{
		"password": {"one11111"},
		"confirm":  {"two22222"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Passwords do not match")

	// The token survives a mismatch.
	rec = a.do(t, http.MethodGet, "/reset/"+a.mailer.token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestResetTokenSingleUse(t *testing.T) {
	a := newTestApp(t)
	a.signup(t, "alice@example.com", "secret123")
	a.do(t, http.MethodPost, "/forgot", url.Values{"username": {"alice@example.com"}})
	token := a.mailer.token

	rec := a.do(t, http.MethodPost, "/reset/"+token, url.Values{
		"password": {"brandnew9"},
		"confirm":  {"brandnew9"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = a.do(t, http.MethodGet, "/reset/"+token, nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/forgot", rec.Header().Get(echo.HeaderLocation))

	rec = a.do(t, http.MethodPost, "/reset/"+token, url.Values{
		"password": {"another10"},
		"confirm":  {"another10"},
	})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/forgot", rec.Header().Get(echo.HeaderLocation))
}

func TestResetInvalidatesSessions(t *testing.T) {
	a := newTestApp(t)
	a.signup(t, "alice@example.com", "secret123")
	a.login(t, "alice@example.com", "secret123")

	a.do(t, http.MethodPost, "/forgot", url.Values{"username": {"alice@example.com"}})
	rec := a.do(t, http.MethodPost, "/reset/"+a.mailer.token, url.Values{
		"password": {"brandnew9"},
		"confirm":  {"brandnew9"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = a.do(t, http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func TestForgotMailFailureKeepsTokenValid(t *testing.T) {
	a := newTestApp(t)
	a.signup(t, "alice@example.com", "secret123")
	a.mailer.err = assert.AnError

	rec := a.do(t, http.MethodPost, "/forgot", url.Values{"username": {"alice@example.com"}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error sending email")

	// The issued token still works once the mail problem is sorted out.
	rec = a.do(t, http.MethodGet, "/reset/"+a.mailer.token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
