package http

import (
	"errors"
	"net/url"
	"time"

	"memberhub/internal/accounts/usecase"
	apperrors "memberhub/internal/shared/errors"
	"memberhub/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// Messages rendered into the forms. Login failures deliberately use one
// generic message for unknown email and wrong password alike.
const (
	msgEmailTaken       = "That email is already registered."
	msgLoginFailed      = "Invalid email or password."
	msgMalformedRequest = "The submitted form could not be read."
)

// AccountHTTPHandler serves the page routes: signup, login, members area,
// logout and the admin panel.
type AccountHTTPHandler struct {
	usecase        usecase.AccountUsecaseInterface
	logger         logger.Logger
	cookieName     string
	cookiePath     string
	cookieDomain   string
	cookieMaxAge   int
	cookieSecure   bool
	cookieHTTPOnly bool
	cookieSameSite string
}

// NewAccountHTTPHandler creates a new account HTTP handler
func NewAccountHTTPHandler(
	uc usecase.AccountUsecaseInterface,
	log logger.Logger,
	cookieName, cookiePath, cookieDomain string,
	cookieMaxAge int,
	cookieSecure, cookieHTTPOnly bool,
	cookieSameSite string,
) *AccountHTTPHandler {
	return &AccountHTTPHandler{
		usecase:        uc,
		logger:         log.WithComponent("account-http"),
		cookieName:     cookieName,
		cookiePath:     cookiePath,
		cookieDomain:   cookieDomain,
		cookieMaxAge:   cookieMaxAge,
		cookieSecure:   cookieSecure,
		cookieHTTPOnly: cookieHTTPOnly,
		cookieSameSite: cookieSameSite,
	}
}

// SetupRoutesWithMiddleware wires the full route table. LoadSession runs on
// everything; authenticated and admin gates apply per route group.
func (h *AccountHTTPHandler) SetupRoutesWithMiddleware(router fiber.Router, middleware *AuthMiddleware) {
	router.Use(middleware.LoadSession())

	// Public routes, rendered differently when a session is present
	router.Get("/", h.Home)
	router.Get("/signup", h.SignupForm)
	router.Post("/signupSubmit", h.SignupSubmit)
	router.Get("/login", h.LoginForm)
	router.Post("/loginSubmit", h.LoginSubmit)
	router.Get("/logout", h.Logout)

	// Authenticated-only routes redirect home when anonymous
	router.Get("/members", middleware.RequireAuth("/"), h.Members)

	// Admin-only routes
	admin := router.Group("/admin", middleware.RequireAdmin())
	admin.Get("/", h.AdminPanel)
	admin.Post("/promoteUser/:email", h.PromoteUser)
	admin.Post("/demoteUser/:email", h.DemoteUser)

	// Catch-all
	router.Use(h.NotFound)
}

// Home renders the landing page
func (h *AccountHTTPHandler) Home(c *fiber.Ctx) error {
	session, _ := SessionFromCtx(c)
	return c.Render("home", fiber.Map{
		"Session": session,
	})
}

// SignupForm renders the empty signup form
func (h *AccountHTTPHandler) SignupForm(c *fiber.Ctx) error {
	session, _ := SessionFromCtx(c)
	return c.Render("signup", fiber.Map{
		"Session": session,
		"Form":    usecase.SignupForm{},
	})
}

// SignupSubmit validates the signup form, creates the user and establishes
// a session. Validation failures and duplicate emails re-render the form
// with the message at HTTP 200.
func (h *AccountHTTPHandler) SignupSubmit(c *fiber.Ctx) error {
	var form usecase.SignupForm
	if err := c.BodyParser(&form); err != nil {
		return c.Render("signup", fiber.Map{
			"Form":  form,
			"Error": msgMalformedRequest,
		})
	}

	if err := form.Validate(); err != nil {
		return c.Render("signup", fiber.Map{
			"Form":  form,
			"Error": err.Error(),
		})
	}

	session, token, err := h.usecase.SignUp(c.Context(), form)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailTaken) {
			return c.Render("signup", fiber.Map{
				"Form":  form,
				"Error": msgEmailTaken,
			})
		}
		return h.renderServerError(c, "signup failed", err)
	}

	h.setCookie(c, token, session.ExpiresAt)
	return c.Redirect("/members", fiber.StatusSeeOther)
}

// LoginForm renders the empty login form
func (h *AccountHTTPHandler) LoginForm(c *fiber.Ctx) error {
	session, _ := SessionFromCtx(c)
	return c.Render("login", fiber.Map{
		"Session": session,
		"Form":    usecase.LoginForm{},
	})
}

// LoginSubmit validates the login form and establishes a session. All
// credential failures re-render the form with the same generic message at
// HTTP 200.
func (h *AccountHTTPHandler) LoginSubmit(c *fiber.Ctx) error {
	var form usecase.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return c.Render("login", fiber.Map{
			"Form":  form,
			"Error": msgMalformedRequest,
		})
	}

	if err := form.Validate(); err != nil {
		return c.Render("login", fiber.Map{
			"Form":  form,
			"Error": err.Error(),
		})
	}

	session, token, err := h.usecase.Login(c.Context(), form)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			return c.Render("login", fiber.Map{
				"Form":  form,
				"Error": msgLoginFailed,
			})
		}
		return h.renderServerError(c, "login failed", err)
	}

	h.setCookie(c, token, session.ExpiresAt)
	return c.Redirect("/members", fiber.StatusSeeOther)
}

// Members renders the members-only page
func (h *AccountHTTPHandler) Members(c *fiber.Ctx) error {
	session, _ := SessionFromCtx(c)
	return c.Render("members", fiber.Map{
		"Session": session,
	})
}

// Logout destroys the session and clears the cookie. A destroyed session
// identifier can never authorize a request again. The cookie is cleared
// before the store is touched, so the browser forgets the session even when
// the destroy fails.
func (h *AccountHTTPHandler) Logout(c *fiber.Ctx) error {
	token := c.Cookies(h.cookieName)
	h.clearCookie(c)

	if token != "" {
		if err := h.usecase.Logout(c.Context(), token); err != nil {
			return h.renderServerError(c, "logout failed", err)
		}
	}

	return c.Redirect("/", fiber.StatusFound)
}

// AdminPanel renders the user listing with promote/demote controls
func (h *AccountHTTPHandler) AdminPanel(c *fiber.Ctx) error {
	session, _ := SessionFromCtx(c)

	users, err := h.usecase.ListUsers(c.Context())
	if err != nil {
		return h.renderServerError(c, "user listing failed", err)
	}

	return c.Render("admin", fiber.Map{
		"Session": session,
		"Users":   users,
	})
}

// PromoteUser grants the admin role to the target email and redirects back
// to the listing whether or not the email existed.
func (h *AccountHTTPHandler) PromoteUser(c *fiber.Ctx) error {
	email := pathEmail(c)
	if err := h.usecase.PromoteUser(c.Context(), email); err != nil {
		return h.renderServerError(c, "promote failed", err)
	}
	return c.Redirect("/admin", fiber.StatusSeeOther)
}

// DemoteUser revokes the admin role from the target email and redirects
// back to the listing whether or not the email existed.
func (h *AccountHTTPHandler) DemoteUser(c *fiber.Ctx) error {
	email := pathEmail(c)
	if err := h.usecase.DemoteUser(c.Context(), email); err != nil {
		return h.renderServerError(c, "demote failed", err)
	}
	return c.Redirect("/admin", fiber.StatusSeeOther)
}

// NotFound is the catch-all for unmapped routes
func (h *AccountHTTPHandler) NotFound(c *fiber.Ctx) error {
	session, _ := SessionFromCtx(c)
	return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{
		"Session": session,
	})
}

// Helper methods

// pathEmail extracts the target email from the route parameter. Emails
// arrive percent-encoded in the path.
func pathEmail(c *fiber.Ctx) string {
	raw := c.Params("email")
	if email, err := url.PathUnescape(raw); err == nil {
		return email
	}
	return raw
}

// renderServerError classifies the cause, logs it server-side and renders
// the generic error page; no detail leaks to the client.
func (h *AccountHTTPHandler) renderServerError(c *fiber.Ctx, msg string, err error) error {
	appErr := apperrors.WrapError(err, msg)
	h.logger.WithContext(c.UserContext()).WithFields(map[string]interface{}{
		"error_type": string(appErr.Type),
	}).Error(msg+": ", appErr)
	return c.Status(fiber.StatusInternalServerError).Render("error", fiber.Map{})
}

func (h *AccountHTTPHandler) setCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     h.cookiePath,
		Domain:   h.cookieDomain,
		MaxAge:   h.cookieMaxAge,
		Secure:   h.cookieSecure,
		HTTPOnly: h.cookieHTTPOnly,
		SameSite: h.cookieSameSite,
		Expires:  expiresAt,
	})
}

func (h *AccountHTTPHandler) clearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     h.cookiePath,
		Domain:   h.cookieDomain,
		MaxAge:   -1,
		Secure:   h.cookieSecure,
		HTTPOnly: h.cookieHTTPOnly,
		SameSite: h.cookieSameSite,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
