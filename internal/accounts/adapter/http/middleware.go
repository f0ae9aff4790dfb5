package http

import (
	"context"
	"errors"

	"memberhub/internal/accounts/domain/model"
	"memberhub/internal/accounts/usecase"
	"memberhub/internal/shared/contextkeys"
	apperrors "memberhub/internal/shared/errors"
	"memberhub/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// sessionLocalKey is where LoadSession parks the resolved session for the
// rest of the request pipeline.
const sessionLocalKey = "session"

// AuthMiddleware implements the request authentication states: anonymous,
// authenticated and admin. Admin is not a separate transition; it is
// derived from the admin flag copied into the session payload at login.
type AuthMiddleware struct {
	usecase    usecase.AccountUsecaseInterface
	cookieName string
	logger     logger.Logger
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(uc usecase.AccountUsecaseInterface, cookieName string, log logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		usecase:    uc,
		cookieName: cookieName,
		logger:     log.WithComponent("auth-middleware"),
	}
}

// LoadSession resolves the session cookie on every request. A missing,
// invalid or expired session is the anonymous state, never an error; the
// request continues either way. Store failures render the generic server
// error instead.
func (m *AuthMiddleware) LoadSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(m.cookieName)
		if token == "" {
			return c.Next()
		}

		session, err := m.usecase.CurrentSession(c.Context(), token)
		if err != nil {
			if errors.Is(err, usecase.ErrSessionNotFound) {
				return c.Next()
			}
			appErr := apperrors.WrapError(err, "session lookup failed")
			m.logger.WithContext(c.UserContext()).WithFields(map[string]interface{}{
				"error_type": string(appErr.Type),
			}).Error("session lookup failed: ", appErr)
			return c.Status(fiber.StatusInternalServerError).Render("error", fiber.Map{})
		}

		c.Locals(sessionLocalKey, session)

		ctx := c.UserContext()
		ctx = context.WithValue(ctx, contextkeys.SessionIDKey, session.ID)
		ctx = context.WithValue(ctx, contextkeys.UserEmailKey, session.Data.Email)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// RequireAuth gates authenticated-only routes. Anonymous requests are
// redirected rather than erroring.
func (m *AuthMiddleware) RequireAuth(redirectTo string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := SessionFromCtx(c); !ok {
			return c.Redirect(redirectTo, fiber.StatusFound)
		}
		return c.Next()
	}
}

// RequireAdmin gates admin-only routes. Anonymous requests are redirected
// home; an authenticated session without the admin flag gets the dedicated
// forbidden page with a 403.
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := SessionFromCtx(c)
		if !ok {
			return c.Redirect("/", fiber.StatusFound)
		}

		if !session.Data.Admin {
			return c.Status(fiber.StatusForbidden).Render("forbidden", fiber.Map{
				"Session": session,
			})
		}

		return c.Next()
	}
}

// RequestContext copies the request identifier assigned by the requestid
// middleware into the user context, so log lines emitted anywhere below it
// carry the id.
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rid, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok && rid != "" {
			c.SetUserContext(context.WithValue(c.UserContext(), contextkeys.RequestIDKey, rid))
		}
		return c.Next()
	}
}

// SessionFromCtx returns the session resolved by LoadSession, if any.
func SessionFromCtx(c *fiber.Ctx) (*model.Session, bool) {
	session, ok := c.Locals(sessionLocalKey).(*model.Session)
	return session, ok && session != nil
}
