package serverutils

import (
	"personal-notes-be/internal/pkg/session"
	"personal-notes-be/internal/repository/specification"
	"personal-notes-be/internal/repository/unitofwork"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the auth middleware for downstream handlers.
const (
	LocalsUserId = "user_id"
	LocalsUser   = "user"
)

// NewAuthMiddleware guards protected routes. The token is taken from the
// session cookie, falling back to a bearer Authorization header. A valid
// token must still resolve to a live user record; the resolved user is
// attached to the request with credential and OTP fields stripped.
//
// Validation is per request with no cache or revocation list, so a token
// stays valid for its full window regardless of logouts.
func NewAuthMiddleware(sessions *session.Manager, uowFactory unitofwork.RepositoryFactory) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := ctx.Cookies(session.CookieName)
		if tokenStr == "" {
			authHeader := ctx.Get("Authorization")
			if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
				tokenStr = authHeader[7:]
			}
		}
		if tokenStr == "" {
			return notAuthenticated(ctx)
		}

		userId, err := sessions.Parse(tokenStr)
		if err != nil {
			return notAuthenticated(ctx)
		}

		uow := uowFactory.NewUnitOfWork(ctx.Context())
		user, err := uow.UserRepository().FindOne(ctx.Context(), specification.ByID{ID: userId})
		if err != nil || user == nil {
			return notAuthenticated(ctx)
		}

		ctx.Locals(LocalsUserId, user.Id.String())
		ctx.Locals(LocalsUser, user.Sanitized())
		return ctx.Next()
	}
}

func notAuthenticated(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusUnauthorized).
		JSON(ErrorResponse(fiber.StatusUnauthorized, "Not authenticated"))
}
