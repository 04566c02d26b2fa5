package controller

import (
	"personal-notes-be/internal/pkg/serverutils"
	"personal-notes-be/internal/pkg/session"
	"personal-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Callback(ctx *fiber.Ctx) error
}

type oauthController struct {
	service   service.IOAuthService
	sessions  *session.Manager
	clientURL string
}

func NewOAuthController(service service.IOAuthService, sessions *session.Manager, clientURL string) IOAuthController {
	return &oauthController{
		service:   service,
		sessions:  sessions,
		clientURL: clientURL,
	}
}

func (c *oauthController) RegisterRoutes(r fiber.Router) {
	// e.g. /auth/google, /auth/google/callback
	h := r.Group("/auth")
	h.Get("/:provider", c.Login)
	h.Get("/:provider/callback", c.Callback)
}

func (c *oauthController) Login(ctx *fiber.Ctx) error {
	provider := ctx.Params("provider")

	url, err := c.service.GetLoginURL(provider)
	if err != nil {
		return serverutils.NewBadRequestError(err.Error())
	}
	return ctx.Redirect(url)
}

func (c *oauthController) Callback(ctx *fiber.Ctx) error {
	provider := ctx.Params("provider")
	code := ctx.Query("code")
	if code == "" {
		return serverutils.NewBadRequestError("Missing code")
	}

	res, err := c.service.HandleCallback(ctx.Context(), provider, code)
	if err != nil {
		return err
	}

	// The session rides back to the front-end as a cookie, same as the
	// password flow; nothing sensitive ends up in the redirect URL.
	ctx.Cookie(c.sessions.Cookie(res.Token))
	return ctx.Redirect(c.clientURL, fiber.StatusTemporaryRedirect)
}
