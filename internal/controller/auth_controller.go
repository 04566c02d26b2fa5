package controller

import (
	"personal-notes-be/internal/dto"
	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/pkg/serverutils"
	"personal-notes-be/internal/pkg/session"
	"personal-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	VerifyOTP(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	ResendOTP(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
}

type authController struct {
	service        service.IAuthService
	sessions       *session.Manager
	authMiddleware fiber.Handler
}

func NewAuthController(service service.IAuthService, sessions *session.Manager, authMiddleware fiber.Handler) IAuthController {
	return &authController{
		service:        service,
		sessions:       sessions,
		authMiddleware: authMiddleware,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/register", c.Register)
	h.Post("/verify-otp", c.VerifyOTP)
	h.Post("/login", c.Login)
	h.Post("/resend-otp", c.ResendOTP)
	h.Get("/me", c.authMiddleware, c.Me)
	h.Post("/logout", c.Logout)
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequestError("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Register(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse(
		"User registered successfully. Please verify your email with the OTP sent.", res))
}

func (c *authController) VerifyOTP(ctx *fiber.Ctx) error {
	var req dto.VerifyOTPRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequestError("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.VerifyOTP(ctx.Context(), &req)
	if err != nil {
		return err
	}

	ctx.Cookie(c.sessions.Cookie(res.Token))
	return ctx.JSON(serverutils.SuccessResponse("Email verified successfully", res.User))
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequestError("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.Context(), &req)
	if err != nil {
		return err
	}

	ctx.Cookie(c.sessions.Cookie(res.Token))
	return ctx.JSON(serverutils.SuccessResponse("Login successful", res.User))
}

func (c *authController) ResendOTP(ctx *fiber.Ctx) error {
	var req dto.ResendOTPRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequestError("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.ResendOTP(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("OTP resent successfully", nil))
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	user, ok := ctx.Locals(serverutils.LocalsUser).(*entity.User)
	if !ok {
		return serverutils.NewUnauthorizedError("Not authenticated")
	}

	return ctx.JSON(serverutils.SuccessResponse("Authenticated", dto.MeResponse{
		Id:            user.Id,
		Name:          user.FullName,
		Email:         user.Email,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
	}))
}

// Logout only clears the cookie. Sessions are not tracked server-side, so
// an already issued token stays valid until it expires on its own.
func (c *authController) Logout(ctx *fiber.Ctx) error {
	ctx.Cookie(c.sessions.ClearCookie())
	return ctx.JSON(serverutils.SuccessResponse[any]("Logged out successfully", nil))
}
