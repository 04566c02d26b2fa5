package controller

import (
	"personal-notes-be/internal/dto"
	"personal-notes-be/internal/pkg/serverutils"
	"personal-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService    service.INoteService
	authMiddleware fiber.Handler
}

func NewNoteController(noteService service.INoteService, authMiddleware fiber.Handler) INoteController {
	return &noteController{
		noteService:    noteService,
		authMiddleware: authMiddleware,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notes")
	h.Use(c.authMiddleware)
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	userId := requestUserId(ctx)

	res, err := c.noteService.List(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Notes fetched", res))
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	userId := requestUserId(ctx)

	var req dto.CreateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequestError("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Note created", res))
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	userId := requestUserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewNotFoundError("Note not found")
	}

	var req dto.UpdateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequestError("Invalid request body")
	}
	req.Id = id

	res, err := c.noteService.Update(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Note updated", res))
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	userId := requestUserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewNotFoundError("Note not found")
	}

	if err := c.noteService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Note deleted", nil))
}

func requestUserId(ctx *fiber.Ctx) uuid.UUID {
	userIdStr, _ := ctx.Locals(serverutils.LocalsUserId).(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}
