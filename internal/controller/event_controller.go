package controller

import (
	"communityhub-be/internal/dto"
	"communityhub-be/internal/pkg/apperror"
	"communityhub-be/internal/pkg/serverutils"
	"communityhub-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IEventController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type eventController struct {
	contentService service.IContentService
}

func NewEventController(contentService service.IContentService) IEventController {
	return &eventController{
		contentService: contentService,
	}
}

func (c *eventController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/events/v1")
	h.Get("", c.List)
	h.Get(":slug", c.Show)

	a := r.Group("/admin/events/v1")
	a.Use(serverutils.JwtMiddleware)
	a.Post("", c.Create)
	a.Put(":id", c.Update)
	a.Delete(":id", c.Delete)
}

func (c *eventController) List(ctx *fiber.Ctx) error {
	var query dto.PagedQuery
	if err := ctx.QueryParser(&query); err != nil {
		return apperror.NewValidation("invalid query parameters")
	}

	res, err := c.contentService.ListEvents(ctx.Context(), &query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list events", res))
}

func (c *eventController) Show(ctx *fiber.Ctx) error {
	res, err := c.contentService.GetEventBySlug(ctx.Context(), ctx.Params("slug"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show event", res))
}

func (c *eventController) Create(ctx *fiber.Ctx) error {
	var req dto.UpsertEventRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	actor, _ := ctx.Locals("operator_id").(string)
	res, err := c.contentService.CreateEvent(ctx.Context(), &req, actor)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create event", res))
}

func (c *eventController) Update(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpsertEventRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	actor, _ := ctx.Locals("operator_id").(string)
	res, err := c.contentService.UpdateEvent(ctx.Context(), id, &req, actor)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update event", res))
}

func (c *eventController) Delete(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	actor, _ := ctx.Locals("operator_id").(string)
	if err := c.contentService.DeleteEvent(ctx.Context(), id, actor); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete event", nil))
}
