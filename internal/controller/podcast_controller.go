package controller

import (
	"communityhub-be/internal/dto"
	"communityhub-be/internal/pkg/apperror"
	"communityhub-be/internal/pkg/serverutils"
	"communityhub-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPodcastController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type podcastController struct {
	contentService service.IContentService
}

func NewPodcastController(contentService service.IContentService) IPodcastController {
	return &podcastController{
		contentService: contentService,
	}
}

func (c *podcastController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/podcasts/v1")
	h.Get("", c.List)
	h.Get(":slug", c.Show)

	a := r.Group("/admin/podcasts/v1")
	a.Use(serverutils.JwtMiddleware)
	a.Post("", c.Create)
	a.Put(":id", c.Update)
	a.Delete(":id", c.Delete)
}

func (c *podcastController) List(ctx *fiber.Ctx) error {
	var query dto.PagedQuery
	if err := ctx.QueryParser(&query); err != nil {
		return apperror.NewValidation("invalid query parameters")
	}

	res, err := c.contentService.ListPodcasts(ctx.Context(), &query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list podcasts", res))
}

func (c *podcastController) Show(ctx *fiber.Ctx) error {
	res, err := c.contentService.GetPodcastBySlug(ctx.Context(), ctx.Params("slug"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show podcast", res))
}

func (c *podcastController) Create(ctx *fiber.Ctx) error {
	var req dto.UpsertPodcastRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	actor, _ := ctx.Locals("operator_id").(string)
	res, err := c.contentService.CreatePodcast(ctx.Context(), &req, actor)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create podcast", res))
}

func (c *podcastController) Update(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpsertPodcastRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	actor, _ := ctx.Locals("operator_id").(string)
	res, err := c.contentService.UpdatePodcast(ctx.Context(), id, &req, actor)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update podcast", res))
}

func (c *podcastController) Delete(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	actor, _ := ctx.Locals("operator_id").(string)
	if err := c.contentService.DeletePodcast(ctx.Context(), id, actor); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete podcast", nil))
}
