package controller

import (
	"communityhub-be/internal/dto"
	"communityhub-be/internal/pkg/apperror"
	"communityhub-be/internal/pkg/serverutils"
	"communityhub-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IResourceController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type resourceController struct {
	contentService service.IContentService
}

func NewResourceController(contentService service.IContentService) IResourceController {
	return &resourceController{
		contentService: contentService,
	}
}

func (c *resourceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/resources/v1")
	h.Get("", c.List)
	h.Get(":slug", c.Show)

	a := r.Group("/admin/resources/v1")
	a.Use(serverutils.JwtMiddleware)
	a.Post("", c.Create)
	a.Put(":id", c.Update)
	a.Delete(":id", c.Delete)
}

func (c *resourceController) List(ctx *fiber.Ctx) error {
	var query dto.PagedQuery
	if err := ctx.QueryParser(&query); err != nil {
		return apperror.NewValidation("invalid query parameters")
	}

	res, err := c.contentService.ListResources(ctx.Context(), &query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list resources", res))
}

func (c *resourceController) Show(ctx *fiber.Ctx) error {
	res, err := c.contentService.GetResourceBySlug(ctx.Context(), ctx.Params("slug"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show resource", res))
}

func (c *resourceController) Create(ctx *fiber.Ctx) error {
	var req dto.UpsertResourceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	actor, _ := ctx.Locals("operator_id").(string)
	res, err := c.contentService.CreateResource(ctx.Context(), &req, actor)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create resource", res))
}

func (c *resourceController) Update(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpsertResourceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	actor, _ := ctx.Locals("operator_id").(string)
	res, err := c.contentService.UpdateResource(ctx.Context(), id, &req, actor)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update resource", res))
}

func (c *resourceController) Delete(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	actor, _ := ctx.Locals("operator_id").(string)
	if err := c.contentService.DeleteResource(ctx.Context(), id, actor); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete resource", nil))
}
