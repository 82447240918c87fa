package controller

import (
	"communityhub-be/internal/dto"
	"communityhub-be/internal/pkg/apperror"
	"communityhub-be/internal/pkg/serverutils"
	"communityhub-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITestimonialController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type testimonialController struct {
	contentService service.IContentService
}

func NewTestimonialController(contentService service.IContentService) ITestimonialController {
	return &testimonialController{
		contentService: contentService,
	}
}

func (c *testimonialController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/testimonials/v1")
	h.Get("", c.List)

	a := r.Group("/admin/testimonials/v1")
	a.Use(serverutils.JwtMiddleware)
	a.Post("", c.Create)
	a.Put(":id", c.Update)
	a.Delete(":id", c.Delete)
}

func (c *testimonialController) List(ctx *fiber.Ctx) error {
	res, err := c.contentService.ListTestimonials(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list testimonials", res))
}

func (c *testimonialController) Create(ctx *fiber.Ctx) error {
	var req dto.UpsertTestimonialRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	actor, _ := ctx.Locals("operator_id").(string)
	res, err := c.contentService.CreateTestimonial(ctx.Context(), &req, actor)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create testimonial", res))
}

func (c *testimonialController) Update(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpsertTestimonialRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	actor, _ := ctx.Locals("operator_id").(string)
	res, err := c.contentService.UpdateTestimonial(ctx.Context(), id, &req, actor)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update testimonial", res))
}

func (c *testimonialController) Delete(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	actor, _ := ctx.Locals("operator_id").(string)
	if err := c.contentService.DeleteTestimonial(ctx.Context(), id, actor); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete testimonial", nil))
}
