package controller

import (
	"communityhub-be/internal/pkg/apperror"
	"communityhub-be/internal/pkg/serverutils"
	"communityhub-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMediaController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
}

type mediaController struct {
	mediaService service.IMediaService
}

func NewMediaController(mediaService service.IMediaService) IMediaController {
	return &mediaController{
		mediaService: mediaService,
	}
}

func (c *mediaController) RegisterRoutes(r fiber.Router) {
	a := r.Group("/admin/media/v1")
	a.Use(serverutils.JwtMiddleware)
	a.Post("upload", c.Upload)
}

func (c *mediaController) Upload(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return apperror.NewValidation("missing file field")
	}

	actor, _ := ctx.Locals("operator_id").(string)
	res, err := c.mediaService.Upload(ctx.Context(), file, actor)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success upload file", res))
}
