package controller

import (
	"communityhub-be/internal/dto"
	"communityhub-be/internal/pkg/apperror"
	"communityhub-be/internal/pkg/serverutils"
	"communityhub-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	GoogleLogin(ctx *fiber.Ctx) error
	GoogleCallback(ctx *fiber.Ctx) error
}

type authController struct {
	authService  service.IAuthService
	oauthService service.IOAuthService
}

func NewAuthController(authService service.IAuthService, oauthService service.IOAuthService) IAuthController {
	return &authController{
		authService:  authService,
		oauthService: oauthService,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth/v1")
	h.Post("login", c.Login)
	h.Get("google", c.GoogleLogin)
	h.Get("google/callback", c.GoogleCallback)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.Login(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success login", res))
}

func (c *authController) GoogleLogin(ctx *fiber.Ctx) error {
	url, err := c.oauthService.GetLoginURL()
	if err != nil {
		return err
	}
	return ctx.Redirect(url, fiber.StatusTemporaryRedirect)
}

func (c *authController) GoogleCallback(ctx *fiber.Ctx) error {
	code := ctx.Query("code")
	if code == "" {
		return apperror.NewValidation("missing authorization code")
	}

	res, err := c.oauthService.HandleCallback(ctx.Context(), code)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success login with google", res))
}
