package controller

import (
	"communityhub-be/internal/dto"
	"communityhub-be/internal/pkg/apperror"
	"communityhub-be/internal/pkg/serverutils"
	"communityhub-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	OpenSession(ctx *fiber.Ctx) error
	PostMessage(ctx *fiber.Ctx) error
	ListMessages(ctx *fiber.Ctx) error
	ListSessions(ctx *fiber.Ctx) error
	PostAdminMessage(ctx *fiber.Ctx) error
	SwitchMode(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	// Guest widget: anonymous, identified by hashed address only.
	g := r.Group("/chat/v1")
	g.Post("session", c.OpenSession)
	g.Post("sessions/:id/messages", c.PostMessage)
	g.Get("sessions/:id/messages", c.ListMessages)

	// Operator dashboard.
	a := r.Group("/admin/chat/v1")
	a.Use(serverutils.JwtMiddleware)
	a.Get("sessions", c.ListSessions)
	a.Post("sessions/:id/messages", c.PostAdminMessage)
	a.Patch("sessions/:id/mode", c.SwitchMode)
}

// OpenSession gives the widget its session, creating one on first contact.
// Identity comes from the connection address, never from the request body.
func (c *chatController) OpenSession(ctx *fiber.Ctx) error {
	res, err := c.chatService.GetOrCreateGuestSession(ctx.Context(), ctx.IP())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success open chat session", res))
}

func (c *chatController) PostMessage(ctx *fiber.Ctx) error {
	sessionId, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.PostGuestMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.chatService.PostGuestMessage(ctx.Context(), sessionId, req.Content); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success send message", nil))
}

func (c *chatController) ListMessages(ctx *fiber.Ctx) error {
	sessionId, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatService.ListMessages(ctx.Context(), sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list messages", res))
}

func (c *chatController) ListSessions(ctx *fiber.Ctx) error {
	var query dto.ListSessionsQuery
	if err := ctx.QueryParser(&query); err != nil {
		return apperror.NewValidation("invalid query parameters")
	}

	res, err := c.chatService.ListActiveSessions(ctx.Context(), &query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list sessions", res))
}

func (c *chatController) PostAdminMessage(ctx *fiber.Ctx) error {
	sessionId, err := parseIdParam(ctx)
	if err != nil {
		return err
	}
	operatorId, err := operatorFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.PostAdminMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.chatService.PostAdminMessage(ctx.Context(), sessionId, operatorId, req.Content); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success send admin message", nil))
}

func (c *chatController) SwitchMode(ctx *fiber.Ctx) error {
	sessionId, err := parseIdParam(ctx)
	if err != nil {
		return err
	}
	operatorId, err := operatorFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.SwitchModeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SwitchMode(ctx.Context(), sessionId, req.Mode, &operatorId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success switch mode", res))
}

func parseIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, apperror.NewValidation("id must be a UUID")
	}
	return id, nil
}

func operatorFromLocals(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := ctx.Locals("operator_id").(string)
	operatorId, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.NewAuthorization("operator identity missing from token")
	}
	return operatorId, nil
}
