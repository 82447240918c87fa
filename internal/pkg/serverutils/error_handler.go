package serverutils

import (
	"errors"

	"communityhub-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps typed application errors coming out of the
// controller chain to HTTP responses with the envelope shape the client
// expects.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError
		message := "Internal server error"

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			message = appErr.Message
			switch appErr.Kind {
			case apperror.KindValidation:
				status = fiber.StatusBadRequest
			case apperror.KindNotFound:
				status = fiber.StatusNotFound
			case apperror.KindAuthorization:
				status = fiber.StatusUnauthorized
			case apperror.KindRateLimited:
				status = fiber.StatusTooManyRequests
			case apperror.KindUpstreamProvider:
				// Provider faults should have been converted into fallback
				// chat content before reaching here; if one leaks, keep the
				// detail out of the response.
				status = fiber.StatusBadGateway
				message = "Upstream service unavailable"
			}
		} else {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
				message = fiberErr.Message
			}
		}

		return ctx.Status(status).JSON(fiber.Map{
			"success": false,
			"code":    status,
			"message": message,
		})
	}
}
