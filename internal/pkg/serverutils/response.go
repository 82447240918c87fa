package serverutils

import "github.com/gofiber/fiber/v2"

// SuccessResponse is the envelope every 200 response shares.
func SuccessResponse(message string, data interface{}) fiber.Map {
	return fiber.Map{
		"success": true,
		"code":    fiber.StatusOK,
		"message": message,
		"data":    data,
	}
}
