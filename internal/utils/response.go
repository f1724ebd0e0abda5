package utils

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the error envelope every route returns on failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SendJSON writes a success payload with the provided HTTP status code.
func SendJSON(c *fiber.Ctx, status int, payload interface{}) error {
	if status == 0 {
		status = fiber.StatusOK
	}

	return c.Status(status).JSON(payload)
}

// SendError writes the error envelope with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}

	return c.Status(status).JSON(ErrorResponse{Error: message})
}
