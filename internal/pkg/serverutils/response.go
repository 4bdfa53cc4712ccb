package serverutils

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type Response struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(message string, data interface{}) Response {
	return Response{
		Message: message,
		Data:    data,
	}
}

// ValidateRequest runs struct tag validation on a request payload.
func ValidateRequest(payload interface{}) error {
	return validate.Struct(payload)
}

// ErrorHandlerMiddleware converts errors escaping a handler into a JSON
// reply instead of fiber's default text response.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		if fiberErr, ok := err.(*fiber.Error); ok {
			code = fiberErr.Code
		}
		return ctx.Status(code).JSON(fiber.Map{"message": err.Error()})
	}
}
