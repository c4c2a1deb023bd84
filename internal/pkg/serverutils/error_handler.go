package serverutils

import (
	"errors"

	"propdesk-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler writes any handler error as the error envelope.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	code := apperror.StatusCode(err)
	message := err.Error()

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	return ctx.Status(code).JSON(ErrorResponse(code, message))
}

// ErrorHandlerMiddleware translates errors from the handlers below it so the
// middlewares above (metrics) see the final status.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return ErrorHandler(ctx, err)
	}
}
