package serverutils

import (
	"errors"

	"customs-evidence-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Response struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(message string, data interface{}) Response {
	return Response{Message: message, Data: data}
}

// ErrorHandlerMiddleware turns errors escaping the controllers into JSON
// responses. Consistency violations map to 409; everything unexpected is
// a plain 500 without internals leaking to the caller.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(Response{Message: fiberErr.Message})
		}

		var mismatch *service.CorpusMismatchError
		if errors.As(err, &mismatch) {
			return ctx.Status(fiber.StatusConflict).JSON(Response{Message: mismatch.Error()})
		}

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(Response{Message: "Not found"})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(Response{Message: "Internal server error"})
	}
}
