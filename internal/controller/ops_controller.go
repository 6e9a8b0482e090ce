package controller

import (
	"customs-evidence-be/internal/pkg/logger"
	"customs-evidence-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

// Ops endpoints expose the structured log file for operators chasing an
// ingestion or guardrail incident.
type IOpsController interface {
	RegisterRoutes(r fiber.Router)
	ListLogs(ctx *fiber.Ctx) error
	ShowLog(ctx *fiber.Ctx) error
}

type opsController struct {
	logger logger.ILogger
}

func NewOpsController(log logger.ILogger) IOpsController {
	return &opsController{logger: log}
}

func (c *opsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ops/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("logs", c.ListLogs)
	h.Get("logs/:id", c.ShowLog)
}

func (c *opsController) ListLogs(ctx *fiber.Ctx) error {
	level := ctx.Query("level")
	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	entries, err := c.logger.GetLogs(level, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list logs", entries))
}

func (c *opsController) ShowLog(ctx *fiber.Ctx) error {
	entry, err := c.logger.GetLogById(ctx.Params("id"))
	if err != nil {
		return err
	}
	if entry == nil {
		return fiber.NewError(fiber.StatusNotFound, "Log entry not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show log", entry))
}
