package controller

import (
	"customs-evidence-be/internal/dto"
	"customs-evidence-be/internal/pkg/serverutils"
	"customs-evidence-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDecisionController interface {
	RegisterRoutes(r fiber.Router)
	Record(ctx *fiber.Ctx) error
	UpsertBundle(ctx *fiber.Ctx) error
}

type decisionController struct {
	decisionService service.IDecisionService
}

func NewDecisionController(decisionService service.IDecisionService) IDecisionController {
	return &decisionController{
		decisionService: decisionService,
	}
}

func (c *decisionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/decision/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Record)
	h.Put("bundles", c.UpsertBundle)
}

func (c *decisionController) Record(ctx *fiber.Ctx) error {
	tenantId := serverutils.TenantId(ctx)

	var req dto.RecordDecisionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.decisionService.RecordDecision(ctx.Context(), tenantId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Decision processed", res))
}

func (c *decisionController) UpsertBundle(ctx *fiber.Ctx) error {
	tenantId := serverutils.TenantId(ctx)

	var req dto.UpsertBundleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.decisionService.UpsertBundle(ctx.Context(), tenantId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upsert bundle", res))
}
