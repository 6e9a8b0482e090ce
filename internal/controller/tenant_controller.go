package controller

import (
	"customs-evidence-be/internal/dto"
	"customs-evidence-be/internal/pkg/serverutils"
	"customs-evidence-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITenantController interface {
	RegisterRoutes(r fiber.Router)
	GetSettings(ctx *fiber.Ctx) error
	SetActiveCorpus(ctx *fiber.Ctx) error
}

type tenantController struct {
	tenantService service.ITenantService
}

func NewTenantController(tenantService service.ITenantService) ITenantController {
	return &tenantController{
		tenantService: tenantService,
	}
}

func (c *tenantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/tenant/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("settings", c.GetSettings)
	h.Put("settings/corpus", c.SetActiveCorpus)
}

func (c *tenantController) GetSettings(ctx *fiber.Ctx) error {
	tenantId := serverutils.TenantId(ctx)

	res, err := c.tenantService.GetSettings(ctx.Context(), tenantId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show tenant settings", res))
}

func (c *tenantController) SetActiveCorpus(ctx *fiber.Ctx) error {
	tenantId := serverutils.TenantId(ctx)

	var req dto.SetActiveCorpusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.tenantService.SetActiveCorpus(ctx.Context(), tenantId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success set active corpus", res))
}
