package controller

import (
	"customs-evidence-be/internal/dto"
	"customs-evidence-be/internal/pkg/serverutils"
	"customs-evidence-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IEvidenceController interface {
	RegisterRoutes(r fiber.Router)
	Retrieve(ctx *fiber.Ctx) error
	Hydrate(ctx *fiber.Ctx) error
}

type evidenceController struct {
	retrievalService service.IRetrievalService
}

func NewEvidenceController(retrievalService service.IRetrievalService) IEvidenceController {
	return &evidenceController{
		retrievalService: retrievalService,
	}
}

func (c *evidenceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/evidence/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("retrieve", c.Retrieve)
	h.Post("hydrate", c.Hydrate)
}

func (c *evidenceController) Retrieve(ctx *fiber.Ctx) error {
	tenantId := serverutils.TenantId(ctx)

	req := dto.RetrieveEvidenceRequest{
		Q:             ctx.Query("q"),
		Limit:         ctx.QueryInt("limit"),
		IncludeParent: ctx.QueryBool("include_parent"),
	}

	filters := dto.RetrievalFilters{}
	hasFilter := false
	if v := ctx.Query("jurisdiction"); v != "" {
		filters.Jurisdiction = &v
		hasFilter = true
	}
	if v := ctx.Query("instrument_type"); v != "" {
		filters.InstrumentType = &v
		hasFilter = true
	}
	if v := ctx.Query("language"); v != "" {
		filters.Language = &v
		hasFilter = true
	}
	if v := ctx.Query("trust_level"); v != "" {
		filters.TrustLevel = &v
		hasFilter = true
	}
	if hasFilter {
		req.Filters = &filters
	}

	res, err := c.retrievalService.RetrieveEvidence(ctx.Context(), tenantId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success retrieve evidence", res))
}

func (c *evidenceController) Hydrate(ctx *fiber.Ctx) error {
	tenantId := serverutils.TenantId(ctx)

	var req dto.HydrateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.retrievalService.HydrateChunks(ctx.Context(), tenantId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success hydrate chunks", res))
}
