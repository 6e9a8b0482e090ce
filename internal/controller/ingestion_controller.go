package controller

import (
	"customs-evidence-be/internal/dto"
	"customs-evidence-be/internal/pkg/serverutils"
	"customs-evidence-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IIngestionController interface {
	RegisterRoutes(r fiber.Router)
	StartRun(ctx *fiber.Ctx) error
	FinishRun(ctx *fiber.Ctx) error
	FailRun(ctx *fiber.Ctx) error
	ListRuns(ctx *fiber.Ctx) error
	IngestBatch(ctx *fiber.Ctx) error
	IndexSweep(ctx *fiber.Ctx) error
	PendingCount(ctx *fiber.Ctx) error
	UpsertReport(ctx *fiber.Ctx) error
	ListReports(ctx *fiber.Ctx) error
	Counts(ctx *fiber.Ctx) error
}

type ingestionController struct {
	ingestionService service.IIngestionService
	indexingService  service.IIndexingService
}

func NewIngestionController(
	ingestionService service.IIngestionService,
	indexingService service.IIndexingService,
) IIngestionController {
	return &ingestionController{
		ingestionService: ingestionService,
		indexingService:  indexingService,
	}
}

func (c *ingestionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ingestion/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("runs", c.ListRuns)
	h.Post("runs", c.StartRun)
	h.Post("runs/:run_id/finish", c.FinishRun)
	h.Post("runs/:run_id/fail", c.FailRun)
	h.Post("batch", c.IngestBatch)
	h.Post("index-sweep", c.IndexSweep)
	h.Get("pending-count", c.PendingCount)
	h.Get("reports", c.ListReports)
	h.Put("reports", c.UpsertReport)
	h.Get("counts", c.Counts)
}

func (c *ingestionController) StartRun(ctx *fiber.Ctx) error {
	tenantId := serverutils.TenantId(ctx)

	var req dto.StartRunRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ingestionService.StartRun(ctx.Context(), tenantId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success start run", res))
}

func (c *ingestionController) FinishRun(ctx *fiber.Ctx) error {
	tenantId := serverutils.TenantId(ctx)
	runId := ctx.Params("run_id")

	res, err := c.ingestionService.FinishRun(ctx.Context(), tenantId, runId)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Run not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success finish run", res))
}

func (c *ingestionController) FailRun(ctx *fiber.Ctx) error {
	tenantId := serverutils.TenantId(ctx)
	runId := ctx.Params("run_id")

	var req dto.FailRunRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ingestionService.FailRun(ctx.Context(), tenantId, runId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Run not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success fail run", res))
}

func (c *ingestionController) ListRuns(ctx *fiber.Ctx) error {
	tenantId := serverutils.TenantId(ctx)

	res, err := c.ingestionService.ListLatestRuns(ctx.Context(), tenantId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list runs", res))
}

func (c *ingestionController) IngestBatch(ctx *fiber.Ctx) error {
	tenantId := serverutils.TenantId(ctx)

	var req dto.IngestBatchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ingestionService.IngestBatch(ctx.Context(), tenantId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Ingest batch processed", res))
}

func (c *ingestionController) IndexSweep(ctx *fiber.Ctx) error {
	tenantId := serverutils.TenantId(ctx)

	var req dto.IndexSweepRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.indexingService.IndexPendingChunks(ctx.Context(), tenantId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Index sweep processed", res))
}

func (c *ingestionController) PendingCount(ctx *fiber.Ctx) error {
	tenantId := serverutils.TenantId(ctx)

	res, err := c.indexingService.PendingIndexCount(ctx.Context(), tenantId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success count pending chunks", res))
}

func (c *ingestionController) UpsertReport(ctx *fiber.Ctx) error {
	tenantId := serverutils.TenantId(ctx)

	var req dto.UpsertReportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ingestionService.UpsertReport(ctx.Context(), tenantId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upsert report", res))
}

func (c *ingestionController) ListReports(ctx *fiber.Ctx) error {
	tenantId := serverutils.TenantId(ctx)

	if corpusVersion := ctx.Query("corpus_version"); corpusVersion != "" {
		res, err := c.ingestionService.GetReport(ctx.Context(), tenantId, corpusVersion)
		if err != nil {
			return err
		}
		if res == nil {
			return fiber.NewError(fiber.StatusNotFound, "Report not found")
		}
		return ctx.JSON(serverutils.SuccessResponse("Success show report", res))
	}

	limit := ctx.QueryInt("limit", 10)
	res, err := c.ingestionService.ListRecentReports(ctx.Context(), tenantId, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list reports", res))
}

func (c *ingestionController) Counts(ctx *fiber.Ctx) error {
	tenantId := serverutils.TenantId(ctx)

	res, err := c.ingestionService.CountsByTenant(ctx.Context(), tenantId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success count corpus", res))
}
