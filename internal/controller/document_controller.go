package controller

import (
	"errors"
	"strings"

	"ai-reportgen-be/internal/dto"
	"ai-reportgen-be/internal/pkg/serverutils"
	"ai-reportgen-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentController interface {
	// RegisterRoutes wires the document surface. The limiters guard the two
	// expensive operations (LLM generation, export) and are built by the
	// container from config; pass nil to leave a route unguarded.
	RegisterRoutes(r fiber.Router, generationLimiter fiber.Handler, exportLimiter fiber.Handler)
}

type documentController struct {
	documentService   service.IDocumentService
	generationService service.IGenerationService
	exportService     service.IExportService
}

func NewDocumentController(
	documentService service.IDocumentService,
	generationService service.IGenerationService,
	exportService service.IExportService,
) IDocumentController {
	return &documentController{
		documentService:   documentService,
		generationService: generationService,
		exportService:     exportService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router, generationLimiter fiber.Handler, exportLimiter fiber.Handler) {
	h := r.Group("/document/v1")
	h.Use(serverutils.JwtMiddleware)

	if generationLimiter == nil {
		generationLimiter = passthrough
	}
	if exportLimiter == nil {
		exportLimiter = passthrough
	}

	// Static segments first so fiber never swallows them into :id
	h.Get("styles", c.GetStyles)
	h.Post("generate", generationLimiter, c.Generate)
	h.Get("exports", c.ExportHistory)
	h.Get("exports/:exportId/download", c.DownloadExport)

	h.Post("", c.Create)
	h.Get("", c.GetAll)
	h.Get(":id", c.Show)
	h.Put(":id/rename", c.Rename)
	h.Delete(":id", c.Delete)

	h.Post(":id/regenerate", generationLimiter, c.Regenerate)
	h.Post(":id/export", exportLimiter, c.Export)

	// Editing session surface
	h.Get(":id/preview", c.Preview)
	h.Put(":id/mode", c.SetMode)
	h.Put(":id/content", c.UpdateContent)
	h.Post(":id/save", c.Save)
	h.Put(":id/tables/:index/view", c.SetTableView)
	h.Put(":id/tables/:index/columns", c.SetTableColumns)
	h.Post(":id/find", c.Find)
	h.Post(":id/find/next", c.FindNext)
	h.Post(":id/find/previous", c.FindPrevious)
	h.Post(":id/replace", c.ReplaceCurrent)
	h.Post(":id/replace-all", c.ReplaceAll)
}

func passthrough(ctx *fiber.Ctx) error {
	return ctx.Next()
}

func (c *documentController) Create(ctx *fiber.Ctx) error {
	userId := localUserId(ctx)

	var req dto.CreateDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return documentError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create document", res))
}

func (c *documentController) GetAll(ctx *fiber.Ctx) error {
	userId := localUserId(ctx)

	page := ctx.QueryInt("page", 1)
	perPage := ctx.QueryInt("per_page", 20)
	search := ctx.Query("search", "")

	res, err := c.documentService.GetAll(ctx.Context(), userId, page, perPage, search)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all document", res))
}

func (c *documentController) Show(ctx *fiber.Ctx) error {
	userId := localUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.documentService.Show(ctx.Context(), userId, id)
	if err != nil {
		return documentError(ctx, err)
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Document not found"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show document", res))
}

func (c *documentController) Rename(ctx *fiber.Ctx) error {
	userId := localUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.RenameDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.documentService.Rename(ctx.Context(), userId, &req); err != nil {
		return documentError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success rename document", nil))
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	userId := localUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.documentService.Delete(ctx.Context(), userId, id); err != nil {
		return documentError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete document", nil))
}

// ============================================================================
// Generation
// ============================================================================

func (c *documentController) Generate(ctx *fiber.Ctx) error {
	userId := localUserId(ctx)

	var req dto.GenerateDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.generationService.Generate(ctx.Context(), userId, &req)
	if err != nil {
		return documentError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success generate document", res))
}

func (c *documentController) Regenerate(ctx *fiber.Ctx) error {
	userId := localUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.RegenerateDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.generationService.Regenerate(ctx.Context(), userId, &req)
	if err != nil {
		return documentError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success regenerate document", res))
}

func (c *documentController) GetStyles(ctx *fiber.Ctx) error {
	res, err := c.generationService.GetReportStyles(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get report styles", res))
}

// ============================================================================
// Editing session
// ============================================================================

func (c *documentController) Preview(ctx *fiber.Ctx) error {
	userId := localUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.documentService.Preview(ctx.Context(), userId, id)
	if err != nil {
		return documentError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success preview document", res))
}

func (c *documentController) SetMode(ctx *fiber.Ctx) error {
	userId := localUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.SetModeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.SetMode(ctx.Context(), userId, &req)
	if err != nil {
		return documentError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success set mode", res))
}

func (c *documentController) UpdateContent(ctx *fiber.Ctx) error {
	userId := localUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdateContentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.documentService.UpdateContent(ctx.Context(), userId, &req)
	if err != nil {
		return documentError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update content", res))
}

func (c *documentController) Save(ctx *fiber.Ctx) error {
	userId := localUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.documentService.Save(ctx.Context(), userId, id)
	if err != nil {
		return documentError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save document", res))
}

func (c *documentController) SetTableView(ctx *fiber.Ctx) error {
	userId := localUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))
	index, _ := ctx.ParamsInt("index")

	var req dto.TableViewRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	req.Index = index

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.SetTableView(ctx.Context(), userId, &req)
	if err != nil {
		return documentError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success set table view", res))
}

func (c *documentController) SetTableColumns(ctx *fiber.Ctx) error {
	userId := localUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))
	index, _ := ctx.ParamsInt("index")

	var req dto.TableColumnsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	req.Index = index

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.SetTableColumns(ctx.Context(), userId, &req)
	if err != nil {
		return documentError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success set table columns", res))
}

func (c *documentController) Find(ctx *fiber.Ctx) error {
	userId := localUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.FindRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.Find(ctx.Context(), userId, &req)
	if err != nil {
		return documentError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success find", res))
}

func (c *documentController) FindNext(ctx *fiber.Ctx) error {
	userId := localUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.documentService.FindNext(ctx.Context(), userId, id)
	if err != nil {
		return documentError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success find next", res))
}

func (c *documentController) FindPrevious(ctx *fiber.Ctx) error {
	userId := localUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.documentService.FindPrevious(ctx.Context(), userId, id)
	if err != nil {
		return documentError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success find previous", res))
}

func (c *documentController) ReplaceCurrent(ctx *fiber.Ctx) error {
	userId := localUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.ReplaceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.documentService.ReplaceCurrent(ctx.Context(), userId, &req)
	if err != nil {
		return documentError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success replace", res))
}

func (c *documentController) ReplaceAll(ctx *fiber.Ctx) error {
	userId := localUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.ReplaceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.documentService.ReplaceAll(ctx.Context(), userId, &req)
	if err != nil {
		return documentError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success replace all", res))
}

// ============================================================================
// Export
// ============================================================================

func (c *documentController) Export(ctx *fiber.Ctx) error {
	userId := localUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.ExportDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.exportService.Export(ctx.Context(), userId, &req)
	if err != nil {
		if strings.Contains(err.Error(), "already in progress") {
			return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
		}
		if strings.Contains(err.Error(), "export failed") {
			// One actionable message, no internals
			return ctx.Status(fiber.StatusInternalServerError).
				JSON(serverutils.ErrorResponse(500, "Failed to export to "+strings.ToUpper(req.Format)+". Please try again."))
		}
		return documentError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success export document", res))
}

func (c *documentController) ExportHistory(ctx *fiber.Ctx) error {
	userId := localUserId(ctx)

	res, err := c.exportService.GetHistory(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get export history", res))
}

func (c *documentController) DownloadExport(ctx *fiber.Ctx) error {
	userId := localUserId(ctx)
	exportId, _ := uuid.Parse(ctx.Params("exportId"))

	res, err := c.exportService.GetDownload(ctx.Context(), userId, exportId)
	if err != nil {
		return documentError(ctx, err)
	}

	return ctx.Download(res.Path, res.Filename)
}

// ============================================================================
// Helpers
// ============================================================================

func localUserId(ctx *fiber.Ctx) uuid.UUID {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}

// documentError maps service errors at the controller edge. Plan and export
// allowances surface as 429 with the pricing-modal payload; generation
// failures keep the prior document and surface as 502.
func documentError(ctx *fiber.Ctx, err error) error {
	var limitErr *dto.LimitExceededError
	if errors.As(err, &limitErr) {
		return ctx.Status(fiber.StatusTooManyRequests).JSON(dto.LimitExceededResponse{
			Success:   false,
			Code:      429,
			Message:   "Plan limit reached",
			ErrorType: "limit_exceeded",
			Data: dto.LimitExceededData{
				LimitType:        limitErr.LimitType,
				Limit:            limitErr.Limit,
				Used:             limitErr.Used,
				ResetAfter:       limitErr.ResetAfter,
				ShowModalPricing: true,
			},
		})
	}
	if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "not mounted") {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	}
	if strings.Contains(err.Error(), "generation failed") {
		return ctx.Status(fiber.StatusBadGateway).
			JSON(serverutils.ErrorResponse(502, "Generation failed. Your document was left unchanged."))
	}
	if strings.Contains(err.Error(), "unknown mode") || strings.Contains(err.Error(), "unsupported") {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return err
}
