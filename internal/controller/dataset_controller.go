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

type IDatasetController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Rename(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type datasetController struct {
	datasetService service.IDatasetService
}

func NewDatasetController(datasetService service.IDatasetService) IDatasetController {
	return &datasetController{
		datasetService: datasetService,
	}
}

func (c *datasetController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/dataset/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("upload", c.Upload)
	h.Get("", c.GetAll)
	h.Get(":id", c.Show)
	h.Put(":id", c.Rename)
	h.Delete(":id", c.Delete)
}

func (c *datasetController) Upload(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Missing file upload"))
	}
	name := ctx.FormValue("name")

	res, err := c.datasetService.Upload(ctx.Context(), userId, name, file)
	if err != nil {
		return datasetError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success upload dataset", res))
}

func (c *datasetController) GetAll(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	page := ctx.QueryInt("page", 1)
	perPage := ctx.QueryInt("per_page", 20)

	res, err := c.datasetService.GetAll(ctx.Context(), userId, page, perPage)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all dataset", res))
}

func (c *datasetController) Show(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	res, err := c.datasetService.Show(ctx.Context(), userId, id)
	if err != nil {
		return datasetError(ctx, err)
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Dataset not found"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show dataset", res))
}

func (c *datasetController) Rename(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	var req dto.RenameDatasetRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.datasetService.Rename(ctx.Context(), userId, &req); err != nil {
		return datasetError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success rename dataset", nil))
}

func (c *datasetController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	if err := c.datasetService.Delete(ctx.Context(), userId, id); err != nil {
		return datasetError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete dataset", nil))
}

// datasetError maps service errors at the controller edge: plan limits to
// 429 with the pricing-modal payload, not-found sentinels to 404.
func datasetError(ctx *fiber.Ctx, err error) error {
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
	if strings.Contains(err.Error(), "not found") {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	}
	if strings.Contains(err.Error(), "too large") || strings.Contains(err.Error(), "unsupported") {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return err
}
