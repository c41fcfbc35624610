// FILE: internal/service/dataset_service.go
package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"ai-reportgen-be/internal/dto"
	"ai-reportgen-be/internal/entity"
	"ai-reportgen-be/internal/repository/specification"
	"ai-reportgen-be/internal/repository/unitofwork"
	"ai-reportgen-be/pkg/ingest"

	"github.com/google/uuid"
)

type IDatasetService interface {
	Upload(ctx context.Context, userId uuid.UUID, name string, file *multipart.FileHeader) (*dto.UploadDatasetResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID, page int, perPage int) (*dto.ListDatasetsResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowDatasetResponse, error)
	Rename(ctx context.Context, userId uuid.UUID, req *dto.RenameDatasetRequest) error
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type datasetService struct {
	uowFactory  unitofwork.RepositoryFactory
	planService PlanService
}

func NewDatasetService(
	uowFactory unitofwork.RepositoryFactory,
	planService PlanService,
) IDatasetService {
	return &datasetService{
		uowFactory:  uowFactory,
		planService: planService,
	}
}

func (c *datasetService) Upload(ctx context.Context, userId uuid.UUID, name string, file *multipart.FileHeader) (*dto.UploadDatasetResponse, error) {
	// 1. Validate File Size (Max 10MB, matches server body limit)
	if file.Size > 10*1024*1024 {
		return nil, fmt.Errorf("file too large (max 10MB)")
	}

	// 2. Check plan storage limit before doing any parse work
	if err := c.planService.CheckCanCreateDataset(ctx, userId); err != nil {
		return nil, err
	}

	// 3. Parse the upload into records
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	parsed, err := ingest.Parse(file.Filename, src)
	if err != nil {
		return nil, err
	}
	if len(parsed.Records) == 0 {
		return nil, fmt.Errorf("upload has no data rows")
	}

	// 4. Bound what we persist. RowCount keeps the original size so the UI
	// can show "500 of 12,000".
	rowCount := len(parsed.Records)
	stored := parsed.Truncate(entity.MaxStoredRows)

	if name == "" {
		name = strings.TrimSuffix(file.Filename, filepath.Ext(file.Filename))
	}

	dataset := entity.Dataset{
		Id:               uuid.New(),
		Name:             name,
		OriginalFilename: file.Filename,
		UserId:           userId,
		Columns:          parsed.Headers,
		Rows:             stored.Records,
		RowCount:         rowCount,
		CreatedAt:        time.Now(),
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.DatasetRepository().Create(ctx, &dataset); err != nil {
		return nil, err
	}

	return &dto.UploadDatasetResponse{
		Id:               dataset.Id,
		Name:             dataset.Name,
		OriginalFilename: dataset.OriginalFilename,
		Columns:          dataset.Columns,
		RowCount:         dataset.RowCount,
		StoredRows:       len(dataset.Rows),
		Truncated:        rowCount > len(dataset.Rows),
	}, nil
}

func (c *datasetService) GetAll(ctx context.Context, userId uuid.UUID, page int, perPage int) (*dto.ListDatasetsResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	total, err := uow.DatasetRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	datasets, err := uow.DatasetRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: perPage, Offset: (page - 1) * perPage},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.DatasetSummaryResponse, 0, len(datasets))
	for _, ds := range datasets {
		result = append(result, &dto.DatasetSummaryResponse{
			Id:               ds.Id,
			Name:             ds.Name,
			OriginalFilename: ds.OriginalFilename,
			Columns:          ds.Columns,
			RowCount:         ds.RowCount,
			CreatedAt:        ds.CreatedAt,
			UpdatedAt:        ds.UpdatedAt,
		})
	}

	return &dto.ListDatasetsResponse{
		Datasets: result,
		Total:    total,
		Page:     page,
		PerPage:  perPage,
	}, nil
}

func (c *datasetService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowDatasetResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	// Check strictly by ID and UserID
	dataset, err := uow.DatasetRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if dataset == nil {
		return nil, nil
	}

	return &dto.ShowDatasetResponse{
		Id:               dataset.Id,
		Name:             dataset.Name,
		OriginalFilename: dataset.OriginalFilename,
		Columns:          dataset.Columns,
		Rows:             dataset.Rows,
		RowCount:         dataset.RowCount,
		CreatedAt:        dataset.CreatedAt,
	}, nil
}

func (c *datasetService) Rename(ctx context.Context, userId uuid.UUID, req *dto.RenameDatasetRequest) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	// Fetch first to check ownership
	dataset, err := uow.DatasetRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if dataset == nil {
		return fmt.Errorf("dataset not found")
	}

	now := time.Now()
	dataset.Name = req.Name
	dataset.UpdatedAt = &now

	return uow.DatasetRepository().Update(ctx, dataset)
}

func (c *datasetService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	// Check ownership
	dataset, err := uow.DatasetRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if dataset == nil {
		return nil
	}

	// Documents generated from this dataset keep their content; only
	// regeneration stops working once the source rows are gone.
	return uow.DatasetRepository().Delete(ctx, id)
}
