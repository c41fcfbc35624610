// FILE: internal/service/export_service.go
// Service for exporting documents to DOCX/PDF with chart substitution
package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ai-reportgen-be/internal/dto"
	"ai-reportgen-be/internal/entity"
	"ai-reportgen-be/internal/repository/specification"
	"ai-reportgen-be/internal/repository/unitofwork"
	"ai-reportgen-be/pkg/document"
	"ai-reportgen-be/pkg/docx"
	"ai-reportgen-be/pkg/entitlement"
	"ai-reportgen-be/pkg/events"
	pktNats "ai-reportgen-be/pkg/nats"
	"ai-reportgen-be/pkg/pdf"

	"github.com/google/uuid"
)

type IExportService interface {
	Export(ctx context.Context, userId uuid.UUID, req *dto.ExportDocumentRequest) (*dto.ExportDocumentResponse, error)
	GetHistory(ctx context.Context, userId uuid.UUID) (*dto.ExportHistoryResponse, error)
	GetDownload(ctx context.Context, userId uuid.UUID, exportId uuid.UUID) (*dto.ExportDownload, error)
}

type exportService struct {
	uowFactory      unitofwork.RepositoryFactory
	documentService IDocumentService
	eventPublisher  *pktNats.Publisher
	accessVerifier  *entitlement.Verifier
	exportDir       string
	baseURL         string
}

func NewExportService(
	uowFactory unitofwork.RepositoryFactory,
	documentService IDocumentService,
	eventPublisher *pktNats.Publisher,
	exportDir string,
	baseURL string,
) IExportService {
	return &exportService{
		uowFactory:      uowFactory,
		documentService: documentService,
		eventPublisher:  eventPublisher,
		accessVerifier:  entitlement.NewVerifier(),
		exportDir:       exportDir,
		baseURL:         baseURL,
	}
}

func (c *exportService) Export(ctx context.Context, userId uuid.UUID, req *dto.ExportDocumentRequest) (*dto.ExportDocumentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	// 1. Entitlement gate: monthly export allowance
	if err := c.accessVerifier.VerifyExportAccess(ctx, uow, userId); err != nil {
		return nil, err
	}

	// 2. Open (or rehydrate) the editing session through the document
	// service so ownership is enforced once, in one place.
	session, err := c.documentService.OpenSession(ctx, userId, req.Id)
	if err != nil {
		return nil, err
	}

	// 3. In-flight guard: one export per session at a time
	if !session.BeginExport() {
		return nil, fmt.Errorf("an export for this document is already in progress")
	}
	defer session.EndExport()

	// 4. Make sure the preview artifacts are mounted; a session that sat in
	// edit mode has no toggles to substitute charts from.
	if session.Controller.Mode() != document.ModePreview {
		if err := session.Controller.SetMode(document.ModePreview); err != nil {
			return nil, err
		}
	}

	// 5. Snapshot with chart substitution; the session text is untouched.
	snapshot := session.Controller.ExportMarkdown()

	var payload []byte
	switch entity.ExportFormat(req.Format) {
	case entity.ExportFormatDocx:
		payload, err = docx.Convert(snapshot)
	case entity.ExportFormatPdf:
		payload, err = pdf.Convert(snapshot)
	default:
		return nil, fmt.Errorf("unsupported export format %q", req.Format)
	}

	record := entity.ExportRecord{
		Id:         uuid.New(),
		DocumentId: req.Id,
		UserId:     userId,
		Format:     entity.ExportFormat(req.Format),
		Filename:   document.ExportFilename(session.Controller.Title(), req.Format),
		Status:     entity.ExportStatusCompleted,
		CreatedAt:  time.Now(),
	}

	if err != nil {
		// Record the failure for the history view, then surface one
		// user-facing error. Failed rows never count against the limit.
		record.Status = entity.ExportStatusFailed
		if createErr := uow.ExportRepository().Create(ctx, &record); createErr != nil {
			fmt.Printf("[WARN] Failed to record failed export for %s: %v\n", req.Id, createErr)
		}
		return nil, fmt.Errorf("export failed: %w", err)
	}

	// 6. Write the file under the export directory, keyed by record id so
	// identical titles never collide on disk.
	if err := os.MkdirAll(c.exportDir, 0755); err != nil {
		return nil, err
	}
	path := c.storagePath(record.Id, record.Format)
	if err := os.WriteFile(path, payload, 0644); err != nil {
		return nil, err
	}
	record.SizeBytes = int64(len(payload))

	if err := uow.ExportRepository().Create(ctx, &record); err != nil {
		return nil, err
	}

	c.publishExported(ctx, &record)

	return &dto.ExportDocumentResponse{
		Id:          record.Id,
		Format:      string(record.Format),
		Filename:    record.Filename,
		SizeBytes:   record.SizeBytes,
		DownloadURL: fmt.Sprintf("%s/api/documents/exports/%s/download", c.baseURL, record.Id),
	}, nil
}

func (c *exportService) GetHistory(ctx context.Context, userId uuid.UUID) (*dto.ExportHistoryResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.ExportRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	records, err := uow.ExportRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	exports := make([]*dto.ExportHistoryItem, 0, len(records))
	for _, r := range records {
		exports = append(exports, &dto.ExportHistoryItem{
			Id:        r.Id,
			Format:    string(r.Format),
			Filename:  r.Filename,
			SizeBytes: r.SizeBytes,
			Status:    string(r.Status),
			CreatedAt: r.CreatedAt,
		})
	}

	return &dto.ExportHistoryResponse{
		Exports: exports,
		Total:   total,
	}, nil
}

func (c *exportService) GetDownload(ctx context.Context, userId uuid.UUID, exportId uuid.UUID) (*dto.ExportDownload, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	record, err := uow.ExportRepository().FindOne(ctx,
		specification.ByID{ID: exportId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("export not found")
	}
	if record.Status != entity.ExportStatusCompleted {
		return nil, fmt.Errorf("export did not complete")
	}

	path := c.storagePath(record.Id, record.Format)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("export file missing")
	}

	return &dto.ExportDownload{
		Path:     path,
		Filename: record.Filename,
	}, nil
}

// storagePath keys the on-disk file by record id, not by the user-visible
// filename.
func (c *exportService) storagePath(id uuid.UUID, format entity.ExportFormat) string {
	return filepath.Join(c.exportDir, fmt.Sprintf("%s.%s", id, format))
}

func (c *exportService) publishExported(ctx context.Context, record *entity.ExportRecord) {
	if c.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type: "EXPORT_COMPLETED",
		Data: map[string]interface{}{
			"export_id":   record.Id,
			"document_id": record.DocumentId,
			"user_id":     record.UserId,
			"format":      string(record.Format),
			"filename":    record.Filename,
			"entity_type": "export",
			"entity_id":   record.Id.String(),
			"occurred_at": time.Now(),
		},
		OccurredAt: time.Now(),
	}
	if err := c.eventPublisher.Publish(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish EXPORT_COMPLETED event: %v\n", err)
	}
}
