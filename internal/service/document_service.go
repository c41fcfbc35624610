// FILE: internal/service/document_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-reportgen-be/internal/dto"
	"ai-reportgen-be/internal/entity"
	"ai-reportgen-be/internal/repository/memory"
	"ai-reportgen-be/internal/repository/specification"
	"ai-reportgen-be/internal/repository/unitofwork"
	"ai-reportgen-be/pkg/document"
	"ai-reportgen-be/pkg/markdown"
	"ai-reportgen-be/pkg/store"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateDocumentRequest) (*dto.CreateDocumentResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID, page int, perPage int, search string) (*dto.ListDocumentsResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowDocumentResponse, error)
	Rename(ctx context.Context, userId uuid.UUID, req *dto.RenameDocumentRequest) error
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error

	// Editing session surface. Everything below mutates the in-memory
	// session only; the database row changes on Save alone.
	Preview(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.PreviewResponse, error)
	SetMode(ctx context.Context, userId uuid.UUID, req *dto.SetModeRequest) (*dto.SessionStateResponse, error)
	UpdateContent(ctx context.Context, userId uuid.UUID, req *dto.UpdateContentRequest) (*dto.SessionStateResponse, error)
	Save(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.SaveDocumentResponse, error)
	SetTableView(ctx context.Context, userId uuid.UUID, req *dto.TableViewRequest) (*document.TableView, error)
	SetTableColumns(ctx context.Context, userId uuid.UUID, req *dto.TableColumnsRequest) (*document.TableView, error)
	Find(ctx context.Context, userId uuid.UUID, req *dto.FindRequest) (*document.FindResult, error)
	FindNext(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*document.FindResult, error)
	FindPrevious(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*document.FindResult, error)
	ReplaceCurrent(ctx context.Context, userId uuid.UUID, req *dto.ReplaceRequest) (*document.FindResult, error)
	ReplaceAll(ctx context.Context, userId uuid.UUID, req *dto.ReplaceRequest) (*dto.ReplaceAllResponse, error)

	// OpenSession exposes the session arena to collaborators that act on a
	// live session, such as the exporter. Ownership is enforced.
	OpenSession(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*store.Session, error)
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	planService      PlanService
	sessionRepo      *memory.SessionRepository
	renderer         *markdown.Renderer
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	planService PlanService,
	sessionRepo *memory.SessionRepository,
	renderer *markdown.Renderer,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		planService:      planService,
		sessionRepo:      sessionRepo,
		renderer:         renderer,
	}
}

func (c *documentService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateDocumentRequest) (*dto.CreateDocumentResponse, error) {
	if err := c.planService.CheckCanCreateDocument(ctx, userId); err != nil {
		return nil, err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	doc := entity.Document{
		Id:        uuid.New(),
		Title:     req.Title,
		Content:   req.Content,
		Status:    entity.DocumentStatusDraft,
		UserId:    userId,
		CreatedAt: time.Now(),
	}

	if err := uow.DocumentRepository().Create(ctx, &doc); err != nil {
		return nil, err
	}

	return &dto.CreateDocumentResponse{
		Id: doc.Id,
	}, nil
}

func (c *documentService) GetAll(ctx context.Context, userId uuid.UUID, page int, perPage int, search string) (*dto.ListDocumentsResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
	}
	if search != "" {
		specs = append(specs, specification.DocumentSearchQuery{Query: search})
	}

	total, err := uow.DocumentRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	listSpecs := append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: perPage, Offset: (page - 1) * perPage},
	)
	documents, err := uow.DocumentRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.DocumentSummaryResponse, 0, len(documents))
	for _, doc := range documents {
		result = append(result, &dto.DocumentSummaryResponse{
			Id:          doc.Id,
			Title:       doc.Title,
			Status:      string(doc.Status),
			DatasetId:   doc.DatasetId,
			Model:       doc.Model,
			GeneratedAt: doc.GeneratedAt,
			CreatedAt:   doc.CreatedAt,
			UpdatedAt:   doc.UpdatedAt,
		})
	}

	return &dto.ListDocumentsResponse{
		Documents: result,
		Total:     total,
		Page:      page,
		PerPage:   perPage,
	}, nil
}

func (c *documentService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowDocumentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	return documentToShowResponse(doc), nil
}

func (c *documentService) Rename(ctx context.Context, userId uuid.UUID, req *dto.RenameDocumentRequest) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("document not found")
	}

	now := time.Now()
	doc.Title = req.Title
	doc.UpdatedAt = &now
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return err
	}

	// Keep an open editing session in sync with the new title
	if session, ok := c.sessionRepo.Get(req.Id.String()); ok && session.UserID == userId.String() {
		session.Controller.SetTitle(req.Title)
	}

	return nil
}

func (c *documentService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if doc == nil {
		return nil
	}

	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return err
	}

	c.sessionRepo.Delete(id.String())
	return nil
}

// ============================================================================
// Editing Session Surface
// ============================================================================

// getSession returns the open editing session for a document, rehydrating it
// from the persisted row on an arena miss. Ownership is enforced on both
// paths.
func (c *documentService) getSession(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*store.Session, error) {
	if session, ok := c.sessionRepo.Get(id.String()); ok {
		if session.UserID != userId.String() {
			return nil, fmt.Errorf("document not found")
		}
		return session, nil
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("document not found")
	}

	session := &store.Session{
		ID:         doc.Id.String(),
		UserID:     userId.String(),
		Controller: document.NewController(c.renderer, doc.Title, doc.Content),
	}
	c.sessionRepo.Save(session)
	return session, nil
}

func (c *documentService) OpenSession(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*store.Session, error) {
	return c.getSession(ctx, userId, id)
}

func (c *documentService) Preview(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.PreviewResponse, error) {
	session, err := c.getSession(ctx, userId, id)
	if err != nil {
		return nil, err
	}

	// Entering preview renders from the latest text. When the session is
	// already in preview the mounted toggles (and their chart state) are
	// kept as they are.
	if session.Controller.Mode() != document.ModePreview {
		if err := session.Controller.SetMode(document.ModePreview); err != nil {
			return nil, err
		}
	}

	return &dto.PreviewResponse{
		Id:     id,
		Title:  session.Controller.Title(),
		Mode:   session.Controller.Mode(),
		Dirty:  session.Controller.Dirty(),
		HTML:   session.Controller.HTML(),
		Tables: session.Controller.TableViews(),
	}, nil
}

func (c *documentService) SetMode(ctx context.Context, userId uuid.UUID, req *dto.SetModeRequest) (*dto.SessionStateResponse, error) {
	session, err := c.getSession(ctx, userId, req.Id)
	if err != nil {
		return nil, err
	}

	if err := session.Controller.SetMode(req.Mode); err != nil {
		return nil, err
	}

	return c.sessionState(req.Id, session), nil
}

func (c *documentService) UpdateContent(ctx context.Context, userId uuid.UUID, req *dto.UpdateContentRequest) (*dto.SessionStateResponse, error) {
	session, err := c.getSession(ctx, userId, req.Id)
	if err != nil {
		return nil, err
	}

	session.Controller.SetText(req.Content)

	if err := c.publishRender(ctx, req.Id); err != nil {
		return nil, err
	}

	return c.sessionState(req.Id, session), nil
}

func (c *documentService) Save(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.SaveDocumentResponse, error) {
	session, err := c.getSession(ctx, userId, id)
	if err != nil {
		return nil, err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("document not found")
	}

	// The session text is authoritative; the row is replaced in one write,
	// never patched piecemeal.
	now := time.Now()
	doc.Title = session.Controller.Title()
	doc.Content = session.Controller.Text()
	doc.UpdatedAt = &now

	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return nil, err
	}
	session.Controller.MarkSaved()

	return &dto.SaveDocumentResponse{
		Id:      id,
		SavedAt: &now,
	}, nil
}

func (c *documentService) SetTableView(ctx context.Context, userId uuid.UUID, req *dto.TableViewRequest) (*document.TableView, error) {
	session, err := c.getSession(ctx, userId, req.Id)
	if err != nil {
		return nil, err
	}

	view, err := session.Controller.SetTableView(req.Index, req.View)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *documentService) SetTableColumns(ctx context.Context, userId uuid.UUID, req *dto.TableColumnsRequest) (*document.TableView, error) {
	session, err := c.getSession(ctx, userId, req.Id)
	if err != nil {
		return nil, err
	}

	view, err := session.Controller.SetTableColumns(req.Index, req.LabelColumn, req.ValueColumns)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *documentService) Find(ctx context.Context, userId uuid.UUID, req *dto.FindRequest) (*document.FindResult, error) {
	session, err := c.getSession(ctx, userId, req.Id)
	if err != nil {
		return nil, err
	}

	res := session.Controller.Find(req.Term)
	return &res, nil
}

func (c *documentService) FindNext(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*document.FindResult, error) {
	session, err := c.getSession(ctx, userId, id)
	if err != nil {
		return nil, err
	}

	res := session.Controller.FindNext()
	return &res, nil
}

func (c *documentService) FindPrevious(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*document.FindResult, error) {
	session, err := c.getSession(ctx, userId, id)
	if err != nil {
		return nil, err
	}

	res := session.Controller.FindPrevious()
	return &res, nil
}

func (c *documentService) ReplaceCurrent(ctx context.Context, userId uuid.UUID, req *dto.ReplaceRequest) (*document.FindResult, error) {
	session, err := c.getSession(ctx, userId, req.Id)
	if err != nil {
		return nil, err
	}

	res := session.Controller.ReplaceCurrent(req.Replacement)

	if err := c.publishRender(ctx, req.Id); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *documentService) ReplaceAll(ctx context.Context, userId uuid.UUID, req *dto.ReplaceRequest) (*dto.ReplaceAllResponse, error) {
	session, err := c.getSession(ctx, userId, req.Id)
	if err != nil {
		return nil, err
	}

	replaced, res := session.Controller.ReplaceAll(req.Replacement)

	if err := c.publishRender(ctx, req.Id); err != nil {
		return nil, err
	}

	return &dto.ReplaceAllResponse{
		Replaced: replaced,
		Find:     res,
	}, nil
}

func (c *documentService) sessionState(id uuid.UUID, session *store.Session) *dto.SessionStateResponse {
	return &dto.SessionStateResponse{
		Id:    id,
		Mode:  session.Controller.Mode(),
		Dirty: session.Controller.Dirty(),
	}
}

func (c *documentService) publishRender(ctx context.Context, id uuid.UUID) error {
	msgPayload := dto.PublishRenderMessage{
		DocumentId: id,
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return err
	}
	return c.publisherService.Publish(ctx, msgJson)
}
