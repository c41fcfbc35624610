// FILE: internal/service/generation_service.go
// Service for LLM report generation from uploaded datasets
package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ai-reportgen-be/internal/config"
	"ai-reportgen-be/internal/constant"
	"ai-reportgen-be/internal/dto"
	"ai-reportgen-be/internal/entity"
	"ai-reportgen-be/internal/repository/memory"
	"ai-reportgen-be/internal/repository/specification"
	"ai-reportgen-be/internal/repository/unitofwork"
	"ai-reportgen-be/pkg/document"
	"ai-reportgen-be/pkg/entitlement"
	"ai-reportgen-be/pkg/events"
	"ai-reportgen-be/pkg/llm"
	"ai-reportgen-be/pkg/llm/factory"
	"ai-reportgen-be/pkg/markdown"
	pktNats "ai-reportgen-be/pkg/nats"
	"ai-reportgen-be/pkg/store"
	"ai-reportgen-be/pkg/utils"

	"github.com/google/uuid"
)

type IGenerationService interface {
	Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateDocumentRequest) (*dto.ShowDocumentResponse, error)
	Regenerate(ctx context.Context, userId uuid.UUID, req *dto.RegenerateDocumentRequest) (*dto.ShowDocumentResponse, error)
	GetReportStyles(ctx context.Context) ([]*dto.ReportStyleOption, error)
}

// generationConfig is the fully resolved model configuration for one
// generation call: DB settings overlaid on env-backed defaults.
type generationConfig struct {
	Provider     string
	Model        string
	BaseURL      string
	APIKey       string
	Temperature  float64
	SystemPrompt string
	RowCap       int
}

type generationService struct {
	uowFactory     unitofwork.RepositoryFactory
	planService    PlanService
	sessionRepo    *memory.SessionRepository
	renderer       *markdown.Renderer
	eventPublisher *pktNats.Publisher
	accessVerifier *entitlement.Verifier
	aiDefaults     config.AIConfig
	keys           config.APIKeys
}

func NewGenerationService(
	uowFactory unitofwork.RepositoryFactory,
	planService PlanService,
	sessionRepo *memory.SessionRepository,
	renderer *markdown.Renderer,
	eventPublisher *pktNats.Publisher,
	aiDefaults config.AIConfig,
	keys config.APIKeys,
) IGenerationService {
	return &generationService{
		uowFactory:     uowFactory,
		planService:    planService,
		sessionRepo:    sessionRepo,
		renderer:       renderer,
		eventPublisher: eventPublisher,
		accessVerifier: entitlement.NewVerifier(),
		aiDefaults:     aiDefaults,
		keys:           keys,
	}
}

func (c *generationService) Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateDocumentRequest) (*dto.ShowDocumentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	// 1. Entitlements: daily generation allowance, then document storage cap
	if err := c.accessVerifier.VerifyGenerationAccess(ctx, uow, userId); err != nil {
		return nil, err
	}
	if err := c.planService.CheckCanCreateDocument(ctx, userId); err != nil {
		return nil, err
	}

	// 2. Load the source dataset (ownership enforced)
	dataset, err := uow.DatasetRepository().FindOne(ctx,
		specification.ByID{ID: req.DatasetId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if dataset == nil {
		return nil, fmt.Errorf("dataset not found")
	}

	title := req.Title
	if title == "" {
		title = fmt.Sprintf("%s Report", dataset.Name)
	}

	// 3. Run the model
	content, model, err := c.runGeneration(ctx, uow, dataset, title, req.Model, req.Style)
	if err != nil {
		return nil, err
	}

	// 4. Persist only after a successful generation
	now := time.Now()
	doc := entity.Document{
		Id:          uuid.New(),
		Title:       title,
		Content:     content,
		Status:      entity.DocumentStatusReady,
		DatasetId:   &dataset.Id,
		UserId:      userId,
		Model:       model,
		GeneratedAt: &now,
		CreatedAt:   now,
	}
	if err := uow.DocumentRepository().Create(ctx, &doc); err != nil {
		return nil, err
	}

	if err := c.accessVerifier.IncrementGenerationUsage(ctx, uow, userId); err != nil {
		fmt.Printf("[WARN] Failed to increment generation usage for %s: %v\n", userId, err)
	}

	// 5. Prime the editing session so the first preview is instant
	c.sessionRepo.Save(&store.Session{
		ID:         doc.Id.String(),
		UserID:     userId.String(),
		Controller: document.NewController(c.renderer, doc.Title, doc.Content),
	})

	c.publishGenerated(ctx, &doc, false)

	return documentToShowResponse(&doc), nil
}

func (c *generationService) Regenerate(ctx context.Context, userId uuid.UUID, req *dto.RegenerateDocumentRequest) (*dto.ShowDocumentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	if err := c.accessVerifier.VerifyGenerationAccess(ctx, uow, userId); err != nil {
		return nil, err
	}

	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("document not found")
	}
	if doc.DatasetId == nil {
		return nil, fmt.Errorf("document has no source dataset")
	}

	dataset, err := uow.DatasetRepository().FindOne(ctx,
		specification.ByID{ID: *doc.DatasetId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if dataset == nil {
		return nil, fmt.Errorf("dataset not found")
	}

	// On any failure the stored document stays exactly as it was.
	content, model, err := c.runGeneration(ctx, uow, dataset, doc.Title, req.Model, req.Style)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	doc.Content = content
	doc.Status = entity.DocumentStatusReady
	doc.Model = model
	doc.GeneratedAt = &now
	doc.UpdatedAt = &now

	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return nil, err
	}

	if err := c.accessVerifier.IncrementGenerationUsage(ctx, uow, userId); err != nil {
		fmt.Printf("[WARN] Failed to increment generation usage for %s: %v\n", userId, err)
	}

	// Replace the session wholesale; stale find/replace state over new
	// content would be meaningless.
	c.sessionRepo.Save(&store.Session{
		ID:         doc.Id.String(),
		UserID:     userId.String(),
		Controller: document.NewController(c.renderer, doc.Title, doc.Content),
	})

	c.publishGenerated(ctx, doc, true)

	return documentToShowResponse(doc), nil
}

func (c *generationService) GetReportStyles(ctx context.Context) ([]*dto.ReportStyleOption, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	styles, err := uow.GenerationConfigRepository().FindAllStyles(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ReportStyleOption, 0, len(styles))
	for _, s := range styles {
		if !s.IsActive {
			continue
		}
		result = append(result, &dto.ReportStyleOption{
			Key:         s.Key,
			Name:        s.Name,
			Description: s.Description,
		})
	}
	return result, nil
}

// runGeneration resolves the model configuration, formats the dataset rows
// into the prompt and calls the provider. Returns the generated markdown and
// the model that produced it.
func (c *generationService) runGeneration(ctx context.Context, uow unitofwork.UnitOfWork, dataset *entity.Dataset, title, modelOverride, styleKey string) (string, string, error) {
	cfg, err := c.resolveConfig(ctx, uow)
	if err != nil {
		return "", "", err
	}

	// Report style presets override the prompt (and optionally the model)
	if styleKey != "" {
		style, err := uow.GenerationConfigRepository().FindStyleByKey(ctx, styleKey)
		if err != nil {
			return "", "", err
		}
		if style == nil {
			return "", "", fmt.Errorf("report style not found")
		}
		if style.SystemPrompt != "" {
			cfg.SystemPrompt = style.SystemPrompt
		}
		if style.ModelOverride != nil && *style.ModelOverride != "" {
			cfg.Model = *style.ModelOverride
		}
	}

	// Per-request model override wins over everything
	if modelOverride != "" {
		cfg.Model = modelOverride
	}

	rows := dataset.Rows
	if cfg.RowCap > 0 && len(rows) > cfg.RowCap {
		rows = rows[:cfg.RowCap]
	}
	table := utils.FormatRecordsAsTable(dataset.Columns, rows)

	provider, err := factory.NewLLMProvider(cfg.Provider, cfg.Model, cfg.BaseURL, cfg.APIKey)
	if err != nil {
		return "", "", err
	}

	history := []llm.Message{
		{Role: constant.LLMRoleSystem, Content: cfg.SystemPrompt},
		{Role: constant.LLMRoleUser, Content: fmt.Sprintf(constant.ReportUserPromptTemplate, title, len(rows), dataset.RowCount, table)},
	}

	genCtx, cancel := context.WithTimeout(ctx, constant.GenerationTimeoutSecs*time.Second)
	defer cancel()

	content, err := provider.Chat(genCtx, history,
		llm.WithModel(cfg.Model),
		llm.WithTemperature(cfg.Temperature),
		llm.WithMaxTokens(constant.GenerationMaxTokens),
	)
	if err != nil {
		return "", "", fmt.Errorf("generation failed: %w", err)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return "", "", fmt.Errorf("generation failed: model returned an empty response")
	}

	return content, cfg.Model, nil
}

// resolveConfig overlays the admin-tunable generation_settings rows on the
// env-backed defaults. Unparseable numeric settings keep the default.
func (c *generationService) resolveConfig(ctx context.Context, uow unitofwork.UnitOfWork) (*generationConfig, error) {
	cfg := &generationConfig{
		Provider:     c.aiDefaults.LLMProvider,
		Model:        c.aiDefaults.LLMModel,
		BaseURL:      c.aiDefaults.LLMBaseURL,
		Temperature:  c.aiDefaults.Temperature,
		SystemPrompt: constant.DefaultReportSystemPrompt,
		RowCap:       c.aiDefaults.PromptRowCap,
	}

	settings, err := uow.GenerationConfigRepository().FindAllSettings(ctx)
	if err != nil {
		return nil, err
	}

	for _, s := range settings {
		if s.Value == "" {
			continue
		}
		switch s.Key {
		case entity.GenerationConfigKeyLLMProvider:
			cfg.Provider = s.Value
		case entity.GenerationConfigKeyLLMModel:
			cfg.Model = s.Value
		case entity.GenerationConfigKeyLLMBaseURL:
			cfg.BaseURL = s.Value
		case entity.GenerationConfigKeyLLMAPIKey:
			cfg.APIKey = s.Value
		case entity.GenerationConfigKeyLLMTemperature:
			if v, err := strconv.ParseFloat(s.Value, 64); err == nil {
				cfg.Temperature = v
			} else {
				fmt.Printf("[WARN] Invalid llm_temperature setting %q, keeping default\n", s.Value)
			}
		case entity.GenerationConfigKeySystemPrompt:
			cfg.SystemPrompt = s.Value
		case entity.GenerationConfigKeyPromptRowCap:
			if v, err := strconv.Atoi(s.Value); err == nil && v > 0 {
				cfg.RowCap = v
			} else {
				fmt.Printf("[WARN] Invalid prompt_row_cap setting %q, keeping default\n", s.Value)
			}
		}
	}

	if cfg.APIKey == "" {
		cfg.APIKey = c.providerKey(cfg.Provider)
	}

	return cfg, nil
}

func (c *generationService) providerKey(provider string) string {
	switch provider {
	case "huggingface":
		return c.keys.HuggingFace
	default:
		return c.keys.OpenAI
	}
}

func (c *generationService) publishGenerated(ctx context.Context, doc *entity.Document, regenerated bool) {
	if c.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type: "DOCUMENT_GENERATED",
		Data: map[string]interface{}{
			"document_id": doc.Id,
			"title":       doc.Title,
			"user_id":     doc.UserId,
			"model":       doc.Model,
			"regenerated": regenerated,
			"entity_type": "document",
			"entity_id":   doc.Id.String(),
			"occurred_at": time.Now(),
		},
		OccurredAt: time.Now(),
	}
	if err := c.eventPublisher.Publish(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish DOCUMENT_GENERATED event: %v\n", err)
	}
}

func documentToShowResponse(doc *entity.Document) *dto.ShowDocumentResponse {
	return &dto.ShowDocumentResponse{
		Id:          doc.Id,
		Title:       doc.Title,
		Content:     doc.Content,
		Status:      string(doc.Status),
		DatasetId:   doc.DatasetId,
		Model:       doc.Model,
		GeneratedAt: doc.GeneratedAt,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}
