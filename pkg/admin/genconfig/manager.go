package genconfig

import (
	"context"
	"fmt"

	"ai-reportgen-be/internal/dto"
	"ai-reportgen-be/internal/entity"
	"ai-reportgen-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const secretMask = "********"

// Manager handles generation settings and report style presets
type Manager struct{}

// NewManager creates a new generation config manager
func NewManager() *Manager {
	return &Manager{}
}

// ============================================================================
// Setting Methods
// ============================================================================

// GetAllSettings retrieves all generation settings, masking secret values
func (m *Manager) GetAllSettings(ctx context.Context, uow unitofwork.UnitOfWork) ([]*dto.GenerationSettingResponse, error) {
	settings, err := uow.GenerationConfigRepository().FindAllSettings(ctx)
	if err != nil {
		return nil, err
	}

	var responses []*dto.GenerationSettingResponse
	for _, s := range settings {
		responses = append(responses, settingToResponse(s))
	}

	return responses, nil
}

// GetSettingByKey retrieves a setting by key
func (m *Manager) GetSettingByKey(ctx context.Context, uow unitofwork.UnitOfWork, key string) (*dto.GenerationSettingResponse, error) {
	setting, err := uow.GenerationConfigRepository().FindSettingByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, fmt.Errorf("setting with key '%s' not found", key)
	}

	return settingToResponse(setting), nil
}

// UpdateSetting updates a setting value
func (m *Manager) UpdateSetting(ctx context.Context, uow unitofwork.UnitOfWork, key string, req dto.UpdateGenerationSettingRequest) (*dto.GenerationSettingResponse, error) {
	setting, err := uow.GenerationConfigRepository().FindSettingByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, fmt.Errorf("setting with key '%s' not found", key)
	}

	setting.Value = req.Value

	if err := uow.GenerationConfigRepository().UpdateSetting(ctx, setting); err != nil {
		return nil, err
	}

	return settingToResponse(setting), nil
}

// ============================================================================
// Report Style Methods
// ============================================================================

// GetAllStyles retrieves all report style presets
func (m *Manager) GetAllStyles(ctx context.Context, uow unitofwork.UnitOfWork) ([]*dto.ReportStyleResponse, error) {
	styles, err := uow.GenerationConfigRepository().FindAllStyles(ctx)
	if err != nil {
		return nil, err
	}

	var responses []*dto.ReportStyleResponse
	for _, s := range styles {
		responses = append(responses, styleToResponse(s))
	}

	return responses, nil
}

// GetStyleByKey retrieves a style by key (used at generation time)
func (m *Manager) GetStyleByKey(ctx context.Context, uow unitofwork.UnitOfWork, key string) (*entity.ReportStyle, error) {
	return uow.GenerationConfigRepository().FindStyleByKey(ctx, key)
}

// CreateStyle creates a new report style preset
func (m *Manager) CreateStyle(ctx context.Context, uow unitofwork.UnitOfWork, req dto.CreateReportStyleRequest) (*dto.ReportStyleResponse, error) {
	// Check for duplicate key
	existing, err := uow.GenerationConfigRepository().FindStyleByKey(ctx, req.Key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("style with key '%s' already exists", req.Key)
	}

	style := &entity.ReportStyle{
		Key:           req.Key,
		Name:          req.Name,
		Description:   req.Description,
		SystemPrompt:  req.SystemPrompt,
		ModelOverride: req.ModelOverride,
		IsActive:      true,
		SortOrder:     req.SortOrder,
	}

	if err := uow.GenerationConfigRepository().CreateStyle(ctx, style); err != nil {
		return nil, err
	}

	return styleToResponse(style), nil
}

// UpdateStyle updates an existing report style preset
func (m *Manager) UpdateStyle(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID, req dto.UpdateReportStyleRequest) (*dto.ReportStyleResponse, error) {
	style, err := uow.GenerationConfigRepository().FindStyleById(ctx, id)
	if err != nil {
		return nil, err
	}
	if style == nil {
		return nil, fmt.Errorf("style not found")
	}

	if req.Name != nil {
		style.Name = *req.Name
	}
	if req.Description != nil {
		style.Description = *req.Description
	}
	if req.SystemPrompt != nil {
		style.SystemPrompt = *req.SystemPrompt
	}
	if req.ModelOverride != nil {
		style.ModelOverride = req.ModelOverride
	}
	if req.IsActive != nil {
		style.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		style.SortOrder = *req.SortOrder
	}

	if err := uow.GenerationConfigRepository().UpdateStyle(ctx, style); err != nil {
		return nil, err
	}

	return styleToResponse(style), nil
}

// DeleteStyle removes a report style preset
func (m *Manager) DeleteStyle(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) error {
	style, err := uow.GenerationConfigRepository().FindStyleById(ctx, id)
	if err != nil {
		return err
	}
	if style == nil {
		return fmt.Errorf("style not found")
	}

	return uow.GenerationConfigRepository().DeleteStyle(ctx, id)
}

// ============================================================================
// Mappers
// ============================================================================

func settingToResponse(s *entity.GenerationSetting) *dto.GenerationSettingResponse {
	value := s.Value
	if s.IsSecret && value != "" {
		value = secretMask
	}
	return &dto.GenerationSettingResponse{
		Id:          s.Id,
		Key:         s.Key,
		Value:       value,
		ValueType:   s.ValueType,
		Description: s.Description,
		Category:    s.Category,
		IsSecret:    s.IsSecret,
		UpdatedAt:   s.UpdatedAt,
	}
}

func styleToResponse(s *entity.ReportStyle) *dto.ReportStyleResponse {
	return &dto.ReportStyleResponse{
		Id:            s.Id,
		Key:           s.Key,
		Name:          s.Name,
		Description:   s.Description,
		SystemPrompt:  s.SystemPrompt,
		ModelOverride: s.ModelOverride,
		IsActive:      s.IsActive,
		SortOrder:     s.SortOrder,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
