package dto

import "github.com/google/uuid"

type GenerateDocumentRequest struct {
	DatasetId uuid.UUID `json:"dataset_id" validate:"required"`
	Title     string    `json:"title"`
	Model     string    `json:"model"` // optional override, empty = configured default
	Style     string    `json:"style"` // report style key, empty = default prompt
}

type RegenerateDocumentRequest struct {
	Id    uuid.UUID
	Model string `json:"model"`
	Style string `json:"style"`
}

type ReportStyleOption struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
