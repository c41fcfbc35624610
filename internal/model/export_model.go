package model

import (
	"time"

	"github.com/google/uuid"
)

type ExportRecord struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;index:idx_export_records_user_created,priority:1"`
	Format     string    `gorm:"type:varchar(10);not null"`
	Filename   string    `gorm:"type:varchar(255);not null"`
	SizeBytes  int64     `gorm:"default:0"`
	Status     string    `gorm:"type:varchar(20);not null;default:'completed'"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index:idx_export_records_user_created,priority:2"`
}

func (ExportRecord) TableName() string {
	return "export_records"
}
