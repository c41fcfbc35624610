package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Dataset struct {
	Id               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name             string         `gorm:"type:varchar(255);not null"`
	OriginalFilename string         `gorm:"type:varchar(255)"`
	UserId           uuid.UUID      `gorm:"type:uuid;not null;index"`
	Columns          datatypes.JSON `gorm:"type:jsonb;not null"`
	Rows             datatypes.JSON `gorm:"type:jsonb;not null"`
	RowCount         int            `gorm:"default:0"`
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (Dataset) TableName() string {
	return "datasets"
}
