package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string     `gorm:"type:varchar(255);not null"`
	Content     string     `gorm:"type:text"`
	Status      string     `gorm:"type:varchar(50);not null;default:'draft'"`
	DatasetId   *uuid.UUID `gorm:"type:uuid;index"`
	UserId      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Model       string     `gorm:"type:varchar(100)"`
	GeneratedAt *time.Time
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
