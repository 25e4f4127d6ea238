package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentBase 文档主键由存储层分配（UUID），删除为物理删除
// swagger:model
type DocumentBase struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *DocumentBase) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = GenerateUUID()
	}
	return
}

func GenerateUUID() string {
	return uuid.New().String()
}
