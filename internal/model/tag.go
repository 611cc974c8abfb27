package model

import (
	"github.com/haierkeys/note-tag-service/pkg/timex"
)

// Tag 标签表
type Tag struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string     `gorm:"column:name;size:255;not null;index"`
	Color     string     `gorm:"column:color;size:16;not null;default:gray"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;autoCreateTime"`
	UpdatedAt timex.Time `gorm:"column:updated_at;type:datetime;autoUpdateTime"`
}

// TableName 表名
func (Tag) TableName() string {
	return "tag"
}
