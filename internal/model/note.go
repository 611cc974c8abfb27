package model

import (
	"github.com/haierkeys/note-tag-service/pkg/timex"
)

// Note 笔记表
// IsTrashed 标记进入回收站，TrashedAt 记录进入时间戳（秒）
type Note struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Title     string     `gorm:"column:title;size:512;not null"`
	Content   string     `gorm:"column:content;type:text"`
	IsTrashed int64      `gorm:"column:is_trashed;not null;default:0;index"`
	TrashedAt int64      `gorm:"column:trashed_at;not null;default:0"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;autoCreateTime"`
	UpdatedAt timex.Time `gorm:"column:updated_at;type:datetime;autoUpdateTime"`
}

// TableName 表名
func (Note) TableName() string {
	return "note"
}
