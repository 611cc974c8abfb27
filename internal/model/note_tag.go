package model

import (
	"github.com/haierkeys/note-tag-service/pkg/timex"
)

// NoteTag 标签与笔记的关联表
// (tag_id, note_id) 唯一，两列分别建索引以支撑双向查询
type NoteTag struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement"`
	TagID     int64      `gorm:"column:tag_id;not null;uniqueIndex:idx_tag_note,priority:1;index"`
	NoteID    int64      `gorm:"column:note_id;not null;uniqueIndex:idx_tag_note,priority:2;index"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;autoCreateTime"`
}

// TableName 表名
func (NoteTag) TableName() string {
	return "note_tag"
}
