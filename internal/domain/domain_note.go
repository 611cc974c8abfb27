package domain

import "time"

// Note 笔记领域模型
type Note struct {
	ID        int64
	Title     string
	Content   string
	IsTrashed bool
	TrashedAt int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive 判断笔记是否处于活动状态（未进入回收站）
func (n *Note) IsActive() bool {
	return !n.IsTrashed
}
