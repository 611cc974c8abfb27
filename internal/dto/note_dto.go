package dto

// NotePostRequest 创建或更新笔记的请求参数
type NotePostRequest struct {
	ID      int64  `json:"id" form:"id" example:"1"`                       // 笔记 ID（可选，用于更新）
	Title   string `json:"title" form:"title" example:"Meeting notes"`     // 笔记标题
	Content string `json:"content" form:"content" example:"## Agenda ..."` // 笔记内容
}

// NoteGetRequest 获取/回收/恢复笔记的请求参数
type NoteGetRequest struct {
	ID int64 `json:"id" form:"id" binding:"required,gte=1" example:"1"` // 笔记 ID
}

// NoteListRequest 笔记列表请求参数
type NoteListRequest struct {
	IsTrashed bool `json:"isTrashed" form:"isTrashed"` // 是否列出回收站中的笔记
}

// ---------------- DTO / Response ----------------

// NoteDTO 笔记数据传输对象
type NoteDTO struct {
	ID        int64  `json:"id"`        // 笔记 ID
	Title     string `json:"title"`     // 笔记标题
	Content   string `json:"content"`   // 笔记内容
	IsTrashed bool   `json:"isTrashed"` // 是否在回收站
	TrashedAt int64  `json:"trashedAt"` // 进入回收站的时间戳（秒）
	CreatedAt string `json:"createdAt"` // 创建时间
	UpdatedAt string `json:"updatedAt"` // 更新时间
}
