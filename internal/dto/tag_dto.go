// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

// TagPostRequest 创建或更新标签的请求参数
// ID 大于 0 时为更新（重命名 / 换色），否则为创建
type TagPostRequest struct {
	ID    int64  `json:"id" form:"id" example:"1"`                                       // 标签 ID（可选，用于更新）
	Name  string `json:"name" form:"name" example:"Work"`                                // 标签名称
	Color string `json:"color" form:"color" binding:"omitempty,tagcolor" example:"blue"` // 标签颜色（调色板内取值）
}

// TagGetRequest 获取/删除标签的请求参数
type TagGetRequest struct {
	ID int64 `json:"id" form:"id" binding:"required,gte=1" example:"1"` // 标签 ID
}

// TagNameRequest 按名称获取或创建标签的请求参数
type TagNameRequest struct {
	Name string `json:"name" form:"name" binding:"required" example:"Work"` // 标签名称
}

// TagAssociateRequest 标签与笔记关联操作的请求参数
type TagAssociateRequest struct {
	TagID  int64 `json:"tagId" form:"tagId" binding:"required,gte=1" example:"1"`   // 标签 ID
	NoteID int64 `json:"noteId" form:"noteId" binding:"required,gte=1" example:"2"` // 笔记 ID
}

// ---------------- DTO / Response ----------------

// TagDTO 标签数据传输对象
// NoteCount 为派生值：关联笔记中未进入回收站的数量，每次查询实时计算
type TagDTO struct {
	ID        int64  `json:"id"`        // 标签 ID
	Name      string `json:"name"`      // 标签名称
	Color     string `json:"color"`     // 标签颜色
	NoteCount int64  `json:"noteCount"` // 未回收的关联笔记数量
	CreatedAt string `json:"createdAt"` // 创建时间
	UpdatedAt string `json:"updatedAt"` // 更新时间
}

// TagCountDTO 标签计数响应
type TagCountDTO struct {
	ID        int64 `json:"id"`        // 标签 ID
	NoteCount int64 `json:"noteCount"` // 未回收的关联笔记数量
}
