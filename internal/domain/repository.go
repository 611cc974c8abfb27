package domain

import "context"

// TagRepository 标签仓储接口
// 标签与笔记的关联以双向索引（tag->note, note->tag）维护，
// 由仓储的关联/解除关联与删除操作保持一致
type TagRepository interface {
	// GetByID 根据ID获取标签
	GetByID(ctx context.Context, id int64) (*Tag, error)

	// GetByName 根据名称获取标签（同名取最早创建的）
	GetByName(ctx context.Context, name string) (*Tag, error)

	// Create 创建标签
	Create(ctx context.Context, tag *Tag) (*Tag, error)

	// UpdateName 更新标签名称
	UpdateName(ctx context.Context, id int64, name string) error

	// UpdateColor 更新标签颜色
	UpdateColor(ctx context.Context, id int64, color Color) error

	// Delete 删除标签并清除其全部笔记关联（事务内完成）
	Delete(ctx context.Context, id int64) error

	// List 按创建顺序分页获取标签列表
	List(ctx context.Context, page, pageSize int) ([]*Tag, error)

	// ListCount 获取标签总数
	ListCount(ctx context.Context) (int64, error)

	// Associate 建立标签与笔记的关联，已存在时为幂等空操作
	Associate(ctx context.Context, tagID, noteID int64) error

	// Disassociate 解除标签与笔记的关联，不存在时为幂等空操作
	Disassociate(ctx context.Context, tagID, noteID int64) error

	// NoteCount 实时统计标签关联的未回收笔记数量
	NoteCount(ctx context.Context, tagID int64) (int64, error)

	// NoteIDs 获取标签关联的全部笔记ID
	NoteIDs(ctx context.Context, tagID int64) ([]int64, error)

	// TagIDsByNote 获取笔记携带的全部标签ID
	TagIDsByNote(ctx context.Context, noteID int64) ([]int64, error)

	// DeleteAssociationsByNote 清除某笔记的全部标签关联（笔记彻底删除时调用）
	DeleteAssociationsByNote(ctx context.Context, noteID int64) error
}

// NoteRepository 笔记仓储接口
type NoteRepository interface {
	// GetByID 根据ID获取笔记
	GetByID(ctx context.Context, id int64) (*Note, error)

	// IsTrashed 查询笔记的回收状态
	IsTrashed(ctx context.Context, id int64) (bool, error)

	// Create 创建笔记
	Create(ctx context.Context, note *Note) (*Note, error)

	// Update 更新笔记内容
	Update(ctx context.Context, note *Note) error

	// UpdateTrash 更新笔记回收状态
	UpdateTrash(ctx context.Context, id int64, trashed bool, trashedAt int64) error

	// Delete 物理删除笔记
	Delete(ctx context.Context, id int64) error

	// List 分页获取笔记列表
	List(ctx context.Context, page, pageSize int, isTrashed bool) ([]*Note, error)

	// ListCount 获取笔记数量
	ListCount(ctx context.Context, isTrashed bool) (int64, error)

	// ListByIDs 批量获取笔记
	ListByIDs(ctx context.Context, ids []int64) ([]*Note, error)

	// ListTrashedBefore 获取在指定时间之前进入回收站的笔记ID
	ListTrashedBefore(ctx context.Context, timestamp int64) ([]int64, error)
}
