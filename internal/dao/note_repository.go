package dao

import (
	"context"
	"time"

	"github.com/haierkeys/note-tag-service/internal/domain"
	"github.com/haierkeys/note-tag-service/internal/model"
	"github.com/haierkeys/note-tag-service/pkg/timex"

	"gorm.io/gorm"
)

// noteRepository 实现 domain.NoteRepository 接口
type noteRepository struct {
	dao *Dao
}

// NewNoteRepository 创建 NoteRepository 实例
func NewNoteRepository(dao *Dao) domain.NoteRepository {
	return &noteRepository{dao: dao}
}

func (r *noteRepository) query(ctx context.Context) *gorm.DB {
	return r.dao.db.WithContext(ctx)
}

func (r *noteRepository) toDomain(m *model.Note) *domain.Note {
	if m == nil {
		return nil
	}
	return &domain.Note{
		ID:        m.ID,
		Title:     m.Title,
		Content:   m.Content,
		IsTrashed: m.IsTrashed != 0,
		TrashedAt: m.TrashedAt,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

func (r *noteRepository) toModel(n *domain.Note) *model.Note {
	if n == nil {
		return nil
	}
	m := &model.Note{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		TrashedAt: n.TrashedAt,
		CreatedAt: timex.Time(n.CreatedAt),
		UpdatedAt: timex.Time(n.UpdatedAt),
	}
	if n.IsTrashed {
		m.IsTrashed = 1
	}
	return m
}

// GetByID 根据ID获取笔记
func (r *noteRepository) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	var m model.Note
	if err := r.query(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// IsTrashed 查询笔记的回收状态
func (r *noteRepository) IsTrashed(ctx context.Context, id int64) (bool, error) {
	var m model.Note
	if err := r.query(ctx).Select("id", "is_trashed").Where("id = ?", id).First(&m).Error; err != nil {
		return false, err
	}
	return m.IsTrashed != 0, nil
}

// Create 创建笔记
func (r *noteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	m := r.toModel(note)
	m.ID = 0
	m.CreatedAt = timex.Now()
	m.UpdatedAt = timex.Now()
	if err := r.query(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Update 更新笔记内容
func (r *noteRepository) Update(ctx context.Context, note *domain.Note) error {
	return r.query(ctx).Model(&model.Note{}).Where("id = ?", note.ID).
		Updates(map[string]interface{}{
			"title":      note.Title,
			"content":    note.Content,
			"updated_at": timex.Now(),
		}).Error
}

// UpdateTrash 更新笔记回收状态
func (r *noteRepository) UpdateTrash(ctx context.Context, id int64, trashed bool, trashedAt int64) error {
	isTrashed := int64(0)
	if trashed {
		isTrashed = 1
	} else {
		trashedAt = 0
	}
	return r.query(ctx).Model(&model.Note{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_trashed": isTrashed,
			"trashed_at": trashedAt,
			"updated_at": timex.Now(),
		}).Error
}

// Delete 物理删除笔记
func (r *noteRepository) Delete(ctx context.Context, id int64) error {
	return r.query(ctx).Where("id = ?", id).Delete(&model.Note{}).Error
}

// List 分页获取笔记列表
func (r *noteRepository) List(ctx context.Context, page, pageSize int, isTrashed bool) ([]*domain.Note, error) {
	trashed := int64(0)
	if isTrashed {
		trashed = 1
	}
	var ms []*model.Note
	q := r.query(ctx).Model(&model.Note{}).
		Where("is_trashed = ?", trashed).Order("id ASC")
	if pageSize > 0 {
		offset := (page - 1) * pageSize
		if offset < 0 {
			offset = 0
		}
		q = q.Offset(offset).Limit(pageSize)
	}
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}
	notes := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		notes = append(notes, r.toDomain(m))
	}
	return notes, nil
}

// ListCount 获取笔记数量
func (r *noteRepository) ListCount(ctx context.Context, isTrashed bool) (int64, error) {
	trashed := int64(0)
	if isTrashed {
		trashed = 1
	}
	var count int64
	err := r.query(ctx).Model(&model.Note{}).Where("is_trashed = ?", trashed).Count(&count).Error
	return count, err
}

// ListByIDs 批量获取笔记
func (r *noteRepository) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Note, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ms []*model.Note
	if err := r.query(ctx).Where("id IN ?", ids).Order("id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	notes := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		notes = append(notes, r.toDomain(m))
	}
	return notes, nil
}

// ListTrashedBefore 获取在指定时间之前进入回收站的笔记ID
func (r *noteRepository) ListTrashedBefore(ctx context.Context, timestamp int64) ([]int64, error) {
	var ids []int64
	err := r.query(ctx).Model(&model.Note{}).
		Where("is_trashed = ? AND trashed_at > 0 AND trashed_at < ?", 1, timestamp).
		Pluck("id", &ids).Error
	return ids, err
}
