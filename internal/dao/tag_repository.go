package dao

import (
	"context"
	"time"

	"github.com/haierkeys/note-tag-service/internal/domain"
	"github.com/haierkeys/note-tag-service/internal/model"
	"github.com/haierkeys/note-tag-service/pkg/timex"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// tagRepository 实现 domain.TagRepository 接口
type tagRepository struct {
	dao *Dao
}

// NewTagRepository 创建 TagRepository 实例
func NewTagRepository(dao *Dao) domain.TagRepository {
	return &tagRepository{dao: dao}
}

func (r *tagRepository) query(ctx context.Context) *gorm.DB {
	return r.dao.db.WithContext(ctx)
}

// toDomain 将数据库模型转换为领域模型
func (r *tagRepository) toDomain(m *model.Tag) *domain.Tag {
	if m == nil {
		return nil
	}
	return &domain.Tag{
		ID:        m.ID,
		Name:      m.Name,
		Color:     domain.Color(m.Color),
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

// toModel 将领域模型转换为数据库模型
func (r *tagRepository) toModel(t *domain.Tag) *model.Tag {
	if t == nil {
		return nil
	}
	return &model.Tag{
		ID:        t.ID,
		Name:      t.Name,
		Color:     string(t.Color),
		CreatedAt: timex.Time(t.CreatedAt),
		UpdatedAt: timex.Time(t.UpdatedAt),
	}
}

// GetByID 根据ID获取标签
func (r *tagRepository) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	var m model.Tag
	if err := r.query(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByName 根据名称获取标签（同名取最早创建的）
func (r *tagRepository) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	var m model.Tag
	if err := r.query(ctx).Where("name = ?", name).Order("id ASC").First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建标签
func (r *tagRepository) Create(ctx context.Context, tag *domain.Tag) (*domain.Tag, error) {
	m := r.toModel(tag)
	m.ID = 0
	m.CreatedAt = timex.Now()
	m.UpdatedAt = timex.Now()
	if err := r.query(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// UpdateName 更新标签名称
func (r *tagRepository) UpdateName(ctx context.Context, id int64, name string) error {
	return r.query(ctx).Model(&model.Tag{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":       name,
			"updated_at": timex.Now(),
		}).Error
}

// UpdateColor 更新标签颜色
func (r *tagRepository) UpdateColor(ctx context.Context, id int64, color domain.Color) error {
	return r.query(ctx).Model(&model.Tag{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"color":      string(color),
			"updated_at": timex.Now(),
		}).Error
}

// Delete 删除标签并清除其全部笔记关联
// 事务保证原子性：要么全部生效，要么全部回滚
func (r *tagRepository) Delete(ctx context.Context, id int64) error {
	return r.query(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&model.NoteTag{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Tag{}).Error
	})
}

// List 按创建顺序分页获取标签列表
func (r *tagRepository) List(ctx context.Context, page, pageSize int) ([]*domain.Tag, error) {
	var ms []*model.Tag
	q := r.query(ctx).Model(&model.Tag{}).Order("id ASC")
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
	tags := make([]*domain.Tag, 0, len(ms))
	for _, m := range ms {
		tags = append(tags, r.toDomain(m))
	}
	return tags, nil
}

// ListCount 获取标签总数
func (r *tagRepository) ListCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.query(ctx).Model(&model.Tag{}).Count(&count).Error
	return count, err
}

// Associate 建立标签与笔记的关联
// 依赖 (tag_id, note_id) 唯一索引，冲突时跳过实现幂等
func (r *tagRepository) Associate(ctx context.Context, tagID, noteID int64) error {
	m := &model.NoteTag{
		TagID:     tagID,
		NoteID:    noteID,
		CreatedAt: timex.Now(),
	}
	return r.query(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(m).Error
}

// Disassociate 解除标签与笔记的关联，不存在时为空操作
func (r *tagRepository) Disassociate(ctx context.Context, tagID, noteID int64) error {
	return r.query(ctx).Where("tag_id = ? AND note_id = ?", tagID, noteID).
		Delete(&model.NoteTag{}).Error
}

// NoteCount 实时统计标签关联的未回收笔记数量
// 回收状态由笔记表实时给出，不在关联上缓存
func (r *tagRepository) NoteCount(ctx context.Context, tagID int64) (int64, error) {
	noteIDs, err := r.NoteIDs(ctx, tagID)
	if err != nil {
		return 0, err
	}
	if len(noteIDs) == 0 {
		return 0, nil
	}
	var count int64
	err = r.query(ctx).Model(&model.Note{}).
		Where("id IN ? AND is_trashed = ?", noteIDs, 0).
		Count(&count).Error
	return count, err
}

// NoteIDs 获取标签关联的全部笔记ID
func (r *tagRepository) NoteIDs(ctx context.Context, tagID int64) ([]int64, error) {
	var ids []int64
	err := r.query(ctx).Model(&model.NoteTag{}).
		Where("tag_id = ?", tagID).Order("note_id ASC").
		Pluck("note_id", &ids).Error
	return ids, err
}

// TagIDsByNote 获取笔记携带的全部标签ID
func (r *tagRepository) TagIDsByNote(ctx context.Context, noteID int64) ([]int64, error) {
	var ids []int64
	err := r.query(ctx).Model(&model.NoteTag{}).
		Where("note_id = ?", noteID).Order("tag_id ASC").
		Pluck("tag_id", &ids).Error
	return ids, err
}

// DeleteAssociationsByNote 清除某笔记的全部标签关联
func (r *tagRepository) DeleteAssociationsByNote(ctx context.Context, noteID int64) error {
	return r.query(ctx).Where("note_id = ?", noteID).Delete(&model.NoteTag{}).Error
}
