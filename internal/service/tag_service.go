package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/haierkeys/note-tag-service/internal/domain"
	"github.com/haierkeys/note-tag-service/internal/dto"
	"github.com/haierkeys/note-tag-service/pkg/code"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// TagService 定义标签注册表的业务服务接口
// 负责标签的创建、重命名、换色、删除，标签与笔记的关联维护，
// 以及派生计数（未回收关联笔记数）的实时查询
type TagService interface {
	// Create 创建标签，名称去除首尾空白后不得为空，颜色为空时取默认色
	Create(ctx context.Context, name, color string) (*dto.TagDTO, error)

	// Rename 重命名标签
	Rename(ctx context.Context, id int64, newName string) (*dto.TagDTO, error)

	// SetColor 修改标签颜色，颜色必须在调色板内
	SetColor(ctx context.Context, id int64, color string) (*dto.TagDTO, error)

	// Delete 删除标签并清除其全部笔记关联
	Delete(ctx context.Context, id int64) error

	// Associate 建立标签与笔记的关联，重复关联为幂等空操作
	Associate(ctx context.Context, tagID, noteID int64) error

	// Disassociate 解除标签与笔记的关联，关联不存在时为幂等空操作
	Disassociate(ctx context.Context, tagID, noteID int64) error

	// NoteCount 实时统计标签关联的未回收笔记数量
	NoteCount(ctx context.Context, id int64) (int64, error)

	// Get 根据 ID 获取标签（含实时计数）
	Get(ctx context.Context, id int64) (*dto.TagDTO, error)

	// List 按创建顺序分页获取标签列表（含实时计数）
	List(ctx context.Context, page, pageSize int) ([]*dto.TagDTO, int64, error)

	// Notes 获取标签关联的全部笔记
	Notes(ctx context.Context, id int64) ([]*dto.NoteDTO, error)

	// GetOrCreateByName 按名称获取标签，不存在时创建
	// 使用 Singleflight 合并并发请求，避免重复创建
	GetOrCreateByName(ctx context.Context, name string) (*dto.TagDTO, error)

	// SetEventPublisher 注入事件发布器
	SetEventPublisher(pub EventPublisher)
}

// tagService 实现 TagService 接口
type tagService struct {
	tagRepo  domain.TagRepository
	noteRepo domain.NoteRepository
	sf       *singleflight.Group
	pub      EventPublisher
}

// NewTagService 创建 TagService 实例
func NewTagService(tagRepo domain.TagRepository, noteRepo domain.NoteRepository) TagService {
	return &tagService{
		tagRepo:  tagRepo,
		noteRepo: noteRepo,
		sf:       &singleflight.Group{},
		pub:      nopPublisher{},
	}
}

// SetEventPublisher 注入事件发布器
func (s *tagService) SetEventPublisher(pub EventPublisher) {
	if pub == nil {
		pub = nopPublisher{}
	}
	s.pub = pub
}

// toDTO 将领域模型转换为 DTO，count 为实时计算的未回收笔记数
func (s *tagService) toDTO(t *domain.Tag, count int64) *dto.TagDTO {
	if t == nil {
		return nil
	}
	return &dto.TagDTO{
		ID:        t.ID,
		Name:      t.Name,
		Color:     string(t.Color),
		NoteCount: count,
		CreatedAt: t.CreatedAt.Format(timeFormat),
		UpdatedAt: t.UpdatedAt.Format(timeFormat),
	}
}

// mustGet 获取标签，未找到时返回 ErrorTagNotFound
func (s *tagService) mustGet(ctx context.Context, id int64) (*domain.Tag, error) {
	tag, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorTagNotFound
		}
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	return tag, nil
}

// Create 创建标签
func (s *tagService) Create(ctx context.Context, name, color string) (*dto.TagDTO, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, code.ErrorTagNameEmpty
	}

	c := domain.DefaultColor
	if color != "" {
		c = domain.Color(color)
		if !c.Valid() {
			return nil, code.ErrorTagColorInvalid
		}
	}

	tag, err := s.tagRepo.Create(ctx, &domain.Tag{Name: name, Color: c})
	if err != nil {
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}

	result := s.toDTO(tag, 0)
	s.pub.Publish(EventTagCreate, result)
	return result, nil
}

// Rename 重命名标签
func (s *tagService) Rename(ctx context.Context, id int64, newName string) (*dto.TagDTO, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, code.ErrorTagNameEmpty
	}

	tag, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.tagRepo.UpdateName(ctx, id, newName); err != nil {
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	tag.Name = newName
	tag.UpdatedAt = time.Now()

	count, err := s.noteCount(ctx, id)
	if err != nil {
		return nil, err
	}

	result := s.toDTO(tag, count)
	s.pub.Publish(EventTagUpdate, result)
	return result, nil
}

// SetColor 修改标签颜色
// 颜色不在调色板内时直接拒绝，标签保持原有颜色
func (s *tagService) SetColor(ctx context.Context, id int64, color string) (*dto.TagDTO, error) {
	c := domain.Color(color)
	if !c.Valid() {
		return nil, code.ErrorTagColorInvalid
	}

	tag, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.tagRepo.UpdateColor(ctx, id, c); err != nil {
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	tag.Color = c
	tag.UpdatedAt = time.Now()

	count, err := s.noteCount(ctx, id)
	if err != nil {
		return nil, err
	}

	result := s.toDTO(tag, count)
	s.pub.Publish(EventTagUpdate, result)
	return result, nil
}

// Delete 删除标签
// 仓储层在事务内同时清除全部关联，不留悬挂引用
func (s *tagService) Delete(ctx context.Context, id int64) error {
	if _, err := s.mustGet(ctx, id); err != nil {
		return err
	}

	if err := s.tagRepo.Delete(ctx, id); err != nil {
		return code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}

	s.pub.Publish(EventTagDelete, &dto.TagGetRequest{ID: id})
	return nil
}

// Associate 建立标签与笔记的关联
func (s *tagService) Associate(ctx context.Context, tagID, noteID int64) error {
	if _, err := s.mustGet(ctx, tagID); err != nil {
		return err
	}
	if _, err := s.noteRepo.GetByID(ctx, noteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorNoteNotFound
		}
		return code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}

	if err := s.tagRepo.Associate(ctx, tagID, noteID); err != nil {
		return code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}

	s.pub.Publish(EventTagAssociate, &dto.TagAssociateRequest{TagID: tagID, NoteID: noteID})
	return nil
}

// Disassociate 解除标签与笔记的关联
func (s *tagService) Disassociate(ctx context.Context, tagID, noteID int64) error {
	if _, err := s.mustGet(ctx, tagID); err != nil {
		return err
	}

	if err := s.tagRepo.Disassociate(ctx, tagID, noteID); err != nil {
		return code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}

	s.pub.Publish(EventTagDisassociate, &dto.TagAssociateRequest{TagID: tagID, NoteID: noteID})
	return nil
}

// noteCount 内部计数查询，不做存在性检查
func (s *tagService) noteCount(ctx context.Context, id int64) (int64, error) {
	count, err := s.tagRepo.NoteCount(ctx, id)
	if err != nil {
		return 0, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	return count, nil
}

// NoteCount 实时统计标签关联的未回收笔记数量
func (s *tagService) NoteCount(ctx context.Context, id int64) (int64, error) {
	if _, err := s.mustGet(ctx, id); err != nil {
		return 0, err
	}
	return s.noteCount(ctx, id)
}

// Get 根据 ID 获取标签
func (s *tagService) Get(ctx context.Context, id int64) (*dto.TagDTO, error) {
	tag, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.noteCount(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toDTO(tag, count), nil
}

// List 按创建顺序分页获取标签列表
func (s *tagService) List(ctx context.Context, page, pageSize int) ([]*dto.TagDTO, int64, error) {
	tags, err := s.tagRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	total, err := s.tagRepo.ListCount(ctx)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}

	list := make([]*dto.TagDTO, 0, len(tags))
	for _, tag := range tags {
		count, err := s.noteCount(ctx, tag.ID)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, s.toDTO(tag, count))
	}
	return list, total, nil
}

// Notes 获取标签关联的全部笔记
func (s *tagService) Notes(ctx context.Context, id int64) ([]*dto.NoteDTO, error) {
	if _, err := s.mustGet(ctx, id); err != nil {
		return nil, err
	}

	noteIDs, err := s.tagRepo.NoteIDs(ctx, id)
	if err != nil {
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	notes, err := s.noteRepo.ListByIDs(ctx, noteIDs)
	if err != nil {
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}

	list := make([]*dto.NoteDTO, 0, len(notes))
	for _, note := range notes {
		list = append(list, noteToDTO(note))
	}
	return list, nil
}

// GetOrCreateByName 按名称获取标签，不存在时创建
func (s *tagService) GetOrCreateByName(ctx context.Context, name string) (*dto.TagDTO, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, code.ErrorTagNameEmpty
	}

	key := fmt.Sprintf("tag_get_or_create_%s", trimmed)
	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		tag, err := s.tagRepo.GetByName(ctx, trimmed)
		if err == nil {
			count, cerr := s.noteCount(ctx, tag.ID)
			if cerr != nil {
				return nil, cerr
			}
			return s.toDTO(tag, count), nil
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.Create(ctx, trimmed, "")
		}
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	})
	if err != nil {
		return nil, err
	}
	return result.(*dto.TagDTO), nil
}
