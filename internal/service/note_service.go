package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/haierkeys/note-tag-service/internal/domain"
	"github.com/haierkeys/note-tag-service/internal/dto"
	"github.com/haierkeys/note-tag-service/pkg/code"
	"github.com/haierkeys/note-tag-service/pkg/convert"

	"gorm.io/gorm"
)

// NoteService 定义笔记存储的业务服务接口
// 标签注册表依赖它提供回收状态；回收/恢复/彻底删除都会影响标签计数
type NoteService interface {
	// Create 创建笔记
	Create(ctx context.Context, title, content string) (*dto.NoteDTO, error)

	// Update 更新笔记内容
	Update(ctx context.Context, id int64, title, content string) (*dto.NoteDTO, error)

	// Get 根据 ID 获取笔记
	Get(ctx context.Context, id int64) (*dto.NoteDTO, error)

	// List 分页获取笔记列表
	List(ctx context.Context, page, pageSize int, isTrashed bool) ([]*dto.NoteDTO, int64, error)

	// Trash 将笔记移入回收站
	Trash(ctx context.Context, id int64) error

	// Restore 将笔记移出回收站
	Restore(ctx context.Context, id int64) error

	// Purge 彻底删除笔记并清除其全部标签关联
	Purge(ctx context.Context, id int64) error

	// PurgeTrashedBefore 彻底删除在指定时刻之前进入回收站的笔记
	// 返回删除的数量，供后台保留期清理任务调用
	PurgeTrashedBefore(ctx context.Context, timestamp int64) (int64, error)

	// Tags 获取笔记携带的全部标签
	Tags(ctx context.Context, id int64) ([]*dto.TagDTO, error)

	// SetEventPublisher 注入事件发布器
	SetEventPublisher(pub EventPublisher)
}

// noteService 实现 NoteService 接口
type noteService struct {
	noteRepo domain.NoteRepository
	tagRepo  domain.TagRepository
	pub      EventPublisher
}

// NewNoteService 创建 NoteService 实例
func NewNoteService(noteRepo domain.NoteRepository, tagRepo domain.TagRepository) NoteService {
	return &noteService{
		noteRepo: noteRepo,
		tagRepo:  tagRepo,
		pub:      nopPublisher{},
	}
}

// SetEventPublisher 注入事件发布器
func (s *noteService) SetEventPublisher(pub EventPublisher) {
	if pub == nil {
		pub = nopPublisher{}
	}
	s.pub = pub
}

// noteToDTO 将笔记领域模型转换为 DTO
func noteToDTO(n *domain.Note) *dto.NoteDTO {
	if n == nil {
		return nil
	}
	d := &dto.NoteDTO{}
	// 同名字段批量复制，时间字段单独格式化
	if err := convert.StructAssign(d, n); err != nil {
		d = &dto.NoteDTO{
			ID:        n.ID,
			Title:     n.Title,
			Content:   n.Content,
			IsTrashed: n.IsTrashed,
			TrashedAt: n.TrashedAt,
		}
	}
	d.CreatedAt = n.CreatedAt.Format(timeFormat)
	d.UpdatedAt = n.UpdatedAt.Format(timeFormat)
	return d
}

// mustGet 获取笔记，未找到时返回 ErrorNoteNotFound
func (s *noteService) mustGet(ctx context.Context, id int64) (*domain.Note, error) {
	note, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotFound
		}
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	return note, nil
}

// Create 创建笔记
func (s *noteService) Create(ctx context.Context, title, content string) (*dto.NoteDTO, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, code.ErrorNoteTitleEmpty
	}

	note, err := s.noteRepo.Create(ctx, &domain.Note{Title: title, Content: content})
	if err != nil {
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	return noteToDTO(note), nil
}

// Update 更新笔记内容
func (s *noteService) Update(ctx context.Context, id int64, title, content string) (*dto.NoteDTO, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, code.ErrorNoteTitleEmpty
	}

	note, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}

	note.Title = title
	note.Content = content
	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	note.UpdatedAt = time.Now()
	return noteToDTO(note), nil
}

// Get 根据 ID 获取笔记
func (s *noteService) Get(ctx context.Context, id int64) (*dto.NoteDTO, error) {
	note, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	return noteToDTO(note), nil
}

// List 分页获取笔记列表
func (s *noteService) List(ctx context.Context, page, pageSize int, isTrashed bool) ([]*dto.NoteDTO, int64, error) {
	notes, err := s.noteRepo.List(ctx, page, pageSize, isTrashed)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	total, err := s.noteRepo.ListCount(ctx, isTrashed)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}

	list := make([]*dto.NoteDTO, 0, len(notes))
	for _, note := range notes {
		list = append(list, noteToDTO(note))
	}
	return list, total, nil
}

// Trash 将笔记移入回收站
// 笔记保留全部标签关联，仅从各标签的实时计数中消失
// 已在回收站的笔记重复回收是空操作，不重发事件
func (s *noteService) Trash(ctx context.Context, id int64) error {
	if _, err := s.mustGet(ctx, id); err != nil {
		return err
	}

	trashed, err := s.noteRepo.IsTrashed(ctx, id)
	if err != nil {
		return code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	if trashed {
		return nil
	}

	if err := s.noteRepo.UpdateTrash(ctx, id, true, time.Now().Unix()); err != nil {
		return code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}

	s.pub.Publish(EventNoteTrash, &dto.NoteGetRequest{ID: id})
	return nil
}

// Restore 将笔记移出回收站
// 不在回收站的笔记恢复是空操作，不重发事件
func (s *noteService) Restore(ctx context.Context, id int64) error {
	if _, err := s.mustGet(ctx, id); err != nil {
		return err
	}

	trashed, err := s.noteRepo.IsTrashed(ctx, id)
	if err != nil {
		return code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	if !trashed {
		return nil
	}

	if err := s.noteRepo.UpdateTrash(ctx, id, false, 0); err != nil {
		return code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}

	s.pub.Publish(EventNoteRestore, &dto.NoteGetRequest{ID: id})
	return nil
}

// Purge 彻底删除笔记
// 先清除标签关联再删除实体，避免留下悬挂引用
func (s *noteService) Purge(ctx context.Context, id int64) error {
	if _, err := s.mustGet(ctx, id); err != nil {
		return err
	}

	if err := s.tagRepo.DeleteAssociationsByNote(ctx, id); err != nil {
		return code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	if err := s.noteRepo.Delete(ctx, id); err != nil {
		return code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}

	s.pub.Publish(EventNotePurge, &dto.NoteGetRequest{ID: id})
	return nil
}

// PurgeTrashedBefore 彻底删除在指定时刻之前进入回收站的笔记
func (s *noteService) PurgeTrashedBefore(ctx context.Context, timestamp int64) (int64, error) {
	ids, err := s.noteRepo.ListTrashedBefore(ctx, timestamp)
	if err != nil {
		return 0, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}

	var purged int64
	for _, id := range ids {
		if err := s.Purge(ctx, id); err != nil {
			return purged, err
		}
		purged++
	}
	return purged, nil
}

// Tags 获取笔记携带的全部标签
func (s *noteService) Tags(ctx context.Context, id int64) ([]*dto.TagDTO, error) {
	if _, err := s.mustGet(ctx, id); err != nil {
		return nil, err
	}

	tagIDs, err := s.tagRepo.TagIDsByNote(ctx, id)
	if err != nil {
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}

	list := make([]*dto.TagDTO, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		tag, err := s.tagRepo.GetByID(ctx, tagID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
		}
		count, err := s.tagRepo.NoteCount(ctx, tagID)
		if err != nil {
			return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
		}
		list = append(list, &dto.TagDTO{
			ID:        tag.ID,
			Name:      tag.Name,
			Color:     string(tag.Color),
			NoteCount: count,
			CreatedAt: tag.CreatedAt.Format(timeFormat),
			UpdatedAt: tag.UpdatedAt.Format(timeFormat),
		})
	}
	return list, nil
}
