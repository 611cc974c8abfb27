package dao

import (
	"context"
	"testing"
	"time"

	"github.com/haierkeys/note-tag-service/internal/domain"
	"github.com/haierkeys/note-tag-service/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDao(t *testing.T) *Dao {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存库在多连接下各自独立,限制为单连接
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, model.AutoMigrate(db, ""))
	return New(db)
}

func createNote(t *testing.T, repo domain.NoteRepository, title string) *domain.Note {
	t.Helper()
	note, err := repo.Create(context.Background(), &domain.Note{Title: title, Content: "content"})
	require.NoError(t, err)
	return note
}

func TestTagRepository_CreateAndGet(t *testing.T) {
	d := newTestDao(t)
	repo := NewTagRepository(d)
	ctx := context.Background()

	tag, err := repo.Create(ctx, &domain.Tag{Name: "Work", Color: domain.ColorBlue})
	require.NoError(t, err)
	assert.Greater(t, tag.ID, int64(0))

	got, err := repo.GetByID(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "Work", got.Name)
	assert.Equal(t, domain.ColorBlue, got.Color)

	byName, err := repo.GetByName(ctx, "Work")
	require.NoError(t, err)
	assert.Equal(t, tag.ID, byName.ID)
}

func TestTagRepository_GetMissing(t *testing.T) {
	d := newTestDao(t)
	repo := NewTagRepository(d)

	_, err := repo.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTagRepository_Update(t *testing.T) {
	d := newTestDao(t)
	repo := NewTagRepository(d)
	ctx := context.Background()

	tag, err := repo.Create(ctx, &domain.Tag{Name: "Work", Color: domain.ColorGray})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateName(ctx, tag.ID, "Projects"))
	require.NoError(t, repo.UpdateColor(ctx, tag.ID, domain.ColorRed))

	got, err := repo.GetByID(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "Projects", got.Name)
	assert.Equal(t, domain.ColorRed, got.Color)
}

func TestTagRepository_AssociateIdempotent(t *testing.T) {
	d := newTestDao(t)
	repo := NewTagRepository(d)
	noteRepo := NewNoteRepository(d)
	ctx := context.Background()

	tag, err := repo.Create(ctx, &domain.Tag{Name: "Work", Color: domain.ColorGray})
	require.NoError(t, err)
	note := createNote(t, noteRepo, "A")

	require.NoError(t, repo.Associate(ctx, tag.ID, note.ID))
	require.NoError(t, repo.Associate(ctx, tag.ID, note.ID))

	ids, err := repo.NoteIDs(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{note.ID}, ids)
}

func TestTagRepository_DisassociateIdempotent(t *testing.T) {
	d := newTestDao(t)
	repo := NewTagRepository(d)
	noteRepo := NewNoteRepository(d)
	ctx := context.Background()

	tag, err := repo.Create(ctx, &domain.Tag{Name: "Work", Color: domain.ColorGray})
	require.NoError(t, err)
	note := createNote(t, noteRepo, "A")

	require.NoError(t, repo.Associate(ctx, tag.ID, note.ID))
	require.NoError(t, repo.Disassociate(ctx, tag.ID, note.ID))
	// 关联已不存在,再次解除应为空操作
	require.NoError(t, repo.Disassociate(ctx, tag.ID, note.ID))

	count, err := repo.NoteCount(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestTagRepository_NoteCountExcludesTrashed(t *testing.T) {
	d := newTestDao(t)
	repo := NewTagRepository(d)
	noteRepo := NewNoteRepository(d)
	ctx := context.Background()

	tag, err := repo.Create(ctx, &domain.Tag{Name: "Work", Color: domain.ColorGray})
	require.NoError(t, err)
	n1 := createNote(t, noteRepo, "active")
	n2 := createNote(t, noteRepo, "trashed")

	require.NoError(t, repo.Associate(ctx, tag.ID, n1.ID))
	require.NoError(t, repo.Associate(ctx, tag.ID, n2.ID))
	require.NoError(t, noteRepo.UpdateTrash(ctx, n2.ID, true, time.Now().Unix()))

	count, err := repo.NoteCount(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// 关联本身不受回收影响
	ids, err := repo.NoteIDs(ctx, tag.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestTagRepository_DeleteRemovesAssociations(t *testing.T) {
	d := newTestDao(t)
	repo := NewTagRepository(d)
	noteRepo := NewNoteRepository(d)
	ctx := context.Background()

	tag, err := repo.Create(ctx, &domain.Tag{Name: "Work", Color: domain.ColorGray})
	require.NoError(t, err)
	note := createNote(t, noteRepo, "A")
	require.NoError(t, repo.Associate(ctx, tag.ID, note.ID))

	require.NoError(t, repo.Delete(ctx, tag.ID))

	_, err = repo.GetByID(ctx, tag.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	tagIDs, err := repo.TagIDsByNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Empty(t, tagIDs)
}

func TestTagRepository_ListCreationOrder(t *testing.T) {
	d := newTestDao(t)
	repo := NewTagRepository(d)
	ctx := context.Background()

	for _, name := range []string{"c", "a", "b"} {
		_, err := repo.Create(ctx, &domain.Tag{Name: name, Color: domain.ColorGray})
		require.NoError(t, err)
	}

	tags, err := repo.List(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, tags, 3)
	// 按创建顺序而非名称排序
	assert.Equal(t, "c", tags[0].Name)
	assert.Equal(t, "a", tags[1].Name)
	assert.Equal(t, "b", tags[2].Name)

	total, err := repo.ListCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestNoteRepository_TrashRestore(t *testing.T) {
	d := newTestDao(t)
	noteRepo := NewNoteRepository(d)
	ctx := context.Background()

	note := createNote(t, noteRepo, "A")

	require.NoError(t, noteRepo.UpdateTrash(ctx, note.ID, true, time.Now().Unix()))
	trashed, err := noteRepo.IsTrashed(ctx, note.ID)
	require.NoError(t, err)
	assert.True(t, trashed)

	require.NoError(t, noteRepo.UpdateTrash(ctx, note.ID, false, 0))
	trashed, err = noteRepo.IsTrashed(ctx, note.ID)
	require.NoError(t, err)
	assert.False(t, trashed)
}

func TestNoteRepository_ListTrashedBefore(t *testing.T) {
	d := newTestDao(t)
	noteRepo := NewNoteRepository(d)
	ctx := context.Background()

	old := createNote(t, noteRepo, "old")
	recent := createNote(t, noteRepo, "recent")

	now := time.Now().Unix()
	require.NoError(t, noteRepo.UpdateTrash(ctx, old.ID, true, now-3600))
	require.NoError(t, noteRepo.UpdateTrash(ctx, recent.ID, true, now))

	ids, err := noteRepo.ListTrashedBefore(ctx, now-60)
	require.NoError(t, err)
	assert.Equal(t, []int64{old.ID}, ids)
}
