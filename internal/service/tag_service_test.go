package service

import (
	"context"
	"testing"
	"time"

	"github.com/haierkeys/note-tag-service/internal/dao"
	"github.com/haierkeys/note-tag-service/internal/domain"
	"github.com/haierkeys/note-tag-service/internal/model"
	"github.com/haierkeys/note-tag-service/pkg/code"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	tags     TagService
	notes    NoteService
	tagRepo  domain.TagRepository
	noteRepo domain.NoteRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, model.AutoMigrate(db, ""))

	d := dao.New(db)
	tagRepo := dao.NewTagRepository(d)
	noteRepo := dao.NewNoteRepository(d)

	return &testEnv{
		tags:     NewTagService(tagRepo, noteRepo),
		notes:    NewNoteService(noteRepo, tagRepo),
		tagRepo:  tagRepo,
		noteRepo: noteRepo,
	}
}

func (e *testEnv) note(t *testing.T, title string) int64 {
	t.Helper()
	n, err := e.notes.Create(context.Background(), title, "content")
	require.NoError(t, err)
	return n.ID
}

func TestTagService_CreateDefaultColor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tag, err := env.tags.Create(ctx, "Work", "")
	require.NoError(t, err)
	assert.Equal(t, string(domain.ColorGray), tag.Color)
	assert.Equal(t, int64(0), tag.NoteCount)
}

func TestTagService_CreateEmptyName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.tags.Create(ctx, "", "")
	assert.ErrorIs(t, err, code.ErrorTagNameEmpty)

	_, err = env.tags.Create(ctx, "   \t ", "blue")
	assert.ErrorIs(t, err, code.ErrorTagNameEmpty)
}

func TestTagService_CreateInvalidColor(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.tags.Create(context.Background(), "Work", "ultraviolet")
	assert.ErrorIs(t, err, code.ErrorTagColorInvalid)
}

func TestTagService_CreateUniqueIDs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seen := map[int64]bool{}
	for _, name := range []string{"a", "b", "c", "d"} {
		tag, err := env.tags.Create(ctx, name, "")
		require.NoError(t, err)
		assert.False(t, seen[tag.ID], "tag id reused")
		seen[tag.ID] = true
	}
}

func TestTagService_SetColorInvalidKeepsOld(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tag, err := env.tags.Create(ctx, "Work", "blue")
	require.NoError(t, err)

	_, err = env.tags.SetColor(ctx, tag.ID, "ultraviolet")
	assert.ErrorIs(t, err, code.ErrorTagColorInvalid)

	got, err := env.tags.Get(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "blue", got.Color)
}

func TestTagService_RenameValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tag, err := env.tags.Create(ctx, "Work", "")
	require.NoError(t, err)

	_, err = env.tags.Rename(ctx, tag.ID, "  ")
	assert.ErrorIs(t, err, code.ErrorTagNameEmpty)

	renamed, err := env.tags.Rename(ctx, tag.ID, "Projects")
	require.NoError(t, err)
	assert.Equal(t, "Projects", renamed.Name)
}

func TestTagService_AssociateIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tag, err := env.tags.Create(ctx, "Work", "")
	require.NoError(t, err)
	noteID := env.note(t, "A")

	require.NoError(t, env.tags.Associate(ctx, tag.ID, noteID))
	require.NoError(t, env.tags.Associate(ctx, tag.ID, noteID))

	count, err := env.tags.NoteCount(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	notes, err := env.tags.Notes(ctx, tag.ID)
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}

func TestTagService_AssociateMissingEndpoints(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tag, err := env.tags.Create(ctx, "Work", "")
	require.NoError(t, err)
	noteID := env.note(t, "A")

	err = env.tags.Associate(ctx, 12345, noteID)
	assert.ErrorIs(t, err, code.ErrorTagNotFound)

	err = env.tags.Associate(ctx, tag.ID, 54321)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
}

func TestTagService_DisassociateNoop(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tag, err := env.tags.Create(ctx, "Work", "")
	require.NoError(t, err)
	noteID := env.note(t, "A")

	// 从未关联过,解除为幂等空操作
	require.NoError(t, env.tags.Disassociate(ctx, tag.ID, noteID))

	require.NoError(t, env.tags.Associate(ctx, tag.ID, noteID))
	require.NoError(t, env.tags.Disassociate(ctx, tag.ID, noteID))
	require.NoError(t, env.tags.Disassociate(ctx, tag.ID, noteID))

	count, err := env.tags.NoteCount(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestTagService_NoteCountExcludesTrashed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tag, err := env.tags.Create(ctx, "Work", "")
	require.NoError(t, err)
	active := env.note(t, "active")
	trashed := env.note(t, "trashed")

	require.NoError(t, env.tags.Associate(ctx, tag.ID, active))
	require.NoError(t, env.tags.Associate(ctx, tag.ID, trashed))
	require.NoError(t, env.notes.Trash(ctx, trashed))

	count, err := env.tags.NoteCount(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Get 与 List 返回的计数与 NoteCount 一致
	got, err := env.tags.Get(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.NoteCount)

	list, total, err := env.tags.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].NoteCount)
}

func TestTagService_TrashRestoreCycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tag, err := env.tags.Create(ctx, "Work", "")
	require.NoError(t, err)
	a := env.note(t, "A")
	b := env.note(t, "B")
	require.NoError(t, env.tags.Associate(ctx, tag.ID, a))
	require.NoError(t, env.tags.Associate(ctx, tag.ID, b))

	count, err := env.tags.NoteCount(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, env.notes.Trash(ctx, a))
	count, err = env.tags.NoteCount(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, env.notes.Restore(ctx, a))
	count, err = env.tags.NoteCount(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// 彻底删除后计数回落且关联被清除
	require.NoError(t, env.notes.Purge(ctx, a))
	count, err = env.tags.NoteCount(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestTagService_DeleteThenGone(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tag, err := env.tags.Create(ctx, "Work", "")
	require.NoError(t, err)
	noteID := env.note(t, "A")
	require.NoError(t, env.tags.Associate(ctx, tag.ID, noteID))

	require.NoError(t, env.tags.Delete(ctx, tag.ID))

	_, err = env.tags.Get(ctx, tag.ID)
	assert.ErrorIs(t, err, code.ErrorTagNotFound)

	err = env.tags.Delete(ctx, tag.ID)
	assert.ErrorIs(t, err, code.ErrorTagNotFound)

	// 笔记不再携带该标签
	noteTags, err := env.notes.Tags(ctx, noteID)
	require.NoError(t, err)
	assert.Empty(t, noteTags)
}

func TestTagService_GetOrCreateByName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.tags.GetOrCreateByName(ctx, "Inbox")
	require.NoError(t, err)
	assert.Equal(t, string(domain.DefaultColor), first.Color)

	second, err := env.tags.GetOrCreateByName(ctx, "Inbox")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	_, err = env.tags.GetOrCreateByName(ctx, "  ")
	assert.ErrorIs(t, err, code.ErrorTagNameEmpty)
}

func TestTagService_DuplicateNamesAllowed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.tags.Create(ctx, "Work", "")
	require.NoError(t, err)
	second, err := env.tags.Create(ctx, "Work", "red")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	// 按名称查找返回最早创建的标签
	got, err := env.tags.GetOrCreateByName(ctx, "Work")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestNoteService_PurgeTrashedBefore(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tag, err := env.tags.Create(ctx, "Work", "")
	require.NoError(t, err)

	old := env.note(t, "old")
	recent := env.note(t, "recent")
	require.NoError(t, env.tags.Associate(ctx, tag.ID, old))
	require.NoError(t, env.tags.Associate(ctx, tag.ID, recent))

	// 直接写入过期的回收时间,模拟保留期已过
	require.NoError(t, env.noteRepo.UpdateTrash(ctx, old, true, time.Now().Add(-31*24*time.Hour).Unix()))
	require.NoError(t, env.notes.Trash(ctx, recent))

	purged, err := env.notes.PurgeTrashedBefore(ctx, time.Now().Add(-30*24*time.Hour).Unix())
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = env.notes.Get(ctx, old)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)

	// 未过期的笔记仍保留关联
	ids, err := env.tagRepo.NoteIDs(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{recent}, ids)
}

func TestNoteService_TrashValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.notes.Trash(ctx, 999)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)

	_, err = env.notes.Create(ctx, "  ", "content")
	assert.ErrorIs(t, err, code.ErrorNoteTitleEmpty)
}
