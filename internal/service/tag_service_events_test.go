package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturePublisher 记录事件发布顺序的测试替身
type capturePublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *capturePublisher) Publish(event string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *capturePublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	copy(out, p.events)
	return out
}

func newEventEnv(t *testing.T) (*testEnv, *capturePublisher) {
	t.Helper()
	env := newTestEnv(t)
	pub := &capturePublisher{}
	env.tags.SetEventPublisher(pub)
	env.notes.SetEventPublisher(pub)
	return env, pub
}

// 一次完整的标签生命周期应按操作顺序逐事件广播
func TestEvents_MutationSequence(t *testing.T) {
	env, pub := newEventEnv(t)
	ctx := context.Background()

	noteID := env.note(t, "note")
	pub.mu.Lock()
	pub.events = nil // 只关注标签相关的变更序列
	pub.mu.Unlock()

	tag, err := env.tags.Create(ctx, "Work", "blue")
	require.NoError(t, err)
	require.NoError(t, env.tags.Associate(ctx, tag.ID, noteID))
	require.NoError(t, env.notes.Trash(ctx, noteID))
	require.NoError(t, env.notes.Restore(ctx, noteID))
	require.NoError(t, env.tags.Disassociate(ctx, tag.ID, noteID))
	require.NoError(t, env.notes.Purge(ctx, noteID))
	require.NoError(t, env.tags.Delete(ctx, tag.ID))

	assert.Equal(t, []string{
		EventTagCreate,
		EventTagAssociate,
		EventNoteTrash,
		EventNoteRestore,
		EventTagDisassociate,
		EventNotePurge,
		EventTagDelete,
	}, pub.names())
}

// 重命名与改色都发 TagUpdate
func TestEvents_UpdatePublishesTagUpdate(t *testing.T) {
	env, pub := newEventEnv(t)
	ctx := context.Background()

	tag, err := env.tags.Create(ctx, "Work", "")
	require.NoError(t, err)

	_, err = env.tags.Rename(ctx, tag.ID, "Projects")
	require.NoError(t, err)
	_, err = env.tags.SetColor(ctx, tag.ID, "red")
	require.NoError(t, err)

	assert.Equal(t, []string{EventTagCreate, EventTagUpdate, EventTagUpdate}, pub.names())
}

// 失败的操作不发事件
func TestEvents_NoEventOnFailure(t *testing.T) {
	env, pub := newEventEnv(t)
	ctx := context.Background()

	_, err := env.tags.Create(ctx, "", "")
	require.Error(t, err)
	require.Error(t, env.tags.Associate(ctx, 404, 404))
	require.Error(t, env.notes.Trash(ctx, 404))

	assert.Empty(t, pub.names())
}

// 重复回收/恢复是空操作，不能重发事件
func TestEvents_TrashRestoreIdempotent(t *testing.T) {
	env, pub := newEventEnv(t)
	ctx := context.Background()

	noteID := env.note(t, "note")
	pub.mu.Lock()
	pub.events = nil
	pub.mu.Unlock()

	require.NoError(t, env.notes.Trash(ctx, noteID))
	require.NoError(t, env.notes.Trash(ctx, noteID))
	require.NoError(t, env.notes.Restore(ctx, noteID))
	require.NoError(t, env.notes.Restore(ctx, noteID))

	assert.Equal(t, []string{EventNoteTrash, EventNoteRestore}, pub.names())

	// 状态与底层标记保持一致
	trashed, err := env.noteRepo.IsTrashed(ctx, noteID)
	require.NoError(t, err)
	assert.False(t, trashed)
}
