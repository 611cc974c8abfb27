// Package service 实现业务逻辑层
package service

const timeFormat = "2006-01-02 15:04:05"

// 事件类型，推送给表现层的事件通道
const (
	EventTagCreate       = "TagCreate"
	EventTagUpdate       = "TagUpdate"
	EventTagDelete       = "TagDelete"
	EventTagAssociate    = "TagAssociate"
	EventTagDisassociate = "TagDisassociate"
	EventNoteTrash       = "NoteTrash"
	EventNoteRestore     = "NoteRestore"
	EventNotePurge       = "NotePurge"
)

// EventPublisher 事件发布接口
// 表现层通过 WebSocket 事件通道订阅变更，刷新其读取快照
type EventPublisher interface {
	Publish(event string, data interface{})
}

// nopPublisher 不发布任何事件
type nopPublisher struct{}

func (nopPublisher) Publish(event string, data interface{}) {}
