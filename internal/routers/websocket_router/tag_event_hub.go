// Package websocket_router 提供面向表现层的 WebSocket 事件通道
package websocket_router

import (
	"context"
	"sync"
	"time"

	"github.com/haierkeys/note-tag-service/internal/service"
	"github.com/haierkeys/note-tag-service/pkg/logger"
	"github.com/haierkeys/note-tag-service/pkg/workerpool"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lxzan/gws"
	"go.uber.org/zap"
)

const sessionIDKey = "sessionId"

// Event 推送给客户端的事件信封
type Event struct {
	Event     string      `json:"event"`     // 事件类型
	Data      interface{} `json:"data"`      // 事件负载
	Timestamp int64       `json:"timestamp"` // 事件时间戳（毫秒）
}

// sessionConn is the write surface a connected client exposes to the hub.
// sessionConn 会话连接的写入面
type sessionConn interface {
	WriteMessage(opcode gws.Opcode, payload []byte) error
}

// TagEventHub 标签事件广播中心
// 表现层客户端连接后收到全部标签/笔记变更事件,据此刷新读取快照
// 实现 service.EventPublisher 接口
type TagEventHub struct {
	gws.BuiltinEventHandler
	logger   *zap.Logger
	upgrader *gws.Upgrader
	sessions sync.Map // sessionID -> sessionConn
	pool     *workerpool.Pool
}

// 编译期断言 TagEventHub 实现事件发布接口
var _ service.EventPublisher = (*TagEventHub)(nil)

// NewTagEventHub 创建事件广播中心
// 广播经 worker pool 异步下发,慢客户端不阻塞业务操作
func NewTagEventHub(lg *zap.Logger) *TagEventHub {
	hub := &TagEventHub{
		logger: lg,
		pool:   workerpool.New(nil, lg),
	}
	hub.upgrader = gws.NewUpgrader(hub, &gws.ServerOption{
		CheckUtf8Enabled:  true,
		ParallelEnabled:   true,
		Recovery:          gws.Recovery,
		PermessageDeflate: gws.PermessageDeflate{Enabled: true},
	})
	return hub
}

// Run 返回处理 WebSocket 升级的 gin Handler
func (h *TagEventHub) Run() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := h.upgrader.Upgrade(c.Writer, c.Request)
		if err != nil {
			h.logger.Error("event channel upgrade failed", zap.Error(err))
			return
		}

		sessionID := uuid.NewString()
		conn.Session().Store(sessionIDKey, sessionID)
		h.addSession(sessionID, conn)

		go conn.ReadLoop()
	}
}

// addSession 登记会话
func (h *TagEventHub) addSession(sessionID string, conn sessionConn) {
	h.sessions.Store(sessionID, conn)
	h.logger.Info("event channel client connected",
		zap.String(logger.FieldSessionID, sessionID))
}

// removeSession 注销会话
func (h *TagEventHub) removeSession(sessionID string) {
	h.sessions.Delete(sessionID)
	h.logger.Info("event channel client disconnected",
		zap.String(logger.FieldSessionID, sessionID))
}

// OnClose 连接关闭时移除会话
func (h *TagEventHub) OnClose(socket *gws.Conn, err error) {
	if v, ok := socket.Session().Load(sessionIDKey); ok {
		h.removeSession(v.(string))
	}
}

// OnPing 心跳响应
func (h *TagEventHub) OnPing(socket *gws.Conn, payload []byte) {
	_ = socket.WritePong(payload)
}

// Publish 向所有已连接客户端广播事件
func (h *TagEventHub) Publish(event string, data interface{}) {
	payload, err := sonic.Marshal(&Event{
		Event:     event,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		h.logger.Error("event marshal failed", zap.String("event", event), zap.Error(err))
		return
	}

	h.sessions.Range(func(key, value interface{}) bool {
		sessionID := key.(string)
		conn := value.(sessionConn)
		err := h.pool.SubmitAsync(context.Background(), func(ctx context.Context) error {
			return conn.WriteMessage(gws.OpcodeText, payload)
		})
		if err != nil {
			h.logger.Warn("event push dropped",
				zap.String(logger.FieldSessionID, sessionID),
				zap.String("event", event),
				zap.Error(err))
		}
		return true
	})
}

// ClientCount 当前连接数
func (h *TagEventHub) ClientCount() int {
	count := 0
	h.sessions.Range(func(key, value interface{}) bool {
		count++
		return true
	})
	return count
}

// PushMetrics 推送池状态快照,供健康检查接口上报
func (h *TagEventHub) PushMetrics() workerpool.Metrics {
	return h.pool.GetMetrics()
}

// Shutdown stops the hub and drains in-flight pushes.
// Shutdown 停止广播中心,排空在途推送
func (h *TagEventHub) Shutdown(ctx context.Context) error {
	return h.pool.Shutdown(ctx)
}
