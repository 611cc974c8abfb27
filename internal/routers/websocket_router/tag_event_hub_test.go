package websocket_router

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/lxzan/gws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeConn 记录写入帧的会话替身
type fakeConn struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (c *fakeConn) WriteMessage(opcode gws.Opcode, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	buf := make([]byte, len(payload))
	copy(buf, payload)
	c.payloads = append(c.payloads, buf)
	return nil
}

func (c *fakeConn) received() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([][]byte, len(c.payloads))
	copy(out, c.payloads)
	return out
}

// drain 等待在途推送全部落地
func drain(t *testing.T, hub *TagEventHub) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, hub.Shutdown(ctx))
}

func TestTagEventHub_SessionLifecycle(t *testing.T) {
	hub := NewTagEventHub(zap.NewNop())
	defer drain(t, hub)

	assert.Equal(t, 0, hub.ClientCount())

	hub.addSession("a", &fakeConn{})
	hub.addSession("b", &fakeConn{})
	assert.Equal(t, 2, hub.ClientCount())

	hub.removeSession("a")
	assert.Equal(t, 1, hub.ClientCount())

	// 重复注销是空操作
	hub.removeSession("a")
	assert.Equal(t, 1, hub.ClientCount())
}

func TestTagEventHub_PublishBroadcastsToAllSessions(t *testing.T) {
	hub := NewTagEventHub(zap.NewNop())

	conns := []*fakeConn{{}, {}, {}}
	for i, conn := range conns {
		hub.addSession(fmt.Sprintf("s%d", i), conn)
	}

	hub.Publish("TagCreate", map[string]interface{}{"id": 1, "name": "Work"})
	hub.Publish("TagDelete", map[string]interface{}{"id": 1})
	drain(t, hub)

	for _, conn := range conns {
		frames := conn.received()
		require.Len(t, frames, 2)

		var first Event
		require.NoError(t, sonic.Unmarshal(frames[0], &first))
		assert.Equal(t, "TagCreate", first.Event)
		assert.NotZero(t, first.Timestamp)

		var second Event
		require.NoError(t, sonic.Unmarshal(frames[1], &second))
		assert.Equal(t, "TagDelete", second.Event)
	}
}

func TestTagEventHub_PublishAfterShutdownDropsQuietly(t *testing.T) {
	hub := NewTagEventHub(zap.NewNop())
	conn := &fakeConn{}
	hub.addSession("s", conn)
	drain(t, hub)

	// 推送池已关闭,广播被丢弃但不 panic
	hub.Publish("TagCreate", nil)
	assert.Empty(t, conn.received())

	metrics := hub.PushMetrics()
	assert.Equal(t, int64(1), metrics.Dropped)
}

// 任意数量的会话都应收到每一次广播
func TestTagEventHub_BroadcastProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30

	properties := gopter.NewProperties(parameters)

	properties.Property("every session receives every event", prop.ForAll(
		func(sessionCount, eventCount int) bool {
			hub := NewTagEventHub(zap.NewNop())

			conns := make([]*fakeConn, sessionCount)
			for i := range conns {
				conns[i] = &fakeConn{}
				hub.addSession(fmt.Sprintf("s%d", i), conns[i])
			}

			for i := 0; i < eventCount; i++ {
				hub.Publish("TagUpdate", map[string]interface{}{"seq": i})
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := hub.Shutdown(ctx); err != nil {
				return false
			}

			for _, conn := range conns {
				if len(conn.received()) != eventCount {
					return false
				}
			}
			return hub.ClientCount() == sessionCount
		},
		gen.IntRange(1, 8),
		gen.IntRange(0, 16),
	))

	properties.TestingRun(t)
}
