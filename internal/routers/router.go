// Package routers 路由注册与中间件装配
package routers

import (
	"time"

	"github.com/haierkeys/note-tag-service/internal/app"
	"github.com/haierkeys/note-tag-service/internal/middleware"
	"github.com/haierkeys/note-tag-service/internal/routers/api_router"
	"github.com/haierkeys/note-tag-service/internal/routers/websocket_router"
	"github.com/haierkeys/note-tag-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"go.uber.org/zap"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/tag",
		FillInterval: time.Second,
		Capacity:     100,
		Quantum:      100,
	},
	limiter.BucketRule{
		Key:          "/api/note",
		FillInterval: time.Second,
		Capacity:     100,
		Quantum:      100,
	},
)

// NewRouter builds the public API router around an already wired event hub.
// NewRouter 构建公共 API 路由,事件广播中心由调用方创建并管理生命周期
func NewRouter(a *app.App, hub *websocket_router.TagEventHub, lg *zap.Logger, uni *ut.UniversalTranslator) *gin.Engine {
	cfg := a.Config()
	gin.SetMode(cfg.Server.RunMode)

	r := gin.New()
	r.Use(middleware.AppInfoWithConfig(app.Name, app.Version))
	r.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header))
	r.Use(middleware.Metrics())
	r.Use(middleware.RateLimiter(methodLimiters))
	r.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
	r.Use(middleware.Cors())
	r.Use(middleware.LangWithTranslator(uni))
	r.Use(middleware.AccessLogWithLogger(lg))
	r.Use(middleware.RecoveryWithLogger(lg))

	h := api_router.NewHandler(a)

	api := r.Group("/api")
	{
		api.POST("/tag", h.TagCreate)
		api.PUT("/tag", h.TagUpdate)
		api.GET("/tag", h.TagGet)
		api.DELETE("/tag", h.TagDelete)
		api.GET("/tags", h.TagList)
		api.GET("/tag/count", h.TagCount)
		api.POST("/tag/associate", h.TagAssociate)
		api.POST("/tag/disassociate", h.TagDisassociate)
		api.GET("/tag/notes", h.TagNotes)
		api.POST("/tag/by-name", h.TagGetOrCreate)
		api.GET("/tag/palette", h.TagPalette)

		api.POST("/note", h.NoteCreate)
		api.PUT("/note", h.NoteUpdate)
		api.GET("/note", h.NoteGet)
		api.DELETE("/note", h.NotePurge)
		api.GET("/notes", h.NoteList)
		api.PUT("/note/trash", h.NoteTrash)
		api.PUT("/note/restore", h.NoteRestore)
		api.GET("/note/tags", h.NoteTags)

		// 事件通道：标签与笔记的全部变更都经此广播给表现层
		api.GET("/tag/events", hub.Run())

		api.GET("/version", h.Version)
		api.GET("/health", h.Health(hub))
	}

	r.NoRoute(middleware.NoFound())
	return r
}
