package api_router

import (
	"github.com/haierkeys/note-tag-service/internal/app"
)

// Handler API 处理器，持有应用容器
type Handler struct {
	App *app.App
}

// NewHandler 创建 API 处理器
func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}
