package api_router

import (
	"github.com/haierkeys/note-tag-service/internal/app"
	pkgapp "github.com/haierkeys/note-tag-service/pkg/app"
	"github.com/haierkeys/note-tag-service/pkg/code"

	"github.com/gin-gonic/gin"
	"golang.org/x/mod/semver"
)

// VersionRequest 客户端版本检查请求参数
type VersionRequest struct {
	Client string `json:"client" form:"client" example:"v1.0.0"` // 客户端版本号
}

// Version 返回服务端版本信息，携带 client 参数时比对是否需要升级
// @Router /api/version [get]
func (h *Handler) Version(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &VersionRequest{}
	_ = c.ShouldBind(params)

	info := &pkgapp.VersionInfo{
		Name:      app.Name,
		Version:   app.Version,
		GitTag:    app.GitTag,
		BuildTime: app.BuildTime,
	}
	if params.Client != "" && semver.IsValid(params.Client) {
		server := app.Version
		if !semver.IsValid(server) {
			server = "v" + server
		}
		info.UpgradeAvailable = semver.IsValid(server) && semver.Compare(params.Client, server) < 0
	}
	response.ToResponse(code.Success.WithData(info))
}
