// Package app 提供 HTTP 响应封装与请求工具
package app

import (
	"github.com/haierkeys/note-tag-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// VersionInfo 版本信息
type VersionInfo struct {
	Name             string `json:"name"`
	Version          string `json:"version"`
	GitTag           string `json:"gitTag"`
	BuildTime        string `json:"buildTime"`
	UpgradeAvailable bool   `json:"upgradeAvailable"`
}

type Response struct {
	Ctx *gin.Context
}

type Pager struct {
	Page      int `json:"page"`      // Page number // 页码
	PageSize  int `json:"pageSize"`  // Page size // 每页数量
	TotalRows int `json:"totalRows"` // Total rows // 总行数
}

type ListRes struct {
	List  interface{} `json:"list"`  // Data list // 数据清单
	Pager Pager       `json:"pager"` // Pagination info // 翻页信息
}

// Res 是统一的响应结构：Code/Status/Msg/Data
// 可选字段 Details / Context 使用 omitempty（nil 则不会被序列化）
type Res struct {
	Code    int         `json:"code"`
	Status  bool        `json:"status"`
	Message interface{} `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Details interface{} `json:"details,omitempty"`
	Context interface{} `json:"context,omitempty"`
}

func NewResponse(ctx *gin.Context) *Response {
	return &Response{
		Ctx: ctx,
	}
}

// GetRequestIP 获取请求 IP
func GetRequestIP(c *gin.Context) string {
	reqIP := c.ClientIP()
	if reqIP == "::1" {
		reqIP = "127.0.0.1"
	}
	return reqIP
}

// GetAccessHost 获取请求访问的主机地址
func GetAccessHost(c *gin.Context) string {
	accessProto := ""
	if proto := c.Request.Header.Get("X-Forwarded-Proto"); proto == "" {
		accessProto = "http" + "://"
	} else {
		accessProto = proto + "://"
	}
	return accessProto + c.Request.Host
}

// ToResponse 输出到浏览器：统一使用 Res，根据情况设置 Details 与 Context
func (r *Response) ToResponse(codeObj *code.Code) {
	r.Ctx.Set("status_code", codeObj.StatusCode())

	content := Res{
		Code:    codeObj.Code(),
		Status:  codeObj.Status(),
		Message: codeObj.Lang.GetMessage(),
		Data:    codeObj.Data(),
	}
	if codeObj.HaveDetails() {
		content.Details = codeObj.Details()
	}
	if codeObj.HaveContext() {
		content.Context = codeObj.Context()
	}

	r.Ctx.JSON(codeObj.StatusCode(), content)
}

// ToResponseList 输出带翻页信息的列表响应
func (r *Response) ToResponseList(codeObj *code.Code, list interface{}, totalRows int) {
	r.Ctx.Set("status_code", codeObj.StatusCode())

	content := Res{
		Code:    codeObj.Code(),
		Status:  codeObj.Status(),
		Message: codeObj.Lang.GetMessage(),
		Data: ListRes{
			List: list,
			Pager: Pager{
				Page:      GetPage(r.Ctx),
				PageSize:  GetPageSize(r.Ctx),
				TotalRows: totalRows,
			},
		},
	}
	if codeObj.HaveDetails() {
		content.Details = codeObj.Details()
	}

	r.Ctx.JSON(codeObj.StatusCode(), content)
}
