package app

import (
	"github.com/spf13/cast"

	"github.com/gin-gonic/gin"
)

// 翻页默认值，与配置层保持一致
var (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// GetPage 获取页码
func GetPage(c *gin.Context) int {
	page := cast.ToInt(c.Query("page"))
	if page <= 0 {
		return 1
	}
	return page
}

// GetPageSize 获取每页数量
func GetPageSize(c *gin.Context) int {
	pageSize := cast.ToInt(c.Query("pageSize"))
	if pageSize <= 0 {
		return DefaultPageSize
	}
	if pageSize > MaxPageSize {
		return MaxPageSize
	}
	return pageSize
}

// GetPageOffset 计算偏移量
func GetPageOffset(page, pageSize int) int {
	result := 0
	if page > 0 {
		result = (page - 1) * pageSize
	}
	return result
}
