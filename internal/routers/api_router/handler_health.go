package api_router

import (
	"time"

	"github.com/haierkeys/note-tag-service/pkg/app"
	"github.com/haierkeys/note-tag-service/pkg/code"
	"github.com/haierkeys/note-tag-service/pkg/workerpool"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

var startTime = time.Now()

// HealthStatus 健康检查响应
type HealthStatus struct {
	Status     string  `json:"status"`
	Uptime     string  `json:"uptime"`
	CPUPercent float64 `json:"cpuPercent"`
	MemPercent float64 `json:"memPercent"`
	DiskUsage  float64 `json:"diskUsage"`
	Clients    int     `json:"clients"` // 事件通道在线客户端数

	Push workerpool.Metrics `json:"push"` // 事件推送池状态
}

// ClientCounter 提供事件通道在线客户端数与推送池状态
type ClientCounter interface {
	ClientCount() int
	PushMetrics() workerpool.Metrics
}

// Health 健康检查，返回运行时长与系统资源占用
// @Router /api/health [get]
func (h *Handler) Health(counter ClientCounter) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := app.NewResponse(c)

		status := &HealthStatus{
			Status: "ok",
			Uptime: time.Since(startTime).Truncate(time.Second).String(),
		}
		if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
			status.CPUPercent = percents[0]
		}
		if vm, err := mem.VirtualMemory(); err == nil {
			status.MemPercent = vm.UsedPercent
		}
		if du, err := disk.Usage("/"); err == nil {
			status.DiskUsage = du.UsedPercent
		}
		if counter != nil {
			status.Clients = counter.ClientCount()
			status.Push = counter.PushMetrics()
		}
		response.ToResponse(code.Success.WithData(status))
	}
}
