package app

// 构建信息，由 -ldflags 注入
var (
	Name      = "Note Tag Service"
	Version   = "1.0.0"
	GitTag    = ""
	BuildTime = ""
)
