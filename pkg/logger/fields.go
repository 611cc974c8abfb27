package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldTagID 标签 ID 字段
	FieldTagID = "tagId"

	// FieldNoteID 笔记 ID 字段
	FieldNoteID = "noteId"

	// FieldName 标签名称字段
	FieldName = "name"

	// FieldColor 标签颜色字段
	FieldColor = "color"

	// FieldCount 数量字段
	FieldCount = "count"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldSessionID 会话 ID 字段
	FieldSessionID = "sessionId"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldError 错误信息字段
	FieldError = "error"
)
