package code

// 通用成功码
var (
	Success       = NewSuss(0, lang{en: "Success", zh_cn: "成功"})
	SuccessCreate = NewSuss(1, lang{en: "Create Success", zh_cn: "创建成功"})
	SuccessUpdate = NewSuss(2, lang{en: "Update Success", zh_cn: "更新成功"})
	SuccessDelete = NewSuss(3, lang{en: "Delete Success", zh_cn: "删除成功"})
)

// 通用错误码
var (
	Failed               = NewError(1, lang{en: "Failed", zh_cn: "失败"})
	ErrorServerInternal  = NewError(10000, lang{en: "Server Internal Error", zh_cn: "服务内部错误"})
	ErrorInvalidParams   = NewError(10001, lang{en: "Invalid Params", zh_cn: "入参错误"})
	ErrorNotFoundAPI     = NewError(10002, lang{en: "Not Found API", zh_cn: "找不到对应接口"})
	ErrorTooManyRequests = NewError(10003, lang{en: "Too Many Requests", zh_cn: "请求过多"})
	ErrorDBQuery         = NewError(10010, lang{en: "Database Query Error", zh_cn: "数据库查询错误"})
)

// 标签相关错误码
var (
	ErrorTagNotFound     = NewError(20000, lang{en: "Tag Not Found", zh_cn: "标签不存在"})
	ErrorTagNameEmpty    = NewError(20001, lang{en: "Tag Name Is Empty", zh_cn: "标签名称为空"})
	ErrorTagColorInvalid = NewError(20002, lang{en: "Tag Color Not In Palette", zh_cn: "标签颜色不在调色板内"})
)

// 笔记相关错误码
var (
	ErrorNoteNotFound   = NewError(20100, lang{en: "Note Not Found", zh_cn: "笔记不存在"})
	ErrorNoteTitleEmpty = NewError(20101, lang{en: "Note Title Is Empty", zh_cn: "笔记标题为空"})
)
