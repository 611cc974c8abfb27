package app

import (
	"strings"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	val "github.com/go-playground/validator/v10"
)

// ValidError 单个字段的验证错误
type ValidError struct {
	Key     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

// ErrorsToString 将所有错误拼接为单个字符串
func (v ValidErrors) ErrorsToString() string {
	return strings.Join(v.Errors(), ",")
}

// MapsToString 输出 key:message 形式的错误描述
func (v ValidErrors) MapsToString() string {
	var b strings.Builder
	for i, err := range v {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(err.Key)
		b.WriteString(":")
		b.WriteString(err.Message)
	}
	return b.String()
}

// BindAndValid 绑定请求参数并验证
// 验证错误消息使用 lang 中间件写入的翻译器进行本地化
func BindAndValid(c *gin.Context, v interface{}) (bool, ValidErrors) {
	var errs ValidErrors
	err := c.ShouldBind(v)
	if err != nil {
		verrs, ok := err.(val.ValidationErrors)
		if !ok {
			errs = append(errs, &ValidError{
				Key:     "body",
				Message: err.Error(),
			})
			return false, errs
		}

		trans, _ := c.Get("trans")
		translator, hasTrans := trans.(ut.Translator)
		for _, verr := range verrs {
			message := verr.Error()
			if hasTrans {
				message = verr.Translate(translator)
			}
			errs = append(errs, &ValidError{
				Key:     verr.Field(),
				Message: message,
			})
		}
		return false, errs
	}

	return true, nil
}
