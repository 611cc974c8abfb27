// Package validator 封装 gin binding 使用的参数验证器
package validator

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	validatorV10 "github.com/go-playground/validator/v10"
)

// CustomValidator 实现 binding.StructValidator
type CustomValidator struct {
	once     sync.Once
	Validate *validatorV10.Validate
}

func NewCustomValidator() *CustomValidator {
	return &CustomValidator{}
}

func (v *CustomValidator) lazyinit() {
	v.once.Do(func() {
		v.Validate = validatorV10.New()
		v.Validate.SetTagName("binding")
	})
}

// ValidateStruct 验证结构体参数
func (v *CustomValidator) ValidateStruct(obj any) error {
	value := reflect.ValueOf(obj)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}
	v.lazyinit()
	return v.Validate.Struct(obj)
}

// Engine 返回底层验证引擎
func (v *CustomValidator) Engine() any {
	v.lazyinit()
	return v.Validate
}

// RegisterCustom 向全局 binding 验证器注册自定义规则
func RegisterCustom(tag string, fn validatorV10.Func) error {
	validate, ok := binding.Validator.Engine().(*validatorV10.Validate)
	if !ok {
		return nil
	}
	return validate.RegisterValidation(tag, fn)
}

// TrimmedNotEmpty 判断字符串去除首尾空白后是否非空
// 供需要 required 之外更严格校验的字段使用
func TrimmedNotEmpty(fl validatorV10.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
