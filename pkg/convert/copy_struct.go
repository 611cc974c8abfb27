// Package convert 提供结构体与类型转换工具
package convert

import (
	"github.com/bytedance/sonic"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
)

// StructAssign 将 src 的同名字段复制到 dst
// 优先使用 copier，失败时回退到 JSON 编解码
func StructAssign(dst, src interface{}) error {
	if err := copier.Copy(dst, src); err == nil {
		return nil
	}

	b, err := sonic.Marshal(src)
	if err != nil {
		return errors.Wrap(err, "convert: marshal source")
	}
	if err := sonic.Unmarshal(b, dst); err != nil {
		return errors.Wrap(err, "convert: unmarshal into target")
	}
	return nil
}
