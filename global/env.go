package global

import (
	"github.com/haierkeys/note-tag-service/pkg/fileurl"
)

var (
	// 程序执行目录
	ROOT string
	Name string = "Note Tag Service"
)

func init() {

	filename := fileurl.GetExePath()
	ROOT = filename + "/"

}
