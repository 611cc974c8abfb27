// Package fileurl 提供文件路径相关工具
package fileurl

import (
	"os"
	"path/filepath"
)

// IsExist 判断路径是否存在
func IsExist(dst string) bool {
	_, err := os.Stat(dst)
	if err != nil {
		return os.IsExist(err)
	}
	return true
}

// CreatePath 创建文件所在目录
func CreatePath(dst string, perm os.FileMode) error {
	dir := filepath.Dir(dst)
	if dir == "" {
		return nil
	}
	return os.MkdirAll(dir, perm)
}

// GetExePath 获取可执行文件所在目录
func GetExePath() string {
	exePath, err := os.Executable()
	if err != nil {
		wd, _ := os.Getwd()
		return wd
	}
	return filepath.Dir(exePath)
}

// PathSuffixCheckAdd 确保路径以指定后缀结尾
func PathSuffixCheckAdd(path string, suffix string) string {
	if len(path) < len(suffix) || path[len(path)-len(suffix):] != suffix {
		return path + suffix
	}
	return path
}
