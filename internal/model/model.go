// Package model 定义数据库模型
package model

import (
	"gorm.io/gorm"
)

// AutoMigrate 迁移指定模型，key 为空时迁移全部
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {
	case "Tag":
		return db.AutoMigrate(Tag{})
	case "Note":
		return db.AutoMigrate(Note{})
	case "NoteTag":
		return db.AutoMigrate(NoteTag{})
	case "":
		return db.AutoMigrate(Tag{}, Note{}, NoteTag{})
	}
	return nil
}
