// Package domain 定义领域模型和接口
package domain

import "time"

// Color 标签颜色，取值限定在固定调色板内
type Color string

// 调色板（固定枚举）
const (
	ColorRed    Color = "red"
	ColorOrange Color = "orange"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorMint   Color = "mint"
	ColorTeal   Color = "teal"
	ColorCyan   Color = "cyan"
	ColorBlue   Color = "blue"
	ColorIndigo Color = "indigo"
	ColorPurple Color = "purple"
	ColorPink   Color = "pink"
	ColorBrown  Color = "brown"
	ColorGray   Color = "gray"
)

// DefaultColor 新建标签的默认颜色
const DefaultColor = ColorGray

// Palette 返回调色板内所有颜色
func Palette() []Color {
	return []Color{
		ColorRed, ColorOrange, ColorYellow, ColorGreen, ColorMint,
		ColorTeal, ColorCyan, ColorBlue, ColorIndigo, ColorPurple,
		ColorPink, ColorBrown, ColorGray,
	}
}

// Valid 判断颜色是否在调色板内
func (c Color) Valid() bool {
	switch c {
	case ColorRed, ColorOrange, ColorYellow, ColorGreen, ColorMint,
		ColorTeal, ColorCyan, ColorBlue, ColorIndigo, ColorPurple,
		ColorPink, ColorBrown, ColorGray:
		return true
	}
	return false
}

// IsValidColorString 判断字符串是否为合法颜色
func IsValidColorString(s string) bool {
	return Color(s).Valid()
}

// Tag 标签领域模型
// 与笔记是非拥有式多对多关联，NoteCount 为派生值，每次读取时实时计算
type Tag struct {
	ID        int64
	Name      string
	Color     Color
	NoteCount int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
