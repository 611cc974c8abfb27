package code

import "errors"

// lang 类型，用来存储英文和中文文本
type lang struct {
	en    string // English // 英文
	zh_cn string // Chinese // 中文
}

// Default language is English
// 默认语言为英文
var lng = "en"

const FALLBACK_LNG = "en"

// GetMessage 方法根据全局语言返回相应的消息
func (l lang) GetMessage() string {
	var msg string
	switch lng {
	case "zh_cn":
		msg = l.zh_cn
	default:
		msg = l.en
	}
	if msg == "" {
		// 回退语言
		msg = l.en
	}
	return msg
}

// GetSupportedLanguages 返回 lang 类型支持的所有语言
func GetSupportedLanguages() []string {
	return []string{"en", "zh_cn"}
}

// SetGlobalDefaultLang 设置全局默认语言
func SetGlobalDefaultLang(language string) error {
	for _, l := range GetSupportedLanguages() {
		if language == l {
			lng = language
			return nil
		}
	}
	lng = FALLBACK_LNG
	return errors.New("unsupported language type, set defaulting to " + FALLBACK_LNG)
}

// GetGlobalDefaultLang 获取全局默认语言
func GetGlobalDefaultLang() string {
	return lng
}
