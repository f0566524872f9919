package code

import (
	"strings"
)

// lang type, used to store English and Chinese text
// lang 类型，用来存储英文和中文文本
type lang struct {
	en    string // English // 英文
	zh_cn string // Chinese // 中文
}

const FALLBACK_LNG = "en"

// GetMessage returns the English message.
// GetMessage 返回英文消息
func (l lang) GetMessage() string {
	return l.en
}

// GetMessageFor returns the message for the given language, falling back to English.
// GetMessageFor 根据语言返回消息，缺失时回退到英文
func (l lang) GetMessageFor(language string) string {
	switch NormalizeLang(language) {
	case "zh_cn":
		if l.zh_cn != "" {
			return l.zh_cn
		}
	}
	return l.en
}

// NormalizeLang maps header/query values such as "zh-CN" or "zh" to a supported language key.
// NormalizeLang 将 "zh-CN"、"zh" 等取值映射为支持的语言
func NormalizeLang(language string) string {
	language = strings.ToLower(strings.ReplaceAll(language, "-", "_"))
	if language == "zh" || strings.HasPrefix(language, "zh_") {
		return "zh_cn"
	}
	return FALLBACK_LNG
}

// GetSupportedLanguages 返回支持的语言
func GetSupportedLanguages() []string {
	return []string{"en", "zh_cn"}
}
