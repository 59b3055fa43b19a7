package speech

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// DefaultLanguage 无法可靠识别语言时使用
const DefaultLanguage = "en"

// DetectLanguage 返回文本的 ISO-639-1 语言码；识别不可靠时返回 DefaultLanguage。
func DetectLanguage(text string) string {
	if strings.TrimSpace(text) == "" {
		return DefaultLanguage
	}

	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return DefaultLanguage
	}
	if code := info.Lang.Iso6391(); code != "" {
		return code
	}
	return DefaultLanguage
}

// ResolveLanguage 优先使用调用方给出的语言，否则根据文本识别。
func ResolveLanguage(requested, text string) string {
	if lang := strings.ToLower(strings.TrimSpace(requested)); lang != "" {
		return lang
	}
	return DetectLanguage(text)
}
