package speech

import (
	"github.com/zhouzirui/neurosync/backend/internal/analysis/emotion"
)

// EmotionHint 携带情绪分类结果，支持情绪的声音据此调整语气。
type EmotionHint struct {
	Label      emotion.Label `json:"label"`
	Confidence float64       `json:"confidence"`
}

// TTSRequest 语音合成请求
type TTSRequest struct {
	Text     string       `json:"text"`
	Language string       `json:"language"` // ISO-639-1，如 en、es、fr
	Voice    string       `json:"voice,omitempty"`
	Format   string       `json:"format,omitempty"` // mp3, ogg_opus, etc.
	Emotion  *EmotionHint `json:"emotion,omitempty"`
}
