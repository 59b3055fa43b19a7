package reply

import "github.com/zhouzirui/neurosync/backend/internal/analysis/emotion"

// MessageRequest is the body of POST /ai/message.
type MessageRequest struct {
	Text string `json:"text" validate:"required"`
}

// VoiceRequest is the body of POST /voice/analyze and POST /voice/speak.
type VoiceRequest struct {
	Text     string `json:"text" validate:"required"`
	Language string `json:"language"`
}

// ChatReply 一次文本交互的完整回复
type ChatReply struct {
	Message     string         `json:"message"`
	Emotion     emotion.Label  `json:"emotion"`
	Confidence  float64        `json:"confidence"`
	Source      emotion.Source `json:"source"`
	Suggestions []string       `json:"suggestions"`
}

// VoiceReply 在 ChatReply 基础上附带语音；合成失败时 AudioURL 为 nil，序列化为 null。
type VoiceReply struct {
	ChatReply
	AudioURL *string `json:"audioUrl"`
}

// SpeakResponse is the body returned by POST /voice/speak.
type SpeakResponse struct {
	AudioURL string `json:"audioUrl"`
}
