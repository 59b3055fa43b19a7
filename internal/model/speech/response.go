package speech

import "time"

// TTSResponse 语音合成响应
type TTSResponse struct {
	AudioData []byte    `json:"-"`
	Format    string    `json:"format"`
	Provider  string    `json:"provider"`
	Duration  int64     `json:"duration"` // milliseconds
	RequestID string    `json:"requestId,omitempty"`
	Cached    bool      `json:"cached"`
	CreatedAt time.Time `json:"createdAt"`
}
