package emotion

import (
	"strings"

	analysis "github.com/zhouzirui/neurosync/backend/internal/analysis/emotion"
)

// MapRemoteLabel 将远程模型词表映射到本系统的五种标签，未知标签一律视为 Neutral。
func MapRemoteLabel(raw string) analysis.Label {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "joy", "surprise":
		return analysis.Happy
	case "sadness":
		return analysis.Sad
	case "anger", "disgust":
		return analysis.Angry
	case "fear":
		return analysis.Anxious
	default:
		return analysis.Neutral
	}
}
