package reply

import (
	"strings"

	analysis "github.com/zhouzirui/neurosync/backend/internal/analysis/emotion"
)

// ClosingQuestion 追加在每条回复末尾。
const ClosingQuestion = " How else can I help you today?"

// Compose 用标签模板与第一条建议拼装回复。suggestions 为空时使用目录中该标签的第一条建议。
func Compose(label analysis.Label, suggestions []string) string {
	first := firstSuggestion(label, suggestions)

	var b strings.Builder
	switch label {
	case analysis.Happy:
		b.WriteString("I'm glad you're feeling happy! ")
		b.WriteString(first)
	case analysis.Sad:
		b.WriteString("I'm sorry you're feeling down. ")
		b.WriteString(first)
		b.WriteString(" Remember, it's okay to feel this way.")
	case analysis.Angry:
		b.WriteString("I understand you're feeling frustrated. ")
		b.WriteString(first)
		b.WriteString(" Let's work through this together.")
	case analysis.Anxious:
		b.WriteString("It sounds like you're feeling anxious. ")
		b.WriteString(first)
		b.WriteString(" Take your time, I'm here to listen.")
	default:
		b.WriteString("I hear you. ")
		b.WriteString(first)
	}
	b.WriteString(ClosingQuestion)
	return b.String()
}

func firstSuggestion(label analysis.Label, suggestions []string) string {
	if len(suggestions) > 0 {
		return suggestions[0]
	}
	return Suggestions(label)[0]
}
