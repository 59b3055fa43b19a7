// Package reply 根据情绪标签挑选安抚建议并拼装回复文本。
package reply

import (
	analysis "github.com/zhouzirui/neurosync/backend/internal/analysis/emotion"
)

var (
	happySuggestions = []string{
		"That's wonderful! Keep spreading positivity!",
		"Consider journaling about what made you happy today",
		"Share your joy with someone you care about",
	}
	sadSuggestions = []string{
		"I'm here for you. Consider talking to a friend or therapist",
		"Try some light exercise or a walk in nature",
		"Listen to uplifting music or watch something comforting",
	}
	angrySuggestions = []string{
		"Take deep breaths and count to ten",
		"Try physical activity to release tension",
		"Consider what's really bothering you and address it calmly",
	}
	anxiousSuggestions = []string{
		"Practice deep breathing exercises",
		"Try meditation or mindfulness",
		"Break down what's worrying you into smaller, manageable steps",
	}
	neutralSuggestions = []string{
		"How can I help you feel better today?",
		"Is there something specific on your mind?",
		"Would you like to talk about anything?",
	}
)

// Suggestions 返回标签对应的有序建议列表，未知标签回退到 Neutral。
// 返回的是副本，调用方可以自由修改。
func Suggestions(label analysis.Label) []string {
	var list []string
	switch label {
	case analysis.Happy:
		list = happySuggestions
	case analysis.Sad:
		list = sadSuggestions
	case analysis.Angry:
		list = angrySuggestions
	case analysis.Anxious:
		list = anxiousSuggestions
	default:
		list = neutralSuggestions
	}
	return append([]string(nil), list...)
}
