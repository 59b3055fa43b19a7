package speech

import (
	"strings"

	"github.com/zhouzirui/neurosync/backend/internal/analysis/emotion"
	speechmodel "github.com/zhouzirui/neurosync/backend/internal/model/speech"
)

var emotionVoiceWhitelist = map[string]struct{}{
	"en_female_candice_emo_v2_mars_bigtts":      {},
	"en_female_skye_emo_v2_mars_bigtts":         {},
	"en_male_glen_emo_v2_mars_bigtts":           {},
	"en_male_sylus_emo_v2_mars_bigtts":          {},
	"en_male_corey_emo_v2_mars_bigtts":          {},
	"zh_female_gaolengyujie_emo_v2_mars_bigtts": {},
	"zh_male_yourougongzi_emo_v2_mars_bigtts":   {},
}

// voiceEmotion 把情绪标签映射到火山引擎情绪声音的 emotion 参数。
// Sad 与 Anxious 都用 comfort，回复本身是安抚性质的。
func voiceEmotion(label emotion.Label) (string, bool) {
	switch label {
	case emotion.Happy:
		return "happy", true
	case emotion.Sad, emotion.Anxious:
		return "comfort", true
	case emotion.Angry:
		return "tender", true
	default:
		return "", false
	}
}

// EmotionParameters 根据声音与情绪提示计算 TTS 情绪参数。scale 取值 1~5。
func EmotionParameters(voice string, hint *speechmodel.EmotionHint) (enable bool, name string, scale float32) {
	if hint == nil || !supportsEmotion(voice) {
		return false, "", 0
	}

	name, ok := voiceEmotion(hint.Label)
	if !ok {
		return false, "", 0
	}

	scale = float32(1 + 4*hint.Confidence)
	if scale < 1 {
		scale = 1
	}
	if scale > 5 {
		scale = 5
	}
	return true, name, scale
}

func supportsEmotion(voice string) bool {
	normalized := strings.ToLower(strings.TrimSpace(voice))
	if normalized == "" {
		return false
	}
	if _, ok := emotionVoiceWhitelist[normalized]; ok {
		return true
	}
	return strings.Contains(normalized, "_emo_")
}
