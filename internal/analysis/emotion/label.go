package emotion

import (
	"fmt"
	"strings"
)

// Label 表示系统对外暴露的五种情绪之一。
//
// 声明顺序即平局裁决顺序：得分相同时取先声明的标签。
type Label uint8

const (
	Happy Label = iota
	Sad
	Angry
	Anxious
	Neutral

	labelCount = int(Neutral) + 1
)

// Labels 按声明顺序返回全部标签。
func Labels() []Label {
	return []Label{Happy, Sad, Angry, Anxious, Neutral}
}

// String 返回标签的规范写法（首字母大写）。
func (l Label) String() string {
	switch l {
	case Happy:
		return "Happy"
	case Sad:
		return "Sad"
	case Angry:
		return "Angry"
	case Anxious:
		return "Anxious"
	case Neutral:
		return "Neutral"
	default:
		return fmt.Sprintf("Label(%d)", uint8(l))
	}
}

// Valid reports whether l is one of the five declared labels.
func (l Label) Valid() bool {
	return int(l) < labelCount
}

func (l Label) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid emotion label %d", uint8(l))
	}
	return []byte(l.String()), nil
}

func (l *Label) UnmarshalText(text []byte) error {
	parsed, ok := ParseLabel(string(text))
	if !ok {
		return fmt.Errorf("unknown emotion label %q", string(text))
	}
	*l = parsed
	return nil
}

// ParseLabel 解析本系统自身的标签名（大小写不敏感）。外部模型词表请使用各自的映射表。
func ParseLabel(raw string) (Label, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "happy":
		return Happy, true
	case "sad":
		return Sad, true
	case "angry":
		return Angry, true
	case "anxious":
		return Anxious, true
	case "neutral":
		return Neutral, true
	default:
		return Neutral, false
	}
}

// Source 标记情绪结果来自远程模型还是本地启发式。两种来源的置信度不可互相比较。
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// Scores 按标签声明顺序保存本地打分。
type Scores [labelCount]int

// Of returns the score recorded for label.
func (s Scores) Of(label Label) int {
	if !label.Valid() {
		return 0
	}
	return s[label]
}

// Result 是一次分类的不可变结果。
type Result struct {
	Label      Label
	Confidence float64
	Source     Source
	// Scores 仅本地结果填充。
	Scores Scores
}
