package emotion

import (
	"fmt"
	"sort"
	"strings"

	goahocorasick "github.com/anknown/ahocorasick"
)

var (
	happyKeywords   = []string{"happy", "joy", "excited", "great", "wonderful", "amazing", "love", "glad", "pleased", "fantastic", "awesome"}
	sadKeywords     = []string{"sad", "depressed", "down", "unhappy", "miserable", "lonely", "hurt", "crying", "upset", "disappointed"}
	angryKeywords   = []string{"angry", "mad", "furious", "annoyed", "frustrated", "irritated", "rage", "hate"}
	anxiousKeywords = []string{"anxious", "worried", "nervous", "stressed", "scared", "afraid", "fear", "panic"}
	neutralKeywords = []string{"okay", "fine", "alright", "normal", "nothing", "meh"}
)

// Keywords 返回标签对应的触发词（小写）。返回的切片只读。
func Keywords(label Label) []string {
	switch label {
	case Happy:
		return happyKeywords
	case Sad:
		return sadKeywords
	case Angry:
		return angryKeywords
	case Anxious:
		return anxiousKeywords
	default:
		return neutralKeywords
	}
}

// Lexicon 在一次 Aho-Corasick 扫描中统计各标签命中的触发词数量。
// 构建后只读，可被并发请求共享。
type Lexicon struct {
	machine *goahocorasick.Machine
	owners  map[string]Label
}

// NewLexicon 使用内置词表构建自动机。
func NewLexicon() (*Lexicon, error) {
	owners := make(map[string]Label)
	for _, label := range Labels() {
		for _, word := range Keywords(label) {
			word = strings.ToLower(strings.TrimSpace(word))
			if word == "" {
				continue
			}
			if prev, dup := owners[word]; dup && prev != label {
				return nil, fmt.Errorf("keyword %q assigned to both %s and %s", word, prev, label)
			}
			owners[word] = label
		}
	}

	words := make([]string, 0, len(owners))
	for word := range owners {
		words = append(words, word)
	}
	sort.Strings(words)

	patterns := make([][]rune, len(words))
	for i, word := range words {
		patterns[i] = []rune(word)
	}

	machine := new(goahocorasick.Machine)
	if err := machine.Build(patterns); err != nil {
		return nil, fmt.Errorf("build keyword automaton: %w", err)
	}

	return &Lexicon{machine: machine, owners: owners}, nil
}

// Count 返回每个标签命中的不同触发词数量。重复出现的同一个词只计一次。
func (l *Lexicon) Count(text string) Scores {
	var scores Scores
	lowered := []rune(strings.ToLower(text))
	if len(lowered) == 0 {
		return scores
	}

	seen := make(map[string]struct{})
	for _, term := range l.machine.MultiPatternSearch(lowered, false) {
		word := string(term.Word)
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		if label, ok := l.owners[word]; ok {
			scores[label]++
		}
	}
	return scores
}
