package emotion

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	porterstemmer "github.com/blevesearch/go-porterstemmer"
)

// ErrSentimentFailed 表示情感打分器内部失败。分类器会吞掉该错误，只用关键词得分继续。
var ErrSentimentFailed = errors.New("sentiment analysis failed")

// SentimentScorer 估计文本的情感极性：越正面数值越大。
type SentimentScorer interface {
	Polarity(text string) (float64, error)
}

// LexiconScorer 基于词干化的情感词典计算极性：命中词分值之和除以词元个数。
type LexiconScorer struct {
	valence map[string]int
}

// NewLexiconScorer 使用内置英文词典构建打分器。应在进程启动时构建一次并共享。
func NewLexiconScorer() (*LexiconScorer, error) {
	return newLexiconScorer(englishValence)
}

func newLexiconScorer(entries []valenceEntry) (scorer *LexiconScorer, err error) {
	defer func() {
		if r := recover(); r != nil {
			scorer, err = nil, fmt.Errorf("build sentiment lexicon: %v", r)
		}
	}()

	if len(entries) == 0 {
		return nil, errors.New("build sentiment lexicon: no entries")
	}

	valence := make(map[string]int, len(entries))
	for _, entry := range entries {
		stem := porterstemmer.StemString(strings.ToLower(entry.word))
		if stem == "" {
			continue
		}
		if _, exists := valence[stem]; exists {
			continue
		}
		valence[stem] = entry.score
	}

	if len(valence) == 0 {
		return nil, errors.New("build sentiment lexicon: every entry stemmed to empty")
	}
	return &LexiconScorer{valence: valence}, nil
}

// Polarity 计算文本极性。空文本返回 0。
func (s *LexiconScorer) Polarity(text string) (polarity float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			polarity, err = 0, fmt.Errorf("%w: %v", ErrSentimentFailed, r)
		}
	}()

	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return 0, nil
	}

	sum := 0
	for _, token := range tokens {
		sum += s.valence[porterstemmer.StemString(token)]
	}
	return float64(sum) / float64(len(tokens)), nil
}

// Tokenize 将文本切分为小写词元，保留词内撇号。
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}
