package emotion

import (
	"math"
	"strings"

	"go.uber.org/zap"
)

const (
	// ConfidenceDivisor 为本地置信度的校准常数：得分达到该值即置信度饱和为 1。
	ConfidenceDivisor = 5.0

	positiveThreshold = 0.3
	negativeThreshold = -0.3

	// BlankConfidence 是空输入时返回的置信度。
	BlankConfidence = 0.5
)

// Classifier 结合关键词命中与情感极性给出本地情绪判断。
// 无状态，可被并发调用。
type Classifier struct {
	lexicon *Lexicon
	scorer  SentimentScorer
	logger  *zap.Logger
}

// NewClassifier 创建本地分类器。scorer 可以为 nil，此时只使用关键词得分。
func NewClassifier(lexicon *Lexicon, scorer SentimentScorer, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{lexicon: lexicon, scorer: scorer, logger: logger}
}

// Classify 返回文本的本地情绪判断，结果 Source 恒为 SourceLocal。
func (c *Classifier) Classify(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Label: Neutral, Confidence: BlankConfidence, Source: SourceLocal}
	}

	scores := c.lexicon.Count(text)
	c.applySentiment(text, &scores)

	// 全部为 0 时同样按声明顺序取 Happy，置信度为 0
	best, bestScore := pickDominant(scores)
	return Result{
		Label:      best,
		Confidence: math.Min(float64(bestScore)/ConfidenceDivisor, 1.0),
		Source:     SourceLocal,
		Scores:     scores,
	}
}

// applySentiment 按极性调整得分；负面情绪在悲伤与愤怒之间存在歧义，因此两者都加分。
func (c *Classifier) applySentiment(text string, scores *Scores) {
	if c.scorer == nil {
		return
	}

	polarity, err := c.scorer.Polarity(text)
	if err != nil {
		c.logger.Warn("sentiment scorer failed, using keyword scores only", zap.Error(err))
		return
	}

	switch {
	case polarity > positiveThreshold:
		scores[Happy] += 2
	case polarity < negativeThreshold:
		scores[Sad] += 2
		scores[Angry]++
	}
}

// pickDominant 返回最高分标签；平局时取声明顺序靠前者。
func pickDominant(scores Scores) (Label, int) {
	best := Happy
	bestScore := scores[Happy]
	for _, label := range Labels()[1:] {
		if scores[label] > bestScore {
			best, bestScore = label, scores[label]
		}
	}
	return best, bestScore
}
