//go:generate go run go.uber.org/mock/mockgen -source=service.go -destination=../../mocks/mock_emotion_classifier.go -package=mocks
package emotion

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	analysis "github.com/zhouzirui/neurosync/backend/internal/analysis/emotion"
	"github.com/zhouzirui/neurosync/backend/internal/metrics"
)

// DefaultRemoteTimeout 是单次远程分类的时间上限。
const DefaultRemoteTimeout = 5 * time.Second

var (
	// ErrRemoteUnavailable 表示远程分类器未返回可用结果（网络错误、非 2xx、超时）。
	ErrRemoteUnavailable = errors.New("remote emotion classifier unavailable")
	// ErrMalformedPrediction 表示远程返回的数据结构或分数不合法。
	ErrMalformedPrediction = errors.New("malformed remote emotion prediction")
)

// Prediction 是远程模型给出的最高分标签（远程词表）及其分数。
type Prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// RemoteClassifier 表示任意远程情绪模型。
type RemoteClassifier interface {
	Predict(ctx context.Context, text string) (Prediction, error)
}

// LocalClassifier 表示本地启发式分类器，必须总能给出结果。
type LocalClassifier interface {
	Classify(text string) analysis.Result
}

// Config 控制分类服务的行为。
type Config struct {
	RemoteTimeout time.Duration
}

// Service 优先调用远程模型，失败时回退到本地分类，对调用方从不返回错误。
type Service struct {
	remote  RemoteClassifier
	local   LocalClassifier
	timeout time.Duration
	logger  *zap.Logger
}

// NewService 创建情绪分类服务。remote 为 nil 表示只使用本地分类。
func NewService(remote RemoteClassifier, local LocalClassifier, cfg Config, logger *zap.Logger) *Service {
	timeout := cfg.RemoteTimeout
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		remote:  remote,
		local:   local,
		timeout: timeout,
		logger:  logger.Named("emotion"),
	}
}

// RemoteEnabled 返回是否配置了远程分类器。
func (s *Service) RemoteEnabled() bool {
	return s != nil && s.remote != nil
}

// Classify 返回文本的情绪判断。
func (s *Service) Classify(ctx context.Context, text string) analysis.Result {
	if s.RemoteEnabled() && strings.TrimSpace(text) != "" {
		result, err := s.classifyRemote(ctx, text)
		if err == nil {
			s.observe(result)
			return result
		}

		reason := "error"
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			reason = "timeout"
		case errors.Is(err, ErrMalformedPrediction):
			reason = "malformed"
		}
		metrics.EmotionRemoteFailures.WithLabelValues(reason).Inc()
		s.logger.Warn("remote classification failed, falling back to local",
			zap.String("reason", reason), zap.Error(err))
	}

	result := s.local.Classify(text)
	s.observe(result)
	return result
}

type remoteOutcome struct {
	prediction Prediction
	err        error
}

// classifyRemote 在超时内等待远程结果；超时后不再等待仍在进行的调用。
func (s *Service) classifyRemote(ctx context.Context, text string) (analysis.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.EmotionRemoteDuration.Observe(time.Since(start).Seconds())
	}()

	done := make(chan remoteOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- remoteOutcome{err: fmt.Errorf("%w: panic: %v", ErrRemoteUnavailable, r)}
			}
		}()
		prediction, err := s.remote.Predict(ctx, text)
		done <- remoteOutcome{prediction: prediction, err: err}
	}()

	var outcome remoteOutcome
	select {
	case <-ctx.Done():
		return analysis.Result{}, fmt.Errorf("%w: %w", ErrRemoteUnavailable, ctx.Err())
	case outcome = <-done:
	}

	if outcome.err != nil {
		return analysis.Result{}, outcome.err
	}

	score := outcome.prediction.Score
	if math.IsNaN(score) || score < 0 || score > 1 {
		return analysis.Result{}, fmt.Errorf("%w: score %v out of range", ErrMalformedPrediction, score)
	}

	return analysis.Result{
		Label:      MapRemoteLabel(outcome.prediction.Label),
		Confidence: score,
		Source:     analysis.SourceRemote,
	}, nil
}

func (s *Service) observe(result analysis.Result) {
	metrics.EmotionClassifications.WithLabelValues(string(result.Source), result.Label.String()).Inc()
	s.logger.Debug("emotion classified",
		zap.String("label", result.Label.String()),
		zap.Float64("confidence", result.Confidence),
		zap.String("source", string(result.Source)))
}
