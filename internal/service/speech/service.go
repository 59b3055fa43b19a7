//go:generate go run go.uber.org/mock/mockgen -source=service.go -destination=../../mocks/mock_synthesizer.go -package=mocks
package speech

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/zhouzirui/neurosync/backend/internal/metrics"
	speechmodel "github.com/zhouzirui/neurosync/backend/internal/model/speech"
)

// DefaultTimeout 单次合成的默认时间上限
const DefaultTimeout = 15 * time.Second

var (
	// ErrSynthesisFailed 表示合成引擎未能产出音频。
	ErrSynthesisFailed = errors.New("speech synthesis failed")
	// ErrSpeechDisabled 表示未配置任何 TTS 提供方。
	ErrSpeechDisabled = errors.New("speech synthesis is disabled")
)

// Synthesizer 是任意 TTS 引擎的最小接口。
type Synthesizer interface {
	Provider() string
	Synthesize(ctx context.Context, req *speechmodel.TTSRequest) (*speechmodel.TTSResponse, error)
}

// Service 语音服务：超时控制、错误归一化与 data URL 编码。
type Service struct {
	synth   Synthesizer
	timeout time.Duration
	logger  *zap.Logger
}

// NewService 创建语音服务。synth 为 nil 时所有合成都返回 ErrSpeechDisabled。
func NewService(synth Synthesizer, timeout time.Duration, logger *zap.Logger) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{synth: synth, timeout: timeout, logger: logger.Named("speech")}
}

// Enabled 返回是否配置了 TTS 提供方
func (s *Service) Enabled() bool {
	return s != nil && s.synth != nil
}

// Provider 返回当前提供方名称，未启用时为 "none"
func (s *Service) Provider() string {
	if !s.Enabled() {
		return "none"
	}
	return s.synth.Provider()
}

// Synthesize 合成语音。失败时返回的错误总是包装 ErrSynthesisFailed 或 ErrSpeechDisabled。
func (s *Service) Synthesize(ctx context.Context, req *speechmodel.TTSRequest) (resp *speechmodel.TTSResponse, err error) {
	if !s.Enabled() {
		return nil, ErrSpeechDisabled
	}
	if req == nil || strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("%w: text is empty", ErrSynthesisFailed)
	}

	provider := s.synth.Provider()
	defer func() {
		if r := recover(); r != nil {
			resp, err = nil, fmt.Errorf("%w: panic: %v", ErrSynthesisFailed, r)
		}
		result := "ok"
		if err != nil {
			result = "error"
			s.logger.Warn("synthesis failed",
				zap.String("provider", provider),
				zap.String("language", req.Language),
				zap.Error(err))
		}
		metrics.SpeechSyntheses.WithLabelValues(provider, result).Inc()
	}()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err = s.synth.Synthesize(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSynthesisFailed, err)
	}
	if resp == nil || len(resp.AudioData) == 0 {
		return nil, fmt.Errorf("%w: empty audio", ErrSynthesisFailed)
	}
	return resp, nil
}

// SynthesizeDataURL 合成语音并编码为可直接播放的 data URL。
func (s *Service) SynthesizeDataURL(ctx context.Context, req *speechmodel.TTSRequest) (string, error) {
	resp, err := s.Synthesize(ctx, req)
	if err != nil {
		return "", err
	}
	return DataURL(resp.Format, resp.AudioData), nil
}

// DataURL 返回 data:<mime>;base64,<audio>
func DataURL(format string, audio []byte) string {
	return "data:" + mimeType(format) + ";base64," + base64.StdEncoding.EncodeToString(audio)
}

func mimeType(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "ogg", "ogg_opus", "opus":
		return "audio/ogg"
	case "wav", "pcm":
		return "audio/wav"
	default:
		return "audio/mpeg"
	}
}
