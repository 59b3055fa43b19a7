// Package chat 串联情绪分类、回复拼装与可选的语音合成。
package chat

import (
	"context"
	"errors"

	"go.uber.org/zap"

	analysis "github.com/zhouzirui/neurosync/backend/internal/analysis/emotion"
	"github.com/zhouzirui/neurosync/backend/internal/model/reply"
	speechmodel "github.com/zhouzirui/neurosync/backend/internal/model/speech"
	composer "github.com/zhouzirui/neurosync/backend/internal/service/reply"
	"github.com/zhouzirui/neurosync/backend/internal/service/speech"
)

// ErrTextRequired 表示请求缺少文本。
var ErrTextRequired = errors.New("text is required")

// Classifier 给出文本的情绪判断，从不失败。
type Classifier interface {
	Classify(ctx context.Context, text string) analysis.Result
}

// Speaker 把文本合成为 data URL。
type Speaker interface {
	Enabled() bool
	SynthesizeDataURL(ctx context.Context, req *speechmodel.TTSRequest) (string, error)
}

// Service 回复流水线。无状态，可并发使用。
type Service struct {
	classifier Classifier
	speaker    Speaker
	logger     *zap.Logger
}

// NewService wires the pipeline. speaker may be nil, in which case replies carry no audio.
func NewService(classifier Classifier, speaker Speaker, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{classifier: classifier, speaker: speaker, logger: logger.Named("chat")}
}

// Reply 分类文本并生成回复。
func (s *Service) Reply(ctx context.Context, text string) (reply.ChatReply, error) {
	if text == "" {
		return reply.ChatReply{}, ErrTextRequired
	}

	result := s.classifier.Classify(ctx, text)
	suggestions := composer.Suggestions(result.Label)

	return reply.ChatReply{
		Message:     composer.Compose(result.Label, suggestions),
		Emotion:     result.Label,
		Confidence:  result.Confidence,
		Source:      result.Source,
		Suggestions: suggestions,
	}, nil
}

// ReplyWithAudio 生成回复并尝试合成语音；合成失败只会让 AudioURL 为空。
func (s *Service) ReplyWithAudio(ctx context.Context, text, language string) (reply.VoiceReply, error) {
	chatReply, err := s.Reply(ctx, text)
	if err != nil {
		return reply.VoiceReply{}, err
	}

	if language == "" {
		language = speech.DefaultLanguage
	}

	out := reply.VoiceReply{ChatReply: chatReply}
	if s.speaker == nil || !s.speaker.Enabled() {
		return out, nil
	}

	url, err := s.speaker.SynthesizeDataURL(ctx, &speechmodel.TTSRequest{
		Text:     chatReply.Message,
		Language: language,
		Emotion:  &speechmodel.EmotionHint{Label: chatReply.Emotion, Confidence: chatReply.Confidence},
	})
	if err != nil {
		s.logger.Warn("reply audio unavailable, returning text only", zap.Error(err))
		return out, nil
	}

	out.AudioURL = &url
	return out, nil
}

// Speak 直接合成任意文本。language 为空时根据文本识别。
func (s *Service) Speak(ctx context.Context, text, language string) (string, error) {
	if text == "" {
		return "", ErrTextRequired
	}
	if s.speaker == nil {
		return "", speech.ErrSpeechDisabled
	}

	return s.speaker.SynthesizeDataURL(ctx, &speechmodel.TTSRequest{
		Text:     text,
		Language: speech.ResolveLanguage(language, text),
	})
}
