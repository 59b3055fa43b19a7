// Package app 根据配置装配服务，供 API 进程与命令行工具共用。
package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	analysis "github.com/zhouzirui/neurosync/backend/internal/analysis/emotion"
	"github.com/zhouzirui/neurosync/backend/internal/config"
	speechmodel "github.com/zhouzirui/neurosync/backend/internal/model/speech"
	"github.com/zhouzirui/neurosync/backend/internal/service/chat"
	"github.com/zhouzirui/neurosync/backend/internal/service/emotion"
	"github.com/zhouzirui/neurosync/backend/internal/service/speech"
)

// App 持有装配完成的服务
type App struct {
	Chat    *chat.Service
	Emotion *emotion.Service
	Speech  *speech.Service

	redis  *redis.Client
	logger *zap.Logger
}

// Build 装配全部服务。可选组件初始化失败只降级，不返回错误；
// 只有关键词词库这类必需资源失败才会返回错误。
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{logger: logger}

	lexicon, err := analysis.NewLexicon()
	if err != nil {
		return nil, fmt.Errorf("build keyword lexicon: %w", err)
	}

	var scorer analysis.SentimentScorer
	if s, err := analysis.NewLexiconScorer(); err != nil {
		logger.Warn("sentiment scorer unavailable, classifying by keywords only", zap.Error(err))
	} else {
		scorer = s
	}
	local := analysis.NewClassifier(lexicon, scorer, logger.Named("classifier"))

	remote := a.remoteClassifier(ctx, cfg)
	a.Emotion = emotion.NewService(remote, local, emotion.Config{RemoteTimeout: cfg.Emotion.Timeout}, logger)

	a.Speech = speech.NewService(a.synthesizer(ctx, cfg), cfg.Speech.Timeout, logger)
	a.Chat = chat.NewService(a.Emotion, a.Speech, logger)

	logger.Info("services initialized",
		zap.String("emotion_remote", cfg.Emotion.Provider),
		zap.Bool("emotion_remote_enabled", a.Emotion.RemoteEnabled()),
		zap.String("speech_provider", a.Speech.Provider()),
		zap.Bool("speech_cache", a.redis != nil))
	return a, nil
}

// Close 释放外部连接
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("close redis failed", zap.Error(err))
		}
	}
}

func (a *App) remoteClassifier(ctx context.Context, cfg *config.Config) emotion.RemoteClassifier {
	switch cfg.Emotion.Provider {
	case config.RemoteProviderHuggingFace:
		return emotion.NewHuggingFaceClient(emotion.HuggingFaceConfig{
			URL:   cfg.Emotion.URL,
			Token: cfg.Emotion.Token,
		})

	case config.RemoteProviderArk:
		if !cfg.AI.Enabled() {
			a.logger.Warn("Ark 凭证未配置，远程情绪分类降级为本地规则")
			return nil
		}
		chatModel, err := cfg.AI.NewChatModel(ctx)
		if err != nil {
			a.logger.Warn("failed to create ark chat model", zap.Error(err))
			return nil
		}
		classifier, err := emotion.NewLLMClassifier(ctx, chatModel)
		if err != nil {
			a.logger.Warn("failed to build llm classifier", zap.Error(err))
			return nil
		}
		return classifier

	default:
		return nil
	}
}

func (a *App) synthesizer(ctx context.Context, cfg *config.Config) speech.Synthesizer {
	var synth speech.Synthesizer

	switch cfg.Speech.Provider {
	case config.SpeechProviderGoogle:
		client, err := speech.NewGoogleTTSClient(speechmodel.GoogleConfig{
			AccessToken: cfg.Speech.GoogleAccessToken,
			ProjectID:   cfg.Speech.GoogleProject,
			Voice:       cfg.Speech.GoogleVoice,
		}, nil)
		if err != nil {
			a.logger.Warn("google tts disabled", zap.Error(err))
			return nil
		}
		synth = client

	case config.SpeechProviderVolcengine:
		if !cfg.Speech.VolcengineEnabled() {
			a.logger.Warn("语音服务凭证未配置，跳过语音合成初始化")
			return nil
		}
		synth = speech.NewVolcengineTTSClient(&speechmodel.VolcengineConfig{
			AppID:       cfg.Speech.AppID,
			AccessToken: cfg.Speech.AccessToken,
			Endpoint:    cfg.Speech.Endpoint,
			Voice:       cfg.Speech.TTSVoice,
			Speed:       cfg.Speech.TTSSpeed,
			Volume:      cfg.Speech.TTSVolume,
		}, a.logger)

	default:
		return nil
	}

	if cfg.Cache.RedisAddr == "" {
		return synth
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		a.logger.Warn("redis unreachable, speech cache disabled", zap.String("addr", cfg.Cache.RedisAddr), zap.Error(err))
		_ = client.Close()
		return synth
	}
	a.redis = client
	return speech.NewCachedSynthesizer(synth, client, cfg.Cache.TTL, a.logger)
}
