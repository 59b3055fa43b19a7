package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/samber/lo"
)

const (
	RemoteProviderHuggingFace = "huggingface"
	RemoteProviderArk         = "ark"
	RemoteProviderNone        = "none"

	SpeechProviderGoogle     = "google"
	SpeechProviderVolcengine = "volcengine"
	SpeechProviderNone       = "none"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Emotion EmotionConfig
	AI      AIConfig
	Speech  SpeechConfig
	Cache   CacheConfig
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Port string `env:"PORT,default=5001"`
	// Addr 由 Port 推导
	Addr string
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `env:"LOG_LEVEL,default=info"`
	Format string `env:"LOG_FORMAT,default=console"`
}

// EmotionConfig 远程情绪分类配置
type EmotionConfig struct {
	Provider string        `env:"EMOTION_REMOTE_PROVIDER,default=huggingface"`
	URL      string        `env:"EMOTION_REMOTE_URL,default=https://api-inference.huggingface.co/models/j-hartmann/emotion-english-distilroberta-base"`
	Token    string        `env:"EMOTION_REMOTE_TOKEN"`
	Timeout  time.Duration `env:"EMOTION_REMOTE_TIMEOUT,default=5s"`
}

// AIConfig 描述大模型相关配置，仅在 EMOTION_REMOTE_PROVIDER=ark 时使用。
type AIConfig struct {
	APIKey    string `env:"ARK_API_KEY"`
	AccessKey string `env:"ARK_ACCESS_KEY"`
	SecretKey string `env:"ARK_SECRET_KEY"`
	Model     string `env:"ARK_MODEL"`
	BaseURL   string `env:"ARK_BASE_URL,default=https://ark.cn-beijing.volces.com/api/v3"`
	Region    string `env:"ARK_REGION,default=cn-beijing"`
}

// SpeechConfig 描述语音服务相关配置
type SpeechConfig struct {
	Provider string        `env:"SPEECH_PROVIDER,default=none"`
	Timeout  time.Duration `env:"SPEECH_TIMEOUT,default=15s"`

	GoogleAccessToken string `env:"GOOGLE_TTS_ACCESS_TOKEN"`
	GoogleProject     string `env:"GOOGLE_CLOUD_PROJECT"`
	GoogleVoice       string `env:"GOOGLE_TTS_VOICE"`

	AppID       string  `env:"SPEECH_APP_ID"`
	AccessToken string  `env:"SPEECH_ACCESS_TOKEN"`
	Endpoint    string  `env:"SPEECH_ENDPOINT"`
	TTSVoice    string  `env:"SPEECH_TTS_VOICE"`
	TTSSpeed    float32 `env:"SPEECH_TTS_SPEED,default=1.0"`
	TTSVolume   float32 `env:"SPEECH_TTS_VOLUME,default=1.0"`
}

// CacheConfig 合成音频缓存配置；RedisAddr 为空表示关闭缓存。
type CacheConfig struct {
	RedisAddr     string        `env:"SPEECH_CACHE_REDIS_ADDR"`
	RedisPassword string        `env:"SPEECH_CACHE_REDIS_PASSWORD"`
	RedisDB       int           `env:"SPEECH_CACHE_REDIS_DB,default=0"`
	TTL           time.Duration `env:"SPEECH_CACHE_TTL,default=24h"`
}

// Load 从环境变量加载配置。调用方负责在此之前加载 .env。
func Load() (*Config, error) {
	cfg := &Config{}

	sections := []struct {
		name   string
		target any
	}{
		{"server", &cfg.Server},
		{"log", &cfg.Log},
		{"emotion", &cfg.Emotion},
		{"ai", &cfg.AI},
		{"speech", &cfg.Speech},
		{"cache", &cfg.Cache},
	}
	for _, section := range sections {
		if _, err := env.UnmarshalFromEnviron(section.target); err != nil {
			return nil, fmt.Errorf("load %s config: %w", section.name, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	addr, err := listenAddr(c.Server.Port)
	if err != nil {
		return err
	}
	c.Server.Addr = addr

	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))

	c.Emotion.Provider = strings.ToLower(strings.TrimSpace(c.Emotion.Provider))
	if c.Emotion.Provider == "" {
		c.Emotion.Provider = RemoteProviderNone
	}
	if !lo.Contains([]string{RemoteProviderHuggingFace, RemoteProviderArk, RemoteProviderNone}, c.Emotion.Provider) {
		return fmt.Errorf("invalid EMOTION_REMOTE_PROVIDER value: %q", c.Emotion.Provider)
	}
	if c.Emotion.Timeout <= 0 {
		return fmt.Errorf("EMOTION_REMOTE_TIMEOUT must be positive, got %s", c.Emotion.Timeout)
	}
	if c.Emotion.Provider == RemoteProviderHuggingFace && strings.TrimSpace(c.Emotion.URL) == "" {
		return fmt.Errorf("EMOTION_REMOTE_URL is required for the huggingface provider")
	}

	c.Speech.Provider = strings.ToLower(strings.TrimSpace(c.Speech.Provider))
	if c.Speech.Provider == "" {
		c.Speech.Provider = SpeechProviderNone
	}
	if !lo.Contains([]string{SpeechProviderGoogle, SpeechProviderVolcengine, SpeechProviderNone}, c.Speech.Provider) {
		return fmt.Errorf("invalid SPEECH_PROVIDER value: %q", c.Speech.Provider)
	}
	if c.Speech.Timeout <= 0 {
		return fmt.Errorf("SPEECH_TIMEOUT must be positive, got %s", c.Speech.Timeout)
	}

	if c.Cache.TTL <= 0 {
		return fmt.Errorf("SPEECH_CACHE_TTL must be positive, got %s", c.Cache.TTL)
	}
	return nil
}

// listenAddr 允许用户直接传入 "5001"、":5001" 或 "127.0.0.1:5001"。
func listenAddr(port string) (string, error) {
	port = strings.TrimSpace(port)
	if port == "" {
		port = "5001"
	}
	if strings.Contains(port, " ") {
		return "", fmt.Errorf("invalid PORT value: %q", port)
	}
	if strings.Contains(port, ":") {
		return port, nil
	}
	return ":" + port, nil
}

// Enabled 表示是否提供了必需的密钥。
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel 使用配置创建一个模型实例。
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("Ark 凭证或模型配置缺失，至少提供 ARK_API_KEY + ARK_MODEL 或 AK/SK 组合")
	}

	// 分类任务需要稳定输出
	temperature := float32(0)
	maxTokens := 64

	return ark.NewChatModel(ctx, &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   &maxTokens,
		Temperature: &temperature,
	})
}

// GoogleEnabled 表示 Google TTS 凭证是否齐全
func (c SpeechConfig) GoogleEnabled() bool {
	return c.GoogleAccessToken != "" && c.GoogleProject != ""
}

// VolcengineEnabled 表示火山引擎 TTS 凭证是否齐全
func (c SpeechConfig) VolcengineEnabled() bool {
	return c.AppID != "" && c.AccessToken != ""
}
