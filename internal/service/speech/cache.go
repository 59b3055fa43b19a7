package speech

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/zhouzirui/neurosync/backend/internal/metrics"
	speechmodel "github.com/zhouzirui/neurosync/backend/internal/model/speech"
)

// DefaultCacheTTL 合成音频的默认缓存时长
const DefaultCacheTTL = 24 * time.Hour

const cacheKeyPrefix = "neurosync:tts:"

// CachedSynthesizer 用 Redis 缓存合成结果。缓存异常只记录日志，不影响合成。
type CachedSynthesizer struct {
	next   Synthesizer
	client redis.Cmdable
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedSynthesizer 包装 next；ttl <= 0 时使用 DefaultCacheTTL。
func NewCachedSynthesizer(next Synthesizer, client redis.Cmdable, ttl time.Duration, logger *zap.Logger) *CachedSynthesizer {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedSynthesizer{next: next, client: client, ttl: ttl, logger: logger.Named("tts.cache")}
}

// Provider 返回被包装提供方的名称
func (c *CachedSynthesizer) Provider() string { return c.next.Provider() }

// Synthesize 命中缓存直接返回，否则调用下游并回写缓存。
func (c *CachedSynthesizer) Synthesize(ctx context.Context, req *speechmodel.TTSRequest) (*speechmodel.TTSResponse, error) {
	key := c.key(req)

	audio, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil && len(audio) > 0:
		metrics.SpeechCacheLookups.WithLabelValues("hit").Inc()
		return &speechmodel.TTSResponse{
			AudioData: audio,
			Format:    formatOf(req),
			Provider:  c.next.Provider(),
			Cached:    true,
			CreatedAt: time.Now(),
		}, nil
	case err == nil || errors.Is(err, redis.Nil):
		metrics.SpeechCacheLookups.WithLabelValues("miss").Inc()
	default:
		metrics.SpeechCacheLookups.WithLabelValues("error").Inc()
		c.logger.Warn("cache lookup failed", zap.Error(err))
	}

	resp, err := c.next.Synthesize(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp != nil && len(resp.AudioData) > 0 {
		if err := c.client.Set(ctx, key, resp.AudioData, c.ttl).Err(); err != nil {
			c.logger.Warn("cache store failed", zap.Error(err))
		}
	}
	return resp, nil
}

// key 由提供方、语言、声音、情绪与文本共同决定
func (c *CachedSynthesizer) key(req *speechmodel.TTSRequest) string {
	h := sha256.New()
	parts := []string{
		c.next.Provider(),
		strings.ToLower(strings.TrimSpace(req.Language)),
		strings.TrimSpace(req.Voice),
		formatOf(req),
		emotionKey(req.Emotion),
		req.Text,
	}
	for _, part := range parts {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}

func emotionKey(hint *speechmodel.EmotionHint) string {
	if hint == nil {
		return ""
	}
	return hint.Label.String()
}

func formatOf(req *speechmodel.TTSRequest) string {
	if format := strings.TrimSpace(req.Format); format != "" {
		return format
	}
	return "mp3"
}
