package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	speechmodel "github.com/zhouzirui/neurosync/backend/internal/model/speech"
)

const (
	googleProvider = "google"
	googleEndpoint = "https://texttospeech.googleapis.com/v1/text:synthesize"
)

// googleLocales 把短语言码补全为 Google 要求的 BCP-47 地区码
var googleLocales = map[string]string{
	"en": "en-US",
	"es": "es-ES",
	"fr": "fr-FR",
	"sw": "sw-KE",
	"de": "de-DE",
	"pt": "pt-BR",
}

// GoogleTTSClient 调用 Google Cloud Text-to-Speech REST 接口，返回 MP3。
type GoogleTTSClient struct {
	httpClient *http.Client
	config     speechmodel.GoogleConfig
}

// NewGoogleTTSClient 创建客户端；AccessToken 与 ProjectID 均为必填。
func NewGoogleTTSClient(cfg speechmodel.GoogleConfig, httpClient *http.Client) (*GoogleTTSClient, error) {
	if strings.TrimSpace(cfg.AccessToken) == "" {
		return nil, fmt.Errorf("GOOGLE_TTS_ACCESS_TOKEN not set")
	}
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, fmt.Errorf("GOOGLE_CLOUD_PROJECT not set")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &GoogleTTSClient{httpClient: httpClient, config: cfg}, nil
}

// Provider 返回提供方名称
func (c *GoogleTTSClient) Provider() string { return googleProvider }

// Synthesize returns raw MP3 bytes for req.Text.
func (c *GoogleTTSClient) Synthesize(ctx context.Context, req *speechmodel.TTSRequest) (*speechmodel.TTSResponse, error) {
	if req == nil || strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("tts text is empty")
	}

	locale := googleLocale(req.Language)
	voice := map[string]string{"languageCode": locale}
	if name := c.voiceFor(req.Voice, locale); name != "" {
		voice["name"] = name
	}

	body := map[string]any{
		"input":       map[string]string{"text": req.Text},
		"voice":       voice,
		"audioConfig": map[string]any{"audioEncoding": "MP3"},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("encode tts request: %w", err)
	}

	endpoint := c.config.Endpoint
	if endpoint == "" {
		endpoint = googleEndpoint
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("build tts request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.config.AccessToken)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-user-project", c.config.ProjectID)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("tts http error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("tts non 200: %d, body=%s", resp.StatusCode, string(b))
	}

	var respBody struct {
		AudioContent string `json:"audioContent"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return nil, fmt.Errorf("decode tts response: %w", err)
	}
	if respBody.AudioContent == "" {
		return nil, fmt.Errorf("empty audioContent in tts response")
	}

	audio, err := base64.StdEncoding.DecodeString(respBody.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("decode base64 audioContent: %w", err)
	}

	return &speechmodel.TTSResponse{
		AudioData: audio,
		Format:    "mp3",
		Provider:  googleProvider,
		CreatedAt: time.Now(),
	}, nil
}

// voiceFor 只在声音名与语言匹配时指定声音，否则交给服务端挑选。
func (c *GoogleTTSClient) voiceFor(requested, locale string) string {
	for _, name := range []string{requested, c.config.Voice} {
		name = strings.TrimSpace(name)
		if name != "" && strings.HasPrefix(strings.ToLower(name), strings.ToLower(locale)) {
			return name
		}
	}
	return ""
}

func googleLocale(language string) string {
	language = strings.TrimSpace(language)
	if language == "" {
		return googleLocales[DefaultLanguage]
	}
	if locale, ok := googleLocales[strings.ToLower(language)]; ok {
		return locale
	}
	return language
}
