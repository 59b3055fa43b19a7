package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	speechmodel "github.com/zhouzirui/neurosync/backend/internal/model/speech"
)

const (
	volcengineProvider = "volcengine"
	volcengineEndpoint = "wss://openspeech.bytedance.com/api/v3/tts/unidirectional/stream"
)

var errResourceMismatch = errors.New("resource ID is mismatched with speaker related resource")

// VolcengineTTSClient 火山引擎单向流式 TTS WebSocket 客户端
type VolcengineTTSClient struct {
	config *speechmodel.VolcengineConfig
	dialer *websocket.Dialer
	logger *zap.Logger
}

type ttsServerMessage struct {
	ReqID    string `json:"reqid"`
	Code     int    `json:"code"`
	Message  string `json:"message"`
	Sequence int    `json:"sequence"`
	Data     string `json:"data"`
	Addition struct {
		Duration string `json:"duration,omitempty"`
	} `json:"addition,omitempty"`
}

type volcengineTTSRequest struct {
	User struct {
		UID string `json:"uid"`
	} `json:"user"`
	ReqParams struct {
		Speaker     string                   `json:"speaker"`
		Text        string                   `json:"text"`
		AudioParams volcengineTTSAudioParams `json:"audio_params"`
		Additions   string                   `json:"additions,omitempty"`
	} `json:"req_params"`
}

type volcengineTTSAudioParams struct {
	Format       string  `json:"format"`
	SampleRate   int     `json:"sample_rate"`
	SpeechRate   int     `json:"speech_rate,omitempty"`
	LoudnessRate int     `json:"loudness_rate,omitempty"`
	Emotion      string  `json:"emotion,omitempty"`
	EmotionScale float32 `json:"emotion_scale,omitempty"`
}

// NewVolcengineTTSClient 创建火山引擎TTS客户端
func NewVolcengineTTSClient(config *speechmodel.VolcengineConfig, logger *zap.Logger) *VolcengineTTSClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VolcengineTTSClient{
		config: config,
		dialer: &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		logger: logger.Named("tts.volcengine"),
	}
}

// Provider 返回提供方名称
func (c *VolcengineTTSClient) Provider() string { return volcengineProvider }

// Synthesize 依次尝试候选声音与资源 ID，直到有一个组合成功。
func (c *VolcengineTTSClient) Synthesize(ctx context.Context, req *speechmodel.TTSRequest) (*speechmodel.TTSResponse, error) {
	if req == nil || strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("TTS text is empty")
	}

	appKey, accessKey, err := resolveCredentials(c.config)
	if err != nil {
		return nil, err
	}

	encoding := strings.TrimSpace(req.Format)
	if encoding == "" || encoding == "wav" {
		encoding = "mp3"
	}

	speakers := resolveSpeakerCandidates(req.Voice, c.config.Voice)
	var lastMismatch error
	for _, speaker := range speakers {
		for _, resourceID := range resolveResourceCandidates(speaker) {
			resp, err := c.synthesizeWith(ctx, req, appKey, accessKey, speaker, encoding, resourceID)
			if err == nil {
				return resp, nil
			}
			if !errors.Is(err, errResourceMismatch) {
				return nil, err
			}
			c.logger.Info("voice resource mismatch, trying next candidate",
				zap.String("speaker", speaker), zap.String("resource", resourceID))
			lastMismatch = err
		}
	}

	if lastMismatch != nil {
		return nil, lastMismatch
	}
	return nil, fmt.Errorf("TTS synthesis failed: no compatible resource for voices %v", speakers)
}

func (c *VolcengineTTSClient) synthesizeWith(
	ctx context.Context,
	req *speechmodel.TTSRequest,
	appKey, accessKey, speaker, encoding, resourceID string,
) (*speechmodel.TTSResponse, error) {
	connectID := uuid.New().String()

	header := http.Header{}
	header.Set("X-Api-App-Key", appKey)
	header.Set("X-Api-Access-Key", accessKey)
	header.Set("X-Api-Resource-Id", resourceID)
	header.Set("X-Api-Connect-Id", connectID)

	endpoint := strings.TrimSpace(c.config.Endpoint)
	if endpoint == "" {
		endpoint = volcengineEndpoint
	}

	conn, resp, err := c.dialer.DialContext(ctx, endpoint, header)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to TTS WebSocket: %w", err)
	}
	defer conn.Close()
	// 读阻塞时也要响应 ctx 取消
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	if resp != nil {
		if logid := resp.Header.Get("X-Tt-Logid"); logid != "" {
			c.logger.Debug("connected", zap.String("logid", logid))
		}
	}

	payload, err := json.Marshal(c.buildRequest(req, speaker, encoding))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal TTS request: %w", err)
	}
	compressed, err := compressPayload(payload, GzipCompression)
	if err != nil {
		return nil, err
	}
	frame, err := NewClientRequest(compressed, GzipCompression).MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("failed to encode TTS frame: %w", err)
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		return nil, fmt.Errorf("failed to send TTS request: %w", err)
	}

	var (
		audio    bytes.Buffer
		reqID    string
		duration int64
	)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("failed to read TTS response: %w", err)
		}

		msg, err := ParseFrame(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode TTS frame: %w", err)
		}

		body, err := decompressPayload(msg.Payload, msg.Header.CompressionMethod)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress TTS payload: %w", err)
		}

		finished := msg.IsLast()
		switch msg.Header.MessageType {
		case ErrorMessage:
			text := string(body)
			if strings.Contains(text, errResourceMismatch.Error()) {
				return nil, fmt.Errorf("%w: %s", errResourceMismatch, text)
			}
			return nil, fmt.Errorf("TTS error %d: %s", msg.ErrorCode, text)

		case AudioOnlyServerResponse:
			audio.Write(body)

		case FullServerResponse:
			if msg.hasEvent() && msg.EventType == EventTypeSessionFinished {
				finished = true
			}
			if len(body) == 0 {
				break
			}
			var server ttsServerMessage
			if err := json.Unmarshal(body, &server); err != nil {
				c.logger.Warn("unparseable server payload", zap.Error(err))
				break
			}
			if server.Code != 0 && server.Code != 3000 && server.Code != 20000000 {
				if strings.Contains(server.Message, errResourceMismatch.Error()) {
					return nil, fmt.Errorf("%w: %s", errResourceMismatch, server.Message)
				}
				return nil, fmt.Errorf("TTS API error %d: %s", server.Code, server.Message)
			}
			if server.ReqID != "" {
				reqID = server.ReqID
			}
			if server.Addition.Duration != "" {
				if parsed, err := strconv.ParseInt(server.Addition.Duration, 10, 64); err == nil {
					duration = parsed
				}
			}
			if server.Data != "" {
				chunk, err := base64.StdEncoding.DecodeString(server.Data)
				if err != nil {
					return nil, fmt.Errorf("failed to decode base64 audio chunk: %w", err)
				}
				audio.Write(chunk)
			}
			if server.Sequence < 0 {
				finished = true
			}

		default:
			c.logger.Debug("unexpected frame type", zap.Uint8("type", uint8(msg.Header.MessageType)))
		}

		if finished {
			if audio.Len() == 0 {
				return nil, fmt.Errorf("TTS audio is empty")
			}
			if reqID == "" {
				reqID = connectID
			}
			return &speechmodel.TTSResponse{
				AudioData: audio.Bytes(),
				Format:    encoding,
				Provider:  volcengineProvider,
				Duration:  duration,
				RequestID: reqID,
				CreatedAt: time.Now(),
			}, nil
		}
	}
}

// buildRequest 构建符合火山引擎API格式的TTS请求
func (c *VolcengineTTSClient) buildRequest(req *speechmodel.TTSRequest, speaker, encoding string) *volcengineTTSRequest {
	ttsReq := &volcengineTTSRequest{}
	ttsReq.User.UID = uuid.New().String()
	ttsReq.ReqParams.Speaker = speaker
	ttsReq.ReqParams.Text = req.Text
	ttsReq.ReqParams.AudioParams.Format = encoding
	ttsReq.ReqParams.AudioParams.SampleRate = 24000

	// speech_rate / loudness_rate 取值 [-50,100]，0 为原速
	if speed := c.config.Speed; speed > 0 && speed != 1 {
		ttsReq.ReqParams.AudioParams.SpeechRate = ratioToRate(speed)
	}
	if volume := c.config.Volume; volume > 0 && volume != 1 {
		ttsReq.ReqParams.AudioParams.LoudnessRate = ratioToRate(volume)
	}

	if enable, name, scale := EmotionParameters(speaker, req.Emotion); enable {
		ttsReq.ReqParams.AudioParams.Emotion = name
		ttsReq.ReqParams.AudioParams.EmotionScale = scale
	}

	additions, err := json.Marshal(map[string]any{"disable_markdown_filter": false})
	if err == nil {
		ttsReq.ReqParams.Additions = string(additions)
	}
	return ttsReq
}

func ratioToRate(ratio float32) int {
	rate := int((ratio - 1) * 100)
	if rate < -50 {
		rate = -50
	}
	if rate > 100 {
		rate = 100
	}
	return rate
}

func resolveResourceCandidates(voice string) []string {
	const (
		defaultResource = "volc.service_type.10029"
		megaResource    = "volc.megatts.default"
		seedResource    = "seed-tts-2.0"
	)

	voice = strings.TrimSpace(voice)
	if strings.HasPrefix(voice, "S_") {
		return []string{megaResource}
	}

	normalized := strings.ToLower(voice)
	for _, hint := range []string{"bigtts", "seed", "megatts", "uranus", "venus", "jupiter", "mars"} {
		if strings.Contains(normalized, hint) {
			return []string{seedResource, defaultResource}
		}
	}
	return []string{defaultResource, seedResource}
}

// resolveSpeakerCandidates 返回去重后的候选声音，请求声音优先于配置声音。
func resolveSpeakerCandidates(requested, configured string) []string {
	const englishDefault = "en_female_skye_emo_v2_mars_bigtts"

	var candidates []string
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		for _, existing := range candidates {
			if strings.EqualFold(existing, s) {
				return
			}
		}
		candidates = append(candidates, s)
	}

	add(requested)
	add(configured)
	add(englishDefault)
	return candidates
}
