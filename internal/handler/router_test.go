package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	analysis "github.com/zhouzirui/neurosync/backend/internal/analysis/emotion"
	"github.com/zhouzirui/neurosync/backend/internal/handler"
	"github.com/zhouzirui/neurosync/backend/internal/mocks"
	speechmodel "github.com/zhouzirui/neurosync/backend/internal/model/speech"
	"github.com/zhouzirui/neurosync/backend/internal/service/chat"
	"github.com/zhouzirui/neurosync/backend/internal/service/emotion"
	"github.com/zhouzirui/neurosync/backend/internal/service/speech"
)

func setupRouter(t *testing.T, synth speech.Synthesizer) http.Handler {
	t.Helper()
	lexicon, err := analysis.NewLexicon()
	require.NoError(t, err)
	scorer, err := analysis.NewLexiconScorer()
	require.NoError(t, err)

	logger := zaptest.NewLogger(t)
	classifier := emotion.NewService(nil, analysis.NewClassifier(lexicon, scorer, logger), emotion.Config{}, logger)
	chatSvc := chat.NewService(classifier, speech.NewService(synth, time.Second, logger), logger)
	return handler.NewRouter(chatSvc, logger)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRootAndHealth(t *testing.T) {
	r := setupRouter(t, nil)

	rec := do(t, r, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "NeuroSync backend server is running!", rec.Body.String())

	rec = do(t, r, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())

	rec = do(t, r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAIMessage(t *testing.T) {
	r := setupRouter(t, nil)

	rec := do(t, r, http.MethodPost, "/ai/message", `{"text":"I am so happy and excited today!"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Message     string   `json:"message"`
		Emotion     string   `json:"emotion"`
		Confidence  float64  `json:"confidence"`
		Source      string   `json:"source"`
		Suggestions []string `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Happy", body.Emotion)
	require.Equal(t, "local", body.Source)
	require.InDelta(t, 0.8, body.Confidence, 1e-9)
	require.Len(t, body.Suggestions, 3)
	require.True(t, strings.HasSuffix(body.Message, "How else can I help you today?"))
}

func TestAIMessageRequiresText(t *testing.T) {
	r := setupRouter(t, nil)

	for _, body := range []string{`{}`, `{"text":""}`, `{"text":12}`, `not json`} {
		rec := do(t, r, http.MethodPost, "/ai/message", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		require.JSONEq(t, `{"error":"Text message is required"}`, rec.Body.String(), body)
	}
}

func TestVoiceAnalyzeWithFailingSynthesis(t *testing.T) {
	ctrl := gomock.NewController(t)
	synth := mocks.NewMockSynthesizer(ctrl)
	synth.EXPECT().Provider().Return("fake").AnyTimes()
	synth.EXPECT().Synthesize(gomock.Any(), gomock.Any()).Return(nil, errors.New("quota exceeded"))

	r := setupRouter(t, synth)
	rec := do(t, r, http.MethodPost, "/voice/analyze", `{"text":"I feel so sad and lonely"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body, "audioUrl")
	require.Nil(t, body["audioUrl"])
	require.Equal(t, "Sad", body["emotion"])
}

func TestVoiceAnalyzeWithAudio(t *testing.T) {
	ctrl := gomock.NewController(t)
	synth := mocks.NewMockSynthesizer(ctrl)
	synth.EXPECT().Provider().Return("fake").AnyTimes()
	synth.EXPECT().Synthesize(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *speechmodel.TTSRequest) (*speechmodel.TTSResponse, error) {
			require.Equal(t, "es", req.Language)
			return &speechmodel.TTSResponse{AudioData: []byte("mp3"), Format: "mp3"}, nil
		})

	r := setupRouter(t, synth)
	rec := do(t, r, http.MethodPost, "/voice/analyze", `{"text":"I am furious","language":"es"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "data:audio/mpeg;base64,bXAz", body["audioUrl"])
}

func TestVoiceAnalyzeRequiresText(t *testing.T) {
	r := setupRouter(t, nil)

	rec := do(t, r, http.MethodPost, "/voice/analyze", `{"language":"en"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"Text from voice transcription is required"}`, rec.Body.String())
}

func TestVoiceSpeak(t *testing.T) {
	ctrl := gomock.NewController(t)
	synth := mocks.NewMockSynthesizer(ctrl)
	synth.EXPECT().Provider().Return("fake").AnyTimes()
	synth.EXPECT().Synthesize(gomock.Any(), gomock.Any()).
		Return(&speechmodel.TTSResponse{AudioData: []byte{0xFF}, Format: "mp3"}, nil)

	r := setupRouter(t, synth)
	rec := do(t, r, http.MethodPost, "/voice/speak", `{"text":"Hello there","language":"en"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"audioUrl":"data:audio/mpeg;base64,/w=="}`, rec.Body.String())
}

func TestVoiceSpeakErrors(t *testing.T) {
	r := setupRouter(t, nil)

	rec := do(t, r, http.MethodPost, "/voice/speak", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"Text is required"}`, rec.Body.String())

	// 未配置 TTS 时合成必然失败
	rec = do(t, r, http.MethodPost, "/voice/speak", `{"text":"Hello there"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":"Failed to generate audio"}`, rec.Body.String())
}

func TestVoiceAnalyzeAcceptsLongLanguageTag(t *testing.T) {
	ctrl := gomock.NewController(t)
	synth := mocks.NewMockSynthesizer(ctrl)
	synth.EXPECT().Provider().Return("fake").AnyTimes()
	synth.EXPECT().Synthesize(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *speechmodel.TTSRequest) (*speechmodel.TTSResponse, error) {
			require.Equal(t, "zh-Hant-TW-x-private", req.Language)
			return &speechmodel.TTSResponse{AudioData: []byte("mp3"), Format: "mp3"}, nil
		})

	r := setupRouter(t, synth)
	rec := do(t, r, http.MethodPost, "/voice/analyze", `{"text":"I feel so sad and lonely","language":"zh-Hant-TW-x-private"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "data:audio/mpeg;base64,bXAz", body["audioUrl"])
}
