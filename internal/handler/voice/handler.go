package voice

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zhouzirui/neurosync/backend/internal/model/reply"
	chatService "github.com/zhouzirui/neurosync/backend/internal/service/chat"
	"github.com/zhouzirui/neurosync/backend/pkg/utils"
)

const (
	msgTranscriptRequired = "Text from voice transcription is required"
	msgAnalyzeFailed      = "Failed to process voice input"
	msgTextRequired       = "Text is required"
	msgSpeakFailed        = "Failed to generate audio"
)

// Handler 语音相关的 HTTP 处理器
type Handler struct {
	chatSvc *chatService.Service
	logger  *zap.Logger
}

// New 创建语音处理器
func New(chatSvc *chatService.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{chatSvc: chatSvc, logger: logger.Named("handler.voice")}
}

// RegisterRoutes 注册 /voice 下的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/analyze", h.handleAnalyze)
	r.Post("/speak", h.handleSpeak)
}

// handleAnalyze 对语音转写文本生成回复，并尽力附带语音。
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	defer utils.RecoverError(w, h.logger, msgAnalyzeFailed)

	var payload reply.VoiceRequest
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, msgTranscriptRequired)
		return
	}

	resp, err := h.chatSvc.ReplyWithAudio(r.Context(), payload.Text, payload.Language)
	if err != nil {
		if errors.Is(err, chatService.ErrTextRequired) {
			utils.RespondError(w, http.StatusBadRequest, msgTranscriptRequired)
			return
		}
		h.logger.Error("analyze voice input failed", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, msgAnalyzeFailed)
		return
	}

	utils.RespondJSON(w, http.StatusOK, resp)
}

// handleSpeak 直接合成文本。与 analyze 不同，合成失败即请求失败。
func (h *Handler) handleSpeak(w http.ResponseWriter, r *http.Request) {
	defer utils.RecoverError(w, h.logger, msgSpeakFailed)

	var payload reply.VoiceRequest
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, msgTextRequired)
		return
	}

	url, err := h.chatSvc.Speak(r.Context(), payload.Text, payload.Language)
	if err != nil {
		if errors.Is(err, chatService.ErrTextRequired) {
			utils.RespondError(w, http.StatusBadRequest, msgTextRequired)
			return
		}
		h.logger.Error("generate audio failed", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, msgSpeakFailed)
		return
	}

	utils.RespondJSON(w, http.StatusOK, reply.SpeakResponse{AudioURL: url})
}
