package ai

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
	msgTextRequired  = "Text message is required"
	msgProcessFailed = "Failed to process message"
)

// Handler 文本对话的 HTTP 处理器
type Handler struct {
	chatSvc *chatService.Service
	ws      *WebSocketHandler
	logger  *zap.Logger
}

// New 创建处理器
func New(chatSvc *chatService.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("handler.ai")
	return &Handler{
		chatSvc: chatSvc,
		ws:      NewWebSocketHandler(chatSvc, logger),
		logger:  logger,
	}
}

// RegisterRoutes 注册 /ai 下的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/message", h.handleMessage)
	r.Get("/ws", h.ws.handleWebSocket)
}

func (h *Handler) handleMessage(w http.ResponseWriter, r *http.Request) {
	defer utils.RecoverError(w, h.logger, msgProcessFailed)

	var payload reply.MessageRequest
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, msgTextRequired)
		return
	}

	resp, err := h.chatSvc.Reply(r.Context(), payload.Text)
	if err != nil {
		if errors.Is(err, chatService.ErrTextRequired) {
			utils.RespondError(w, http.StatusBadRequest, msgTextRequired)
			return
		}
		h.logger.Error("process message failed", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, msgProcessFailed)
		return
	}

	utils.RespondJSON(w, http.StatusOK, resp)
}
