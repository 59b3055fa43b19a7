package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/zhouzirui/neurosync/backend/internal/model/reply"
	chatService "github.com/zhouzirui/neurosync/backend/internal/service/chat"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	writeWait  = 10 * time.Second
)

// WebSocketHandler 在单个连接上连续处理多轮对话
type WebSocketHandler struct {
	chatSvc  *chatService.Service
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewWebSocketHandler 创建WebSocket处理器
func NewWebSocketHandler(chatSvc *chatService.Service, logger *zap.Logger) *WebSocketHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebSocketHandler{
		chatSvc: chatSvc,
		logger:  logger.Named("ws"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// TextMessage 客户端发送的一轮文本；Audio 为 true 时回复附带合成语音。
type TextMessage struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Audio    bool   `json:"audio"`
}

type outgoingMessage struct {
	Type         string `json:"type"`
	ConnectionID string `json:"connectionId,omitempty"`
	Data         any    `json:"data,omitempty"`
	Timestamp    int64  `json:"timestamp"`
}

// wsConn 串行化写操作；gorilla 连接不支持并发写
type wsConn struct {
	id     string
	conn   *websocket.Conn
	mu     sync.Mutex
	logger *zap.Logger
}

func (c *wsConn) write(msg outgoingMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	msg.ConnectionID = c.id
	msg.Timestamp = time.Now().Unix()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(msg); err != nil {
		c.logger.Debug("write failed", zap.Error(err))
	}
}

func (c *wsConn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (c *wsConn) sendError(message string) {
	c.write(outgoingMessage{Type: "error", Data: map[string]string{"error": message}})
}

// handleWebSocket 处理WebSocket连接
func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	c := &wsConn{id: id, conn: conn, logger: h.logger.With(zap.String("connection", id))}
	c.logger.Info("connection opened")
	defer c.logger.Info("connection closed")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go h.pingLoop(ctx, c)

	c.write(outgoingMessage{Type: "connected"})

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("read error", zap.Error(err))
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		h.handleMessage(ctx, c, &msg)
	}
}

func (h *WebSocketHandler) handleMessage(ctx context.Context, c *wsConn, msg *inboundMessage) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("message panic", zap.Any("panic", r))
			c.sendError(msgProcessFailed)
		}
	}()

	if msg.Type != "message" {
		c.sendError("unsupported message type: " + msg.Type)
		return
	}

	var text TextMessage
	if len(msg.Data) == 0 || json.Unmarshal(msg.Data, &text) != nil {
		c.sendError(msgTextRequired)
		return
	}

	var (
		out reply.VoiceReply
		err error
	)
	if text.Audio {
		out, err = h.chatSvc.ReplyWithAudio(ctx, text.Text, text.Language)
	} else {
		out.ChatReply, err = h.chatSvc.Reply(ctx, text.Text)
	}
	if err != nil {
		if errors.Is(err, chatService.ErrTextRequired) {
			c.sendError(msgTextRequired)
			return
		}
		c.logger.Error("process message failed", zap.Error(err))
		c.sendError(msgProcessFailed)
		return
	}

	c.write(outgoingMessage{Type: "reply", Data: out})
}

// pingLoop 定期发送ping消息
func (h *WebSocketHandler) pingLoop(ctx context.Context, c *wsConn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.ping(); err != nil {
				return
			}
		}
	}
}
