package utils

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// ErrorResponse 错误响应体
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondJSON 发送JSON响应
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

// RespondError 发送错误响应
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

// RecoverError 必须以 defer 方式调用：捕获处理器内的 panic，记录详情并返回固定的 500 文案。
func RecoverError(w http.ResponseWriter, logger *zap.Logger, message string) {
	r := recover()
	if r == nil {
		return
	}
	if logger == nil {
		logger = zap.L()
	}
	logger.Error("handler panic", zap.Any("panic", r), zap.Stack("stack"))
	RespondError(w, http.StatusInternalServerError, message)
}
