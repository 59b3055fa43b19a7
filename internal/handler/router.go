package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/zhouzirui/neurosync/backend/internal/handler/ai"
	"github.com/zhouzirui/neurosync/backend/internal/handler/voice"
	middlewarePkg "github.com/zhouzirui/neurosync/backend/internal/middleware"
	chatService "github.com/zhouzirui/neurosync/backend/internal/service/chat"
	"github.com/zhouzirui/neurosync/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(chatSvc *chatService.Service, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.AccessLog(logger))
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("NeuroSync backend server is running!"))
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	r.Handle("/metrics", promhttp.Handler())

	aiHandler := ai.New(chatSvc, logger)
	voiceHandler := voice.New(chatSvc, logger)

	r.Route("/ai", aiHandler.RegisterRoutes)
	r.Route("/voice", voiceHandler.RegisterRoutes)

	return r
}
