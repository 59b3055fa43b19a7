// Package metrics 定义服务的 Prometheus 指标。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EmotionClassifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emotion_classifications_total",
			Help: "Total number of emotion classifications by source and label",
		},
		[]string{"source", "label"},
	)

	EmotionRemoteFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emotion_remote_failures_total",
			Help: "Remote classifier failures that fell back to local scoring",
		},
		[]string{"reason"},
	)

	EmotionRemoteDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "emotion_remote_duration_seconds",
			Help:    "Latency of remote classifier attempts in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
	)

	SpeechSyntheses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "speech_syntheses_total",
			Help: "Speech synthesis attempts by provider and result",
		},
		[]string{"provider", "result"},
	)

	SpeechCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "speech_cache_lookups_total",
			Help: "Synthesized audio cache lookups by result",
		},
		[]string{"result"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status code",
		},
		[]string{"route", "status"},
	)
)
