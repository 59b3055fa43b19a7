package emotion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/samber/lo"
)

const maxPredictionBody = 1 << 20

// HuggingFaceConfig 描述 Inference API 的接入参数。
type HuggingFaceConfig struct {
	URL        string
	Token      string
	HTTPClient *http.Client
}

// HuggingFaceClient 调用托管的文本情绪分类模型。
type HuggingFaceClient struct {
	url    string
	token  string
	client *http.Client
}

// NewHuggingFaceClient creates a client; the caller's context bounds every request.
func NewHuggingFaceClient(cfg HuggingFaceConfig) *HuggingFaceClient {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	return &HuggingFaceClient{
		url:    strings.TrimSpace(cfg.URL),
		token:  strings.TrimSpace(cfg.Token),
		client: client,
	}
}

// Predict 发送 {"inputs": text} 并返回得分最高的标签。
func (c *HuggingFaceClient) Predict(ctx context.Context, text string) (Prediction, error) {
	body, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return Prediction{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return Prediction{}, fmt.Errorf("%w: create request: %w", ErrRemoteUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Prediction{}, fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxPredictionBody))
	if err != nil {
		return Prediction{}, fmt.Errorf("%w: read body: %w", ErrRemoteUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Prediction{}, fmt.Errorf("%w: status %d: %s", ErrRemoteUnavailable, resp.StatusCode, truncate(string(raw), 200))
	}

	predictions, err := decodePredictions(raw)
	if err != nil {
		return Prediction{}, err
	}

	return lo.MaxBy(predictions, func(a, b Prediction) bool {
		return a.Score > b.Score
	}), nil
}

// decodePredictions 接受 [[{label,score}...]] 与 [{label,score}...] 两种形态，只取第一组。
func decodePredictions(raw []byte) ([]Prediction, error) {
	var nested [][]Prediction
	if err := json.Unmarshal(raw, &nested); err == nil {
		if len(nested) == 0 || len(nested[0]) == 0 {
			return nil, fmt.Errorf("%w: empty prediction list", ErrMalformedPrediction)
		}
		return nested[0], nil
	}

	var flat []Prediction
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPrediction, err)
	}
	if len(flat) == 0 {
		return nil, fmt.Errorf("%w: empty prediction list", ErrMalformedPrediction)
	}
	return flat, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
