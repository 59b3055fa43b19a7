package emotion

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

// LLMClassifier 使用大模型对单条文本做情绪分类，输出与 Hugging Face 模型相同的词表。
type LLMClassifier struct {
	runnable compose.Runnable[map[string]any, *schema.Message]
}

// NewLLMClassifier 编译 prompt -> chat model 链。chatModel 可重用现有的大模型实例。
func NewLLMClassifier(ctx context.Context, chatModel model.ChatModel) (*LLMClassifier, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("chat model is required")
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(llmSystemPrompt),
		schema.UserMessage(llmUserPrompt),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile emotion classifier chain: %w", err)
	}
	return &LLMClassifier{runnable: runnable}, nil
}

// Predict 调用模型并解析其 JSON 输出。
func (c *LLMClassifier) Predict(ctx context.Context, text string) (Prediction, error) {
	msg, err := c.runnable.Invoke(ctx, map[string]any{"text": strings.TrimSpace(text)})
	if err != nil {
		return Prediction{}, fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return Prediction{}, fmt.Errorf("%w: empty model output", ErrMalformedPrediction)
	}
	return parseLLMOutput(msg.Content)
}

// parseLLMOutput 提取模型回复中的第一个 JSON 对象。
func parseLLMOutput(content string) (Prediction, error) {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return Prediction{}, fmt.Errorf("%w: missing json object", ErrMalformedPrediction)
	}

	var prediction Prediction
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), &prediction); err != nil {
		return Prediction{}, fmt.Errorf("%w: %w", ErrMalformedPrediction, err)
	}
	if strings.TrimSpace(prediction.Label) == "" {
		return Prediction{}, fmt.Errorf("%w: missing label", ErrMalformedPrediction)
	}
	return prediction, nil
}

const llmSystemPrompt = "你是一名情绪分类器。阅读用户的一句话，判断其主要情绪。\n输出要求：只返回一个 JSON 对象，字段如下：label (必须是 joy/sadness/anger/fear/surprise/disgust/neutral 之一)、score (0~1 之间的小数，表示把握程度)。不得输出多余文本。"

const llmUserPrompt = "用户输入：\n{text}\n\n请给出 JSON。"
