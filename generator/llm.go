package generator

import (
	"context"
	"errors"
)

// ErrEmptyResponse 表示模型返回了空内容。
var ErrEmptyResponse = errors.New("model returned empty response")

// LLMClient 抽象大模型客户端，便于替换/Mock。
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// ImageClient 抽象图片生成客户端。返回 nil, nil 表示模型没有产出图片，这不是错误。
type ImageClient interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

// LLMSettings 提供给具体实现的基础配置。
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// ImageSettings configures the image endpoint.
type ImageSettings struct {
	Model   string
	Size    string
	APIKey  string
	BaseURL string
}
