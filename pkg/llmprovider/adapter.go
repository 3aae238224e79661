package llmprovider

import (
	"context"
	"strings"

	"codeguard/pkg/deepseek"
	"codeguard/pkg/gemini"
	"codeguard/pkg/qwen"
)

// GeminiAdapter adapts the Gemini client to the Provider interface
type GeminiAdapter struct {
	client gemini.IGemini
}

// NewGeminiAdapter wraps a Gemini client as a Provider
func NewGeminiAdapter(client gemini.IGemini) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

func (a *GeminiAdapter) Complete(ctx context.Context, req *Request) (*Response, error) {
	resp, err := a.client.GenerateContent(ctx, &gemini.Request{
		System:      req.System,
		Prompt:      req.Prompt,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	return &Response{
		Text:         resp.Text,
		ProviderName: a.Name(),
		ModelName:    a.client.Model(),
	}, nil
}

func (a *GeminiAdapter) Name() string {
	return "gemini"
}

func (a *GeminiAdapter) Model() string {
	return a.client.Model()
}

// DeepSeekAdapter adapts the DeepSeek client to the Provider interface
type DeepSeekAdapter struct {
	client deepseek.IDeepSeek
}

// NewDeepSeekAdapter wraps a DeepSeek client as a Provider
func NewDeepSeekAdapter(client deepseek.IDeepSeek) *DeepSeekAdapter {
	return &DeepSeekAdapter{client: client}
}

func (a *DeepSeekAdapter) Complete(ctx context.Context, req *Request) (*Response, error) {
	messages := make([]deepseek.Message, 0, 2)
	if req.System != "" {
		messages = append(messages, deepseek.Message{Role: "system", Content: req.System})
	}
	messages = append(messages, deepseek.Message{Role: "user", Content: req.Prompt})

	resp, err := a.client.GenerateContent(ctx, &deepseek.Request{
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, ErrAllProvidersFailed
	}

	return &Response{
		Text:         resp.Choices[0].Message.Content,
		ProviderName: a.Name(),
		ModelName:    a.client.Model(),
	}, nil
}

func (a *DeepSeekAdapter) Name() string {
	return "deepseek"
}

func (a *DeepSeekAdapter) Model() string {
	return a.client.Model()
}

// QwenAdapter adapts the Qwen client to the Provider interface
type QwenAdapter struct {
	client qwen.IQwen
}

// NewQwenAdapter wraps a Qwen client as a Provider
func NewQwenAdapter(client qwen.IQwen) *QwenAdapter {
	return &QwenAdapter{client: client}
}

func (a *QwenAdapter) Complete(ctx context.Context, req *Request) (*Response, error) {
	qReq := &qwen.Request{
		Messages: []qwen.Content{
			{Role: "user", Parts: []qwen.Part{{Text: req.Prompt}}},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.System != "" {
		qReq.SystemInstruction = &qwen.Content{
			Parts: []qwen.Part{{Text: req.System}},
		}
	}

	resp, err := a.client.GenerateContent(ctx, qReq)
	if err != nil {
		return nil, err
	}

	var text strings.Builder
	for _, part := range resp.Content.Parts {
		text.WriteString(part.Text)
	}

	return &Response{
		Text:         text.String(),
		ProviderName: a.Name(),
		ModelName:    a.client.Model(),
	}, nil
}

func (a *QwenAdapter) Name() string {
	return "qwen"
}

func (a *QwenAdapter) Model() string {
	return a.client.Model()
}
