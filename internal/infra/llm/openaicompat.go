package llm

import (
	"context"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAICompatProvider is the text-only adapter for backends speaking the
// OpenAI chat-completions wire protocol. It is instantiated twice: once for
// OpenAI itself and once for DeepSeek behind a custom base URL. Documents are
// flattened into the prompt and URLs are appended as plain reference text,
// since these backends neither accept binary parts nor fetch URLs.
type OpenAICompatProvider struct {
	name    string
	apiKey  string
	baseURL string
	model   string
	timeout time.Duration
}

// NewOpenAIProvider creates the OpenAI adapter (gpt-4o-mini).
func NewOpenAIProvider(apiKey string, timeout time.Duration) *OpenAICompatProvider {
	return &OpenAICompatProvider{
		name:    "openai",
		apiKey:  apiKey,
		model:   "gpt-4o-mini",
		timeout: timeout,
	}
}

// NewDeepSeekProvider creates the DeepSeek adapter (deepseek-chat), which
// exposes the OpenAI wire protocol at its own base URL.
func NewDeepSeekProvider(apiKey string, timeout time.Duration) *OpenAICompatProvider {
	return &OpenAICompatProvider{
		name:    "deepseek",
		apiKey:  apiKey,
		baseURL: "https://api.deepseek.com",
		model:   "deepseek-chat",
		timeout: timeout,
	}
}

func (p *OpenAICompatProvider) Name() string      { return p.name }
func (p *OpenAICompatProvider) RichContent() bool { return false }
func (p *OpenAICompatProvider) Configured() bool  { return keyConfigured(p.apiKey) }

// Invoke performs one chat completion with the flattened rendering.
func (p *OpenAICompatProvider) Invoke(ctx context.Context, inv Invocation) (*Result, error) {
	if !p.Configured() {
		return nil, &ProviderError{Provider: p.name, Err: ErrNotConfigured}
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	opts := []option.RequestOption{option.WithAPIKey(p.apiKey)}
	if p.baseURL != "" {
		opts = append(opts, option.WithBaseURL(p.baseURL))
	}
	client := openai.NewClient(opts...)

	full := FlattenContent(inv.Prompt, inv.URLs, inv.Documents)
	params := openai.ChatCompletionNewParams{
		Model: p.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(inv.SystemInstruction),
			openai.UserMessage(full),
		},
	}
	if inv.MaxOutputTokens > 0 {
		params.MaxTokens = openai.Int(int64(inv.MaxOutputTokens))
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, &ProviderError{Provider: p.name, Err: err}
	}

	// An empty choice list or empty content is a valid (if unhelpful) success.
	text := ""
	if len(resp.Choices) > 0 {
		text = resp.Choices[0].Message.Content
	}
	return &Result{Text: text, Provider: p.name}, nil
}
