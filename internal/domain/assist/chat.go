package assist

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/batasnatin/lexgate/internal/infra/config"
	"github.com/batasnatin/lexgate/internal/infra/llm"
)

// ErrInvalidPrompt rejects a missing or blank prompt before any provider
// or quota side effects beyond what already happened.
var ErrInvalidPrompt = errors.New("missing or invalid prompt")

// ErrAllProvidersFailed is the terminal chat failure surfaced to the API
// layer. Deliberately detail-free: the per-provider reasons live only in
// logs and the request log.
var ErrAllProvidersFailed = errors.New("all providers failed")

// Orchestrator is the failover surface the services depend on.
type Orchestrator interface {
	Execute(ctx context.Context, userID, endpoint string, inv llm.Invocation) (*llm.Result, error)
	ExecuteWith(ctx context.Context, userID, endpoint string, inv llm.Invocation, accept llm.AcceptFunc) (*llm.Result, error)
}

// ChatInput is one authenticated chat request.
type ChatInput struct {
	UserID    string
	Prompt    string
	URLs      []string
	Documents []llm.Document
}

// ChatResult is the normalized chat response.
type ChatResult struct {
	Text          string
	URLRetrievals []llm.URLRetrieval
	Provider      string
}

// ChatService answers legal questions through the failover orchestrator.
type ChatService struct {
	failover Orchestrator
}

// NewChatService creates a ChatService.
func NewChatService(failover Orchestrator) *ChatService {
	return &ChatService{failover: failover}
}

// Chat validates the prompt and drives the provider chain. An empty
// completion text is a valid success; only provider exhaustion is an error.
func (s *ChatService) Chat(ctx context.Context, in ChatInput) (*ChatResult, error) {
	if strings.TrimSpace(in.Prompt) == "" {
		return nil, ErrInvalidPrompt
	}

	result, err := s.failover.Execute(ctx, in.UserID, config.EndpointChat, llm.Invocation{
		Prompt:            in.Prompt,
		URLs:              in.URLs,
		Documents:         in.Documents,
		SystemInstruction: LegalExpertInstruction,
		MaxOutputTokens:   chatMaxOutputTokens,
	})
	if err != nil {
		// Detailed reasons go to operational logging only.
		log.Printf("assist: chat for user %s: %v", in.UserID, err)
		return nil, ErrAllProvidersFailed
	}

	return &ChatResult{
		Text:          result.Text,
		URLRetrievals: result.URLRetrievals,
		Provider:      result.Provider,
	}, nil
}
