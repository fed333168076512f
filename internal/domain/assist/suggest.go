package assist

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"regexp"
	"strings"

	"github.com/batasnatin/lexgate/internal/infra/config"
	"github.com/batasnatin/lexgate/internal/infra/llm"
)

const maxSuggestions = 4

// errEmptySuggestions marks a provider response that parsed to nothing, so
// the orchestrator advances instead of returning an empty list.
var errEmptySuggestions = errors.New("returned empty suggestions")

// codeFenceRe matches a whole response wrapped in one fenced code block with
// an optional language tag.
var codeFenceRe = regexp.MustCompile("(?s)^```(\\w*)?\\s*\n?(.*?)\n?\\s*```$")

// SuggestInput is one authenticated suggestion request. There is no prompt:
// the model is asked about the supplied material itself.
type SuggestInput struct {
	UserID    string
	URLs      []string
	Documents []llm.Document
}

// SuggestionService generates quick-start questions for uploaded material.
type SuggestionService struct {
	failover Orchestrator
}

// NewSuggestionService creates a SuggestionService.
func NewSuggestionService(failover Orchestrator) *SuggestionService {
	return &SuggestionService{failover: failover}
}

// Suggest returns up to four quick-start questions. It never fails: when
// every provider errors or parses to nothing, the static fallback set is
// returned instead.
func (s *SuggestionService) Suggest(ctx context.Context, in SuggestInput) []string {
	var suggestions []string
	accept := func(r *llm.Result) error {
		parsed := parseSuggestions(r.Text)
		if len(parsed) == 0 {
			return errEmptySuggestions
		}
		suggestions = parsed
		return nil
	}

	_, err := s.failover.ExecuteWith(ctx, in.UserID, config.EndpointSuggestions, llm.Invocation{
		Prompt:            suggestionPrompt,
		URLs:              in.URLs,
		Documents:         in.Documents,
		SystemInstruction: LegalExpertInstruction,
		MaxOutputTokens:   suggestionMaxOutputTokens,
	}, accept)
	if err != nil {
		log.Printf("assist: suggestions for user %s fell back to static set: %v", in.UserID, err)
		return append([]string(nil), fallbackSuggestions...)
	}

	return suggestions
}

// parseSuggestions recovers a suggestion list from free-form model output.
// Tolerates a fenced code block around the JSON; on any parse trouble it
// returns an empty slice, never an error. Elements are filtered to strings
// and truncated to four. Content quality is the model's concern, not ours.
func parseSuggestions(raw string) []string {
	jsonStr := strings.TrimSpace(raw)
	if m := codeFenceRe.FindStringSubmatch(jsonStr); m != nil {
		jsonStr = strings.TrimSpace(m[2])
	}

	var envelope struct {
		Suggestions []any `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &envelope); err != nil || envelope.Suggestions == nil {
		return []string{}
	}

	out := make([]string, 0, maxSuggestions)
	for _, item := range envelope.Suggestions {
		s, ok := item.(string)
		if !ok {
			continue
		}
		out = append(out, s)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
