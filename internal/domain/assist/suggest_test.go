package assist

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/batasnatin/lexgate/internal/infra/llm"
)

// stubProvider scripts one adapter for service-level tests.
type stubProvider struct {
	name  string
	text  string
	err   error
	calls int
}

func (p *stubProvider) Invoke(_ context.Context, _ llm.Invocation) (*llm.Result, error) {
	p.calls++
	if p.err != nil {
		return nil, &llm.ProviderError{Provider: p.name, Err: p.err}
	}
	return &llm.Result{Text: p.text, Provider: p.name}, nil
}

func (p *stubProvider) Name() string      { return p.name }
func (p *stubProvider) RichContent() bool { return false }
func (p *stubProvider) Configured() bool  { return true }

func failoverOf(providers ...llm.Provider) *llm.Failover {
	return llm.NewFailover(providers, nil)
}

// --- parseSuggestions ---

func TestParseSuggestions_FencedJSON(t *testing.T) {
	t.Parallel()

	got := parseSuggestions("```json\n{\"suggestions\":[\"a\",\"b\"]}\n```")
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("parseSuggestions = %v, want [a b]", got)
	}
}

func TestParseSuggestions_FenceWithoutLanguageTag(t *testing.T) {
	t.Parallel()

	got := parseSuggestions("```\n{\"suggestions\":[\"a\"]}\n```")
	if !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("parseSuggestions = %v, want [a]", got)
	}
}

func TestParseSuggestions_BareJSON(t *testing.T) {
	t.Parallel()

	got := parseSuggestions(`{"suggestions":["What are the key legal issues?"]}`)
	if len(got) != 1 {
		t.Errorf("parseSuggestions = %v, want one entry", got)
	}
}

func TestParseSuggestions_NotJSON(t *testing.T) {
	t.Parallel()

	if got := parseSuggestions("not json"); len(got) != 0 {
		t.Errorf("parseSuggestions = %v, want empty", got)
	}
}

func TestParseSuggestions_MissingKeyOrWrongType(t *testing.T) {
	t.Parallel()

	if got := parseSuggestions(`{"other":1}`); len(got) != 0 {
		t.Errorf("missing key: got %v, want empty", got)
	}
	if got := parseSuggestions(`{"suggestions":"nope"}`); len(got) != 0 {
		t.Errorf("non-array value: got %v, want empty", got)
	}
}

func TestParseSuggestions_TruncatesToFour(t *testing.T) {
	t.Parallel()

	got := parseSuggestions(`{"suggestions":["1","2","3","4","5","6"]}`)
	if len(got) != 4 {
		t.Errorf("len = %d, want 4", len(got))
	}
}

func TestParseSuggestions_FiltersNonStrings(t *testing.T) {
	t.Parallel()

	got := parseSuggestions(`{"suggestions":["a",2,null,"b"]}`)
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("parseSuggestions = %v, want only strings kept", got)
	}
}

// --- SuggestionService ---

func TestSuggest_UsesFirstProviderWithContent(t *testing.T) {
	t.Parallel()

	primary := &stubProvider{name: "gemini", text: `{"suggestions":["Q1","Q2","Q3"]}`}
	secondary := &stubProvider{name: "deepseek", text: `{"suggestions":["never"]}`}
	svc := NewSuggestionService(failoverOf(primary, secondary))

	got := svc.Suggest(context.Background(), SuggestInput{UserID: "u1"})
	if !reflect.DeepEqual(got, []string{"Q1", "Q2", "Q3"}) {
		t.Errorf("Suggest = %v", got)
	}
	if secondary.calls != 0 {
		t.Error("secondary provider should not run when primary parses")
	}
}

func TestSuggest_EmptyResultAdvancesToNextProvider(t *testing.T) {
	t.Parallel()

	primary := &stubProvider{name: "gemini", text: "no json here"}
	secondary := &stubProvider{name: "deepseek", text: `{"suggestions":["From secondary"]}`}
	svc := NewSuggestionService(failoverOf(primary, secondary))

	got := svc.Suggest(context.Background(), SuggestInput{UserID: "u1"})
	if !reflect.DeepEqual(got, []string{"From secondary"}) {
		t.Errorf("Suggest = %v, want secondary's parsed list", got)
	}
}

/// Total failure never errors: the caller always gets the static set.
func TestSuggest_TotalFailureReturnsStaticFallback(t *testing.T) {
	t.Parallel()

	svc := NewSuggestionService(failoverOf(
		&stubProvider{name: "gemini", err: errors.New("upstream 503")},
		&stubProvider{name: "deepseek", text: "garbage"},
		&stubProvider{name: "openai", err: errors.New("timeout")},
	))

	got := svc.Suggest(context.Background(), SuggestInput{UserID: "u1"})
	want := []string{
		"What are the key legal issues in this document?",
		"Summarize the main arguments.",
		"Identify all parties involved.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest = %v, want the static fallback set", got)
	}
}
