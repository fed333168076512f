package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"google.golang.org/genai"
)

const geminiModel = "gemini-2.5-flash"

// GeminiProvider is the rich-capability adapter: it sends documents as
// structured multimodal parts and lets the backend fetch referenced URLs
// itself via the URL-context tool.
type GeminiProvider struct {
	apiKey  string
	timeout time.Duration
}

// NewGeminiProvider creates the Gemini adapter. An empty apiKey leaves the
// adapter unconfigured; Invoke then fails fast without a network call.
func NewGeminiProvider(apiKey string, timeout time.Duration) *GeminiProvider {
	return &GeminiProvider{apiKey: apiKey, timeout: timeout}
}

func (p *GeminiProvider) Name() string      { return "gemini" }
func (p *GeminiProvider) RichContent() bool { return true }
func (p *GeminiProvider) Configured() bool  { return keyConfigured(p.apiKey) }

// geminiSafetySettings blocks medium-and-above content in the four policy
// categories. Identical for every request.
func geminiSafetySettings() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}
	settings := make([]*genai.SafetySetting, len(categories))
	for i, cat := range categories {
		settings[i] = &genai.SafetySetting{
			Category:  cat,
			Threshold: genai.HarmBlockThresholdBlockMediumAndAbove,
		}
	}
	return settings
}

// Invoke performs one generateContent call with the rich rendering.
func (p *GeminiProvider) Invoke(ctx context.Context, inv Invocation) (*Result, error) {
	if !p.Configured() {
		return nil, &ProviderError{Provider: p.Name(), Err: ErrNotConfigured}
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &ProviderError{Provider: p.Name(), Err: fmt.Errorf("create client: %w", err)}
	}

	parts := []*genai.Part{genai.NewPartFromText(inv.Prompt)}
	richParts, err := geminiParts(inv.Documents)
	if err != nil {
		return nil, &ProviderError{Provider: p.Name(), Err: err}
	}
	parts = append(parts, richParts...)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(inv.SystemInstruction, genai.RoleUser),
		SafetySettings:    geminiSafetySettings(),
	}
	if inv.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = int32(inv.MaxOutputTokens)
	}
	// The URL-context tool is only enabled when there are URLs to fetch.
	if len(inv.URLs) > 0 {
		cfg.Tools = []*genai.Tool{{URLContext: &genai.URLContext{}}}
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	resp, err := client.Models.GenerateContent(ctx, geminiModel, contents, cfg)
	if err != nil {
		return nil, &ProviderError{Provider: p.Name(), Err: err}
	}

	result := &Result{Text: resp.Text(), Provider: p.Name()}
	result.URLRetrievals = geminiURLRetrievals(resp)
	return result, nil
}

// geminiParts converts documents to native parts via the shared rich
// rendering. Inline image data arrives base64-encoded on the wire and the
// SDK wants raw bytes.
func geminiParts(docs []Document) ([]*genai.Part, error) {
	parts := make([]*genai.Part, 0, len(docs))
	for _, part := range DocumentParts(docs) {
		if part.Inline == nil {
			parts = append(parts, genai.NewPartFromText(part.Text))
			continue
		}
		raw, err := base64.StdEncoding.DecodeString(part.Inline.Data)
		if err != nil {
			return nil, fmt.Errorf("decode inline image: %w", err)
		}
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: part.Inline.MIMEType, Data: raw},
		})
	}
	return parts, nil
}

// geminiURLRetrievals extracts per-URL fetch provenance from the first
// candidate, when the backend reports it.
func geminiURLRetrievals(resp *genai.GenerateContentResponse) []URLRetrieval {
	if len(resp.Candidates) == 0 {
		return nil
	}
	meta := resp.Candidates[0].URLContextMetadata
	if meta == nil || len(meta.URLMetadata) == 0 {
		return nil
	}
	out := make([]URLRetrieval, 0, len(meta.URLMetadata))
	for _, m := range meta.URLMetadata {
		out = append(out, URLRetrieval{
			URL:    m.RetrievedURL,
			Status: string(m.URLRetrievalStatus),
		})
	}
	return out
}
