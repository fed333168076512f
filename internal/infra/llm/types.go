// Package llm defines the provider-agnostic LLM abstraction for the gateway:
// one logical invocation shape, one result shape, and adapters that translate
// between them and each upstream's native API.
package llm

// Document is one uploaded reference item, extracted client-side.
// Exactly one of Text or Data is expected to be populated; an item with
// neither is invalid and is silently dropped during rendering.
type Document struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MIMEType string `json:"mimeType"`
	// Data is the raw base64 payload, required when MIMEType is image/*.
	Data string `json:"data,omitempty"`
	// Text is the extracted plain text for textual documents.
	Text string `json:"text,omitempty"`
}

// HasText reports whether the document carries extracted text.
func (d Document) HasText() bool { return d.Text != "" }

// IsImage reports whether the document carries an inline image payload.
func (d Document) IsImage() bool {
	return d.Data != "" && len(d.MIMEType) > 6 && d.MIMEType[:6] == "image/"
}

// Invocation is the single logical request every adapter receives.
type Invocation struct {
	Prompt            string
	URLs              []string
	Documents         []Document
	SystemInstruction string
	MaxOutputTokens   int
}

// URLRetrieval reports the outcome of one autonomous URL fetch performed by a
// rich-capability provider.
type URLRetrieval struct {
	URL    string `json:"url"`
	Status string `json:"status"`
}

// Result is the normalized success shape. Text may be empty: an empty
// completion is a valid-but-unhelpful success, not an error.
type Result struct {
	Text          string
	URLRetrievals []URLRetrieval
	Provider      string
}
