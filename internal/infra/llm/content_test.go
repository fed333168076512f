package llm

import (
	"strings"
	"testing"
)

var (
	textDoc  = Document{ID: "f1", Name: "lease.txt", MIMEType: "text/plain", Text: "The tenant shall..."}
	imageDoc = Document{ID: "f2", Name: "scan.png", MIMEType: "image/png", Data: "aW1hZ2UtYnl0ZXM="}
	emptyDoc = Document{ID: "f3", Name: "broken.bin", MIMEType: "application/octet-stream"}
)

func TestDocumentParts_TextBecomesDelimitedBlock(t *testing.T) {
	t.Parallel()

	parts := DocumentParts([]Document{textDoc})
	if len(parts) != 1 {
		t.Fatalf("parts = %d, want 1", len(parts))
	}
	if !strings.Contains(parts[0].Text, "--- START OF FILE: lease.txt ---") {
		t.Errorf("missing start delimiter: %q", parts[0].Text)
	}
	if !strings.Contains(parts[0].Text, "--- END OF FILE: lease.txt ---") {
		t.Errorf("missing end delimiter: %q", parts[0].Text)
	}
	if !strings.Contains(parts[0].Text, textDoc.Text) {
		t.Error("document text not embedded")
	}
}

// Capability split, rich side: an image becomes an inline binary attachment.
func TestDocumentParts_ImageBecomesInlineBlob(t *testing.T) {
	t.Parallel()

	parts := DocumentParts([]Document{imageDoc})
	if len(parts) != 1 {
		t.Fatalf("parts = %d, want 1", len(parts))
	}
	blob := parts[0].Inline
	if blob == nil {
		t.Fatal("image should render as an inline blob")
	}
	if blob.MIMEType != "image/png" || blob.Data != imageDoc.Data {
		t.Errorf("blob = %+v, payload not preserved", blob)
	}
}

func TestDocumentParts_InvalidItemDroppedNotErrored(t *testing.T) {
	t.Parallel()

	parts := DocumentParts([]Document{textDoc, emptyDoc, imageDoc})
	if len(parts) != 2 {
		t.Errorf("parts = %d, want 2 (invalid item silently dropped)", len(parts))
	}
}

func TestDocumentParts_PreservesArrivalOrder(t *testing.T) {
	t.Parallel()

	parts := DocumentParts([]Document{imageDoc, textDoc})
	if parts[0].Inline == nil {
		t.Error("first part should be the image")
	}
	if parts[1].Inline != nil {
		t.Error("second part should be the text block")
	}
}

// Capability split, text-only side: no image data, an explicit omission note.
func TestFlattenContent_ImageInvisibleButNoted(t *testing.T) {
	t.Parallel()

	full := FlattenContent("Summarize", nil, []Document{imageDoc})
	if strings.Contains(full, imageDoc.Data) {
		t.Error("flattened rendering must not contain image data")
	}
	if !strings.Contains(full, "[Image file: scan.png - image content not available in text mode]") {
		t.Errorf("flattened rendering should note the omitted image: %q", full)
	}
}

func TestFlattenContent_DocumentContextSection(t *testing.T) {
	t.Parallel()

	full := FlattenContent("Summarize this contract", nil, []Document{textDoc})
	if !strings.HasPrefix(full, "Summarize this contract") {
		t.Error("prompt should lead the flattened rendering")
	}
	if !strings.Contains(full, "Document context:") {
		t.Error("missing Document context section")
	}
	if !strings.Contains(full, "--- FILE: lease.txt ---") {
		t.Error("missing flattened file delimiter")
	}
}

func TestFlattenContent_URLsAppendedAsReferenceText(t *testing.T) {
	t.Parallel()

	full := FlattenContent("Question", []string{"https://a.example", "https://b.example"}, nil)
	if !strings.Contains(full, "Relevant URLs for reference: https://a.example, https://b.example") {
		t.Errorf("URLs should be appended as plain reference text: %q", full)
	}
}

func TestFlattenContent_BarePrompt(t *testing.T) {
	t.Parallel()

	if got := FlattenContent("Just a question", nil, nil); got != "Just a question" {
		t.Errorf("bare prompt should pass through unchanged, got %q", got)
	}
}
