package llm

import "strings"

// Part is one element of the rich rendering: either a text block or an
// inline binary attachment. Rich-capability adapters translate Parts into
// their native multimodal request shape.
type Part struct {
	Text   string
	Inline *InlineBlob
}

// InlineBlob is a binary attachment (today always an image).
type InlineBlob struct {
	MIMEType string
	Data     string // base64, as received on the wire
}

// DocumentParts produces the rich rendering of docs, preserving arrival
// order: one delimited text block per textual document, one inline blob per
// image. Items with neither payload are dropped, not errored.
func DocumentParts(docs []Document) []Part {
	parts := make([]Part, 0, len(docs))
	for _, doc := range docs {
		switch {
		case doc.HasText():
			parts = append(parts, Part{
				Text: "--- START OF FILE: " + doc.Name + " ---\n" + doc.Text + "\n--- END OF FILE: " + doc.Name + " ---",
			})
		case doc.IsImage():
			parts = append(parts, Part{
				Inline: &InlineBlob{MIMEType: doc.MIMEType, Data: doc.Data},
			})
		}
		// neither text nor image: skip
	}
	return parts
}

// FlattenContent produces the text-only rendering: the prompt, a "Document
// context" section with every textual document, and a trailing reference list
// of raw URLs the backend cannot fetch itself. Images are invisible to
// text-only providers, so the model is told explicitly that one was omitted.
func FlattenContent(prompt string, urls []string, docs []Document) string {
	blocks := make([]string, 0, len(docs))
	for _, doc := range docs {
		switch {
		case doc.HasText():
			blocks = append(blocks, "--- FILE: "+doc.Name+" ---\n"+doc.Text+"\n--- END FILE ---")
		case doc.IsImage():
			blocks = append(blocks, "[Image file: "+doc.Name+" - image content not available in text mode]")
		}
	}

	full := prompt
	if len(blocks) > 0 {
		full += "\n\nDocument context:\n" + strings.Join(blocks, "\n\n")
	}
	if len(urls) > 0 {
		full += "\n\nRelevant URLs for reference: " + strings.Join(urls, ", ")
	}
	return full
}
