// Package assist implements the two user-facing flows of the gateway: legal
// chat and quick-start suggestion generation. Both drive the same failover
// orchestrator; the persona instruction is identical across providers so the
// assistant behaves consistently no matter which backend serves the request.
package assist

// LegalExpertInstruction is the shared system instruction. Every adapter
// receives exactly this text.
const LegalExpertInstruction = "You are a highly skilled legal expert specializing in jurisprudence, statutes, and laws. " +
	"Your name is BATASnatin. Analyze the provided documents and answer questions from a formal, legal perspective. " +
	"Prioritize accuracy and reference legal principles. When asked about your identity, present yourself as BATASnatin, " +
	"an AI legal assistant."

// suggestionPrompt asks the model for quick-start questions about the
// supplied material, as a bare JSON object.
const suggestionPrompt = `Based on the provided legal documents (from URLs and/or file uploads), provide 3-4 concise and actionable questions a legal professional might ask to explore them. These questions should be suitable as quick-start prompts. Return ONLY a JSON object with a key "suggestions" containing an array of these question strings. For example: {"suggestions": ["What are the key legal issues?", "Summarize the court's main argument.", "Identify all parties involved and their roles."]}

Note: Do not reference the file names or URLs in the suggestions. The suggestions should be about the content itself.`

// fallbackSuggestions is returned when every provider errors or comes back
// empty. Suggestions are a UX nicety, not a capability guarantee, so the
// endpoint never surfaces a failure.
var fallbackSuggestions = []string{
	"What are the key legal issues in this document?",
	"Summarize the main arguments.",
	"Identify all parties involved.",
}

// Token budgets per flow.
const (
	chatMaxOutputTokens       = 4096
	suggestionMaxOutputTokens = 1024
)
