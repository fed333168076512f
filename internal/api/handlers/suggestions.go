package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/batasnatin/lexgate/internal/domain/assist"
	"github.com/batasnatin/lexgate/internal/infra/llm"
)

// SuggestionService is the assist surface the handler depends on.
type SuggestionService interface {
	Suggest(ctx context.Context, in assist.SuggestInput) []string
}

// SuggestionsHandler serves POST /api/v1/assist/suggestions.
type SuggestionsHandler struct {
	suggestionService SuggestionService
}

// NewSuggestionsHandler creates a SuggestionsHandler.
func NewSuggestionsHandler(suggestionService SuggestionService) *SuggestionsHandler {
	return &SuggestionsHandler{suggestionService: suggestionService}
}

type suggestionsRequest struct {
	URLs  []string       `json:"urls,omitempty"`
	Files []llm.Document `json:"files,omitempty"`
}

type suggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// Suggest returns quick-start questions for the supplied material. Provider
// trouble never surfaces here: the service falls back to a static set, so an
// authenticated, well-formed request always gets a 200.
func (h *SuggestionsHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var req suggestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	suggestions := h.suggestionService.Suggest(r.Context(), assist.SuggestInput{
		UserID:    userID,
		URLs:      req.URLs,
		Documents: req.Files,
	})

	writeJSON(w, http.StatusOK, suggestionsResponse{Suggestions: suggestions})
}
