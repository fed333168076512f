package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/batasnatin/lexgate/internal/domain/assist"
	"github.com/batasnatin/lexgate/internal/infra/llm"
)

// ChatService is the assist surface the handler depends on.
type ChatService interface {
	Chat(ctx context.Context, in assist.ChatInput) (*assist.ChatResult, error)
}

// ChatHandler serves POST /api/v1/assist/chat.
type ChatHandler struct {
	chatService ChatService
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(chatService ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type chatRequest struct {
	Prompt string         `json:"prompt"`
	URLs   []string       `json:"urls,omitempty"`
	Files  []llm.Document `json:"files,omitempty"`
}

type chatResponse struct {
	Text          string             `json:"text"`
	URLRetrievals []llm.URLRetrieval `json:"urlRetrievals,omitempty"`
	ProviderName  string             `json:"providerName"`
}

// Chat answers one legal question through the provider chain.
// 400 on a missing or blank prompt, 500 with a generic body when every
// provider failed. Upstream error detail never reaches the client.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.chatService.Chat(r.Context(), assist.ChatInput{
		UserID:    userID,
		Prompt:    req.Prompt,
		URLs:      req.URLs,
		Documents: req.Files,
	})
	switch {
	case errors.Is(err, assist.ErrInvalidPrompt):
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "all providers unavailable, try again later")
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Text:          result.Text,
		URLRetrievals: result.URLRetrievals,
		ProviderName:  result.Provider,
	})
}
