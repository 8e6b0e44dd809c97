package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"news-agent/internal/interfaces"
	"news-agent/internal/model"
	"news-agent/internal/service"
)

// ConversationHandler serves conversation management and chat turns.
type ConversationHandler struct {
	service interfaces.ConversationService
}

func NewConversationHandler(svc interfaces.ConversationService) *ConversationHandler {
	return &ConversationHandler{service: svc}
}

// CreateConversation godoc
// @Summary      Create a conversation
// @Description  Starts an empty conversation. The model defaults to the catalog default.
// @Tags         Conversations
// @Accept       json
// @Produce      json
// @Param        conversation  body      service.CreateConversationRequest  false  "Title and model"
// @Success      201           {object}  model.Conversation
// @Failure      400           {object}  ErrorResponse
// @Router       /v1/conversations [post]
func (h *ConversationHandler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	var req service.CreateConversationRequest
	if r.ContentLength != 0 {
		if err := decodeAndValidate(r, &req); err != nil {
			respondWithError(w, err)
			return
		}
	}
	conv, err := h.service.CreateConversation(r.Context(), &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, conv)
}

// ListConversations godoc
// @Summary      List conversations
// @Description  Returns every live conversation, most recently active first.
// @Tags         Conversations
// @Produce      json
// @Success      200  {array}   model.Conversation
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/conversations [get]
func (h *ConversationHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	convs, err := h.service.ListConversations(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, convs)
}

// GetConversation godoc
// @Summary      Get a conversation
// @Description  Returns the conversation with all its messages, including usage and sources.
// @Tags         Conversations
// @Produce      json
// @Param        conversationID  path      string  true  "Conversation ID"
// @Success      200             {object}  model.FullConversation
// @Failure      404             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID} [get]
func (h *ConversationHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	conv, err := h.service.GetConversation(r.Context(), chi.URLParam(r, "conversationID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, conv)
}

// DeleteConversation godoc
// @Summary      Delete a conversation
// @Tags         Conversations
// @Produce      json
// @Param        conversationID  path      string  true  "Conversation ID"
// @Success      200             {object}  StatusResponse
// @Failure      404             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID} [delete]
func (h *ConversationHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteConversation(r.Context(), chi.URLParam(r, "conversationID")); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// UpdateModel godoc
// @Summary      Switch the conversation model
// @Description  The new model answers every following message.
// @Tags         Conversations
// @Accept       json
// @Produce      json
// @Param        conversationID  path      string              true  "Conversation ID"
// @Param        model           body      UpdateModelRequest  true  "Model name from the catalog"
// @Success      200             {object}  StatusResponse
// @Failure      400             {object}  ErrorResponse
// @Failure      404             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID}/model [put]
func (h *ConversationHandler) UpdateModel(w http.ResponseWriter, r *http.Request) {
	var req UpdateModelRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.service.UpdateConversationModel(r.Context(), chi.URLParam(r, "conversationID"), req.Model); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// ClearMessages godoc
// @Summary      Clear a conversation
// @Description  Removes every message and its usage stats; the conversation itself stays.
// @Tags         Conversations
// @Produce      json
// @Param        conversationID  path      string  true  "Conversation ID"
// @Success      200             {object}  StatusResponse
// @Failure      404             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID}/messages [delete]
func (h *ConversationHandler) ClearMessages(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearConversation(r.Context(), chi.URLParam(r, "conversationID")); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// SendMessage godoc
// @Summary      Ask a question
// @Description  Searches the news, analyzes the results and returns the stored assistant message.
// @Tags         Conversations
// @Accept       json
// @Produce      json
// @Param        conversationID  path      string          true  "Conversation ID"
// @Param        message         body      MessageRequest  true  "User message"
// @Success      200             {object}  model.ChatMessage
// @Failure      400             {object}  ErrorResponse
// @Failure      404             {object}  ErrorResponse
// @Failure      409             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID}/messages [post]
func (h *ConversationHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	msg, err := h.service.HandleMessage(r.Context(), chi.URLParam(r, "conversationID"), req.Content)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, msg)
}

// StreamMessage godoc
// @Summary      Ask a question (streaming)
// @Description  Streams the answer as Server-Sent Events. The final event has done=true and carries sources and usage.
// @Tags         Conversations
// @Accept       json
// @Produce      text/event-stream
// @Param        conversationID  path      string                true  "Conversation ID"
// @Param        message         body      MessageRequest        true  "User message"
// @Success      200             {object}  model.StreamResponse  "Stream of answer fragments"
// @Failure      400             {object}  ErrorResponse         "Sent as a stream error event"
// @Router       /v1/conversations/{conversationID}/messages/stream [post]
func (h *ConversationHandler) StreamMessage(w http.ResponseWriter, r *http.Request) {
	setStreamHeaders(w)

	conversationID := chi.URLParam(r, "conversationID")
	var req MessageRequest
	if err := decodeAndValidate(r, &req); err != nil {
		sendStreamError(w, err.Error())
		return
	}

	streamChan := make(chan model.StreamResponse)
	go h.service.HandleMessageStream(r.Context(), conversationID, req.Content, streamChan)

	clientGone := false
	for chunk := range streamChan {
		if clientGone {
			continue
		}
		if r.Context().Err() != nil {
			slog.Info("Client disconnected during message stream.", "conversation_id", conversationID)
			clientGone = true
			continue
		}
		if err := writeStreamEvent(w, chunk); err != nil {
			slog.Warn("Could not write to message stream, client likely disconnected.", "error", err)
			clientGone = true
		}
	}

	slog.Info("Finished streaming response.", "conversation_id", conversationID)
}
