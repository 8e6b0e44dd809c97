package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	app_errors "news-agent/internal/errors"
	"news-agent/internal/validation"
)

// Request and response DTOs shared by the handlers, plus helpers for writing
// JSON and SSE responses.

// ErrorResponse defines the standard JSON structure for error messages.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is returned by operations that have no resource to return.
type StatusResponse struct {
	Status string `json:"status"`
}

// MessageRequest is the body of a chat turn.
type MessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000" example:"What are the latest developments in AI?"`
}

// UpdateModelRequest switches the model of a conversation.
type UpdateModelRequest struct {
	Model string `json:"model" validate:"required,min=1,max=100" example:"gpt-4o-mini"`
}

// errorStatuses maps sentinel errors to a status code and the message shown
// to the client. An empty message means the error text itself is safe to show.
var errorStatuses = []struct {
	target  error
	code    int
	message string
}{
	{app_errors.ErrNotFound, http.StatusNotFound, "The requested resource was not found."},
	{app_errors.ErrValidation, http.StatusBadRequest, ""},
	{app_errors.ErrBusy, http.StatusConflict, "This conversation is still answering the previous message."},
	{app_errors.ErrNotConfigured, http.StatusServiceUnavailable, ""},
	{app_errors.ErrUpstream, http.StatusBadGateway, "The search or completion provider returned an error."},
}

// respondWithError writes the JSON error body for err. Unknown errors become
// a generic 500 so internals never leak.
func respondWithError(w http.ResponseWriter, err error) {
	code, message := http.StatusInternalServerError, "An unexpected internal server error occurred."
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			code, message = e.code, e.message
			if message == "" {
				message = err.Error()
			}
			break
		}
	}

	slog.Warn("Responding with error", "status_code", code, "client_message", message, "internal_error", err)
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

func setStreamHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

// sendStreamError writes an `event: error` frame so SSE clients can attach a
// dedicated listener.
func sendStreamError(w http.ResponseWriter, message string) {
	slog.Warn("Sending stream error to client", "message", message)
	if err := writeSSE(w, "error", ErrorResponse{Error: message}); err != nil {
		slog.Warn("Failed to write stream error, client might have disconnected", "error", err)
	}
}

// writeStreamEvent writes data as an unnamed SSE frame. A returned error
// means the client has gone away.
func writeStreamEvent(w http.ResponseWriter, data any) error {
	return writeSSE(w, "", data)
}

func writeSSE(w http.ResponseWriter, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		slog.Error("Failed to marshal stream data to JSON", "error", err)
		return nil
	}

	var frame string
	if event != "" {
		frame = "event: " + event + "\n"
	}
	if _, err := fmt.Fprintf(w, "%sdata: %s\n\n", frame, payload); err != nil {
		return fmt.Errorf("failed to write data to stream: %w", err)
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}

// decodeAndValidate reads a JSON body into dst and runs its validate tags.
func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request payload", app_errors.ErrValidation)
	}
	return validation.Struct(dst)
}
