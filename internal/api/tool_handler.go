package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	app_errors "news-agent/internal/errors"
	"news-agent/internal/interfaces"
)

// maxToolParamsBytes bounds a tool call body; news_summarize takes at most 50 articles.
const maxToolParamsBytes = 1 << 20

// ToolHandler serves the tool listing and tool calls.
type ToolHandler struct {
	service interfaces.ToolService
}

func NewToolHandler(svc interfaces.ToolService) *ToolHandler {
	return &ToolHandler{service: svc}
}

// HandleListTools godoc
// @Summary      List tools
// @Description  Returns every tool with its JSON-schema parameters.
// @Tags         Tools
// @Produce      json
// @Success      200  {object}  service.ToolCatalog
// @Router       /v1/tools [get]
func (h *ToolHandler) HandleListTools(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.service.List())
}

// HandleExecuteTool godoc
// @Summary      Run a tool
// @Description  Runs google_search, google_news_search or news_summarize with the JSON parameters in the body.
// @Tags         Tools
// @Accept       json
// @Produce      json
// @Param        name    path      string  true  "Tool name"
// @Param        params  body      object  false  "Tool parameters"
// @Success      200     {object}  service.ToolResult
// @Failure      400     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Failure      502     {object}  ErrorResponse
// @Failure      503     {object}  ErrorResponse
// @Router       /v1/tools/{name} [post]
func (h *ToolHandler) HandleExecuteTool(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxToolParamsBytes+1))
	if err != nil {
		respondWithError(w, fmt.Errorf("%w: could not read request body", app_errors.ErrValidation))
		return
	}
	if len(body) > maxToolParamsBytes {
		respondWithError(w, fmt.Errorf("%w: tool parameters exceed %d bytes", app_errors.ErrValidation, maxToolParamsBytes))
		return
	}

	result, err := h.service.Execute(r.Context(), chi.URLParam(r, "name"), json.RawMessage(body))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}
