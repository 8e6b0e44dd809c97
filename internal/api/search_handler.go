package api

import (
	"net/http"
	"strconv"

	"news-agent/internal/interfaces"
	"news-agent/internal/service"
)

// SearchHandler serves the raw search tools and the setup status report.
type SearchHandler struct {
	search interfaces.SearchService
	status interfaces.StatusService
}

func NewSearchHandler(searchSvc interfaces.SearchService, statusSvc interfaces.StatusService) *SearchHandler {
	return &SearchHandler{search: searchSvc, status: statusSvc}
}

// HandleSearch godoc
// @Summary      Web search
// @Description  Runs a Serper web search and returns normalized results plus a markdown rendering.
// @Tags         Search
// @Accept       json
// @Produce      json
// @Param        query  body      service.SearchRequest  true  "Search query"
// @Success      200    {object}  service.SearchResponse
// @Failure      400    {object}  ErrorResponse
// @Failure      502    {object}  ErrorResponse
// @Failure      503    {object}  ErrorResponse
// @Router       /v1/search [post]
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var req service.SearchRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	resp, err := h.search.Search(r.Context(), &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// HandleSearchNews godoc
// @Summary      News search
// @Description  Runs a Serper news search and returns normalized results plus a markdown rendering.
// @Tags         Search
// @Accept       json
// @Produce      json
// @Param        query  body      service.SearchRequest  true  "Search query"
// @Success      200    {object}  service.SearchResponse
// @Failure      400    {object}  ErrorResponse
// @Failure      502    {object}  ErrorResponse
// @Failure      503    {object}  ErrorResponse
// @Router       /v1/search/news [post]
func (h *SearchHandler) HandleSearchNews(w http.ResponseWriter, r *http.Request) {
	var req service.SearchRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	resp, err := h.search.SearchNews(r.Context(), &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// HandleStatus godoc
// @Summary      Setup status
// @Description  Reports which providers are configured. With probe=true each configured provider is contacted once.
// @Tags         Status
// @Produce      json
// @Param        probe  query     bool  false  "Run live connection tests"
// @Success      200    {object}  service.Status
// @Router       /v1/status [get]
func (h *SearchHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	probe, _ := strconv.ParseBool(r.URL.Query().Get("probe"))
	respondWithJSON(w, http.StatusOK, h.status.Status(r.Context(), probe))
}
