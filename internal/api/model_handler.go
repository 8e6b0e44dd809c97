package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"news-agent/internal/interfaces"
	"news-agent/internal/service"
)

// ModelHandler serves the model catalog and the quick-start samples.
type ModelHandler struct {
	service interfaces.ModelService
}

func NewModelHandler(svc interfaces.ModelService) *ModelHandler {
	return &ModelHandler{service: svc}
}

// HandleListModels godoc
// @Summary      List models
// @Description  Returns the model catalog in display order and the default model.
// @Tags         Models
// @Produce      json
// @Success      200  {object}  service.ModelList
// @Router       /v1/models [get]
func (h *ModelHandler) HandleListModels(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.service.List())
}

// HandleGetModel godoc
// @Summary      Show model info
// @Description  Returns provider, description, speed and cost of one model.
// @Tags         Models
// @Produce      json
// @Param        name  path      string  true  "Model name"
// @Success      200   {object}  llm.ModelInfo
// @Failure      404   {object}  ErrorResponse
// @Router       /v1/models/{name} [get]
func (h *ModelHandler) HandleGetModel(w http.ResponseWriter, r *http.Request) {
	// Names such as meta-llama/Meta-Llama-3.1-8B-Instruct contain a slash.
	info, err := h.service.Get(chi.URLParam(r, "*"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, info)
}

// HandleListSamples godoc
// @Summary      Sample queries
// @Description  Returns the quick-start queries shown to new users.
// @Tags         Models
// @Produce      json
// @Success      200  {array}  service.SampleQuery
// @Router       /v1/samples [get]
func (h *ModelHandler) HandleListSamples(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, service.SampleQueries())
}
