package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-agent/internal/api"
	app_errors "news-agent/internal/errors"
	"news-agent/internal/interfaces/mocks"
	"news-agent/internal/llm"
	"news-agent/internal/service"
)

func setupModelHandler(t *testing.T) (*api.ModelHandler, *mocks.MockModelService) {
	mockModelSvc := mocks.NewMockModelService(t)
	return api.NewModelHandler(mockModelSvc), mockModelSvc
}

func TestModelHandler_HandleListModels(t *testing.T) {
	handler, mockSvc := setupModelHandler(t)
	expected := &service.ModelList{Default: "gpt-4o", Models: []llm.ModelInfo{{Name: "gpt-4o", Provider: "OpenAI"}}}
	mockSvc.On("List").Return(expected).Once()

	req := httptest.NewRequest(http.MethodGet, "/v1/models", nil)
	rr := httptest.NewRecorder()
	handler.HandleListModels(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var got service.ModelList
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, *expected, got)
}

func TestModelHandler_HandleGetModel(t *testing.T) {
	t.Run("Success - name with a slash", func(t *testing.T) {
		handler, mockSvc := setupModelHandler(t)
		name := "meta-llama/Meta-Llama-3.1-8B-Instruct"
		mockSvc.On("Get", name).Return(&llm.ModelInfo{Name: name, Provider: "Meta"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/v1/models/"+name, nil)
		req = addChiURLParams(req, map[string]string{"*": name})
		rr := httptest.NewRecorder()
		handler.HandleGetModel(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"provider":"Meta"`)
	})

	t.Run("Failure - unknown model", func(t *testing.T) {
		handler, mockSvc := setupModelHandler(t)
		mockSvc.On("Get", "gpt-2").Return(nil, app_errors.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/v1/models/gpt-2", nil)
		req = addChiURLParams(req, map[string]string{"*": "gpt-2"})
		rr := httptest.NewRecorder()
		handler.HandleGetModel(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestModelHandler_HandleListSamples(t *testing.T) {
	handler, _ := setupModelHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/samples", nil)
	rr := httptest.NewRecorder()
	handler.HandleListSamples(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var got []service.SampleQuery
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got, 3)
}
