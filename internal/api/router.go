package api

import (
	"net/http"
	"time"

	// Registers the generated API definitions with swaggo.
	_ "news-agent/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter creates and configures a new chi router with all the application's routes.
func NewRouter(conversationHandler *ConversationHandler, modelHandler *ModelHandler, searchHandler *SearchHandler, toolHandler *ToolHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// Plain JSON requests must not hang forever.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(120 * time.Second))

			r.Get("/status", searchHandler.HandleStatus)
			r.Get("/samples", modelHandler.HandleListSamples)

			r.Get("/models", modelHandler.HandleListModels)
			r.Get("/models/*", modelHandler.HandleGetModel)

			r.Post("/search", searchHandler.HandleSearch)
			r.Post("/search/news", searchHandler.HandleSearchNews)

			r.Get("/tools", toolHandler.HandleListTools)
			r.Post("/tools/{name}", toolHandler.HandleExecuteTool)

			r.Post("/conversations", conversationHandler.CreateConversation)
			r.Get("/conversations", conversationHandler.ListConversations)
			r.Get("/conversations/{conversationID}", conversationHandler.GetConversation)
			r.Delete("/conversations/{conversationID}", conversationHandler.DeleteConversation)
			r.Put("/conversations/{conversationID}/model", conversationHandler.UpdateModel)
			r.Delete("/conversations/{conversationID}/messages", conversationHandler.ClearMessages)
		})

		// Chat turns wait for the conversation's turn and then for search plus
		// completion. They end with the client's context, not a server deadline.
		r.Group(func(r chi.Router) {
			r.Post("/conversations/{conversationID}/messages", conversationHandler.SendMessage)
			r.Post("/conversations/{conversationID}/messages/stream", conversationHandler.StreamMessage)
		})
	})

	return r
}
