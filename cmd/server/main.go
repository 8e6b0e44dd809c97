package main

import (
	"os"

	"news-agent/internal/app"
)

// @title           News Agent API
// @version         1.0
// @description     Searches the news with Serper and analyzes the results with models served through Clarifai.
// @host            localhost:8000
// @BasePath        /api
func main() {
	os.Exit(app.Run())
}
