package server

import "net/http"

// NewMux wires the API routes behind CORS.
func NewMux(api *API) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/upload-data", api.HandleUpload)
	mux.HandleFunc("GET /api/chart-types", api.HandleChartTypes)
	mux.HandleFunc("POST /api/check-compatibility", api.HandleCheckCompatibility)
	mux.HandleFunc("POST /api/suggest-chart", api.HandleSuggestChart)
	mux.HandleFunc("POST /api/generate-chart", api.HandleGenerateChart)
	mux.HandleFunc("POST /api/analyze-image", api.HandleAnalyzeImage)
	mux.HandleFunc("GET /api/health", api.HandleHealth)

	return CORS(mux)
}
