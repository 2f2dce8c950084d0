package server

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/plotkit-org/plotkit/engine"
	"github.com/plotkit-org/plotkit/schema"
	"github.com/plotkit-org/plotkit/translator"
)

// ============================================================================
// HTTP HANDLERS — upload, compatibility, rendering, AI endpoints
// ============================================================================
// All responses are JSON; rendered charts travel as base64 PNG inside
// the JSON body so browser clients can drop them straight into an
// <img src="data:..."> without a second request.
//
// Engine error kinds map onto statuses:
//   ValidationError, UnknownChartTypeError          → 400
//   ColumnNotFoundError, IncompatibleDatasetError   → 422
//   RenderError                                     → 500
// ============================================================================

// API bundles the handlers' shared dependencies.
type API struct {
	Store      *Store
	Translator translator.Translator
	Config     *Config
}

// NewAPI wires the handler set.
func NewAPI(store *Store, tr translator.Translator, cfg *Config) *API {
	return &API{Store: store, Translator: tr, Config: cfg}
}

// ----------------------------------------------------------------------------
// POST /api/upload-data
// ----------------------------------------------------------------------------

// HandleUpload accepts a CSV upload, infers column types, and registers
// a dataset session.
func (a *API) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.Config.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation", "missing file field: "+err.Error())
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".csv" {
		writeError(w, http.StatusBadRequest, "validation", "only .csv uploads are accepted")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation", "failed to read upload: "+err.Error())
		return
	}

	ds, err := schema.ParseCSV(data, header.Filename)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation", err.Error())
		return
	}
	columns := schema.Infer(ds)
	session := a.Store.Put(header.Filename, ds, columns)

	log.Printf("📁 PlotKit: uploaded %s (%d rows, %d columns) → %s",
		header.Filename, session.Rows, len(columns), session.Handle)
	writeJSON(w, http.StatusOK, session)
}

// ----------------------------------------------------------------------------
// GET /api/chart-types
// ----------------------------------------------------------------------------

// HandleChartTypes lists the renderer's chart vocabulary.
func (a *API) HandleChartTypes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"chartTypes": engine.ChartTypes(),
	})
}

// ----------------------------------------------------------------------------
// POST /api/check-compatibility
// ----------------------------------------------------------------------------

type compatibilityRequest struct {
	DatasetID string `json:"datasetId"`
	ChartType string `json:"chartType"`
}

// HandleCheckCompatibility runs the matcher for one chart type against
// an uploaded dataset's columns.
func (a *API) HandleCheckCompatibility(w http.ResponseWriter, r *http.Request) {
	var req compatibilityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	session, ok := a.session(w, req.DatasetID)
	if !ok {
		return
	}
	result := engine.Match(req.ChartType, session.Columns)
	writeJSON(w, http.StatusOK, map[string]any{
		"chartType":     req.ChartType,
		"compatibility": result,
	})
}

// ----------------------------------------------------------------------------
// POST /api/suggest-chart
// ----------------------------------------------------------------------------

type suggestRequest struct {
	DatasetID string `json:"datasetId"`
	Query     string `json:"query"`
}

// HandleSuggestChart asks the translator for a chart type matching the
// user's description, then attaches the matcher's binding for it.
func (a *API) HandleSuggestChart(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "validation", "query is required")
		return
	}
	session, ok := a.session(w, req.DatasetID)
	if !ok {
		return
	}

	suggestion, err := a.Translator.SuggestChart(r.Context(), req.Query, session.Columns)
	if err != nil {
		writeError(w, http.StatusBadGateway, "translator", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"suggestion":    suggestion,
		"compatibility": engine.Match(suggestion.ChartType, session.Columns),
	})
}

// ----------------------------------------------------------------------------
// POST /api/generate-chart
// ----------------------------------------------------------------------------

type generateRequest struct {
	DatasetID string         `json:"datasetId"`
	ChartType string         `json:"chartType"`
	Binding   engine.Binding `json:"binding"`
	Title     string         `json:"title"`
	Width     float64        `json:"width"`  // plot units
	Height    float64        `json:"height"` // plot units
}

// HandleGenerateChart renders a chart for an uploaded dataset. An empty
// binding falls back to the matcher's suggestion for the chart type.
func (a *API) HandleGenerateChart(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	session, ok := a.session(w, req.DatasetID)
	if !ok {
		return
	}

	binding := req.Binding
	if binding == (engine.Binding{}) {
		result := engine.Match(req.ChartType, session.Columns)
		if !result.Compatible {
			writeEngineError(w, &engine.IncompatibleDatasetError{
				ChartType: req.ChartType,
				Reason:    result.Reason,
				Suggested: result.Suggested,
			})
			return
		}
		binding = result.Suggested
	}

	var opts []engine.Option
	if req.Title != "" {
		opts = append(opts, engine.WithTitle(req.Title))
	}
	if req.Width > 0 && req.Height > 0 {
		opts = append(opts, engine.WithSize(req.Width, req.Height))
	}

	key := renderKey(session.Handle, req.ChartType, binding, req.Width, req.Height, req.Title)
	png, cached := a.Store.CachedRender(key)
	if !cached {
		var err error
		png, err = engine.Render(req.ChartType, session.Dataset, binding, opts...)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		a.Store.PutRender(key, png)
	}

	log.Printf("📊 PlotKit: rendered %s for %s (%d bytes, cached=%v)",
		req.ChartType, session.Handle, len(png), cached)
	writeJSON(w, http.StatusOK, map[string]any{
		"chartType":   req.ChartType,
		"binding":     binding,
		"contentType": "image/png",
		"image":       base64.StdEncoding.EncodeToString(png),
	})
}

// ----------------------------------------------------------------------------
// POST /api/analyze-image
// ----------------------------------------------------------------------------

var imageMIMETypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// HandleAnalyzeImage recognizes the chart type in an uploaded image and
// returns reconstruction details including R code.
func (a *API) HandleAnalyzeImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.Config.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation", "missing file field: "+err.Error())
		return
	}
	defer file.Close()

	mimeType, ok := imageMIMETypes[strings.ToLower(filepath.Ext(header.Filename))]
	if !ok {
		writeError(w, http.StatusBadRequest, "validation", "only .png, .jpg, and .jpeg uploads are accepted")
		return
	}

	image, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation", "failed to read upload: "+err.Error())
		return
	}

	analysis, err := a.Translator.AnalyzeImage(r.Context(), image, mimeType)
	if err != nil {
		writeError(w, http.StatusBadGateway, "translator", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// ----------------------------------------------------------------------------
// GET /api/health
// ----------------------------------------------------------------------------

// HandleHealth reports liveness and the effective configuration.
func (a *API) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":           "healthy",
		"service":          "plotkit",
		"geminiConfigured": a.Config.GeminiAPIKey != "",
		"maxUploadBytes":   a.Config.MaxUploadBytes,
	})
}

// ----------------------------------------------------------------------------
// shared plumbing
// ----------------------------------------------------------------------------

// session resolves a dataset handle, writing a 404 when unknown.
func (a *API) session(w http.ResponseWriter, handle string) (*Session, bool) {
	if handle == "" {
		writeError(w, http.StatusBadRequest, "validation", "datasetId is required")
		return nil, false
	}
	session, ok := a.Store.Get(handle)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "unknown datasetId: "+handle)
		return nil, false
	}
	return session, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, map[string]string{"kind": kind, "error": msg})
}

// writeEngineError maps engine error kinds onto HTTP statuses.
func writeEngineError(w http.ResponseWriter, err error) {
	switch e := err.(type) {
	case *engine.ValidationError:
		writeError(w, http.StatusBadRequest, "validation", e.Error())
	case *engine.UnknownChartTypeError:
		writeError(w, http.StatusBadRequest, "unknown_chart_type", e.Error())
	case *engine.ColumnNotFoundError:
		writeError(w, http.StatusUnprocessableEntity, "column_not_found", e.Error())
	case *engine.IncompatibleDatasetError:
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"kind":             "incompatible_dataset",
			"error":            e.Error(),
			"suggestedBinding": e.Suggested,
		})
	case *engine.RenderError:
		writeError(w, http.StatusInternalServerError, "render", e.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
	}
}
