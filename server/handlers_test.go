package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plotkit-org/plotkit/translator"
)

// ============================================================================
// HANDLER TESTS — full request flow against the placeholder translator
// ============================================================================

var salesCSV = `Region,Segment,Sales
North,Retail,120
South,Retail,80
North,Online,150
East,Online,90
`

func newTestAPI(t *testing.T) http.Handler {
	t.Helper()
	store, err := NewStore(8)
	require.NoError(t, err)
	cfg := &Config{
		Port:           ":0",
		MaxUploadBytes: defaultUploadBytes,
		CacheSize:      8,
	}
	return NewMux(NewAPI(store, translator.NewPlaceholder(), cfg))
}

func uploadCSV(t *testing.T, mux http.Handler, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload-data", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func postJSON(t *testing.T, mux http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func uploadedDatasetID(t *testing.T, mux http.Handler) string {
	t.Helper()
	rec := uploadCSV(t, mux, "sales.csv", salesCSV)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		DatasetID string `json:"datasetId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.DatasetID)
	return resp.DatasetID
}

func TestUploadData(t *testing.T) {
	mux := newTestAPI(t)
	rec := uploadCSV(t, mux, "sales.csv", salesCSV)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		DatasetID string `json:"datasetId"`
		Name      string `json:"name"`
		Rows      int    `json:"rows"`
		Columns   []struct {
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"columns"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "sales.csv", resp.Name)
	assert.Equal(t, 4, resp.Rows)
	require.Len(t, resp.Columns, 3)
	assert.Equal(t, "categorical", resp.Columns[0].Type)
	assert.Equal(t, "numeric", resp.Columns[2].Type)
}

func TestUploadRejectsNonCSV(t *testing.T) {
	mux := newTestAPI(t)
	rec := uploadCSV(t, mux, "sales.txt", salesCSV)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChartTypes(t *testing.T) {
	mux := newTestAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/api/chart-types", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ChartTypes []struct {
			ID string `json:"id"`
		} `json:"chartTypes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.ChartTypes, 10)
}

func TestCheckCompatibility(t *testing.T) {
	mux := newTestAPI(t)
	id := uploadedDatasetID(t, mux)

	rec := postJSON(t, mux, "/api/check-compatibility", map[string]string{
		"datasetId": id,
		"chartType": "bar",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Compatibility struct {
			Compatible bool `json:"compatible"`
			Suggested  struct {
				X string `json:"x"`
				Y string `json:"y"`
			} `json:"suggestedBinding"`
		} `json:"compatibility"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Compatibility.Compatible)
	assert.Equal(t, "Region", resp.Compatibility.Suggested.X)
	assert.Equal(t, "Sales", resp.Compatibility.Suggested.Y)
}

func TestCheckCompatibilityUnknownDataset(t *testing.T) {
	mux := newTestAPI(t)
	rec := postJSON(t, mux, "/api/check-compatibility", map[string]string{
		"datasetId": "nope",
		"chartType": "bar",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGenerateChart(t *testing.T) {
	mux := newTestAPI(t)
	id := uploadedDatasetID(t, mux)

	rec := postJSON(t, mux, "/api/generate-chart", map[string]any{
		"datasetId": id,
		"chartType": "bar",
		"title":     "Sales by Region",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		ContentType string `json:"contentType"`
		Image       string `json:"image"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "image/png", resp.ContentType)

	png, err := base64.StdEncoding.DecodeString(resp.Image)
	require.NoError(t, err)
	require.Greater(t, len(png), 4)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestGenerateChartCached(t *testing.T) {
	mux := newTestAPI(t)
	id := uploadedDatasetID(t, mux)

	body := map[string]any{"datasetId": id, "chartType": "pie"}
	first := postJSON(t, mux, "/api/generate-chart", body)
	second := postJSON(t, mux, "/api/generate-chart", body)
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestGenerateChartUnknownType(t *testing.T) {
	mux := newTestAPI(t)
	id := uploadedDatasetID(t, mux)

	rec := postJSON(t, mux, "/api/generate-chart", map[string]any{
		"datasetId": id,
		"chartType": "spider",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGenerateChartIncompatible(t *testing.T) {
	mux := newTestAPI(t)
	rec := uploadCSV(t, mux, "names.csv", "Name\nalice\nbob\n")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		DatasetID string `json:"datasetId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	gen := postJSON(t, mux, "/api/generate-chart", map[string]any{
		"datasetId": resp.DatasetID,
		"chartType": "scatter",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, gen.Code)
	assert.Contains(t, gen.Body.String(), "incompatible")
}

func TestSuggestChart(t *testing.T) {
	mux := newTestAPI(t)
	id := uploadedDatasetID(t, mux)

	rec := postJSON(t, mux, "/api/suggest-chart", map[string]string{
		"datasetId": id,
		"query":     "compare sales across regions",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Suggestion struct {
			ChartType string `json:"chartType"`
		} `json:"suggestion"`
		Compatibility struct {
			Compatible bool `json:"compatible"`
		} `json:"compatibility"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Suggestion.ChartType)
	assert.True(t, resp.Compatibility.Compatible)
}

func TestSuggestChartEmptyQuery(t *testing.T) {
	mux := newTestAPI(t)
	id := uploadedDatasetID(t, mux)

	rec := postJSON(t, mux, "/api/suggest-chart", map[string]string{"datasetId": id})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeImage(t *testing.T) {
	mux := newTestAPI(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "chart.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte{0x89, 'P', 'N', 'G'})
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze-image", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ChartType string `json:"chartType"`
		RCode     string `json:"rCode"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "bar", resp.ChartType)
	assert.True(t, strings.Contains(resp.RCode, "ggplot"))
}

func TestAnalyzeImageRejectsExtension(t *testing.T) {
	mux := newTestAPI(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, _ := mw.CreateFormFile("file", "chart.gif")
	fw.Write([]byte("GIF89a"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze-image", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	mux := newTestAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestCORSPreflight(t *testing.T) {
	mux := newTestAPI(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/chart-types", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
