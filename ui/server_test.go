package ui

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"demandlens/adapters/excel"
	"demandlens/adapters/memory"
	"demandlens/app"
	"demandlens/internal/profiling"

	"github.com/gin-gonic/gin"
)

func newTestServer() *Server {
	profiles := app.NewProfileService(profiling.PermissivePolicy(), memory.NewDatasetRepository())
	return NewServer(profiles, app.NewForecastService(), excel.NewDataReader(), 1<<20, gin.TestMode)
}

func TestNewServer_AppliesConfiguredGinMode(t *testing.T) {
	newTestServer()
	if gin.Mode() != gin.TestMode {
		t.Errorf("Expected gin mode %q to be applied, got %q", gin.TestMode, gin.Mode())
	}
}

func uploadCSV(t *testing.T, s *Server, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("dataset", filename)
	if err != nil {
		t.Fatalf("Failed to build multipart body: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write file part: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/datasets", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

const sampleCSV = "date,demand\n2024-01-01,100\n2024-01-02,110\n2024-01-03,105\n"

func TestUpload_ProfilesAndStoresDataset(t *testing.T) {
	s := newTestServer()

	rec := uploadCSV(t, s, "demand.csv", sampleCSV)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Dataset struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"dataset"`
		Profile struct {
			Dimensions struct {
				Rows    int `json:"rows"`
				Columns int `json:"columns"`
			} `json:"dimensions"`
		} `json:"profile"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad response JSON: %v", err)
	}
	if resp.Dataset.Status != "ready" {
		t.Errorf("Expected ready dataset, got %s", resp.Dataset.Status)
	}
	if resp.Profile.Dimensions.Rows != 3 || resp.Profile.Dimensions.Columns != 2 {
		t.Errorf("Unexpected dimensions: %+v", resp.Profile.Dimensions)
	}

	// The stored profile is retrievable afterwards.
	req := httptest.NewRequest(http.MethodGet, "/api/datasets/"+resp.Dataset.ID+"/profile", nil)
	getRec := httptest.NewRecorder()
	s.Handler().ServeHTTP(getRec, req)
	if getRec.Code != http.StatusOK {
		t.Errorf("Expected 200 fetching stored profile, got %d", getRec.Code)
	}
}

func TestUpload_RejectsUnsupportedExtension(t *testing.T) {
	s := newTestServer()

	rec := uploadCSV(t, s, "report.pdf", "not a table")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for .pdf upload, got %d", rec.Code)
	}
}

func TestUpload_RejectsOversizedFile(t *testing.T) {
	profiles := app.NewProfileService(profiling.PermissivePolicy(), memory.NewDatasetRepository())
	s := NewServer(profiles, app.NewForecastService(), excel.NewDataReader(), 16, gin.TestMode)

	rec := uploadCSV(t, s, "demand.csv", sampleCSV)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for oversized upload, got %d", rec.Code)
	}
}

func TestUpload_RejectsHeaderOnlyFile(t *testing.T) {
	s := newTestServer()

	rec := uploadCSV(t, s, "empty.csv", "date,demand\n")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422 for header-only file, got %d", rec.Code)
	}
}

func TestDatasetBriefing_ReturnsHTML(t *testing.T) {
	s := newTestServer()

	rec := uploadCSV(t, s, "demand.csv", sampleCSV)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Upload failed: %d", rec.Code)
	}
	var resp struct {
		Dataset struct {
			ID string `json:"id"`
		} `json:"dataset"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad response JSON: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/datasets/"+resp.Dataset.ID+"/briefing", nil)
	briefRec := httptest.NewRecorder()
	s.Handler().ServeHTTP(briefRec, req)

	if briefRec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", briefRec.Code)
	}
	if ct := briefRec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Expected HTML briefing, got content type %s", ct)
	}
	if !strings.Contains(briefRec.Body.String(), "demand.csv") {
		t.Error("Briefing should name the uploaded file")
	}
}

func TestDatasetExport_StreamsWorkbook(t *testing.T) {
	s := newTestServer()

	rec := uploadCSV(t, s, "demand.csv", sampleCSV)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Upload failed: %d", rec.Code)
	}
	var resp struct {
		Dataset struct {
			ID string `json:"id"`
		} `json:"dataset"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad response JSON: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/datasets/"+resp.Dataset.ID+"/export", nil)
	exportRec := httptest.NewRecorder()
	s.Handler().ServeHTTP(exportRec, req)

	if exportRec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", exportRec.Code)
	}
	if exportRec.Body.Len() == 0 {
		t.Error("Expected workbook bytes in the export response")
	}
	if !strings.Contains(exportRec.Header().Get("Content-Disposition"), ".xlsx") {
		t.Error("Expected an xlsx attachment disposition")
	}
}

func TestForecastValidate_ViaDashboard(t *testing.T) {
	s := newTestServer()

	body := `{"dates": ["2024-06-01", "2024-06-02"], "predictions": [10, -1]}`
	req := httptest.NewRequest(http.MethodPost, "/api/forecast/validate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Report struct {
			Status string `json:"status"`
		} `json:"report"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad response JSON: %v", err)
	}
	if resp.Report.Status != "fail" {
		t.Errorf("Expected failing report for a negative prediction, got %s", resp.Report.Status)
	}
}
