package ui

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"demandlens/app"
	"demandlens/domain/core"
	"demandlens/internal/api"
	"demandlens/internal/export"
	"demandlens/ports"

	"github.com/gin-gonic/gin"
)

// Server is the DemandLens dashboard: dataset uploads, profiles, forecast
// review, and exports over gin.
type Server struct {
	router         *gin.Engine
	profiles       *app.ProfileService
	forecasts      *app.ForecastService
	reader         ports.TableReader
	maxUploadBytes int64
}

// NewServer creates the dashboard server and wires its routes. ginMode is
// one of gin's debug/release/test modes; empty leaves the current mode.
func NewServer(profiles *app.ProfileService, forecasts *app.ForecastService, reader ports.TableReader, maxUploadBytes int64, ginMode string) *Server {
	if ginMode != "" {
		gin.SetMode(ginMode)
	}
	s := &Server{
		router:         gin.Default(),
		profiles:       profiles,
		forecasts:      forecasts,
		reader:         reader,
		maxUploadBytes: maxUploadBytes,
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	s.router.POST("/api/datasets", s.handleFileUpload)
	s.router.GET("/api/datasets", s.handleDatasetList)
	s.router.GET("/api/datasets/:id", s.handleDatasetInfo)
	s.router.GET("/api/datasets/:id/profile", s.handleDatasetProfile)
	s.router.GET("/api/datasets/:id/briefing", s.handleDatasetBriefing)
	s.router.GET("/api/datasets/:id/export", s.handleDatasetExport)

	s.router.POST("/api/forecast/validate", s.handleForecastValidate)
	s.router.POST("/api/forecast/recommendation", s.handleForecastRecommendation)
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	log.Printf("Starting DemandLens UI on http://%s", addr)
	return s.router.Run(addr)
}

// Handler exposes the router for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleFileUpload ingests an uploaded demand file: read, register,
// profile, persist.
func (s *Server) handleFileUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("dataset")
	if err != nil {
		log.Printf("[handleFileUpload] FAILED - No file uploaded: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	if header.Size > s.maxUploadBytes {
		log.Printf("[handleFileUpload] FAILED - File too large: %d bytes", header.Size)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("File size (%.1f MB) exceeds the %.0fMB limit",
				float64(header.Size)/(1024*1024), float64(s.maxUploadBytes)/(1024*1024)),
		})
		return
	}

	filename := header.Filename
	if !hasSupportedExtension(filename) {
		log.Printf("[handleFileUpload] FAILED - Invalid file extension: %s", filename)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only Excel (.xlsx, .xls) and CSV (.csv) files are allowed"})
		return
	}

	table, err := s.reader.ReadTable(file, filename)
	if err != nil {
		log.Printf("[handleFileUpload] FAILED - Could not read %s: %v", filename, err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	ds, p, err := s.profiles.IngestUpload(c.Request.Context(), filename, header.Header.Get("Content-Type"), table)
	if err != nil {
		log.Printf("[handleFileUpload] FAILED - Ingestion error for %s: %v", filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to profile dataset"})
		return
	}

	log.Printf("[handleFileUpload] Ingested %s as dataset %s (%d rows)", filename, ds.ID, ds.RecordCount)
	c.JSON(http.StatusCreated, gin.H{"dataset": ds, "profile": p})
}

func hasSupportedExtension(filename string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range []string{".xlsx", ".xls", ".csv"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func (s *Server) handleDatasetList(c *gin.Context) {
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)

	list, err := s.profiles.ListDatasets(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list datasets"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"datasets": list})
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func (s *Server) handleDatasetInfo(c *gin.Context) {
	id, ok := s.datasetID(c)
	if !ok {
		return
	}
	ds, err := s.profiles.GetDataset(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dataset not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dataset": ds})
}

func (s *Server) handleDatasetProfile(c *gin.Context) {
	id, ok := s.datasetID(c)
	if !ok {
		return
	}
	p, err := s.profiles.GetProfile(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p})
}

// handleDatasetBriefing renders the profile as an HTML briefing
func (s *Server) handleDatasetBriefing(c *gin.Context) {
	id, ok := s.datasetID(c)
	if !ok {
		return
	}
	ds, err := s.profiles.GetDataset(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dataset not found"})
		return
	}
	p, err := s.profiles.GetProfile(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", export.BriefingHTML(ds, p))
}

// handleDatasetExport streams the profile workbook
func (s *Server) handleDatasetExport(c *gin.Context) {
	id, ok := s.datasetID(c)
	if !ok {
		return
	}
	ds, err := s.profiles.GetDataset(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dataset not found"})
		return
	}
	p, err := s.profiles.GetProfile(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	buf, err := export.ProfileWorkbook(ds, p)
	if err != nil {
		log.Printf("[handleDatasetExport] FAILED - Workbook for %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build workbook"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_profile.xlsx"`, id))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (s *Server) datasetID(c *gin.Context) (core.DatasetID, bool) {
	id, err := core.ParseDatasetID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dataset id"})
		return "", false
	}
	return id, true
}

// handleForecastValidate runs the sanity checks over a posted forecast
func (s *Server) handleForecastValidate(c *gin.Context) {
	var payload api.SeriesPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON: " + err.Error()})
		return
	}
	series, history, err := payload.Series()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report := s.forecasts.Validate(series, history)
	if report == nil {
		c.JSON(http.StatusOK, gin.H{"applicable": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"applicable": true, "report": report})
}

// handleForecastRecommendation derives the inventory rollup for a posted
// forecast
func (s *Server) handleForecastRecommendation(c *gin.Context) {
	var payload api.SeriesPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON: " + err.Error()})
		return
	}
	series, _, err := payload.Series()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec := s.forecasts.Recommend(series)
	if rec == nil {
		c.JSON(http.StatusOK, gin.H{"applicable": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"applicable": true, "recommendation": rec})
}
