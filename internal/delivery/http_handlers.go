package delivery

import (
	"net/http"
	"strconv"
	"time"

	"adlens/internal/domain"
	"adlens/internal/usecase"
	"adlens/pkg/logger"
	"adlens/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// handles HTTP requests
type HTTPHandlers struct {
	insights       *usecase.InsightsService
	ingest         *usecase.IngestService
	perResultValue float64
	logger         *logger.Logger
	metrics        *metrics.Metrics
}

// creates new HTTP handlers
func NewHTTPHandlers(
	insights *usecase.InsightsService,
	ingest *usecase.IngestService,
	perResultValue float64,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *HTTPHandlers {
	return &HTTPHandlers{
		insights:       insights,
		ingest:         ingest,
		perResultValue: perResultValue,
		logger:         logger,
		metrics:        metrics,
	}
}

func requestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return uuid.New().String()
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":      "Invalid request",
		"message":    message,
		"request_id": requestID(c),
	})
}

func internalError(c *gin.Context, message string, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":      message,
		"message":    err.Error(),
		"request_id": requestID(c),
	})
}

func clientIDParam(c *gin.Context) (string, bool) {
	clientID := c.Query("client_id")
	if clientID == "" {
		badRequest(c, "client_id parameter is required")
		return "", false
	}
	return clientID, true
}

// IngestRecords accepts a batch of raw metric rows.
func (h *HTTPHandlers) IngestRecords(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	var rows []domain.RawMetricRow
	if err := c.ShouldBindJSON(&rows); err != nil {
		badRequest(c, "body must be a JSON array of metric rows: "+err.Error())
		return
	}

	accepted, err := h.ingest.IngestRows(c.Request.Context(), rows)
	if err != nil {
		h.logger.WithContext(c.Request.Context()).WithError(err).Error("Record ingestion failed")
		internalError(c, "Ingestion failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accepted":   accepted,
		"skipped":    len(rows) - accepted,
		"request_id": requestID(c),
	})
}

// IngestRun pulls metric rows from the configured platform export.
func (h *HTTPHandlers) IngestRun(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	accepted, err := h.ingest.PullFromPlatform(c.Request.Context())
	if err != nil {
		h.logger.WithContext(c.Request.Context()).WithError(err).Error("Platform pull failed")
		internalError(c, "Platform pull failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Platform pull completed successfully",
		"accepted":   accepted,
		"request_id": requestID(c),
	})
}

// SetBudgets upserts campaign budgets.
func (h *HTTPHandlers) SetBudgets(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	var budgets []domain.CampaignBudget
	if err := c.ShouldBindJSON(&budgets); err != nil {
		badRequest(c, "body must be a JSON array of campaign budgets: "+err.Error())
		return
	}

	if err := h.insights.SetBudgets(c.Request.Context(), budgets); err != nil {
		internalError(c, "Failed to store budgets", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stored":     len(budgets),
		"request_id": requestID(c),
	})
}

// GetClassifications returns the triage classification of every ad.
func (h *HTTPHandlers) GetClassifications(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	clientID, ok := clientIDParam(c)
	if !ok {
		return
	}

	reports, err := h.insights.AdClassifications(c.Request.Context(), clientID)
	if err != nil {
		internalError(c, "Failed to generate classifications", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       reports,
		"total":      len(reports),
		"request_id": requestID(c),
	})
}

// GetPatterns returns mined group contrasts.
func (h *HTTPHandlers) GetPatterns(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	clientID, ok := clientIDParam(c)
	if !ok {
		return
	}

	findings, err := h.insights.PatternFindings(c.Request.Context(), clientID)
	if err != nil {
		internalError(c, "Failed to mine patterns", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       findings,
		"total":      len(findings),
		"request_id": requestID(c),
	})
}

// GetPacing returns the month-end spend projection.
func (h *HTTPHandlers) GetPacing(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	clientID, ok := clientIDParam(c)
	if !ok {
		return
	}

	report, err := h.insights.BudgetPacing(c.Request.Context(), clientID, time.Now().UTC())
	if err != nil {
		internalError(c, "Failed to project pacing", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       report,
		"request_id": requestID(c),
	})
}

// GetSaturation returns the audience saturation score.
func (h *HTTPHandlers) GetSaturation(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	clientID, ok := clientIDParam(c)
	if !ok {
		return
	}

	report, err := h.insights.Saturation(c.Request.Context(), clientID)
	if err != nil {
		internalError(c, "Failed to score saturation", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       report,
		"request_id": requestID(c),
	})
}

// GetQuality returns the account data quality score.
func (h *HTTPHandlers) GetQuality(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	clientID, ok := clientIDParam(c)
	if !ok {
		return
	}

	report, err := h.insights.Quality(c.Request.Context(), clientID)
	if err != nil {
		internalError(c, "Failed to score data quality", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       report,
		"request_id": requestID(c),
	})
}

// GetConcentration returns the result concentration analysis.
func (h *HTTPHandlers) GetConcentration(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	clientID, ok := clientIDParam(c)
	if !ok {
		return
	}

	report, err := h.insights.Concentration(c.Request.Context(), clientID)
	if err != nil {
		internalError(c, "Failed to analyze concentration", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       report,
		"request_id": requestID(c),
	})
}

// GetROI returns the agency managed-value estimate. per_result_value
// overrides the configured default.
func (h *HTTPHandlers) GetROI(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	clientID, ok := clientIDParam(c)
	if !ok {
		return
	}

	perResultValue := h.perResultValue
	if v := c.Query("per_result_value"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			badRequest(c, "per_result_value must be a number")
			return
		}
		perResultValue = parsed
	}

	report, err := h.insights.AgencyROI(c.Request.Context(), clientID, perResultValue)
	if err != nil {
		internalError(c, "Failed to estimate ROI", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       report,
		"request_id": requestID(c),
	})
}

type budgetSimulationRequest struct {
	ClientID  string  `json:"client_id" binding:"required"`
	ChangePct float64 `json:"change_pct"`
}

// SimulateBudget projects a signed percent budget change.
func (h *HTTPHandlers) SimulateBudget(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	var req budgetSimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "client_id is required: "+err.Error())
		return
	}

	scenario, err := h.insights.SimulateBudgetChange(c.Request.Context(), req.ClientID, req.ChangePct)
	if err != nil {
		internalError(c, "Failed to simulate budget change", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       scenario,
		"request_id": requestID(c),
	})
}

type pauseSimulationRequest struct {
	ClientID string `json:"client_id" binding:"required"`
	AdName   string `json:"ad_name" binding:"required"`
}

// SimulatePause projects pausing one ad.
func (h *HTTPHandlers) SimulatePause(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	var req pauseSimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "client_id and ad_name are required: "+err.Error())
		return
	}

	scenario, err := h.insights.SimulatePauseAd(c.Request.Context(), req.ClientID, req.AdName)
	if err != nil {
		internalError(c, "Failed to simulate pause", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       scenario,
		"request_id": requestID(c),
	})
}

// ExportRun pushes a client's classification reports to the sink.
func (h *HTTPHandlers) ExportRun(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	clientID, ok := clientIDParam(c)
	if !ok {
		return
	}

	if err := h.ingest.ExportClassifications(c.Request.Context(), clientID); err != nil {
		h.logger.WithContext(c.Request.Context()).WithError(err).Error("Report export failed")
		internalError(c, "Export failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Export completed successfully",
		"client_id":  clientID,
		"request_id": requestID(c),
	})
}

// GetAPIInfo returns API v1 information and available endpoints
func (h *HTTPHandlers) GetAPIInfo(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	c.JSON(http.StatusOK, gin.H{
		"api_version": "v1",
		"service":     "Ad Insights Service",
		"description": "Turns daily ad performance records into triage reports for agency account managers",
		"endpoints": gin.H{
			"ingest": gin.H{
				"records": "POST /api/v1/records - push raw metric rows",
				"run":     "POST /api/v1/ingest/run - pull the platform export",
				"budgets": "POST /api/v1/budgets - upsert campaign budgets",
			},
			"reports": gin.H{
				"classifications": "GET /api/v1/reports/classifications?client_id=...",
				"patterns":        "GET /api/v1/reports/patterns?client_id=...",
				"pacing":          "GET /api/v1/reports/pacing?client_id=...",
				"saturation":      "GET /api/v1/reports/saturation?client_id=...",
				"quality":         "GET /api/v1/reports/quality?client_id=...",
				"concentration":   "GET /api/v1/reports/concentration?client_id=...",
				"roi":             "GET /api/v1/reports/roi?client_id=...&per_result_value=...",
			},
			"simulations": gin.H{
				"budget": "POST /api/v1/simulations/budget {client_id, change_pct}",
				"pause":  "POST /api/v1/simulations/pause {client_id, ad_name}",
			},
			"export": gin.H{
				"run": "POST /api/v1/export/run?client_id=...",
			},
		},
		"request_id": requestID(c),
	})
}

// HealthCheck returns the health status of the service
func (h *HTTPHandlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"service":    "adlens",
		"version":    "1.0.0",
		"request_id": requestID(c),
	})
}
