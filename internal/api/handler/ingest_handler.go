package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jobportal/jobboard-api/internal/api/metrics"
	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
)

type IngestHandler struct {
	service ports.IngestService
}

func NewIngestHandler(service ports.IngestService) *IngestHandler {
	return &IngestHandler{service: service}
}

type ingestResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Jobs    []domain.Job `json:"jobs"`
}

// FetchJobs handles GET /api/v1/job/fetch-jobs.
//
// @Summary      Pull the external job feed
// @Description  Fetches one page of the external feed and stores every listing as a job.
// @Tags         jobs
// @Produce      json
// @Success      201  {object}  ingestResponse
// @Failure      400  {object}  map[string]any  "feed did not return an array"
// @Failure      409  {object}  map[string]any  "another ingestion is running"
// @Failure      429  {object}  map[string]any
// @Failure      500  {object}  map[string]any
// @Router       /job/fetch-jobs [get]
func (h *IngestHandler) FetchJobs(c echo.Context) error {
	start := time.Now()
	jobs, err := h.service.Ingest(c.Request().Context())
	metrics.ObserveIngest("http", len(jobs), err, time.Since(start))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, ingestResponse{
		Success: true,
		Message: "Jobs successfully fetched and saved.",
		Jobs:    jobs,
	})
}
