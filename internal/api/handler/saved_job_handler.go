package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jobportal/jobboard-api/internal/api/metrics"
	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
)

// SavedJobHandler exposes the caller's bookmarked jobs.
type SavedJobHandler struct {
	service ports.SavedJobService
}

func NewSavedJobHandler(service ports.SavedJobService) *SavedJobHandler {
	return &SavedJobHandler{service: service}
}

type savedJobRequest struct {
	JobID string `json:"jobId" form:"jobId"`
}

type savedJobsResponse struct {
	Success   bool               `json:"success"`
	Message   string             `json:"message,omitempty"`
	SavedJobs []domain.JobDetail `json:"savedJobs"`
}

// Save handles POST /api/v1/user/savedjob.
//
// @Summary      Save a job
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      savedJobRequest  true  "Job to save"
// @Success      200   {object}  savedJobsResponse
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /user/savedjob [post]
func (h *SavedJobHandler) Save(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}
	var req savedJobRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	saved, err := h.service.SaveJob(c.Request().Context(), userID, req.JobID)
	metrics.SavedJobsTotal.WithLabelValues("save", metrics.SavedJobResult(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, savedJobsResponse{
		Success:   true,
		Message:   "Job saved successfully",
		SavedJobs: saved,
	})
}

// Unsave handles POST /api/v1/user/unsavejob.
//
// @Summary      Remove a saved job
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      savedJobRequest  true  "Job to remove"
// @Success      200   {object}  savedJobsResponse
// @Failure      404   {object}  map[string]any
// @Router       /user/unsavejob [post]
func (h *SavedJobHandler) Unsave(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}
	var req savedJobRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	saved, err := h.service.UnsaveJob(c.Request().Context(), userID, req.JobID)
	metrics.SavedJobsTotal.WithLabelValues("unsave", metrics.SavedJobResult(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, savedJobsResponse{
		Success:   true,
		Message:   "Job removed from saved jobs",
		SavedJobs: saved,
	})
}

// List handles GET /api/v1/user/savedjobs.
//
// @Summary      List saved jobs
// @Tags         user
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  savedJobsResponse
// @Router       /user/savedjobs [get]
func (h *SavedJobHandler) List(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}
	saved, err := h.service.ListSavedJobs(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, savedJobsResponse{Success: true, SavedJobs: saved})
}
