package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jobportal/jobboard-api/internal/api/metrics"
	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
)

// JobHandler handles HTTP requests for job postings.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// --- Request / Response types ---

// postJobRequest accepts JSON or form bodies. Numeric fields may arrive as
// strings or numbers; requirements as a comma list or an array.
type postJobRequest struct {
	Title        string      `json:"title"        form:"title"`
	Description  string      `json:"description"  form:"description"`
	Requirements looseString `json:"requirements" form:"requirements"`
	Salary       looseString `json:"salary"       form:"salary"`
	Location     string      `json:"location"     form:"location"`
	JobType      string      `json:"jobType"      form:"jobType"`
	Experience   looseString `json:"experience"   form:"experience"`
	Position     looseString `json:"position"     form:"position"`
	CompanyID    string      `json:"companyId"    form:"companyId"`
}

type deleteJobRequest struct {
	JobID string `json:"jobId" form:"jobId"`
}

type jobResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Job     *domain.Job `json:"job"`
}

type jobDetailResponse struct {
	Success bool              `json:"success"`
	Job     *domain.JobDetail `json:"job"`
}

type jobsResponse struct {
	Success bool               `json:"success"`
	Jobs    []domain.JobDetail `json:"jobs"`
}

type deleteJobResponse struct {
	Success       bool               `json:"success"`
	Message       string             `json:"message"`
	RemainingJobs []domain.JobDetail `json:"remainingJobs"`
}

// Post handles POST /api/v1/job/post.
//
// @Summary      Create a job posting
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      postJobRequest  true  "Posting"
// @Success      201   {object}  jobResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Router       /job/post [post]
func (h *JobHandler) Post(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req postJobRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	job, err := h.service.CreateJob(c.Request().Context(), ports.CreateJobInput{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements.String(),
		Salary:       req.Salary.String(),
		Location:     req.Location,
		JobType:      req.JobType,
		Experience:   req.Experience.String(),
		Position:     req.Position.String(),
		CompanyID:    req.CompanyID,
		CreatorID:    userID,
	})
	if err != nil {
		return err
	}

	metrics.JobsCreatedTotal.WithLabelValues(string(domain.SourceManual)).Inc()

	return c.JSON(http.StatusCreated, jobResponse{
		Success: true,
		Message: "New job created successfully.",
		Job:     job,
	})
}

// List handles GET /api/v1/job/get.
//
// @Summary      Search jobs
// @Description  Case-insensitive substring match on title or description, newest first.
// @Tags         jobs
// @Produce      json
// @Param        keyword  query     string  false  "Search keyword"
// @Success      200      {object}  jobsResponse
// @Router       /job/get [get]
func (h *JobHandler) List(c echo.Context) error {
	jobs, err := h.service.SearchJobs(c.Request().Context(), c.QueryParam("keyword"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobsResponse{Success: true, Jobs: jobs})
}

// Get handles GET /api/v1/job/get/:id.
//
// @Summary      Get a job with its applications
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  jobDetailResponse
// @Failure      404  {object}  map[string]any
// @Router       /job/get/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	job, err := h.service.GetJob(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobDetailResponse{Success: true, Job: job})
}

// AdminJobs handles GET /api/v1/job/getadminjobs.
//
// @Summary      List the caller's postings
// @Tags         jobs
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  jobsResponse
// @Failure      401  {object}  map[string]any
// @Router       /job/getadminjobs [get]
func (h *JobHandler) AdminJobs(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}
	jobs, err := h.service.ListCreatorJobs(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobsResponse{Success: true, Jobs: jobs})
}

// Delete handles POST /api/v1/job/delete.
//
// @Summary      Delete a posting
// @Description  Only the creator may delete a posting; ingested postings may be deleted by any recruiter.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      deleteJobRequest  true  "Job to delete"
// @Success      200   {object}  deleteJobResponse
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /job/delete [post]
func (h *JobHandler) Delete(c echo.Context) error {
	userID, role, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req deleteJobRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	remaining, err := h.service.DeleteJob(c.Request().Context(), ports.DeleteJobInput{
		JobID:      req.JobID,
		CallerID:   userID,
		CallerRole: role,
	})
	if err != nil {
		return err
	}

	metrics.JobsDeletedTotal.Inc()

	return c.JSON(http.StatusOK, deleteJobResponse{
		Success:       true,
		Message:       "Job deleted successfully",
		RemainingJobs: remaining,
	})
}
