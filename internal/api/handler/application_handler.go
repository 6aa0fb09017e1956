package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
)

type ApplicationHandler struct {
	service ports.ApplicationService
}

func NewApplicationHandler(service ports.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

type updateStatusRequest struct {
	Status string `json:"status" form:"status" validate:"required"`
}

type applicationResponse struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message"`
	Application *domain.Application `json:"application"`
}

type applicationsResponse struct {
	Success      bool                 `json:"success"`
	Applications []domain.Application `json:"applications"`
}

// Apply handles POST /api/v1/application/apply/:id.
//
// @Summary      Apply to a job
// @Tags         application
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Job ID"
// @Success      201  {object}  applicationResponse
// @Failure      404  {object}  map[string]any
// @Failure      409  {object}  map[string]any
// @Router       /application/apply/{id} [post]
func (h *ApplicationHandler) Apply(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}
	app, err := h.service.Apply(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, applicationResponse{
		Success:     true,
		Message:     "Job applied successfully.",
		Application: app,
	})
}

// Applied handles GET /api/v1/application/get.
//
// @Summary      List the caller's applications
// @Tags         application
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  applicationsResponse
// @Router       /application/get [get]
func (h *ApplicationHandler) Applied(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}
	apps, err := h.service.ListApplied(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, applicationsResponse{Success: true, Applications: apps})
}

// Applicants handles GET /api/v1/application/:id/applicants.
//
// @Summary      List applicants for a job
// @Tags         application
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  jobDetailResponse
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /application/{id}/applicants [get]
func (h *ApplicationHandler) Applicants(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}
	job, err := h.service.Applicants(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobDetailResponse{Success: true, Job: job})
}

// UpdateStatus handles POST /api/v1/application/status/:id/update.
//
// @Summary      Accept or reject an application
// @Tags         application
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string               true  "Application ID"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  applicationResponse
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /application/status/{id}/update [post]
func (h *ApplicationHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	app, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, applicationResponse{
		Success:     true,
		Message:     "Status updated successfully.",
		Application: app,
	})
}
