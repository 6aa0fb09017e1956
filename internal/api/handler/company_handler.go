package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
)

type CompanyHandler struct {
	service ports.CompanyService
}

func NewCompanyHandler(service ports.CompanyService) *CompanyHandler {
	return &CompanyHandler{service: service}
}

type registerCompanyRequest struct {
	CompanyName string `json:"companyName" form:"companyName" validate:"required"`
}

type updateCompanyRequest struct {
	Name        string `form:"name"        json:"name"`
	Description string `form:"description" json:"description"`
	Website     string `form:"website"     json:"website"     validate:"omitempty,url"`
	Location    string `form:"location"    json:"location"`
}

type companyResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Company *domain.Company `json:"company"`
}

type companiesResponse struct {
	Success   bool             `json:"success"`
	Companies []domain.Company `json:"companies"`
}

// Register handles POST /api/v1/company/register.
//
// @Summary      Register a company
// @Tags         company
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      registerCompanyRequest  true  "Company"
// @Success      201   {object}  companyResponse
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /company/register [post]
func (h *CompanyHandler) Register(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}
	var req registerCompanyRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	company, err := h.service.Register(c.Request().Context(), req.CompanyName, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, companyResponse{
		Success: true,
		Message: "Company registered successfully.",
		Company: company,
	})
}

// List handles GET /api/v1/company/get.
//
// @Summary      List the caller's companies
// @Tags         company
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  companiesResponse
// @Router       /company/get [get]
func (h *CompanyHandler) List(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}
	companies, err := h.service.ListCompanies(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, companiesResponse{Success: true, Companies: companies})
}

// Get handles GET /api/v1/company/get/:id.
//
// @Summary      Get a company
// @Tags         company
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Company ID"
// @Success      200  {object}  companyResponse
// @Failure      404  {object}  map[string]any
// @Router       /company/get/{id} [get]
func (h *CompanyHandler) Get(c echo.Context) error {
	company, err := h.service.GetCompany(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, companyResponse{Success: true, Company: company})
}

// Update handles PUT /api/v1/company/update/:id.
//
// @Summary      Update a company
// @Tags         company
// @Accept       multipart/form-data
// @Produce      json
// @Security     CookieAuth
// @Param        id           path      string  true   "Company ID"
// @Param        name         formData  string  false  "Name"
// @Param        description  formData  string  false  "Description"
// @Param        website      formData  string  false  "Website"
// @Param        location     formData  string  false  "Location"
// @Param        file         formData  file    false  "Logo"
// @Success      200  {object}  companyResponse
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /company/update/{id} [put]
func (h *CompanyHandler) Update(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}
	var req updateCompanyRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	logo, closeLogo, err := formUpload(c, "file")
	if err != nil {
		return err
	}
	defer closeLogo()

	company, err := h.service.UpdateCompany(c.Request().Context(), ports.UpdateCompanyInput{
		CompanyID:   c.Param("id"),
		CallerID:    userID,
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
		Location:    req.Location,
		Logo:        logo,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, companyResponse{
		Success: true,
		Message: "Company information updated.",
		Company: company,
	})
}
