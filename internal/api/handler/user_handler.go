package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type updateProfileRequest struct {
	Fullname    string      `form:"fullname"    json:"fullname"`
	Email       string      `form:"email"       json:"email"       validate:"omitempty,email"`
	PhoneNumber string      `form:"phoneNumber" json:"phoneNumber"`
	Bio         string      `form:"bio"         json:"bio"`
	Skills      looseString `form:"skills"      json:"skills"`
}

type userResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

// UpdateProfile handles POST /api/v1/user/profile/update.
//
// @Summary      Update the caller's profile
// @Description  Only the fields present in the form change. The optional resume must be a PDF.
// @Tags         user
// @Accept       multipart/form-data
// @Produce      json
// @Security     CookieAuth
// @Param        fullname     formData  string  false  "Full name"
// @Param        email        formData  string  false  "Email"
// @Param        phoneNumber  formData  string  false  "Phone number"
// @Param        bio          formData  string  false  "Bio"
// @Param        skills       formData  string  false  "Comma separated skills"
// @Param        file         formData  file    false  "Resume (PDF)"
// @Success      200  {object}  userResponse
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /user/profile/update [post]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	resume, closeResume, err := formUpload(c, "file")
	if err != nil {
		return err
	}
	defer closeResume()

	user, err := h.service.UpdateProfile(c.Request().Context(), ports.UpdateProfileInput{
		UserID:      userID,
		Fullname:    req.Fullname,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Bio:         req.Bio,
		Skills:      req.Skills.String(),
		Resume:      resume,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{
		Success: true,
		Message: "Profile updated successfully.",
		User:    user,
	})
}
