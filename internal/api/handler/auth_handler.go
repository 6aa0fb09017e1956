package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jobportal/jobboard-api/internal/api/middleware"
	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
)

// CookieConfig controls the session cookie issued on login.
type CookieConfig struct {
	Secure bool
	TTL    time.Duration
}

type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieConfig
}

func NewAuthHandler(authService ports.AuthService, cookie CookieConfig) *AuthHandler {
	if cookie.TTL <= 0 {
		cookie.TTL = 24 * time.Hour
	}
	return &AuthHandler{authService: authService, cookie: cookie}
}

type registerRequest struct {
	Fullname    string `form:"fullname"    json:"fullname"    validate:"required"`
	Email       string `form:"email"       json:"email"       validate:"required,email"`
	PhoneNumber string `form:"phoneNumber" json:"phoneNumber" validate:"required"`
	Password    string `form:"password"    json:"password"    validate:"required"`
	Role        string `form:"role"        json:"role"        validate:"required,oneof=student recruiter"`
}

type loginRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
	Role     string `json:"role"     form:"role"     validate:"required"`
}

type authResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token,omitempty"`
	User    *domain.User `json:"user,omitempty"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         user
// @Accept       multipart/form-data
// @Produce      json
// @Param        fullname     formData  string  true   "Full name"
// @Param        email        formData  string  true   "Email"
// @Param        phoneNumber  formData  string  true   "Phone number"
// @Param        password     formData  string  true   "Password"
// @Param        role         formData  string  true   "student or recruiter"
// @Param        file         formData  file    false  "Profile photo"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Failure      429   {object}  map[string]any
// @Router       /user/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	photo, closePhoto, err := formUpload(c, "file")
	if err != nil {
		return err
	}
	defer closePhoto()

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Fullname:    req.Fullname,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		PhoneNumber: req.PhoneNumber,
		Photo:       photo,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{
		Success: true,
		Message: "Account created successfully.",
		User:    user,
	})
}

// Login authenticates a user, sets the session cookie and returns the JWT.
//
// @Summary      Login
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      429   {object}  map[string]any
// @Router       /user/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password, req.Role)
	if err != nil {
		return err
	}

	c.SetCookie(h.sessionCookie(token, int(h.cookie.TTL/time.Second)))
	return c.JSON(http.StatusOK, authResponse{
		Success: true,
		Message: fmt.Sprintf("Welcome back %s", user.Fullname),
		Token:   token,
		User:    user,
	})
}

// Logout clears the session cookie.
//
// @Summary      Logout
// @Tags         user
// @Produce      json
// @Success      200  {object}  authResponse
// @Router       /user/logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.sessionCookie("", -1))
	return c.JSON(http.StatusOK, authResponse{Success: true, Message: "Logged out successfully."})
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteNoneMode,
	}
}
