package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/jobportal/jobboard-api/internal/api/handler"
	"github.com/jobportal/jobboard-api/internal/api/middleware"
	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
	"github.com/jobportal/jobboard-api/internal/infrastructure/http/handlers"
)

// Dependencies is everything the router needs to build its handlers.
type Dependencies struct {
	Jobs         ports.JobService
	SavedJobs    ports.SavedJobService
	Ingest       ports.IngestService
	Auth         ports.AuthService
	Users        ports.UserService
	Companies    ports.CompanyService
	Applications ports.ApplicationService
	Media        ports.MediaStore

	// Limiter backs the rate limits on login, register and fetch-jobs.
	// Nil disables them.
	Limiter        middleware.Limiter
	RateLimit      int
	RateWindow     time.Duration
	Readiness      map[string]handlers.Check
	JWTSecret      string
	Cookie         handler.CookieConfig
	AllowedOrigins []string
	Log            zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echo.WrapMiddleware(cors.New(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{echo.HeaderContentType, echo.HeaderAuthorization},
		ExposedHeaders:   []string{echo.HeaderXRequestID},
		AllowCredentials: true,
	}).Handler))
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddleware("jobboard"))

	// --- Dependencies ---
	authMiddleware := middleware.Auth(d.JWTSecret)
	recruiterOnly := middleware.RBAC(domain.RoleRecruiter)
	limit := func(scope string) echo.MiddlewareFunc {
		return middleware.RateLimit(d.Limiter, scope, d.RateLimit, d.RateWindow, d.Log)
	}

	jobHandler := handler.NewJobHandler(d.Jobs)
	ingestHandler := handler.NewIngestHandler(d.Ingest)
	savedHandler := handler.NewSavedJobHandler(d.SavedJobs)
	authHandler := handler.NewAuthHandler(d.Auth, d.Cookie)
	userHandler := handler.NewUserHandler(d.Users)
	companyHandler := handler.NewCompanyHandler(d.Companies)
	applicationHandler := handler.NewApplicationHandler(d.Applications)
	mediaHandler := handler.NewMediaHandler(d.Media)

	v1 := e.Group("/api/v1")

	// --- Job routes ---
	job := v1.Group("/job")
	job.POST("/post", jobHandler.Post, authMiddleware)
	job.GET("/get", jobHandler.List)
	job.GET("/get/:id", jobHandler.Get)
	job.GET("/getadminjobs", jobHandler.AdminJobs, authMiddleware)
	job.POST("/delete", jobHandler.Delete, authMiddleware)
	job.GET("/fetch-jobs", ingestHandler.FetchJobs, limit("fetch-jobs"))

	// --- User routes ---
	user := v1.Group("/user")
	user.POST("/register", authHandler.Register, limit("register"))
	user.POST("/login", authHandler.Login, limit("login"))
	user.GET("/logout", authHandler.Logout)
	user.POST("/profile/update", userHandler.UpdateProfile, authMiddleware)
	user.POST("/savedjob", savedHandler.Save, authMiddleware)
	user.POST("/unsavejob", savedHandler.Unsave, authMiddleware)
	user.GET("/savedjobs", savedHandler.List, authMiddleware)

	// --- Company routes ---
	company := v1.Group("/company", authMiddleware)
	company.POST("/register", companyHandler.Register, recruiterOnly)
	company.GET("/get", companyHandler.List)
	company.GET("/get/:id", companyHandler.Get)
	company.PUT("/update/:id", companyHandler.Update, recruiterOnly)

	// --- Application routes ---
	application := v1.Group("/application", authMiddleware)
	application.POST("/apply/:id", applicationHandler.Apply)
	application.GET("/get", applicationHandler.Applied)
	application.GET("/:id/applicants", applicationHandler.Applicants, recruiterOnly)
	application.POST("/status/:id/update", applicationHandler.UpdateStatus, recruiterOnly)

	v1.GET("/media/:id", mediaHandler.Get)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)                     // liveness  – is the process alive?
	e.GET("/health/ready", handlers.NewReadinessHandler(d.Readiness).Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error()
			}
			if v.Error != nil {
				ev = ev.Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
