package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"telescope-scheduler/internal/domain/user"
	"telescope-scheduler/internal/handler/api"
	"telescope-scheduler/internal/handler/middleware"
	"telescope-scheduler/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	fx.In

	Appointments *api.AppointmentHandler
	Telescopes   *api.TelescopeHandler
	Users        *api.UserHandler
	Admin        *api.AdminHandler
	Auth         *middleware.AuthMiddleware
	RateLimiter  *middleware.RateLimiter
	Logger       *middleware.Logger
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers) {
	setupMiddleware(engine, cfg, h.Logger)
	setupRoutes(engine, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	auth := h.Auth
	limit := h.RateLimiter.Handler()
	adminOnly := auth.RequireAnyRole(user.RoleAdmin)

	apiGroup := engine.Group("/api")
	{
		public := apiGroup.Group("")
		public.Use(auth.OptionalAuth())
		addRoutes(public, []route{
			{Method: http.MethodGet, Path: "/appointments/search", Handler: h.Appointments.Search},
			{Method: http.MethodGet, Path: "/appointments/completed/public", Handler: h.Appointments.CompletedPublic},
			{Method: http.MethodGet, Path: "/appointments/:id", Handler: h.Appointments.Get},
			{Method: http.MethodGet, Path: "/telescopes/:id/appointments", Handler: h.Telescopes.Appointments},
		})

		appointments := apiGroup.Group("/appointments")
		appointments.Use(auth.RequireAuth())
		{
			addRoutes(appointments, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Appointments.Create, Mw: []gin.HandlerFunc{limit}},
				{Method: http.MethodPost, Path: "/requests", Handler: h.Appointments.Request, Mw: []gin.HandlerFunc{limit}},
				{Method: http.MethodGet, Path: "/requests", Handler: h.Appointments.Requested, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodPost, Path: "/:id/approve", Handler: h.Appointments.Approve, Mw: []gin.HandlerFunc{adminOnly, limit}},
				{Method: http.MethodPost, Path: "/:id/deny", Handler: h.Appointments.Deny, Mw: []gin.HandlerFunc{adminOnly, limit}},
				{Method: http.MethodPost, Path: "/:id/start", Handler: h.Appointments.Start, Mw: []gin.HandlerFunc{adminOnly, limit}},
				{Method: http.MethodPost, Path: "/:id/finish", Handler: h.Appointments.Finish, Mw: []gin.HandlerFunc{adminOnly, limit}},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Appointments.Cancel, Mw: []gin.HandlerFunc{limit}},
				{Method: http.MethodPost, Path: "/:id/public", Handler: h.Appointments.MakePublic, Mw: []gin.HandlerFunc{limit}},
			})
		}

		users := apiGroup.Group("/users")
		users.Use(auth.RequireAuth())
		{
			addRoutes(users, []route{
				{Method: http.MethodGet, Path: "/:id/appointments/future", Handler: h.Users.FutureAppointments},
				{Method: http.MethodGet, Path: "/:id/appointments/past", Handler: h.Users.PastAppointments},
				{Method: http.MethodGet, Path: "/:id/available-time", Handler: h.Users.AvailableTime},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(auth.RequireAuth(), adminOnly)
		{
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "/users/:id/category", Handler: h.Admin.ApproveCategory, Mw: []gin.HandlerFunc{limit}},
				{Method: http.MethodGet, Path: "/logs", Handler: h.Admin.Logs},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
