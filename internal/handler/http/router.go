package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/tuition-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Env            string
	AllowedOrigins []string
	LogLevel       slog.Level
	// Metrics serves /metrics when set.
	Metrics http.Handler
}

type Handlers struct {
	Schedule   ScheduleHandler
	Attendance AttendanceHandler
	Fee        FeeHandler
	Salary     SalaryHandler
	Analytics  AnalyticsHandler
}

func NewRouter(JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "tuition-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Route("/schedules", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionScheduleView)).Get("/", h.Schedule.List)
				r.With(middleware.RequirePermission(user.PermissionScheduleManage)).Post("/", h.Schedule.Create)

				r.Route("/{id}", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionScheduleView)).Get("/", h.Schedule.Get)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionScheduleManage))
						r.Put("/", h.Schedule.Update)
						r.Delete("/", h.Schedule.Delete)
					})

					r.With(middleware.RequirePermission(user.PermissionAttendanceView)).Get("/attendance", h.Attendance.List)
					r.With(middleware.RequirePermission(user.PermissionAttendanceMark)).Post("/attendance", h.Attendance.Mark)
				})
			})

			r.With(middleware.RequirePermission(user.PermissionAnalyticsView)).Get("/analytics", h.Analytics.Get)

			// Ledgers, admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Route("/fees", func(r chi.Router) {
					r.Get("/", h.Fee.List)
					r.Post("/generate", h.Fee.Generate)
					r.Get("/{id}", h.Fee.Get)
					r.Put("/{id}", h.Fee.Update)
					r.Post("/{id}/pay", h.Fee.MarkPaid)
				})

				r.Route("/salaries", func(r chi.Router) {
					r.Get("/", h.Salary.List)
					r.Post("/generate", h.Salary.Generate)
					r.Get("/summary", h.Salary.Summary)
					r.Get("/{id}", h.Salary.Get)
					r.Put("/{id}", h.Salary.Update)
					r.Post("/{id}/pay", h.Salary.MarkPaid)
				})
			})
		})
	})
	return r
}
