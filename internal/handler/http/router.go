package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/punchclock-io/punchclock-backend-go/internal/handler/http/middleware"
	"github.com/punchclock-io/punchclock-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	Env         string
	FrontendURL string
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	authHandler AuthHandler,
	timesheetHandler TimesheetHandler,
	calendarHandler CalendarHandler,
	reportHandler ReportHandler,
	userHandler UserHandler,
	companyHandler CompanyHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "punchclock"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
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

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Post("/auth/logout", authHandler.Logout)

			r.Route("/timestamps", func(r chi.Router) {
				r.Post("/punch-in", timesheetHandler.PunchIn)
				r.Post("/punch-out", timesheetHandler.PunchOut)
				r.Get("/punch-status", timesheetHandler.PunchStatus)

				r.Post("/", timesheetHandler.CreateTimestamp)
				r.Get("/", timesheetHandler.ListRange)
				r.Put("/{id}", timesheetHandler.EditTimestamp)
				r.Delete("/{id}", timesheetHandler.DeleteTimestamp)

				// Net admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireNetAdmin)
					r.Get("/all", timesheetHandler.ListAll)
				})
			})

			r.Get("/calendar", calendarHandler.GetMonth)

			r.Route("/reports", func(r chi.Router) {
				r.Get("/user", reportHandler.UserReport)
				r.Get("/user/range", reportHandler.UserRangeReport)

				// Employer or net admin
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireEmployer)
					r.Get("/company", reportHandler.CompanyReport)
				})

				// Net admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireNetAdmin)
					r.Get("/overview", reportHandler.Overview)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/admins", userHandler.ListAdmins)
				r.Get("/{email}", userHandler.Get)
				r.Put("/{email}", userHandler.Update)

				// Employer or net admin
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireEmployer)
					r.Post("/", userHandler.Create)
					r.Get("/", userHandler.ListCompany)
					r.Delete("/{email}", userHandler.Deactivate)
				})
			})

			r.Route("/companies", func(r chi.Router) {
				r.Get("/{id}", companyHandler.Get)
				r.Get("/username/{username}", companyHandler.GetByUsername)
				r.Put("/{id}", companyHandler.Update)

				// Net admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireNetAdmin)
					r.Post("/", companyHandler.Create)
					r.Get("/", companyHandler.List)
				})
			})
		})
	})
	return r
}
