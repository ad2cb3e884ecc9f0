package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/officetrack/officetrack-backend-go/internal/handler/http/middleware"
	"github.com/officetrack/officetrack-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	tokenHandler TokenHandler,
	attendanceHandler AttendanceHandler,
	personHandler PersonHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "officetrack"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
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

		// The scan itself is gated by the single-use QR token, not by JWT:
		// the scanning device has no session.
		r.Post("/attendance/scan", attendanceHandler.Scan)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/present", attendanceHandler.ListPresent)
				r.Get("/users/{userID}/state", attendanceHandler.GetState)
				r.Get("/users/{userID}/events", attendanceHandler.ListEvents)
				r.Get("/users/{userID}/intervals", attendanceHandler.ListIntervals)

				// Admin only: token-less corrections
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/actions", attendanceHandler.RecordAction)
				})
			})

			r.Route("/people", func(r chi.Router) {
				r.Get("/", personHandler.List)
				r.Get("/{userID}", personHandler.Get)

				// Admin only: name corrections
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/{userID}/name", personHandler.Rename)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/daily", reportHandler.DailyStats)
				r.Get("/weekly", reportHandler.WeeklyStats)
				r.Get("/hourly", reportHandler.HourlyDistribution)
				r.Get("/top-workers", reportHandler.TopWorkers)
				r.Get("/pivot", reportHandler.PivotReport)
				r.Get("/overtime", reportHandler.OvertimeReport)
				r.Get("/late-arrivals", reportHandler.LateArrivals)
				r.Get("/weekday", reportHandler.WeeklyDistribution)
				r.Get("/locations", reportHandler.LocationStats)
				r.Post("/comparison", reportHandler.PeriodComparison)
				r.Get("/users/{userID}/activity", reportHandler.UserActivity)
				r.Get("/health", reportHandler.SystemHealth)
			})

			// Admin only: the active token is the QR payload itself
			r.Route("/tokens", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/active", tokenHandler.GetActive)
				r.Post("/", tokenHandler.Create)
			})
		})
	})
	return r
}
