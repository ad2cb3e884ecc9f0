package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/officetrack/officetrack-backend-go/internal/config"
	appHTTP "github.com/officetrack/officetrack-backend-go/internal/handler/http"
	"github.com/officetrack/officetrack-backend-go/internal/pkg/cache"
	"github.com/officetrack/officetrack-backend-go/internal/pkg/cron"
	"github.com/officetrack/officetrack-backend-go/internal/pkg/database"
	"github.com/officetrack/officetrack-backend-go/internal/pkg/email"
	"github.com/officetrack/officetrack-backend-go/internal/pkg/jwt"
	"github.com/officetrack/officetrack-backend-go/internal/repository/postgresql"
	attendanceService "github.com/officetrack/officetrack-backend-go/internal/service/attendance"
	personService "github.com/officetrack/officetrack-backend-go/internal/service/person"
	reportService "github.com/officetrack/officetrack-backend-go/internal/service/report"
	tokenService "github.com/officetrack/officetrack-backend-go/internal/service/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	appCache, err := cache.New(cache.Config{
		Enabled:  cfg.Redis.Enabled,
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		fmt.Println("Error connecting to cache:", err)
		return
	}

	personRepo := postgresql.NewPersonRepository(db)
	eventRepo := postgresql.NewEventRepository(db)
	tokenRepo := postgresql.NewTokenRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	tokenSvc := tokenService.NewTokenService(tokenRepo, appCache, cfg.Attendance.TokenLength)
	attendanceSvc := attendanceService.NewAttendanceService(db, eventRepo, personRepo, tokenSvc)
	personSvc := personService.NewPersonService(personRepo)
	reportSvc := reportService.NewReportService(reportRepo, eventRepo, appCache)

	var notifier cron.Notifier = cron.LogNotifier{}
	if cfg.Attendance.AdminEmail != "" {
		emailService, err := email.NewEmailService(cfg.SMTP)
		if err != nil {
			fmt.Println("Error initializing email service:", err)
			return
		}
		notifier = cron.NewEmailNotifier(emailService, cfg.Attendance.AdminEmail)
	}

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(
		eventRepo,
		notifier,
		time.Duration(cfg.Attendance.StaleSessionHours)*time.Hour,
	)
	attendanceJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	tokenHandler := appHTTP.NewTokenHandler(tokenSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	personHandler := appHTTP.NewPersonHandler(personSvc)
	reportHandler := appHTTP.NewReportHandler(
		reportSvc,
		cfg.Attendance.StandardHoursPerDay,
		cfg.Attendance.LateThresholdHour,
	)

	router := appHTTP.NewRouter(
		JWTService,
		tokenHandler,
		attendanceHandler,
		personHandler,
		reportHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
