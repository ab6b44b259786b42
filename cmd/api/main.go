package main

import (
	"fmt"
	"net/http"

	"github.com/punchclock-io/punchclock-backend-go/internal/config"
	appHTTP "github.com/punchclock-io/punchclock-backend-go/internal/handler/http"
	"github.com/punchclock-io/punchclock-backend-go/internal/pkg/cron"
	"github.com/punchclock-io/punchclock-backend-go/internal/pkg/database"
	"github.com/punchclock-io/punchclock-backend-go/internal/pkg/jwt"
	"github.com/punchclock-io/punchclock-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/punchclock-io/punchclock-backend-go/internal/service/auth"
	serviceCalendar "github.com/punchclock-io/punchclock-backend-go/internal/service/calendar"
	serviceCompany "github.com/punchclock-io/punchclock-backend-go/internal/service/company"
	serviceReport "github.com/punchclock-io/punchclock-backend-go/internal/service/report"
	serviceTimesheet "github.com/punchclock-io/punchclock-backend-go/internal/service/timesheet"
	serviceUser "github.com/punchclock-io/punchclock-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	timestampRepo := postgresql.NewTimestampRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authService := serviceAuth.NewAuthService(db, userRepo, companyRepo, JWTService, JWTRepository)
	timesheetService := serviceTimesheet.NewTimesheetService(db, timestampRepo, userRepo)
	calendarService := serviceCalendar.NewCalendarService(db, timestampRepo, userRepo)
	reportService := serviceReport.NewReportService(db, timestampRepo, userRepo, companyRepo)
	userService := serviceUser.NewUserService(db, userRepo, companyRepo)
	companyService := serviceCompany.NewCompanyService(db, companyRepo)

	authHandler := appHTTP.NewAuthHandler(JWTService, authService)
	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetService)
	calendarHandler := appHTTP.NewCalendarHandler(calendarService)
	reportHandler := appHTTP.NewReportHandler(reportService)
	userHandler := appHTTP.NewUserHandler(userService)
	companyHandler := appHTTP.NewCompanyHandler(companyService)

	scheduler := cron.NewScheduler()
	cron.NewTimesheetJobs(timestampRepo, userRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:         cfg.App.Env,
			FrontendURL: cfg.App.FrontendURL,
		},
		JWTService,
		authHandler,
		timesheetHandler,
		calendarHandler,
		reportHandler,
		userHandler,
		companyHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Error starting server:", err)
	}
}
