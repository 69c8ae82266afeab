package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/tuition-backend-go/internal/config"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/analytics"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/fee"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/roster"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/schedule"
	appHTTP "github.com/cmlabs-hris/tuition-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/tuition-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/tuition-backend-go/internal/repository/postgresql"
	analyticsService "github.com/cmlabs-hris/tuition-backend-go/internal/service/analytics"
	attendanceService "github.com/cmlabs-hris/tuition-backend-go/internal/service/attendance"
	feeService "github.com/cmlabs-hris/tuition-backend-go/internal/service/fee"
	payrollService "github.com/cmlabs-hris/tuition-backend-go/internal/service/payroll"
	scheduleService "github.com/cmlabs-hris/tuition-backend-go/internal/service/schedule"
)

type repositories struct {
	roster     roster.RosterRepository
	schedule   schedule.ScheduleRepository
	attendance attendance.AttendanceRepository
	fee        fee.FeeRepository
	payroll    payroll.PayrollRepository
	analytics  analytics.AnalyticsRepository
	close      func()
}

func openRepositories(cfg *config.Config) (repositories, error) {
	if cfg.App.StoreDriver == config.StoreDriverMemory {
		store := memory.NewStore()
		memory.SeedDemo(store)
		slog.Warn("Using in-memory store, data is lost on restart")
		return repositories{
			roster:     memory.NewRosterRepository(store),
			schedule:   memory.NewScheduleRepository(store),
			attendance: memory.NewAttendanceRepository(store),
			fee:        memory.NewFeeRepository(store),
			payroll:    memory.NewPayrollRepository(store),
			analytics:  memory.NewAnalyticsRepository(store),
			close:      func() {},
		}, nil
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return repositories{}, fmt.Errorf("connect to database: %w", err)
	}
	return repositories{
		roster:     postgresql.NewRosterRepository(db),
		schedule:   postgresql.NewScheduleRepository(db),
		attendance: postgresql.NewAttendanceRepository(db),
		fee:        postgresql.NewFeeRepository(db),
		payroll:    postgresql.NewPayrollRepository(db),
		analytics:  postgresql.NewAnalyticsRepository(db),
		close:      db.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	repos, err := openRepositories(cfg)
	if err != nil {
		slog.Error("Failed to open store", "driver", cfg.App.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer repos.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	scheduleSvc := scheduleService.NewScheduleService(repos.schedule, repos.roster, m)
	attendanceSvc := attendanceService.NewAttendanceService(repos.attendance, repos.schedule, repos.roster, m)
	feeSvc := feeService.NewFeeService(repos.fee, repos.roster, m)
	payrollSvc := payrollService.NewPayrollService(repos.payroll, repos.roster, m)
	analyticsSvc := analyticsService.NewAnalyticsService(repos.analytics, repos.fee, repos.payroll)

	if cfg.Cron.Enabled {
		scheduler := cron.NewScheduler(ctx)
		cron.NewLedgerJobs(feeSvc, payrollSvc).RegisterJobs(scheduler, cfg.Cron.Interval)
		scheduler.Start()
		defer scheduler.Stop()
	}

	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Schedule:   appHTTP.NewScheduleHandler(scheduleSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Fee:        appHTTP.NewFeeHandler(feeSvc),
		Salary:     appHTTP.NewSalaryHandler(payrollSvc),
		Analytics:  appHTTP.NewAnalyticsHandler(analyticsSvc),
	}, appHTTP.RouterOptions{
		Env:            cfg.App.Env,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		LogLevel:       cfg.SlogLevel(),
		Metrics:        m.Handler(),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	}()

	slog.Info("Server running", "addr", srv.Addr, "store", cfg.App.StoreDriver, "env", cfg.App.Env)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
	}
}
