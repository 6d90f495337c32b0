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

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/config"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/period"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/user"
	appHTTP "github.com/cmlabs-hris/timesheet-payroll-go/internal/handler/http"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/pkg/cron"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/pkg/logger"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/repository/memory"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/repository/postgresql"
	redisCache "github.com/cmlabs-hris/timesheet-payroll-go/internal/repository/redis"
	attendanceService "github.com/cmlabs-hris/timesheet-payroll-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/timesheet-payroll-go/internal/service/auth"
	employeeService "github.com/cmlabs-hris/timesheet-payroll-go/internal/service/employee"
	payrollService "github.com/cmlabs-hris/timesheet-payroll-go/internal/service/payroll"
	periodService "github.com/cmlabs-hris/timesheet-payroll-go/internal/service/period"
	userService "github.com/cmlabs-hris/timesheet-payroll-go/internal/service/user"
	"github.com/ulule/limiter/v3"
)

// repositories is the persistence surface shared by both store drivers.
type repositories struct {
	tx         database.Transactor
	employees  employee.EmployeeRepository
	periods    period.PeriodRepository
	attendance attendance.AttendanceRepository
	summary    payroll.SummaryRepository
	users      user.UserRepository
	close      func()
}

func openRepositories(ctx context.Context, cfg *config.Config, log *slog.Logger) (repositories, error) {
	if cfg.Database.Driver == config.StoreDriverMemory {
		log.Warn("using in-memory store, data is lost on restart")
		store := memory.NewStore()
		return repositories{
			tx:         store.Transactor(),
			employees:  store.Employees(),
			periods:    store.Periods(),
			attendance: store.Attendance(),
			summary:    store.PayrollSummary(),
			users:      store.Users(),
			close:      func() {},
		}, nil
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return repositories{}, fmt.Errorf("connect to database: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := postgresql.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return repositories{}, fmt.Errorf("apply schema: %w", err)
		}
		log.Info("database schema ensured")
	}

	return repositories{
		tx:         postgresql.NewTransactor(db),
		employees:  postgresql.NewEmployeeRepository(db),
		periods:    postgresql.NewPeriodRepository(db),
		attendance: postgresql.NewAttendanceRepository(db),
		summary:    postgresql.NewPayrollSummaryRepository(db),
		users:      postgresql.NewUserRepository(db),
		close:      db.Close,
	}, nil
}

// openSummaryCache reports enabled=false when summaries are not cached.
func openSummaryCache(ctx context.Context, cfg *config.Config, log *slog.Logger) (cache payroll.SummaryCache, enabled bool, closeFn func()) {
	addr := cfg.RedisAddr()
	if addr == "" {
		return payroll.NopCache{}, false, func() {}
	}

	rdb, err := redisCache.NewClient(ctx, redisCache.Options{
		Addr:     addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("summary cache disabled, redis unreachable", "addr", addr, "error", err)
		return payroll.NopCache{}, false, func() {}
	}
	log.Info("summary cache enabled", "addr", addr, "ttl", cfg.Redis.TTL.String())
	return redisCache.NewSummaryCache(rdb, cfg.Redis.TTL), true, func() { _ = rdb.Close() }
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.App.LogLevel, cfg.App.Env)
	slog.SetDefault(log)
	response.ExposeInternalErrors(cfg.IsDevelopment())

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer repos.close()

	cache, cacheEnabled, closeCache := openSummaryCache(ctx, cfg, log)
	defer closeCache()

	loginRate, err := limiter.NewRateFromFormatted(cfg.RateLimit.Login)
	if err != nil {
		return fmt.Errorf("invalid LOGIN_RATE_LIMIT: %w", err)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	employeeSvc := employeeService.NewEmployeeService(repos.employees, cache, log)
	userSvc := userService.NewUserService(repos.users, log)
	authSvc := serviceAuth.NewAuthService(repos.users, repos.employees, JWTService, log)
	periodSvc := periodService.NewPeriodService(repos.periods, log)
	attendanceSvc := attendanceService.NewAttendanceService(
		repos.attendance,
		repos.employees,
		repos.periods,
		employeeSvc,
		cache,
		log,
	)
	payrollSvc := payrollService.NewPayrollService(
		repos.tx,
		repos.attendance,
		repos.summary,
		repos.employees,
		repos.periods,
		employeeSvc,
		cache,
		log,
	)

	if cfg.Bootstrap.AdminUsername != "" {
		created, err := userSvc.EnsureAdmin(ctx, cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword)
		if err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
		if created {
			log.Info("bootstrap admin created", "username", cfg.Bootstrap.AdminUsername)
		}
	}

	scheduler := cron.NewScheduler(log)
	if cacheEnabled {
		scheduler.AddJob("warm-current-summary", cfg.Redis.WarmInterval, cron.WarmCurrentSummary(periodSvc, payrollSvc))
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		log,
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.App.AllowedOrigins,
			LoginRate:      loginRate,
		},
		JWTService,
		appHTTP.Handlers{
			Auth:       appHTTP.NewAuthHandler(authSvc),
			User:       appHTTP.NewUserHandler(userSvc),
			Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
			Period:     appHTTP.NewPeriodHandler(periodSvc),
			Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
			Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", server.Addr, "store", cfg.Database.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
