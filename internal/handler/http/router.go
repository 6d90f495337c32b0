package http

import (
	"log/slog"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/ulule/limiter/v3"
)

type RouterConfig struct {
	AllowedOrigins []string
	LoginRate      limiter.Rate
}

type Handlers struct {
	Auth       AuthHandler
	User       UserHandler
	Employee   EmployeeHandler
	Period     PeriodHandler
	Attendance AttendanceHandler
	Payroll    PayrollHandler
}

func NewRouter(logger *slog.Logger, cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
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

	loginLimit := middleware.RateLimit(cfg.LoginRate)
	allow := middleware.RequirePermission

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth/login", func(r chi.Router) {
			r.Use(loginLimit)
			r.Post("/", h.Auth.Login)
			r.Post("/employee-code", h.Auth.LoginWithEmployeeCode)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Post("/auth/logout", h.Auth.Logout)
			r.Get("/auth/me", h.Auth.Me)

			r.Route("/users", func(r chi.Router) {
				r.Use(allow(user.PermissionUserManage))
				r.Post("/", h.User.Create)
				r.Get("/", h.User.List)
				r.Get("/{id}", h.User.Get)
				r.Put("/{id}", h.User.Update)
			})

			r.Route("/employees", func(r chi.Router) {
				r.With(allow(user.PermissionPasswordEditOwn)).Post("/update-password", h.Employee.UpdateOwnPassword)

				// Read
				r.Group(func(r chi.Router) {
					r.Use(allow(user.PermissionEmployeeView))
					r.Get("/", h.Employee.List)
					r.Get("/stats", h.Employee.Stats)
					r.Get("/{id}", h.Employee.Get)
					r.Get("/{id}/check-password", h.Employee.PasswordStatus)
				})

				// Write
				r.Group(func(r chi.Router) {
					r.Use(allow(user.PermissionEmployeeManage))
					r.Post("/", h.Employee.Create)
					r.Put("/{id}", h.Employee.Update)
					r.Delete("/{id}", h.Employee.Delete)
					r.Post("/reset-password", h.Employee.ResetPassword)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.With(allow(user.PermissionEmployeeView)).Get("/employees/department", h.Employee.ByDepartment)

				r.Route("/periods", func(r chi.Router) {
					r.Group(func(r chi.Router) {
						r.Use(allow(user.PermissionPeriodView))
						r.Get("/", h.Period.List)
						r.Get("/current", h.Period.Current)
						r.Get("/{id}", h.Period.Get)
						r.Get("/{id}/dates", h.Period.Dates)
					})
					r.With(allow(user.PermissionPeriodManage)).Post("/", h.Period.Create)
					r.With(allow(user.PermissionAttendanceView)).Get("/{id}/attendance", h.Attendance.PeriodAttendance)

					r.Group(func(r chi.Router) {
						r.Use(allow(user.PermissionPayrollView))
						r.Get("/{id}/summary", h.Payroll.Summary)
						r.Get("/{id}/daily-totals", h.Payroll.DailyTotals)
						r.Get("/{id}/export/csv", h.Payroll.ExportCSV)
					})
				})
			})

			// Timesheet
			r.Group(func(r chi.Router) {
				r.Use(allow(user.PermissionAttendanceView))
				r.Get("/attendance", h.Attendance.List)
				r.Get("/attendance/approval-status", h.Payroll.ApprovalStatus)
				r.Get("/status", h.Payroll.ApprovalStatus)
				r.Get("/can-edit/{employeeId}/{periodId}", h.Payroll.CanEdit)
			})

			r.Group(func(r chi.Router) {
				r.Use(allow(user.PermissionAttendanceManage))
				r.Post("/attendance", h.Attendance.Save)
				r.Delete("/attendance", h.Attendance.DeleteDay)
				r.Delete("/attendance-records/employee/{employeeId}/period/{periodId}", h.Attendance.DeleteRecords)
			})

			r.Group(func(r chi.Router) {
				r.Use(allow(user.PermissionAttendanceApprove))
				r.Put("/attendance/approve", h.Payroll.Approve)
				r.Put("/attendance/unapprove", h.Payroll.Unapprove)
				r.Put("/attendance/bulk-approve", h.Payroll.BulkApprove)
			})

			r.With(allow(user.PermissionPayrollView)).Get("/payroll-summary", h.Payroll.Summary)
			r.With(allow(user.PermissionPayrollManage)).Delete("/payroll-summary/employee/{employeeId}/period/{periodId}", h.Payroll.DeleteSummary)
		})
	})
	return r
}
