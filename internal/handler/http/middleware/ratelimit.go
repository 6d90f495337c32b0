package middleware

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/handler/http/response"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimit limits requests per client IP with an in-process store.
func RateLimit(rate limiter.Rate) func(http.Handler) http.Handler {
	instance := limiter.New(memory.NewStore(), rate)

	limiterMiddleware := stdlib.NewMiddleware(instance,
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			response.TooManyRequests(w, "Too many requests, please try again later")
		}),
		stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			slog.Error("rate limiter error", "error", err)
			response.InternalServerError(w, "An unexpected error occurred")
		}),
	)
	return limiterMiddleware.Handler
}
