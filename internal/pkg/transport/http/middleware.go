package http

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"

	"github.com/dwiprm/flight-price-explorer/internal/pkg/exception"
	"github.com/dwiprm/flight-price-explorer/internal/pkg/logger"
	"github.com/go-chi/cors"
	"github.com/go-redis/redis_rate/v10"
	"github.com/google/uuid"
)

type MiddlewareFunc func(http.Handler) http.Handler

func Recoverer(logger *slog.Logger) MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(respWriter http.ResponseWriter, req *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if err, _ := rvr.(error); errors.Is(err, http.ErrAbortHandler) {
						// we don't recover http.ErrAbortHandler so the response
						// to the client is aborted, this should not be logged
						panic(rvr)
					}

					logger.ErrorContext(req.Context(), "panic occurred", slog.Any("message", rvr), slog.String("stack_trace", string(debug.Stack())))
					respWriter.WriteHeader(http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(respWriter, req)
		})
	}
}

// CORSMiddleware set CORS related headers.
func CORSMiddleware() func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:3000"}, // allow the web UI dev server
		AllowedMethods: []string{"GET", "POST", "PATCH", "PUT", "OPTIONS", "DELETE"},
		AllowedHeaders: []string{"Authorization", "Origin", "Content-Type"},
	})
}

// RequestID add request id to context and response header.
func RequestID() MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-Id")
			if requestID == "" {
				requestID = uuid.New().String()
			}

			ctx := context.WithValue(r.Context(), logger.RequestIDKey, requestID)
			w.Header().Set("X-Request-Id", requestID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

var errTooManyRequests = exception.ApplicationError{
	StatusCode: http.StatusTooManyRequests,
	Message:    "too many requests",
}

// RateLimit throttles per client IP with a distributed leaky bucket.
// Redis errors fail open: search must not go down with the limiter.
func RateLimit(limiter *redis_rate.Limiter, rps int) MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil || rps <= 0 {
				next.ServeHTTP(w, r)

				return
			}

			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}

			res, err := limiter.Allow(r.Context(), "ratelimit:search:"+host, redis_rate.PerSecond(rps))
			if err != nil {
				slog.WarnContext(r.Context(), "rate limiter unavailable, allowing request",
					slog.String("error", err.Error()))

				next.ServeHTTP(w, r)

				return
			}

			if res.Allowed == 0 {
				ErrorResponse(r.Context(), errTooManyRequests, w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
