package transport

import (
	"log/slog"
	"net/http"

	"github.com/dwiprm/flight-price-explorer/internal/app/config"
	"github.com/dwiprm/flight-price-explorer/internal/app/dto"
	"github.com/dwiprm/flight-price-explorer/internal/app/endpoints"
	httptransport "github.com/dwiprm/flight-price-explorer/internal/pkg/transport/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-redis/redis_rate/v10"
)

// MakeHTTPRouter builds the HTTP router with all the service endpoints.
func MakeHTTPRouter(
	cfg *config.Config,
	endpts endpoints.Endpoints,
	limiter *redis_rate.Limiter,
) *chi.Mux {
	// Initialize Router
	router := chi.NewRouter()

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1/flights", func(router chi.Router) {
		router.Use(
			httptransport.RequestID(),
			httptransport.CORSMiddleware(),
			httptransport.Recoverer(slog.Default()),
			httptransport.RateLimit(limiter, cfg.HTTP.RateLimitRPS),
			render.SetContentType(render.ContentTypeJSON),
		)

		router.Get("/search", httptransport.MakeHandlerFunc(
			endpts.SearchEndpoint.SearchFlights,
			decodeSearchRequest,
			httptransport.ResponseWithBody,
		))

		router.Post("/filter", httptransport.MakeHandlerFunc(
			endpts.SearchEndpoint.FilterFlights,
			httptransport.DecodeRequest[dto.FilterRequest],
			httptransport.ResponseWithBody,
		))
	})

	router.Route("/api/v1/airports", func(router chi.Router) {
		router.Use(
			httptransport.RequestID(),
			httptransport.CORSMiddleware(),
			httptransport.Recoverer(slog.Default()),
			render.SetContentType(render.ContentTypeJSON),
		)

		router.Get("/", httptransport.MakeHandlerFunc(
			endpts.SearchEndpoint.SearchAirports,
			decodeAirportSearchRequest,
			httptransport.ResponseWithBody,
		))
	})

	return router
}
