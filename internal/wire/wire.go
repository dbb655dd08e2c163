package wire

import (
	"net/http"

	"movies-service/internal/adaptor"
	"movies-service/internal/data/repository"
	"movies-service/internal/usecase"
	"movies-service/pkg/middleware"
	"movies-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// App holds the wired dependencies.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and the router. Only the services named
// in config.App.Services get routes.
func Wiring(repo *repository.Repository, streams *usecase.Streams, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, streams, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	if config.Limiter.Enabled {
		r.Use(middleware.RateLimit(config.Limiter.RPS, config.Limiter.Burst, logger))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: config.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	if config.App.HasService(utils.ServiceMovieInfo) {
		wireMovieInfo(r, handler.MovieInfo)
		logger.Info("Service mounted", zap.String("service", utils.ServiceMovieInfo))
	}
	if config.App.HasService(utils.ServiceMovieReview) {
		wireReview(r, handler.Review)
		logger.Info("Service mounted", zap.String("service", utils.ServiceMovieReview))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
