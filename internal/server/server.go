package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/vladimiradmaev/fittrack/internal/config"
	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
	"github.com/vladimiradmaev/fittrack/internal/handlers"
	"github.com/vladimiradmaev/fittrack/internal/logger"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	router *chi.Mux
	config config.Config
	log    *slog.Logger
}

// New builds the router. A nil deps.Errors gets a handler on the global logger.
func New(cfg config.Config, deps handlers.Dependencies) *Server {
	log := logger.GetLogger()
	if deps.Errors == nil {
		deps.Errors = apperrors.NewHandler(log)
	}

	users := handlers.NewUserHandler(deps)
	catalog := handlers.NewCatalogHandler(deps)
	logs := handlers.NewLogHandler(deps)
	recipes := handlers.NewRecipeHandler(deps)
	cart := handlers.NewCartHandler(deps)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(requestLogger(log))
	router.Use(middleware.Recoverer)
	router.Use(corsMiddleware(cfg.CORS))
	router.Use(render.SetContentType(render.ContentTypeJSON))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})

	router.Route("/api", func(r chi.Router) {
		r.Post("/targets", users.Calculate)

		r.Route("/users", func(r chi.Router) {
			r.Post("/", users.Create)
			r.Get("/{id}", users.Get)
			r.Put("/{id}", users.Update)
			r.Post("/{id}/targets", users.Targets)
		})

		r.Route("/foods", func(r chi.Router) {
			r.Get("/", catalog.ListFoods)
			r.Get("/search", catalog.SearchFoods)
			r.Post("/", catalog.CreateFood)
		})

		r.Route("/exercises", func(r chi.Router) {
			r.Get("/", catalog.ListExercises)
			r.Get("/search", catalog.SearchExercises)
			r.Post("/", catalog.CreateExercise)
		})

		r.Route("/food-logs", func(r chi.Router) {
			r.Get("/{userId}", logs.FoodLogs)
			r.Post("/", logs.CreateFoodLog)
			r.Delete("/{id}", logs.DeleteFoodLog)
		})

		r.Route("/exercise-logs", func(r chi.Router) {
			r.Get("/{userId}", logs.ExerciseLogs)
			r.Get("/{userId}/burned", logs.CaloriesBurned)
			r.Post("/", logs.CreateExerciseLog)
			r.Delete("/{id}", logs.DeleteExerciseLog)
		})

		r.Route("/water-intake", func(r chi.Router) {
			r.Get("/{userId}", logs.WaterLogs)
			r.Get("/{userId}/total", logs.WaterTotal)
			r.Post("/", logs.CreateWaterLog)
			r.Delete("/{id}", logs.DeleteWaterLog)
		})

		r.Route("/nutrition/{userId}", func(r chi.Router) {
			r.Get("/progress", logs.Progress)
			r.Get("/meals/{mealType}", logs.MealTotals)
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", recipes.List)
			r.Get("/recommend", recipes.Recommend)
			r.Post("/generate", recipes.Generate)
			r.Get("/{id}", recipes.Get)
			r.Post("/", recipes.Create)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalog.ListProducts)
			r.Get("/{id}", catalog.GetProduct)
			r.Post("/", catalog.CreateProduct)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/{userId}", cart.Get)
			r.Post("/", cart.Add)
			r.Put("/{id}", cart.Update)
			r.Delete("/{id}", cart.Remove)
			r.Delete("/user/{userId}", cart.Clear)
		})
	})

	return &Server{router: router, config: cfg, log: log}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve listens on the configured port until ctx is cancelled, then
// drains in-flight requests.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.config.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server started", "port", s.config.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}
	s.log.Info("HTTP server exited properly")
	return nil
}
