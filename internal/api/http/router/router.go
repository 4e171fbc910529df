package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avolkov/calcpad-server/internal/api/http/handler"
	"github.com/avolkov/calcpad-server/internal/api/http/middleware"
	"github.com/avolkov/calcpad-server/internal/logger"
	"github.com/avolkov/calcpad-server/internal/model"
	"github.com/avolkov/calcpad-server/internal/service"
)

// Router represents an HTTP router for calcpad operations.
// It manages handler registration and middleware configuration.
type Router struct {
	authService        *service.Auth
	calculationService *service.Calculation
	tokenManager       model.TokenManager
	contextManager     model.ContextManager
	logger             *logger.Logger
}

// New creates a new Router instance.
func New(
	authService *service.Auth,
	calculationService *service.Calculation,
	tokenManager model.TokenManager,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:        authService,
		calculationService: calculationService,
		tokenManager:       tokenManager,
		contextManager:     contextManager,
		logger:             logger,
	}
}

// Register builds the route tree with all middleware attached.
// Calculation history endpoints require a bearer token, the rest of the
// surface is public.
func (r *Router) Register() http.Handler {
	requestID := middleware.NewRequestID()
	logging := middleware.NewLogging(r.logger)
	metrics := middleware.NewMetrics()
	authenticate := middleware.NewAuthenticate(r.tokenManager, r.contextManager, r.logger)

	systemHandler := handler.NewSystem(r.logger)
	authHandler := handler.NewAuth(r.authService, r.logger)
	calculationHandler := handler.NewCalculation(r.calculationService, r.contextManager, r.logger)

	mux := chi.NewRouter()
	mux.Use(requestID.Handle)
	mux.Use(logging.Handle)
	mux.Use(metrics.Handle)

	mux.NotFound(handler.NotFound)
	mux.MethodNotAllowed(handler.MethodNotAllowed)

	mux.Get("/api", systemHandler.APIInfo)
	mux.Get("/health", systemHandler.Health)
	mux.Handle("/metrics", promhttp.Handler())

	mux.Post("/calculate", calculationHandler.Calculate)

	mux.Route("/users", func(users chi.Router) {
		users.Post("/register", authHandler.Register)
		users.Post("/login", authHandler.Login)
		users.Get("/", authHandler.ListUsers)
		users.Get("/{id}", authHandler.GetUser)
		users.Put("/{id}", authHandler.UpdateUser)
		users.Delete("/{id}", authHandler.DeleteUser)
	})

	mux.Route("/calculations", func(calculations chi.Router) {
		calculations.Use(authenticate.Handle)
		calculations.Post("/", calculationHandler.Create)
		calculations.Get("/", calculationHandler.List)
		calculations.Get("/stats/summary", calculationHandler.Stats)
		calculations.Get("/{id}", calculationHandler.Get)
		calculations.Put("/{id}", calculationHandler.Update)
		calculations.Patch("/{id}", calculationHandler.Update)
		calculations.Delete("/{id}", calculationHandler.Delete)
	})

	return mux
}
