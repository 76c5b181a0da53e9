package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"investmenttracker/internal/api/handlers"
	custommiddleware "investmenttracker/internal/api/middleware"
	"investmenttracker/internal/config"
	"investmenttracker/internal/ratelimit"
	"investmenttracker/internal/service"
	"investmenttracker/internal/session"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	authService *service.AuthService,
	stockService *service.StockService,
	fundService *service.FundService,
	flash *session.Flash,
	quoteWindow *ratelimit.Window,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	authHandler := handlers.NewAuthHandler(authService, flash)
	dashboardHandler := handlers.NewDashboardHandler(stockService, fundService, flash, cfg.Refresh.DashboardLimit)
	stockHandler := handlers.NewStockHandler(stockService, flash, cfg.Refresh.StocksLimit)
	quoteHandler := handlers.NewQuoteHandler(stockService, quoteWindow)
	fundHandler := handlers.NewFundHandler(fundService, flash)
	systemHandler := handlers.NewSystemHandler()

	// Login entry point; redirect target for auth failures
	r.Get("/", authHandler.Index)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Get("/logout", authHandler.Logout)
		})

		r.Get("/dashboard", dashboardHandler.Dashboard)

		r.Route("/stocks", func(r chi.Router) {
			r.Get("/", stockHandler.Stocks)
			r.Post("/", stockHandler.AddStock)
			r.Post("/quote", quoteHandler.Quote)
			r.Delete("/{ticker}", stockHandler.DeleteStock)
		})

		r.Route("/mutual-funds", func(r chi.Router) {
			r.Get("/", fundHandler.Funds)
			r.Post("/", fundHandler.AddFund)
			r.Delete("/{schemeCode}", fundHandler.DeleteFund)
		})

		r.Route("/system", func(r chi.Router) {
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})
	})

	return r
}
