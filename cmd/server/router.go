package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/phrazzld/scriptor-api/internal/api"
	"github.com/phrazzld/scriptor-api/internal/api/middleware"
)

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	// Request IDs come from the trace middleware alone.
	r.Use(middleware.TraceMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(app.config.Server.CORSAllowedOrigins))

	articleHandler := api.NewArticleHandler(app.generationService)
	publishHandler := api.NewPublishHandler(app.publisher)

	r.Group(func(r chi.Router) {
		if app.rateLimiter != nil {
			r.Use(app.rateLimiter.Middleware)
		}
		r.Post("/generate-article", articleHandler.GenerateArticle)
		r.Post("/generate-article-html", articleHandler.GenerateArticleHTML)
		r.Post("/publish-article", publishHandler.PublishArticle)
	})

	r.Get("/health", api.Health)

	if app.config.Server.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}
