package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/atinyakov/VendorDesk/internal/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the vendor
// login pages and the JSON vendor API.
//
// Routes:
//
//	GET  /login                → authHandler.LoginPage
//	POST /stager               → authHandler.Stager (form encoded)
//	GET  /api/vendors          → vendorHandler.List
//	POST /api/vendors          → vendorHandler.Register (JSON)
//	GET  /api/vendors/search   → vendorHandler.Search
//	GET  /api/vendors/{id}     → vendorHandler.Get
//	PUT  /api/vendors/{id}     → vendorHandler.Save (JSON)
//
// Every request passes through RequestID, RealIP, request logging and Recoverer.
func NewRouter(
	authHandler *AuthHandler,
	vendorHandler *VendorHandler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(chiMiddleware.Recoverer)

	r.Get("/login", authHandler.LoginPage)
	r.With(chiMiddleware.AllowContentType("application/x-www-form-urlencoded", "multipart/form-data")).
		Post("/stager", authHandler.Stager)

	r.Route("/api/vendors", func(r chi.Router) {
		r.Use(chiMiddleware.AllowContentType("application/json"))

		r.Get("/", vendorHandler.List)
		r.Post("/", vendorHandler.Register)
		r.Get("/search", vendorHandler.Search)
		r.Get("/{id}", vendorHandler.Get)
		r.Put("/{id}", vendorHandler.Save)
	})

	return r
}
