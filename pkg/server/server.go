package server

import (
	"net/http"

	handlers "github.com/de-tools/policy-atlas/pkg/handlers/coverage"
	policyatlasmiddleware "github.com/de-tools/policy-atlas/pkg/server/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type Dependencies struct {
	Auditor Auditor
	Quota   QuotaAssessor
	Logger  zerolog.Logger
}

// Auditor and QuotaAssessor mirror the handler interfaces so main wires the
// services straight through.
type Auditor = handlers.Auditor
type QuotaAssessor = handlers.QuotaAssessor

type Config struct {
	Dependencies Dependencies
}

// ConfigureRouter builds the read-only API surface. Nothing here creates
// exemptions.
func ConfigureRouter(config Config) http.Handler {
	handler := handlers.NewHandler(config.Dependencies.Auditor, config.Dependencies.Quota)

	router := chi.NewRouter()
	router.Use(policyatlasmiddleware.Logger(&config.Dependencies.Logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/coverage/{managementGroup}", handler.GetCoverage)
		r.Get("/quota", handler.GetQuota)
	})

	return router
}
