package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerFixtureRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/months", handler.ListMonths)
	mux.HandleFunc("GET /v1/months/{month}/weekends", handler.ListMonthWeekends)
	mux.HandleFunc("GET /v1/months/{month}/fixtures", handler.ListMonthFixtures)
	mux.HandleFunc("GET /v1/fixtures/nearby", handler.ListNearbyFixtures)
}
