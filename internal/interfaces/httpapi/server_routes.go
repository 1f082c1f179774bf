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

func registerTournamentRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/tournaments", handler.CreateTournament)
	mux.HandleFunc("POST /v1/tournaments/{tournamentID}/register", handler.RegisterPlayer)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/players", handler.ListPlayers)
}
