package httpapi

import (
	"net/http"

	"github.com/MironKaigorodcev/ETLfootball/internal/platform/logging"
)

func NewRouter(handler *Handler, logger *logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}/matches", handler.ListTeamMatches)
	mux.HandleFunc("GET /v1/teams/{teamID}/stats", handler.GetTeamSeasonStats)
	mux.HandleFunc("GET /v1/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/topscorers", handler.ListTopScorers)
	mux.HandleFunc("GET /v1/summary", handler.GetSummary)

	return RequestTracing(RequestLogging(logger, recoverPanic(logger, mux)))
}
