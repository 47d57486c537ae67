package httpapi

import (
	"net/http"
	"strconv"

	crerr "github.com/cockroachdb/errors"

	"github.com/MironKaigorodcev/ETLfootball/internal/platform/logging"
	"github.com/MironKaigorodcev/ETLfootball/internal/usecase"
)

// Handler serves read-only queries over previously scraped data.
type Handler struct {
	stats  *usecase.StatsService
	logger *logging.Logger
}

func NewHandler(stats *usecase.StatsService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{stats: stats, logger: logger}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.stats.Teams(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	res := make([]TeamDTO, 0, len(teams))
	for _, t := range teams {
		res = append(res, TeamDTO{
			ID:         t.ID,
			ExternalID: t.ExternalID,
			Name:       t.Name,
			URL:        t.URL,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, res)
}

func (h *Handler) ListTeamMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamMatches")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matches, err := h.stats.TeamMatches(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list team matches failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	res := make([]MatchDTO, 0, len(matches))
	for _, m := range matches {
		res = append(res, MatchDTO{
			ID:          m.ID,
			Date:        m.Date.Format("2006-01-02"),
			HomeTeamID:  m.HomeTeamID,
			AwayTeamID:  m.AwayTeamID,
			HomeScore:   m.HomeScore,
			AwayScore:   m.AwayScore,
			Competition: m.Competition,
			Round:       m.Round,
			Venue:       m.Venue,
			Attendance:  m.Attendance,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, res)
}

func (h *Handler) GetTeamSeasonStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamSeasonStats")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	stat, err := h.stats.TeamSeason(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team season stats failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, SquadStatDTO{
		TeamID:        stat.TeamID,
		Season:        stat.Season,
		Competition:   stat.Competition,
		GoalsFor:      stat.GoalsFor,
		GoalsAgainst:  stat.GoalsAgainst,
		Possession:    stat.Possession,
		Tackles:       stat.Tackles,
		TacklesWon:    stat.TacklesWon,
		Blocks:        stat.Blocks,
		Interceptions: stat.Interceptions,
		Clearances:    stat.Clearances,
	})
}

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	standings, err := h.stats.Standings(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	res := make([]StandingDTO, 0, len(standings))
	for i, row := range standings {
		res = append(res, StandingDTO{
			Rank:         i + 1,
			TeamID:       row.TeamID,
			TeamName:     row.TeamName,
			Played:       row.Played,
			Wins:         row.Wins,
			Draws:        row.Draws,
			Losses:       row.Losses,
			GoalsFor:     row.GoalsFor,
			GoalsAgainst: row.GoalsAgainst,
			GoalDiff:     row.GoalDiff,
			Points:       row.Points,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, res)
}

func (h *Handler) ListTopScorers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTopScorers")
	defer span.End()

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(ctx, w, crerr.Wrapf(usecase.ErrInvalidArgument, "limit %q", raw))
			return
		}
		limit = parsed
	}

	scorers, err := h.stats.TopScorers(ctx, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list top scorers failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	res := make([]TopScorerDTO, 0, len(scorers))
	for i, s := range scorers {
		res = append(res, TopScorerDTO{
			Rank:       i + 1,
			PlayerName: s.PlayerName,
			TeamName:   s.TeamName,
			Goals:      s.Goals,
			Assists:    s.Assists,
			Minutes:    s.Minutes,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, res)
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSummary")
	defer span.End()

	counts, err := h.stats.Counts(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get summary failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, SummaryDTO{
		Teams:       counts.Teams,
		Players:     counts.Players,
		Matches:     counts.Matches,
		SquadStats:  counts.SquadStats,
		PlayerStats: counts.PlayerStats,
	})
}

func pathID(r *http.Request, key string) (int64, error) {
	raw := r.PathValue(key)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, crerr.Wrapf(usecase.ErrInvalidArgument, "%s %q", key, raw)
	}
	return id, nil
}
