package squadstat

import "context"

// Repository describes squad stat persistence needs from use cases.
type Repository interface {
	Exists(ctx context.Context, teamID int64, season, competition string) (bool, error)
	Create(ctx context.Context, s SquadStat) (SquadStat, error)
	GetByTeam(ctx context.Context, teamID int64, season, competition string) (SquadStat, bool, error)
	Count(ctx context.Context) (int, error)
}
