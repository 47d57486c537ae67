package match

import (
	"context"
	"time"
)

// Repository describes match persistence needs from use cases.
type Repository interface {
	ExistsByDateAndHomeTeam(ctx context.Context, date time.Time, homeTeamID int64) (bool, error)
	Create(ctx context.Context, m Match) (Match, error)
	ListByTeam(ctx context.Context, teamID int64) ([]Match, error)
	ListPlayed(ctx context.Context, competition string) ([]Match, error)
	Count(ctx context.Context) (int, error)
}
