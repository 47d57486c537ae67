package playerstat

import "context"

// Repository describes player stat persistence needs from use cases.
type Repository interface {
	Exists(ctx context.Context, playerID int64, season, competition string) (bool, error)
	Create(ctx context.Context, s PlayerStat) (PlayerStat, error)
	ListTopScorers(ctx context.Context, season, competition string, limit int) ([]TopScorer, error)
	Count(ctx context.Context) (int, error)
}
