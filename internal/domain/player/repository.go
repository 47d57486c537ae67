package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	GetByNameAndTeam(ctx context.Context, name string, teamID int64) (Player, bool, error)
	Create(ctx context.Context, p Player) (Player, error)
	Count(ctx context.Context) (int, error)
}
