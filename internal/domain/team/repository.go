package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	GetByExternalID(ctx context.Context, externalID string) (Team, bool, error)
	GetByID(ctx context.Context, id int64) (Team, bool, error)
	Create(ctx context.Context, t Team) (Team, error)
	List(ctx context.Context) ([]Team, error)
	Count(ctx context.Context) (int, error)
}
