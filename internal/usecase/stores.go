package usecase

import (
	"context"

	"github.com/MironKaigorodcev/ETLfootball/internal/domain/match"
	"github.com/MironKaigorodcev/ETLfootball/internal/domain/player"
	"github.com/MironKaigorodcev/ETLfootball/internal/domain/playerstat"
	"github.com/MironKaigorodcev/ETLfootball/internal/domain/squadstat"
	"github.com/MironKaigorodcev/ETLfootball/internal/domain/team"
)

// Stores bundles every repository a use case touches.
type Stores struct {
	Teams       team.Repository
	Players     player.Repository
	Matches     match.Repository
	SquadStats  squadstat.Repository
	PlayerStats playerstat.Repository
}

// StoreProvider hands out repositories, either free-standing or bound to
// one transaction. WithinTx commits when fn returns nil and rolls back
// otherwise, so a failure while storing one team leaves nothing partial
// behind.
type StoreProvider interface {
	Stores() Stores
	WithinTx(ctx context.Context, fn func(ctx context.Context, s Stores) error) error
}
