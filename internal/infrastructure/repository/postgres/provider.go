package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/MironKaigorodcev/ETLfootball/internal/usecase"
)

// StoreProvider builds repositories over a shared connection pool and
// runs transactional units of work.
type StoreProvider struct {
	db *sqlx.DB
}

func NewStoreProvider(db *sqlx.DB) *StoreProvider {
	return &StoreProvider{db: db}
}

func (p *StoreProvider) Stores() usecase.Stores {
	return storesFor(p.db)
}

func (p *StoreProvider) WithinTx(ctx context.Context, fn func(ctx context.Context, s usecase.Stores) error) error {
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return crerr.Wrap(err, "begin tx")
	}

	if err := fn(ctx, storesFor(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			err = crerr.CombineErrors(err, crerr.Wrap(rbErr, "rollback"))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit tx")
	}
	return nil
}

func storesFor(q Querier) usecase.Stores {
	return usecase.Stores{
		Teams:       NewTeamRepository(q),
		Players:     NewPlayerRepository(q),
		Matches:     NewMatchRepository(q),
		SquadStats:  NewSquadStatRepository(q),
		PlayerStats: NewPlayerStatRepository(q),
	}
}
