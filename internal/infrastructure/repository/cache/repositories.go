package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/tournament-registry/internal/domain/tournament"
	basecache "github.com/riskibarqy/tournament-registry/internal/platform/cache"
)

// TournamentRepository caches GetByID lookups. Tournaments are immutable
// after creation, so cached entries can never go stale; player reads are
// deliberately not decorated.
type TournamentRepository struct {
	next  tournament.Repository
	cache *basecache.Store
}

func NewTournamentRepository(next tournament.Repository, cache *basecache.Store) *TournamentRepository {
	return &TournamentRepository{next: next, cache: cache}
}

func (r *TournamentRepository) Create(ctx context.Context, t tournament.Tournament) (tournament.Tournament, error) {
	created, err := r.next.Create(ctx, t)
	if err != nil {
		return tournament.Tournament{}, err
	}

	r.cache.Set(ctx, tournamentKey(created.ID), cachedTournamentByID{value: created, exists: true})

	return created, nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID int64) (tournament.Tournament, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, tournamentKey(tournamentID), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		return cachedTournamentByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return tournament.Tournament{}, false, err
	}

	cached, _ := v.(cachedTournamentByID)
	return cached.value, cached.exists, nil
}

type cachedTournamentByID struct {
	value  tournament.Tournament
	exists bool
}

func tournamentKey(tournamentID int64) string {
	return "tournament:id:" + strconv.FormatInt(tournamentID, 10)
}
