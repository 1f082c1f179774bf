package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/tournament-registry/internal/domain/tournament"
)

type TournamentRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]tournament.Tournament
}

func NewTournamentRepository() *TournamentRepository {
	return &TournamentRepository{
		byID: make(map[int64]tournament.Tournament),
	}
}

func (r *TournamentRepository) Create(_ context.Context, t tournament.Tournament) (tournament.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	t.ID = r.nextID
	t.CreatedAt = time.Now().UTC()
	r.byID[t.ID] = t

	return t, nil
}

func (r *TournamentRepository) GetByID(_ context.Context, tournamentID int64) (tournament.Tournament, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[tournamentID]
	return t, ok, nil
}
