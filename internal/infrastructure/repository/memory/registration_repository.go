package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/tournament-registry/internal/domain/registration"
)

type RegistrationRepository struct {
	mu           sync.RWMutex
	nextID       int64
	byTournament map[int64][]registration.Player
	emailIndex   map[int64]map[string]struct{}
}

func NewRegistrationRepository() *RegistrationRepository {
	return &RegistrationRepository{
		byTournament: make(map[int64][]registration.Player),
		emailIndex:   make(map[int64]map[string]struct{}),
	}
}

// Register holds the write lock for the whole admission decision, so the
// duplicate and capacity checks and the insert behave as one atomic step.
func (r *RegistrationRepository) Register(_ context.Context, player registration.Player, maxPlayers int) (registration.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	emails, ok := r.emailIndex[player.TournamentID]
	if !ok {
		emails = make(map[string]struct{})
		r.emailIndex[player.TournamentID] = emails
	}
	if _, exists := emails[player.Email]; exists {
		return registration.Player{}, fmt.Errorf("%w: email=%s tournament=%d", registration.ErrDuplicateRegistration, player.Email, player.TournamentID)
	}
	if len(r.byTournament[player.TournamentID]) >= maxPlayers {
		return registration.Player{}, fmt.Errorf("%w: tournament=%d capacity=%d", registration.ErrTournamentFull, player.TournamentID, maxPlayers)
	}

	r.nextID++
	player.ID = r.nextID
	player.CreatedAt = time.Now().UTC()
	r.byTournament[player.TournamentID] = append(r.byTournament[player.TournamentID], player)
	emails[player.Email] = struct{}{}

	return player, nil
}

func (r *RegistrationRepository) ExistsByEmail(_ context.Context, tournamentID int64, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.emailIndex[tournamentID][email]
	return exists, nil
}

func (r *RegistrationRepository) CountByTournament(_ context.Context, tournamentID int64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byTournament[tournamentID]), nil
}

func (r *RegistrationRepository) ListByTournament(_ context.Context, tournamentID int64) ([]registration.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	players := r.byTournament[tournamentID]
	out := make([]registration.Player, 0, len(players))
	out = append(out, players...)

	return out, nil
}
