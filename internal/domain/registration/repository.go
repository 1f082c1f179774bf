package registration

import "context"

// Repository persists registrations. Register must apply the duplicate and
// capacity checks atomically with the insert; callers may pre-check, but only
// the repository decision is authoritative under concurrency.
type Repository interface {
	Register(ctx context.Context, player Player, maxPlayers int) (Player, error)
	ExistsByEmail(ctx context.Context, tournamentID int64, email string) (bool, error)
	CountByTournament(ctx context.Context, tournamentID int64) (int, error)
	ListByTournament(ctx context.Context, tournamentID int64) ([]Player, error)
}
