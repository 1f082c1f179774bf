package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-registry/internal/domain/registration"
	qb "github.com/riskibarqy/tournament-registry/internal/platform/querybuilder"
)

type RegistrationRepository struct {
	db *sqlx.DB
}

func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Register admits a player inside one transaction. The tournament row is
// locked first, which serializes admissions per tournament; the capacity
// check therefore sees every committed registration, and the
// (email, tournament_id) unique constraint excludes concurrent duplicates
// that raced past the use-case pre-check.
func (r *RegistrationRepository) Register(ctx context.Context, player registration.Player, _ int) (registration.Player, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return registration.Player{}, fmt.Errorf("begin tx for registration: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const lockTournamentQuery = `
SELECT max_players
FROM tournaments
WHERE id = $1
FOR UPDATE`

	var maxPlayers int
	if err := tx.GetContext(ctx, &maxPlayers, lockTournamentQuery, player.TournamentID); err != nil {
		if isNotFound(err) {
			return registration.Player{}, fmt.Errorf("tournament %d not found while registering", player.TournamentID)
		}
		return registration.Player{}, fmt.Errorf("lock tournament row: %w", err)
	}

	const countQuery = `
SELECT COUNT(*)
FROM players
WHERE tournament_id = $1`

	var count int
	if err := tx.GetContext(ctx, &count, countQuery, player.TournamentID); err != nil {
		return registration.Player{}, fmt.Errorf("count players in tx: %w", err)
	}
	if count >= maxPlayers {
		return registration.Player{}, fmt.Errorf("%w: tournament=%d capacity=%d", registration.ErrTournamentFull, player.TournamentID, maxPlayers)
	}

	const insertQuery = `
INSERT INTO players (name, email, tournament_id)
VALUES ($1, $2, $3)
RETURNING id, created_at`

	var (
		id        int64
		createdAt time.Time
	)
	if err := tx.QueryRowxContext(ctx, insertQuery, player.Name, player.Email, player.TournamentID).Scan(&id, &createdAt); err != nil {
		if isUniqueViolation(err) {
			return registration.Player{}, fmt.Errorf("%w: email=%s tournament=%d", registration.ErrDuplicateRegistration, player.Email, player.TournamentID)
		}
		return registration.Player{}, fmt.Errorf("insert player: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return registration.Player{}, fmt.Errorf("commit registration: %w", err)
	}

	player.ID = id
	player.CreatedAt = createdAt

	return player, nil
}

func (r *RegistrationRepository) ExistsByEmail(ctx context.Context, tournamentID int64, email string) (bool, error) {
	query, args, err := qb.Select("1").From("players").
		Where(
			qb.Eq("tournament_id", tournamentID),
			qb.Eq("email", email),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build player exists query: %w", err)
	}

	var one int
	if err := r.db.GetContext(ctx, &one, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("check player exists: %w", err)
	}

	return true, nil
}

func (r *RegistrationRepository) CountByTournament(ctx context.Context, tournamentID int64) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("players").
		Where(qb.Eq("tournament_id", tournamentID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count players query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}

	return count, nil
}

func (r *RegistrationRepository) ListByTournament(ctx context.Context, tournamentID int64) ([]registration.Player, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("tournament_id", tournamentID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]registration.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, registration.Player{
			ID:           row.ID,
			Name:         row.Name,
			Email:        row.Email,
			TournamentID: row.TournamentID,
			CreatedAt:    row.CreatedAt,
		})
	}

	return out, nil
}
