package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-registry/internal/domain/tournament"
	qb "github.com/riskibarqy/tournament-registry/internal/platform/querybuilder"
)

type TournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) Create(ctx context.Context, t tournament.Tournament) (tournament.Tournament, error) {
	query, args, err := qb.InsertInto("tournaments").
		Columns("name", "max_players", "start_at").
		Values(t.Name, t.MaxPlayers, t.StartAt).
		Suffix("RETURNING id, created_at").
		ToSQL()
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("build insert tournament query: %w", err)
	}

	var (
		id        int64
		createdAt time.Time
	)
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&id, &createdAt); err != nil {
		return tournament.Tournament{}, fmt.Errorf("insert tournament: %w", err)
	}

	t.ID = id
	t.CreatedAt = createdAt

	return t, nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID int64) (tournament.Tournament, bool, error) {
	query, args, err := qb.Select("*").From("tournaments").
		Where(qb.Eq("id", tournamentID)).
		ToSQL()
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("build get tournament by id query: %w", err)
	}

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("get tournament by id: %w", err)
	}

	return tournament.Tournament{
		ID:         row.ID,
		Name:       row.Name,
		MaxPlayers: row.MaxPlayers,
		StartAt:    row.StartAt,
		CreatedAt:  row.CreatedAt,
	}, true, nil
}
