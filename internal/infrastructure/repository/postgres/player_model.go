package postgres

import "time"

type playerTableModel struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	TournamentID int64     `db:"tournament_id"`
	CreatedAt    time.Time `db:"created_at"`
}
