package postgres

import "time"

type tournamentTableModel struct {
	ID         int64     `db:"id"`
	Name       string    `db:"name"`
	MaxPlayers int       `db:"max_players"`
	StartAt    time.Time `db:"start_at"`
	CreatedAt  time.Time `db:"created_at"`
}
