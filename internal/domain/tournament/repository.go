package tournament

import "context"

type Repository interface {
	Create(ctx context.Context, t Tournament) (Tournament, error)
	GetByID(ctx context.Context, tournamentID int64) (Tournament, bool, error)
}
