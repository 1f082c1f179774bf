package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-registry/internal/domain/tournament"
)

type TournamentService struct {
	tournamentRepo tournament.Repository
}

func NewTournamentService(tournamentRepo tournament.Repository) *TournamentService {
	return &TournamentService{tournamentRepo: tournamentRepo}
}

type CreateTournamentInput struct {
	Name       string
	MaxPlayers int
	StartAt    time.Time
}

func (s *TournamentService) Create(ctx context.Context, input CreateTournamentInput) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Create")
	defer span.End()

	candidate := tournament.Tournament{
		Name:       strings.TrimSpace(input.Name),
		MaxPlayers: input.MaxPlayers,
		StartAt:    input.StartAt,
	}
	if err := candidate.Validate(); err != nil {
		return tournament.Tournament{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.tournamentRepo.Create(ctx, candidate)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("create tournament: %w", err)
	}

	return created, nil
}

func (s *TournamentService) GetByID(ctx context.Context, tournamentID int64) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.GetByID")
	defer span.End()

	if tournamentID <= 0 {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament id must be positive", ErrInvalidInput)
	}

	t, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%d", ErrNotFound, tournamentID)
	}

	return t, nil
}
