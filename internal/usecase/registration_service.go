package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/tournament-registry/internal/domain/registration"
	"github.com/riskibarqy/tournament-registry/internal/domain/tournament"
	"github.com/riskibarqy/tournament-registry/internal/platform/logging"
)

// RegistrationService decides admissions. Checks run in a fixed order
// (tournament exists, then duplicate email, then capacity) so that a request
// hitting several rejection conditions always reports the same one; the
// storage layer repeats the duplicate and capacity guards atomically, so the
// pre-checks here only shape the reported outcome, they do not carry the
// invariant.
type RegistrationService struct {
	tournamentRepo   tournament.Repository
	registrationRepo registration.Repository
	logger           *logging.Logger
}

func NewRegistrationService(
	tournamentRepo tournament.Repository,
	registrationRepo registration.Repository,
	logger *logging.Logger,
) *RegistrationService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RegistrationService{
		tournamentRepo:   tournamentRepo,
		registrationRepo: registrationRepo,
		logger:           logger,
	}
}

func (s *RegistrationService) Register(ctx context.Context, tournamentID int64, name, email string) (registration.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistrationService.Register")
	defer span.End()

	candidate := registration.Player{
		TournamentID: tournamentID,
		Name:         strings.TrimSpace(name),
		Email:        strings.TrimSpace(email),
	}
	if err := candidate.Validate(); err != nil {
		return registration.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	t, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return registration.Player{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return registration.Player{}, fmt.Errorf("%w: tournament=%d", ErrNotFound, tournamentID)
	}

	registered, err := s.registrationRepo.ExistsByEmail(ctx, tournamentID, candidate.Email)
	if err != nil {
		return registration.Player{}, fmt.Errorf("check existing registration: %w", err)
	}
	if registered {
		return registration.Player{}, fmt.Errorf("%w: email=%s tournament=%d", registration.ErrDuplicateRegistration, candidate.Email, tournamentID)
	}

	count, err := s.registrationRepo.CountByTournament(ctx, tournamentID)
	if err != nil {
		return registration.Player{}, fmt.Errorf("count registrations: %w", err)
	}
	if count >= t.MaxPlayers {
		return registration.Player{}, fmt.Errorf("%w: tournament=%d capacity=%d", registration.ErrTournamentFull, tournamentID, t.MaxPlayers)
	}

	admitted, err := s.registrationRepo.Register(ctx, candidate, t.MaxPlayers)
	if err != nil {
		return registration.Player{}, fmt.Errorf("register player: %w", err)
	}

	s.logger.InfoContext(ctx, "player registered",
		"tournament_id", admitted.TournamentID,
		"player_id", admitted.ID,
	)

	return admitted, nil
}

func (s *RegistrationService) ListPlayers(ctx context.Context, tournamentID int64) ([]registration.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistrationService.ListPlayers")
	defer span.End()

	if tournamentID <= 0 {
		return nil, fmt.Errorf("%w: tournament id must be positive", ErrInvalidInput)
	}

	_, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: tournament=%d", ErrNotFound, tournamentID)
	}

	players, err := s.registrationRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	return players, nil
}
