package usecase

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/tournament-registry/internal/domain/registration"
	"github.com/riskibarqy/tournament-registry/internal/domain/tournament"
	"github.com/riskibarqy/tournament-registry/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tournament-registry/internal/platform/logging"
)

func newRegistrationFixture(t *testing.T, maxPlayers int) (*RegistrationService, tournament.Tournament) {
	t.Helper()

	tournamentRepo := memory.NewTournamentRepository()
	registrationRepo := memory.NewRegistrationRepository()

	created, err := tournamentRepo.Create(t.Context(), tournament.Tournament{
		Name:       "Summer Open",
		MaxPlayers: maxPlayers,
		StartAt:    time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("seed tournament: %v", err)
	}

	service := NewRegistrationService(tournamentRepo, registrationRepo, logging.NewNop())
	return service, created
}

func TestRegistrationService_Register(t *testing.T) {
	service, tour := newRegistrationFixture(t, 4)

	player, err := service.Register(t.Context(), tour.ID, "  Alice  ", " alice@example.com ")
	if err != nil {
		t.Fatalf("register player: %v", err)
	}

	if player.ID == 0 {
		t.Fatalf("expected assigned player id")
	}
	if player.Name != "Alice" || player.Email != "alice@example.com" {
		t.Fatalf("expected trimmed fields, got %+v", player)
	}
	if player.TournamentID != tour.ID {
		t.Fatalf("unexpected tournament id: %d", player.TournamentID)
	}
}

func TestRegistrationService_Register_InvalidInput(t *testing.T) {
	service, tour := newRegistrationFixture(t, 4)

	t.Run("bad email", func(t *testing.T) {
		_, err := service.Register(t.Context(), tour.ID, "Alice", "not-an-email")
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := service.Register(t.Context(), tour.ID, "   ", "alice@example.com")
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestRegistrationService_Register_TournamentNotFound(t *testing.T) {
	service, tour := newRegistrationFixture(t, 4)

	_, err := service.Register(t.Context(), tour.ID+99, "Alice", "alice@example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRegistrationService_Register_DuplicateEmail(t *testing.T) {
	service, tour := newRegistrationFixture(t, 4)

	if _, err := service.Register(t.Context(), tour.ID, "Alice", "alice@example.com"); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := service.Register(t.Context(), tour.ID, "Alice Again", "alice@example.com")
	if !errors.Is(err, registration.ErrDuplicateRegistration) {
		t.Fatalf("expected ErrDuplicateRegistration, got %v", err)
	}
}

func TestRegistrationService_Register_TournamentFull(t *testing.T) {
	service, tour := newRegistrationFixture(t, 2)

	for i := 0; i < 2; i++ {
		email := fmt.Sprintf("player%d@example.com", i)
		if _, err := service.Register(t.Context(), tour.ID, "Player", email); err != nil {
			t.Fatalf("register %d: %v", i, err)
		}
	}

	_, err := service.Register(t.Context(), tour.ID, "Late", "late@example.com")
	if !errors.Is(err, registration.ErrTournamentFull) {
		t.Fatalf("expected ErrTournamentFull, got %v", err)
	}
}

// A request that is both a duplicate and over capacity must report the
// duplicate, so the rejection a caller sees does not depend on timing.
func TestRegistrationService_Register_DuplicateReportedBeforeFull(t *testing.T) {
	service, tour := newRegistrationFixture(t, 1)

	if _, err := service.Register(t.Context(), tour.ID, "Alice", "alice@example.com"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := service.Register(t.Context(), tour.ID, "Alice", "alice@example.com")
	if !errors.Is(err, registration.ErrDuplicateRegistration) {
		t.Fatalf("expected ErrDuplicateRegistration to win over full, got %v", err)
	}
}

func TestRegistrationService_Register_SameEmailAcrossTournaments(t *testing.T) {
	tournamentRepo := memory.NewTournamentRepository()
	registrationRepo := memory.NewRegistrationRepository()
	service := NewRegistrationService(tournamentRepo, registrationRepo, logging.NewNop())

	var ids []int64
	for i := 0; i < 2; i++ {
		created, err := tournamentRepo.Create(t.Context(), tournament.Tournament{
			Name:       fmt.Sprintf("Open %d", i),
			MaxPlayers: 4,
			StartAt:    time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("seed tournament: %v", err)
		}
		ids = append(ids, created.ID)
	}

	for _, id := range ids {
		if _, err := service.Register(t.Context(), id, "Alice", "alice@example.com"); err != nil {
			t.Fatalf("register in tournament %d: %v", id, err)
		}
	}
}

func TestRegistrationService_ListPlayers(t *testing.T) {
	service, tour := newRegistrationFixture(t, 4)

	for i := 0; i < 3; i++ {
		email := fmt.Sprintf("player%d@example.com", i)
		if _, err := service.Register(t.Context(), tour.ID, fmt.Sprintf("Player %d", i), email); err != nil {
			t.Fatalf("register %d: %v", i, err)
		}
	}

	players, err := service.ListPlayers(t.Context(), tour.ID)
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(players) != 3 {
		t.Fatalf("expected 3 players, got %d", len(players))
	}

	t.Run("empty roster", func(t *testing.T) {
		svc, empty := newRegistrationFixture(t, 4)
		players, err := svc.ListPlayers(t.Context(), empty.ID)
		if err != nil {
			t.Fatalf("list players: %v", err)
		}
		if len(players) != 0 {
			t.Fatalf("expected empty roster, got %d", len(players))
		}
	})

	t.Run("unknown tournament", func(t *testing.T) {
		_, err := service.ListPlayers(t.Context(), tour.ID+99)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

// Hammers one tournament from many goroutines; the admitted set must match
// capacity exactly even though every request passes the same pre-checks.
func TestRegistrationService_Register_ConcurrentNeverOverAdmits(t *testing.T) {
	const (
		capacity = 5
		attempts = 40
	)

	service, tour := newRegistrationFixture(t, capacity)

	var admitted atomic.Int32
	var wg conc.WaitGroup
	for i := 0; i < attempts; i++ {
		i := i
		wg.Go(func() {
			email := fmt.Sprintf("player%d@example.com", i)
			_, err := service.Register(t.Context(), tour.ID, "Player", email)
			switch {
			case err == nil:
				admitted.Add(1)
			case errors.Is(err, registration.ErrTournamentFull):
			default:
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
	wg.Wait()

	if got := admitted.Load(); got != capacity {
		t.Fatalf("admitted %d players, want %d", got, capacity)
	}

	players, err := service.ListPlayers(t.Context(), tour.ID)
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(players) != capacity {
		t.Fatalf("stored %d players, want %d", len(players), capacity)
	}
}
