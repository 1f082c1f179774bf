package registration

import (
	"strings"
	"testing"
)

func validPlayer() Player {
	return Player{
		TournamentID: 1,
		Name:         "Alice",
		Email:        "alice@example.com",
	}
}

func TestPlayer_Validate(t *testing.T) {
	if err := validPlayer().Validate(); err != nil {
		t.Fatalf("expected valid player, got %v", err)
	}

	t.Run("missing tournament id", func(t *testing.T) {
		p := validPlayer()
		p.TournamentID = 0
		if err := p.Validate(); err == nil {
			t.Fatalf("expected error for missing tournament id")
		}
	})

	t.Run("empty name", func(t *testing.T) {
		p := validPlayer()
		p.Name = " "
		if err := p.Validate(); err == nil {
			t.Fatalf("expected error for empty name")
		}
	})

	t.Run("name too long", func(t *testing.T) {
		p := validPlayer()
		p.Name = strings.Repeat("a", maxNameLength+1)
		if err := p.Validate(); err == nil {
			t.Fatalf("expected error for name over %d characters", maxNameLength)
		}
	})

	t.Run("invalid email", func(t *testing.T) {
		p := validPlayer()
		p.Email = "not-an-email"
		if err := p.Validate(); err == nil {
			t.Fatalf("expected error for invalid email")
		}
	})
}

func TestValidEmail(t *testing.T) {
	valid := []string{
		"alice@example.com",
		"a.b_c%d+e-f@sub.domain.io",
		"UPPER@EXAMPLE.ORG",
		"x@y.co",
	}
	for _, email := range valid {
		if !ValidEmail(email) {
			t.Fatalf("expected %q to be valid", email)
		}
	}

	invalid := []string{
		"",
		"plainaddress",
		"@no-local.com",
		"missing-at.example.com",
		"user@",
		"user@domain",
		"user@domain.c",
		"user@@domain.com",
		"user@domain.com ",
		" user@domain.com",
	}
	for _, email := range invalid {
		if ValidEmail(email) {
			t.Fatalf("expected %q to be invalid", email)
		}
	}
}
