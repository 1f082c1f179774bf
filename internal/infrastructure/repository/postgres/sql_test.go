package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsNotFound(t *testing.T) {
	t.Run("matches sql.ErrNoRows", func(t *testing.T) {
		if !isNotFound(sql.ErrNoRows) {
			t.Fatalf("expected true for sql.ErrNoRows")
		}
	})

	t.Run("matches wrapped sql.ErrNoRows", func(t *testing.T) {
		if !isNotFound(fmt.Errorf("get tournament: %w", sql.ErrNoRows)) {
			t.Fatalf("expected true for wrapped sql.ErrNoRows")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		if isNotFound(errors.New("pq: relation players does not exist")) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches 23505", func(t *testing.T) {
		err := &pq.Error{Code: "23505", Constraint: "players_email_tournament_unique"}
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for unique violation")
		}
	})

	t.Run("matches wrapped 23505", func(t *testing.T) {
		err := fmt.Errorf("insert player: %w", &pq.Error{Code: "23505"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for wrapped unique violation")
		}
	})

	t.Run("ignores other pq codes", func(t *testing.T) {
		err := &pq.Error{Code: "23503"}
		if isUniqueViolation(err) {
			t.Fatalf("expected false for foreign key violation")
		}
	})

	t.Run("ignores non-pq error", func(t *testing.T) {
		if isUniqueViolation(errors.New("duplicate key value")) {
			t.Fatalf("expected false for plain error")
		}
	})
}
