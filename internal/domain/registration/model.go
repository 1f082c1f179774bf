package registration

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const maxNameLength = 255

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Player is a single registration of an email into a tournament. The same
// email may appear in many tournaments but only once per tournament.
type Player struct {
	ID           int64
	TournamentID int64
	Name         string
	Email        string
	CreatedAt    time.Time
}

func (p Player) Validate() error {
	if p.TournamentID <= 0 {
		return errors.New("tournament id must be positive")
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	if len(p.Name) > maxNameLength {
		return fmt.Errorf("name must be at most %d characters", maxNameLength)
	}
	if !ValidEmail(p.Email) {
		return fmt.Errorf("invalid email %q", p.Email)
	}

	return nil
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
