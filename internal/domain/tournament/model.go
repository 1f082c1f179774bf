package tournament

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const maxNameLength = 255

// Tournament is a competition with a fixed player capacity. Fields are
// immutable once the tournament is created.
type Tournament struct {
	ID         int64
	Name       string
	MaxPlayers int
	StartAt    time.Time
	CreatedAt  time.Time
}

func (t Tournament) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("name is required")
	}
	if len(t.Name) > maxNameLength {
		return fmt.Errorf("name must be at most %d characters", maxNameLength)
	}
	if t.MaxPlayers <= 0 {
		return errors.New("max players must be positive")
	}
	if t.StartAt.IsZero() {
		return errors.New("start time is required")
	}

	return nil
}
