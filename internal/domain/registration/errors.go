package registration

import "errors"

var (
	ErrDuplicateRegistration = errors.New("email already registered for tournament")
	ErrTournamentFull        = errors.New("tournament is full")
)
