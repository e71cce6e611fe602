package registration

import (
	"errors"
	"fmt"
)

var (
	ErrTeamNameRequired  = errors.New("Team name is required")
	ErrAlreadyMember     = errors.New("This member is already in the team")
	ErrRemoveCaptain     = errors.New("Team captain can not be removed")
	ErrNotConfirmed      = errors.New("Registration is not confirmed")
	ErrEventCancelled    = errors.New("This event has been cancelled")
	ErrDeadlinePassed    = errors.New("Registration deadline has passed")
	ErrAlreadyRegistered = errors.New("You are already registered for this event")
	ErrEventFull         = errors.New("This event has reached the maximum number of teams")
)

type TeamFullError struct {
	MaxTeamSize int
}

func (e *TeamFullError) Error() string {
	return fmt.Sprintf("Team size cannot exceed %d members", e.MaxTeamSize)
}

// MemberRegisteredError is returned when an invited user already has a team registered for the event
type MemberRegisteredError struct {
	Email string
}

func (e *MemberRegisteredError) Error() string {
	return fmt.Sprintf("%s is already registered for this event in another team", e.Email)
}
