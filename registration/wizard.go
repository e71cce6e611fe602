package registration

import (
	"strings"
)

// Step is the state of registration wizard
type Step string

const (
	StepTeam    Step = "team"
	StepMembers Step = "members"
	StepConfirm Step = "confirm"
)

// Draft is the registration being filled in. It lives only during one request,
// clients send the whole draft and it is replayed through the steps.
type Draft struct {
	Step Step

	TeamName        string
	TeamDescription string

	// Members are emails, captain is always first
	Members []string

	MaxTeamSize int
}

func NewDraft(captainEmail string, maxTeamSize int) *Draft {
	return &Draft{
		Step:        StepTeam,
		Members:     []string{normalizeEmail(captainEmail)},
		MaxTeamSize: maxTeamSize,
	}
}

func (d *Draft) Captain() string {
	return d.Members[0]
}

func (d *Draft) Next() error {
	switch d.Step {
	case StepTeam:
		if strings.TrimSpace(d.TeamName) == "" {
			return ErrTeamNameRequired
		}
		d.Step = StepMembers
	case StepMembers:
		d.Step = StepConfirm
	}
	return nil
}

func (d *Draft) Back() {
	switch d.Step {
	case StepMembers:
		d.Step = StepTeam
	case StepConfirm:
		d.Step = StepMembers
	}
}

// AddMember adds email to the team. Blank emails are ignored
func (d *Draft) AddMember(email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return nil
	}
	if err := CheckCanJoin(len(d.Members), d.hasMember(email), d.MaxTeamSize); err != nil {
		return err
	}
	d.Members = append(d.Members, email)
	return nil
}

func (d *Draft) RemoveMember(email string) error {
	email = normalizeEmail(email)
	if email == d.Captain() {
		return ErrRemoveCaptain
	}
	for i, member := range d.Members {
		if member == email {
			d.Members = append(d.Members[:i], d.Members[i+1:]...)
			return nil
		}
	}
	return nil
}

// Invited returns all members except captain
func (d *Draft) Invited() []string {
	return d.Members[1:]
}

func (d *Draft) hasMember(email string) bool {
	for _, member := range d.Members {
		if member == email {
			return true
		}
	}
	return false
}

// CheckCanJoin checks that one more member fits into the team of given size
func CheckCanJoin(teamSize int, alreadyMember bool, maxTeamSize int) error {
	if alreadyMember {
		return ErrAlreadyMember
	}
	if maxTeamSize > 0 && teamSize >= maxTeamSize {
		return &TeamFullError{MaxTeamSize: maxTeamSize}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
